package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
)

var (
	blockContent string
	blockAuthor  string
	blockNotes   string
	blockTags    []string

	blockListTags     []string
	blockListAuthor   string
	blockListContains string
	blockListSort     string
	blockListLimit    int
)

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Manage reusable proposal blocks",
	Long: `Reusable blocks are curated snippets (pricing boilerplate, team bios,
standard approaches) kept alongside the proposal index for quick reuse.`,
}

var blocksAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Save a new reusable block",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlocksAdd,
}

var blocksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reusable blocks",
	Args:  cobra.NoArgs,
	RunE:  runBlocksList,
}

var blocksUseCmd = &cobra.Command{
	Use:   "use [block-id...]",
	Short: "Record that blocks were used in a proposal",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBlocksUse,
}

func init() {
	blocksAddCmd.Flags().StringVar(&blockContent, "content", "", "block text (required)")
	blocksAddCmd.Flags().StringVar(&blockAuthor, "author", "", "who wrote the block")
	blocksAddCmd.Flags().StringVar(&blockNotes, "notes", "", "usage notes")
	blocksAddCmd.Flags().StringSliceVar(&blockTags, "tags", nil, "comma-separated tags")

	blocksListCmd.Flags().StringSliceVar(&blockListTags, "tags", nil, "only blocks with any of these tags")
	blocksListCmd.Flags().StringVar(&blockListAuthor, "author", "", "only blocks by this author")
	blocksListCmd.Flags().StringVar(&blockListContains, "contains", "", "only blocks whose title or content contains this text")
	blocksListCmd.Flags().StringVar(&blockListSort, "sort", "recent", "sort order: recent, popular, or last_used")
	blocksListCmd.Flags().IntVarP(&blockListLimit, "limit", "n", 20, "maximum number of blocks")

	blocksCmd.AddCommand(blocksAddCmd)
	blocksCmd.AddCommand(blocksListCmd)
	blocksCmd.AddCommand(blocksUseCmd)
	rootCmd.AddCommand(blocksCmd)
}

func runBlocksAdd(cmd *cobra.Command, args []string) error {
	if blockService == nil {
		return errors.New("block service not configured")
	}

	block, err := blockService.Create(cmd.Context(), args[0], blockContent, blockAuthor, blockNotes, blockTags)
	if err != nil {
		return fmt.Errorf("add block: %w", err)
	}
	cmd.Printf("Saved block %s\n", block.ID)
	return nil
}

func runBlocksList(cmd *cobra.Command, _ []string) error {
	if blockService == nil {
		return errors.New("block service not configured")
	}

	filter := domain.BlockFilter{
		Tags:     blockListTags,
		Author:   blockListAuthor,
		Contains: blockListContains,
	}
	blocks, err := blockService.List(cmd.Context(), filter, domain.BlockSort(blockListSort), blockListLimit)
	if err != nil {
		return fmt.Errorf("list blocks: %w", err)
	}

	if len(blocks) == 0 {
		cmd.Println("No blocks found.")
		return nil
	}
	for _, b := range blocks {
		cmd.Printf("%s  %s (used %d times)\n", b.ID, b.Title, b.UsageCount)
		if len(b.Tags) > 0 {
			cmd.Printf("    tags: %s\n", strings.Join(b.Tags, ", "))
		}
		cmd.Printf("    %s\n", excerpt(b.Content, 100))
	}
	return nil
}

func runBlocksUse(cmd *cobra.Command, args []string) error {
	if blockService == nil {
		return errors.New("block service not configured")
	}

	result := blockService.Use(cmd.Context(), args)
	cmd.Printf("Recorded usage for %d blocks\n", result.Succeeded)
	for id, err := range result.Errors {
		cmd.PrintErrf("  %s: %v\n", id, err)
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d of %d blocks failed", result.Failed, len(args))
	}
	return nil
}
