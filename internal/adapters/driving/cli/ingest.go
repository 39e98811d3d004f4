package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/clearbid-labs/propqa-cli/internal/core/ports/driving"
	"github.com/clearbid-labs/propqa-cli/internal/logger"
)

var (
	ingestClient string
	ingestDate   string
	ingestTags   []string
	ingestWatch  bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Index proposal files for retrieval",
	Long: `Extracts text from proposal files (.txt, .md, .pdf), splits it into
chunks, embeds each chunk, and stores it in the retrieval index.
Re-ingesting a file replaces its previous chunks.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestClient, "client", "", "client the proposal was written for (required)")
	ingestCmd.Flags().StringVar(&ingestDate, "date", "", "proposal date (YYYY-MM-DD, default today)")
	ingestCmd.Flags().StringSliceVar(&ingestTags, "tags", nil, "comma-separated tags copied onto every chunk")
	ingestCmd.Flags().BoolVar(&ingestWatch, "watch", false, "watch the given directories and ingest new files")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	opts := driving.IngestOptions{
		Client: ingestClient,
		Tags:   ingestTags,
	}
	if ingestDate != "" {
		date, err := time.Parse("2006-01-02", ingestDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q (want YYYY-MM-DD): %w", ingestDate, err)
		}
		opts.Date = date
	}

	if ingestWatch {
		return watchAndIngest(cmd, args, opts)
	}

	var failed int
	for _, path := range args {
		if err := ingestOne(cmd, path, opts); err != nil {
			failed++
			cmd.PrintErrf("Error ingesting %s: %v\n", path, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func ingestOne(cmd *cobra.Command, path string, opts driving.IngestOptions) error {
	result, err := ingestService.IngestFile(cmd.Context(), path, opts)
	if err != nil {
		return err
	}

	cmd.Printf("%s: %d/%d chunks indexed\n", result.Document.Filename, result.Inserted, result.ChunkCount)
	if len(result.Sections) > 0 {
		labels := make([]string, len(result.Sections))
		for i, s := range result.Sections {
			labels[i] = string(s)
		}
		cmd.Printf("  sections: %s\n", strings.Join(labels, ", "))
	}
	for _, ce := range result.Errors {
		cmd.PrintErrf("  chunk %s: %v\n", ce.ChunkID, ce.Err)
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d chunks failed", result.Failed)
	}
	return nil
}

// watchAndIngest ingests files as they appear in the watched
// directories. Runs until the context is cancelled.
func watchAndIngest(cmd *cobra.Command, dirs []string, opts driving.IngestOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		logger.Info("Watching %s", dir)
	}
	cmd.Printf("Watching %d directories; press Ctrl+C to stop.\n", len(dirs))

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !isIngestable(event.Name) {
				continue
			}
			if err := ingestOne(cmd, event.Name, opts); err != nil {
				cmd.PrintErrf("Error ingesting %s: %v\n", event.Name, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

func isIngestable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".pdf":
		return true
	}
	return false
}
