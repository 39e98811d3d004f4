package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultEmbeddingProvider  = "openai"
	DefaultCompletionProvider = "openai"
	DefaultIndexBackend       = "pgvector"
	DefaultChunkSize          = 800
	DefaultOverlap            = 100
	DefaultTopK               = 5
	DefaultConcurrency        = 4
	DefaultEmbedRatePerSecond = 10
)

// Config is the full application configuration.
type Config struct {
	Embedding  EmbeddingConfig  `toml:"embedding"`
	Completion CompletionConfig `toml:"completion"`
	Index      IndexConfig      `toml:"index"`
	Feedback   FeedbackConfig   `toml:"feedback"`
	Ingest     IngestConfig     `toml:"ingest"`
	Ask        AskConfig        `toml:"ask"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	// Provider is "openai" or "ollama".
	Provider   string `toml:"provider"`
	APIKey     string `toml:"api_key"`
	BaseURL    string `toml:"base_url"`
	Model      string `toml:"model"`
	Dimensions int    `toml:"dimensions"`
}

// CompletionConfig selects and configures the completion provider.
type CompletionConfig struct {
	// Provider is "openai" or "gemini".
	Provider string `toml:"provider"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	Model    string `toml:"model"`
}

// IndexConfig selects and configures the retrieval index.
type IndexConfig struct {
	// Backend is "pgvector" or "memory".
	Backend    string `toml:"backend"`
	ConnString string `toml:"conn_string"`
}

// FeedbackConfig configures feedback persistence.
type FeedbackConfig struct {
	// DataDir holds the SQLite database (default: ~/.propqa/data).
	DataDir string `toml:"data_dir"`
}

// IngestConfig tunes chunking and embedding throughput.
type IngestConfig struct {
	ChunkSize          int `toml:"chunk_size"`
	Overlap            int `toml:"overlap"`
	Concurrency        int `toml:"concurrency"`
	EmbedRatePerSecond int `toml:"embed_rate_per_second"`
}

// AskConfig tunes answer drafting.
type AskConfig struct {
	TopK int `toml:"top_k"`
}

// DefaultPath returns the default config file location,
// ~/.propqa/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".propqa", "config.toml"), nil
}

// Load reads the config file at path, fills defaults, and applies
// environment overrides. A missing file yields the default config.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyEnv(cfg)
	fillDefaults(cfg)
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Embedding:  EmbeddingConfig{Provider: DefaultEmbeddingProvider},
		Completion: CompletionConfig{Provider: DefaultCompletionProvider},
		Index:      IndexConfig{Backend: DefaultIndexBackend},
		Ingest: IngestConfig{
			ChunkSize:          DefaultChunkSize,
			Overlap:            DefaultOverlap,
			Concurrency:        DefaultConcurrency,
			EmbedRatePerSecond: DefaultEmbedRatePerSecond,
		},
		Ask: AskConfig{TopK: DefaultTopK},
	}
}

// applyEnv lets secrets come from the environment instead of the
// config file on disk.
func applyEnv(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		if cfg.Embedding.Provider == "openai" && cfg.Embedding.APIKey == "" {
			cfg.Embedding.APIKey = v
		}
		if cfg.Completion.Provider == "openai" && cfg.Completion.APIKey == "" {
			cfg.Completion.APIKey = v
		}
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && cfg.Completion.Provider == "gemini" && cfg.Completion.APIKey == "" {
		cfg.Completion.APIKey = v
	}
	if v := os.Getenv("PROPQA_DATABASE_URL"); v != "" && cfg.Index.ConnString == "" {
		cfg.Index.ConnString = v
	}
}

func fillDefaults(cfg *Config) {
	if cfg.Ingest.ChunkSize <= 0 {
		cfg.Ingest.ChunkSize = DefaultChunkSize
	}
	if cfg.Ingest.Overlap < 0 {
		cfg.Ingest.Overlap = DefaultOverlap
	}
	if cfg.Ingest.Concurrency <= 0 {
		cfg.Ingest.Concurrency = DefaultConcurrency
	}
	if cfg.Ingest.EmbedRatePerSecond <= 0 {
		cfg.Ingest.EmbedRatePerSecond = DefaultEmbedRatePerSecond
	}
	if cfg.Ask.TopK <= 0 {
		cfg.Ask.TopK = DefaultTopK
	}
}
