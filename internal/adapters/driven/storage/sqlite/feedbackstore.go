package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/clearbid-labs/propqa-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
	"github.com/clearbid-labs/propqa-cli/internal/core/ports/driven"
	"github.com/clearbid-labs/propqa-cli/internal/logger"
)

// Ensure FeedbackStore implements the interface.
var _ driven.FeedbackStore = (*FeedbackStore)(nil)

// FeedbackStore is a SQLite-backed implementation of
// driven.FeedbackStore.
type FeedbackStore struct {
	db   *sql.DB
	path string
}

// NewFeedbackStore creates a SQLite feedback store at the given data
// directory. An empty dataDir defaults to ~/.propqa/data.
func NewFeedbackStore(dataDir string) (*FeedbackStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".propqa", "data")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "feedback.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &FeedbackStore{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Path returns the database file path.
func (s *FeedbackStore) Path() string {
	return s.path
}

// Append stores a new feedback record.
func (s *FeedbackStore) Append(ctx context.Context, record domain.FeedbackRecord) error {
	chunkIDs, err := json.Marshal(record.ChunkIDs)
	if err != nil {
		return fmt.Errorf("marshalling chunk ids: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO feedback (id, question, answer, rating, query_type, chunk_ids, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.Question, record.Answer, string(record.Rating),
		string(record.QueryType), string(chunkIDs), record.Reason, record.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("inserting feedback: %w", err)
	}
	return nil
}

// List returns all records in insertion order. Rows that fail to
// decode are skipped and counted; they never abort the read.
func (s *FeedbackStore) List(ctx context.Context) ([]domain.FeedbackRecord, int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, answer, rating, query_type, chunk_ids, reason, created_at
		FROM feedback ORDER BY created_at, id
	`)
	if err != nil {
		return nil, 0, fmt.Errorf("querying feedback: %w", err)
	}
	defer rows.Close()

	var records []domain.FeedbackRecord
	malformed := 0
	for rows.Next() {
		var record domain.FeedbackRecord
		var rating, queryType, chunkIDs string
		if err := rows.Scan(&record.ID, &record.Question, &record.Answer, &rating,
			&queryType, &chunkIDs, &record.Reason, &record.CreatedAt); err != nil {
			malformed++
			logger.Warn("Skipping undecodable feedback row: %v", err)
			continue
		}
		record.Rating = domain.Rating(rating)
		if !record.Rating.Valid() {
			malformed++
			logger.Warn("Skipping feedback %s: invalid rating %q", record.ID, rating)
			continue
		}
		if err := json.Unmarshal([]byte(chunkIDs), &record.ChunkIDs); err != nil {
			malformed++
			logger.Warn("Skipping feedback %s: bad chunk ids: %v", record.ID, err)
			continue
		}
		record.QueryType = domain.ParseQueryType(queryType)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating feedback: %w", err)
	}
	return records, malformed, nil
}

// Close closes the database connection.
func (s *FeedbackStore) Close() error {
	return s.db.Close()
}

// migrate runs all pending migrations.
func (s *FeedbackStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}
