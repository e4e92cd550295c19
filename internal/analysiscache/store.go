package analysiscache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; stale databases must be cleared and rebuilt.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrNotFound indicates no cached analysis exists for a content hash.
var ErrNotFound = errors.New("analysis not cached")

// Entry is one cached analysis result.
type Entry struct {
	ContentHash  string
	Convention   string
	SourceName   string
	ProposedBase string
	AnalysisJSON string
	Confidence   string
	Model        string
	CreatedAt    time.Time
}

// Stats summarizes cache contents.
type Stats struct {
	Entries      int64
	ByConvention map[string]int64
	Path         string
}

// Store manages the analysis cache backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the cache database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (run 'pdfocr cache clear' or delete the database)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Get returns the cached entry for a content hash and convention, or
// ErrNotFound.
func (s *Store) Get(ctx context.Context, contentHash, convention string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT content_hash, convention, source_name, proposed_base,
                analysis_json, confidence, model, created_at
         FROM analysis_entries
         WHERE content_hash = ? AND convention = ?`,
		contentHash, convention,
	)
	var entry Entry
	var createdAt string
	err := row.Scan(
		&entry.ContentHash, &entry.Convention, &entry.SourceName,
		&entry.ProposedBase, &entry.AnalysisJSON, &entry.Confidence,
		&entry.Model, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query analysis entry: %w", err)
	}
	if ts, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
		entry.CreatedAt = ts
	}
	return &entry, nil
}

// Put stores or replaces the analysis for a content hash and convention.
func (s *Store) Put(ctx context.Context, entry Entry) error {
	if entry.ContentHash == "" {
		return errors.New("content hash required")
	}
	if entry.Convention == "" {
		return errors.New("convention required")
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO analysis_entries (
            content_hash, convention, source_name, proposed_base,
            analysis_json, confidence, model, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (content_hash) DO UPDATE SET
            convention = excluded.convention,
            source_name = excluded.source_name,
            proposed_base = excluded.proposed_base,
            analysis_json = excluded.analysis_json,
            confidence = excluded.confidence,
            model = excluded.model,
            created_at = excluded.created_at`,
		entry.ContentHash, entry.Convention, entry.SourceName,
		entry.ProposedBase, entry.AnalysisJSON, entry.Confidence,
		entry.Model, createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert analysis entry: %w", err)
	}
	return nil
}

// Stats reports entry counts overall and per convention.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{ByConvention: make(map[string]int64), Path: s.path}
	rows, err := s.db.QueryContext(ctx,
		"SELECT convention, COUNT(1) FROM analysis_entries GROUP BY convention")
	if err != nil {
		return stats, fmt.Errorf("query cache stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var convention string
		var count int64
		if err := rows.Scan(&convention, &count); err != nil {
			return stats, fmt.Errorf("scan cache stats: %w", err)
		}
		stats.ByConvention[convention] = count
		stats.Entries += count
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("iterate cache stats: %w", err)
	}
	return stats, nil
}

// Clear removes all cached entries and reports how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM analysis_entries")
	if err != nil {
		return 0, fmt.Errorf("clear analysis cache: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count cleared entries: %w", err)
	}
	return deleted, nil
}
