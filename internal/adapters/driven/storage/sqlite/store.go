package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/moviematch/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/moviematch/internal/core/domain"
	"github.com/custodia-labs/moviematch/internal/core/ports/driven"
)

// DBFile is the database file name inside the data directory.
const DBFile = "feedback.db"

// Store is a SQLite-based storage that provides access to the
// store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in dataDir.
// If dataDir is empty, defaults to ~/.moviematch/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".moviematch", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFile)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// FeedbackLog returns a FeedbackLog interface backed by this store.
func (s *Store) FeedbackLog() driven.FeedbackLog {
	return &feedbackLog{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_feedback.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// apply runs one migration and records its version atomically.
func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Feedback Log ====================

// feedbackLog implements driven.FeedbackLog.
type feedbackLog struct {
	store *Store
}

var _ driven.FeedbackLog = (*feedbackLog)(nil)

// Load returns every record in insertion order. A row with an unknown
// method or out-of-range rating reports domain.ErrMalformedInput.
func (l *feedbackLog) Load(ctx context.Context) ([]domain.FeedbackRecord, error) {
	rows, err := l.store.db.QueryContext(ctx, `
		SELECT method, query, rating FROM feedback ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying feedback: %w", err)
	}
	defer rows.Close()

	var records []domain.FeedbackRecord
	for rows.Next() {
		var (
			method string
			rec    domain.FeedbackRecord
		)
		if err := rows.Scan(&method, &rec.Query, &rec.Rating); err != nil {
			return nil, fmt.Errorf("scanning feedback: %w", err)
		}
		rec.Method = domain.Method(method)
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", domain.ErrMalformedInput, len(records)+1, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feedback: %w", err)
	}

	return records, nil
}

// Append inserts one record.
func (l *feedbackLog) Append(ctx context.Context, record domain.FeedbackRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	_, err := l.store.db.ExecContext(ctx, `
		INSERT INTO feedback (method, query, rating) VALUES (?, ?, ?)
	`, record.Method.String(), record.Query, record.Rating)
	if err != nil {
		return fmt.Errorf("inserting feedback: %w", err)
	}
	return nil
}

// Reset deletes every record.
func (l *feedbackLog) Reset(ctx context.Context) error {
	if _, err := l.store.db.ExecContext(ctx, "DELETE FROM feedback"); err != nil {
		return fmt.Errorf("clearing feedback: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (l *feedbackLog) Path() string {
	return l.store.path
}
