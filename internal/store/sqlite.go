package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"storytasks/internal/errs"
)

// Supported database/sql driver names.
const (
	DriverCGO    = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPureGo = "sqlite"  // modernc.org/sqlite
)

// SQLiteStore owns the connection pool shared by the story and task repositories.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens the database at dbPath with the named driver and
// creates the schema if it is missing.
func NewSQLiteStore(driver, dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dsn, err := buildDSN(driver, dbPath)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	if isMemory(dbPath) {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

func isMemory(dbPath string) bool {
	return dbPath == ":memory:" || strings.Contains(dbPath, "mode=memory")
}

func buildDSN(driver, dbPath string) (string, error) {
	switch driver {
	case DriverCGO:
		dsn := dbPath + "?_foreign_keys=on&_busy_timeout=5000"
		if !isMemory(dbPath) {
			dsn += "&_journal_mode=WAL"
		}
		return dsn, nil
	case DriverPureGo:
		dsn := "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
		if !isMemory(dbPath) {
			dsn += "&_pragma=journal_mode(WAL)"
		}
		return dsn, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

//go:embed schema.sql
var schema string

// migrate creates any missing tables and indexes. Every statement in
// schema.sql is idempotent, so it runs on each open.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Stories returns a story repository backed by the shared pool.
func (s *SQLiteStore) Stories() *StoryRepo {
	return &StoryRepo{db: s.db, logger: s.logger, now: utcNow, newID: uuid.NewString}
}

// Tasks returns a task repository backed by the shared pool.
func (s *SQLiteStore) Tasks() *TaskRepo {
	return &TaskRepo{db: s.db, logger: s.logger, now: utcNow, newID: uuid.NewString}
}

// Close closes the database connection pool.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// internalError logs a store failure where it was detected and converts it
// to an Internal error.
func internalError(ctx context.Context, logger *slog.Logger, op string, err error, args ...any) error {
	logger.ErrorContext(ctx, op+" failed", append(args, "error", err)...)
	return errs.NewInternal(op, err)
}
