package sqlite

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const dbDirMode = 0o700

// DB pairs a single-connection writer with a small reader pool over the same
// WAL-mode database file.
type DB struct {
	Writer *sql.DB
	Reader *sql.DB
	path   string
}

// Open creates the parent directory when needed, opens the database and
// applies pending migrations.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), dbDirMode); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := NewDB(dbPath)
	if err != nil {
		return nil, err
	}

	if err := MigrateHistory(db.Writer); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func NewDB(dbPath string) (*DB, error) {
	return openDSN(fileDSN(dbPath), dbPath)
}

// fileDSN builds a SQLite URI for dbPath with the history pragmas. The path is
// percent-encoded so names containing '?', '#' or '%' stay part of the path.
func fileDSN(dbPath string) string {
	p := filepath.ToSlash(dbPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	dsn := url.URL{
		Scheme:   "file",
		Path:     p,
		RawQuery: "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)",
	}
	return dsn.String()
}

func openDSN(dsn, path string) (*DB, error) {
	writer, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}
	writer.SetMaxOpenConns(1)

	if err := writer.Ping(); err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("ping writer: %w", err)
	}

	reader, err := sql.Open("sqlite", dsn)
	if err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("open reader: %w", err)
	}
	reader.SetMaxOpenConns(2)

	if err := reader.Ping(); err != nil {
		_ = reader.Close()
		_ = writer.Close()
		return nil, fmt.Errorf("ping reader: %w", err)
	}

	return &DB{Writer: writer, Reader: reader, path: path}, nil
}

// Close closes both connections and returns the first error.
func (db *DB) Close() error {
	var firstErr error

	if err := db.Reader.Close(); err != nil {
		firstErr = fmt.Errorf("close reader: %w", err)
	}

	if err := db.Writer.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close writer: %w", err)
	}

	return firstErr
}
