package sqlite

import (
	"fmt"
	"net/url"
	"testing"
)

// setupTestDB creates a named shared in-memory database so the writer and
// reader connections see the same data. The name is unique per test.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)", url.PathEscape(t.Name()))

	db, err := openDSN(dsn, dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := MigrateHistory(db.Writer); err != nil {
		_ = db.Close()
		t.Fatalf("run migrations: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })

	return db
}
