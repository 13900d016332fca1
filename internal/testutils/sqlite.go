package testutils

import (
	"path/filepath"
	"testing"

	"ifc-reuse-backend/internal/database"

	"gorm.io/gorm"
)

// NewSQLiteDB opens a migrated SQLite database in the test's temp dir and
// closes it when the test ends. It needs no Docker and backs the fast
// service-level integration tests.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Initialize(dsn, &database.Options{Driver: database.DriverSQLite})
	if err != nil {
		t.Fatalf("failed to open sqlite test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
