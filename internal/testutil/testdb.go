package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/arowley/prepsprint/internal/db"
)

// NewTestDB opens an in-memory SQLite database with the full schema applied
// and closes it when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// SeedApplication inserts a minimal application row with the given ID so
// rows referencing it satisfy the sprints.application_id foreign key.
func SeedApplication(t *testing.T, database *sql.DB, id string) {
	t.Helper()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := database.Exec(
		`INSERT INTO applications (id, company, role, role_type, status, notes, created_at, updated_at)
		 VALUES (?, 'Acme', 'Software Engineer', 'backend', 'applied', '', ?, ?)`,
		id, now, now,
	)
	if err != nil {
		t.Fatalf("seeding application %q: %v", id, err)
	}
}

// NewTestUoW wraps the test database in a real UnitOfWork.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
