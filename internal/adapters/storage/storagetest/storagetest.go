// Package storagetest opens migrated in-memory databases for store tests.
package storagetest

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"gymportal/internal/adapters/storage"
)

// Open returns a fully migrated in-memory database closed at test end.
// A single connection keeps every query on the same in-memory database.
func Open(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("MigrateDB: %v", err)
	}
	return db
}

// Exec runs statements that seed fixtures, failing the test on error.
func Exec(t *testing.T, db *sql.DB, statements ...string) {
	t.Helper()
	for _, q := range statements {
		if _, err := db.Exec(q); err != nil {
			t.Fatalf("exec %q: %v", q, err)
		}
	}
}

// SeedMember inserts an account and member with the given IDs.
func SeedMember(t *testing.T, db *sql.DB, accountID, memberID, email string) {
	t.Helper()
	if _, err := db.Exec(`INSERT INTO account (id, email, role, created_at) VALUES (?, ?, 'member', '2026-01-01T00:00:00Z')`, accountID, email); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO member (id, account_id, name, email, status) VALUES (?, ?, ?, ?, 'active')`, memberID, accountID, "Member "+memberID, email); err != nil {
		t.Fatalf("seed member: %v", err)
	}
}
