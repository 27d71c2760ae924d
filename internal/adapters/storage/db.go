package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// migration is one forward-only schema step.
type migration struct {
	version     int
	description string
	up          func(tx *sql.Tx) error
}

// migrations are applied in order; versions must be contiguous from 1.
var migrations = []migration{
	{1, "accounts, members, lessons, bookings, attendance", migrateV1},
	{2, "pilates slots, reservations and studio closures", migrateV2},
	{3, "member QR codes", migrateV3},
	{4, "booking reminders", migrateV4},
}

// LatestSchemaVersion returns the version MigrateDB brings a database to.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion returns the applied schema version, 0 for a fresh database.
// PRE: db is a valid database connection
func SchemaVersion(db *sql.DB) (int, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER NOT NULL,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return 0, fmt.Errorf("create schema_version: %w", err)
	}
	var v sql.NullInt64
	if err := db.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema_version: %w", err)
	}
	return int(v.Int64), nil
}

// MigrateDB applies pending migrations, each in its own transaction.
// When dbPath names a file and migrations are pending, a copy of the
// database is written to <dbPath>.bak-v<current> first.
// PRE: db is a valid database connection
// POST: SchemaVersion(db) == LatestSchemaVersion()
func MigrateDB(db *sql.DB, dbPath string) error {
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}
	if current >= LatestSchemaVersion() {
		return nil
	}

	if current > 0 && isFileDB(dbPath) {
		backup := fmt.Sprintf("%s.bak-v%d", dbPath, current)
		if _, err := db.Exec("VACUUM INTO ?", backup); err != nil {
			return fmt.Errorf("backup before migration: %w", err)
		}
		slog.Info("migration_event", "event", "backup_written", "path", backup)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.description, err)
		}
		slog.Info("migration_event", "event", "applied", "version", m.version, "description", m.description)
	}
	return nil
}

func applyMigration(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := m.up(tx); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version, applied_at) VALUES (?, ?)",
		m.version, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return tx.Commit()
}

func isFileDB(path string) bool {
	return path != "" && path != ":memory:" && !strings.HasPrefix(path, "file::memory:")
}

func migrateV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS member (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL,
		FOREIGN KEY (account_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS lesson (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		category TEXT NOT NULL,
		instructor TEXT NOT NULL DEFAULT '',
		room TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		capacity INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_lesson_date ON lesson(date, start_time);

	CREATE TABLE IF NOT EXISTS booking (
		id TEXT PRIMARY KEY,
		lesson_id TEXT NOT NULL,
		member_id TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		cancelled_at TEXT,
		FOREIGN KEY (lesson_id) REFERENCES lesson(id) ON DELETE CASCADE,
		FOREIGN KEY (member_id) REFERENCES member(id)
	);
	CREATE INDEX IF NOT EXISTS idx_booking_lesson ON booking(lesson_id, status);
	CREATE INDEX IF NOT EXISTS idx_booking_member ON booking(member_id, created_at);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_booking_active
		ON booking(lesson_id, member_id) WHERE status != 'cancelled';

	CREATE TABLE IF NOT EXISTS attendance (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		check_in_time TEXT NOT NULL,
		date TEXT NOT NULL,
		method TEXT NOT NULL,
		code_id TEXT,
		category TEXT,
		guest INTEGER NOT NULL DEFAULT 0,
		scanned_by TEXT,
		FOREIGN KEY (member_id) REFERENCES member(id)
	);
	CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance(date);
	`)
	return err
}

func migrateV2(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE IF NOT EXISTS pilates_slot (
		id TEXT PRIMARY KEY,
		day TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		instructor TEXT NOT NULL,
		level TEXT NOT NULL,
		capacity INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS pilates_reservation (
		id TEXT PRIMARY KEY,
		slot_id TEXT NOT NULL,
		date TEXT NOT NULL,
		member_id TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		cancelled_at TEXT,
		FOREIGN KEY (slot_id) REFERENCES pilates_slot(id) ON DELETE CASCADE,
		FOREIGN KEY (member_id) REFERENCES member(id)
	);
	CREATE INDEX IF NOT EXISTS idx_reservation_date ON pilates_reservation(date, slot_id);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_reservation_active
		ON pilates_reservation(slot_id, date, member_id) WHERE status = 'confirmed';

	CREATE TABLE IF NOT EXISTS closure (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL
	);
	`)
	return err
}

func migrateV3(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE IF NOT EXISTS qr_code (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		category TEXT NOT NULL,
		token TEXT NOT NULL UNIQUE,
		label TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		expires_at TEXT,
		revoked_at TEXT,
		used_at TEXT,
		FOREIGN KEY (member_id) REFERENCES member(id)
	);
	CREATE INDEX IF NOT EXISTS idx_qr_code_member ON qr_code(member_id, category);
	`)
	return err
}

func migrateV4(tx *sql.Tx) error {
	exists, err := columnExists(tx, "booking", "reminded_at")
	if err != nil || exists {
		return err
	}
	_, err = tx.Exec("ALTER TABLE booking ADD COLUMN reminded_at TEXT")
	return err
}

func columnExists(tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.Query("SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
