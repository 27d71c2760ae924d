package attendance

import (
	"context"
	"database/sql"
	"fmt"

	"gymportal/internal/adapters/storage"
	domain "gymportal/internal/domain/attendance"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new attendance store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save inserts an attendance row.
// PRE: entity has been validated
func (s *SQLiteStore) Save(ctx context.Context, a domain.Attendance) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO attendance (id, member_id, check_in_time, date, method, code_id, category, guest, scanned_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.MemberID, storage.FormatTime(a.CheckInTime), a.Date, a.Method,
		nullString(a.CodeID), nullString(a.Category), a.Guest, nullString(a.ScannedBy),
	)
	if err != nil {
		return fmt.Errorf("save attendance: %w", err)
	}
	return nil
}

// ListByDate returns the day's check-ins, newest first.
func (s *SQLiteStore) ListByDate(ctx context.Context, date string) ([]domain.Attendance, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, member_id, check_in_time, date, method, code_id, category, guest, scanned_by
		FROM attendance WHERE date = ? ORDER BY check_in_time DESC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Attendance
	for rows.Next() {
		var a domain.Attendance
		var checkIn string
		var codeID, category, scannedBy sql.NullString
		if err := rows.Scan(&a.ID, &a.MemberID, &checkIn, &a.Date, &a.Method, &codeID, &category, &a.Guest, &scannedBy); err != nil {
			return nil, err
		}
		a.CheckInTime, _ = storage.ParseTime(checkIn)
		a.CodeID, a.Category, a.ScannedBy = codeID.String, category.String, scannedBy.String
		out = append(out, a)
	}
	return out, rows.Err()
}

// CountByMemberAndDate counts a member's own (guest=false) or guest (guest=true) entries on date.
func (s *SQLiteStore) CountByMemberAndDate(ctx context.Context, memberID, date string, guest bool) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM attendance WHERE member_id = ? AND date = ? AND guest = ?",
		memberID, date, guest).Scan(&n)
	return n, err
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
