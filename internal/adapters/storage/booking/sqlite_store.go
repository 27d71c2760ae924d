package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gymportal/internal/adapters/storage"
	domain "gymportal/internal/domain/booking"
)

const bookingColumns = "b.id, b.lesson_id, b.member_id, b.status, b.created_at, b.cancelled_at, b.reminded_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new booking store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Booking by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Booking, error) {
	b, err := scanBooking(s.db.QueryRowContext(ctx, "SELECT "+bookingColumns+" FROM booking b WHERE b.id = ?", id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Booking{}, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	return b, err
}

// Save persists a Booking (insert or update).
// PRE: entity has been validated
// POST: a unique-index violation means the member already holds an active booking
func (s *SQLiteStore) Save(ctx context.Context, b domain.Booking) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO booking (id, lesson_id, member_id, status, created_at, cancelled_at, reminded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET status=excluded.status, cancelled_at=excluded.cancelled_at, reminded_at=excluded.reminded_at`,
		b.ID, b.LessonID, b.MemberID, b.Status,
		storage.FormatTime(b.CreatedAt), storage.NullableTime(b.CancelledAt), storage.NullableTime(b.RemindedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.ErrAlreadyBooked
		}
		return fmt.Errorf("save booking: %w", err)
	}
	return nil
}

// ListByLesson returns every booking for a lesson, oldest first.
func (s *SQLiteStore) ListByLesson(ctx context.Context, lessonID string) ([]domain.Booking, error) {
	return s.list(ctx, "SELECT "+bookingColumns+" FROM booking b WHERE b.lesson_id = ? ORDER BY b.created_at", lessonID)
}

// ListActiveByLessons returns confirmed and waitlisted bookings for the given lessons.
func (s *SQLiteStore) ListActiveByLessons(ctx context.Context, lessonIDs []string) ([]domain.Booking, error) {
	if len(lessonIDs) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(lessonIDs)), ",")
	args := make([]any, len(lessonIDs))
	for i, id := range lessonIDs {
		args[i] = id
	}
	query := "SELECT " + bookingColumns + " FROM booking b WHERE b.status != 'cancelled' AND b.lesson_id IN (" + placeholders + ") ORDER BY b.created_at"
	return s.list(ctx, query, args...)
}

// ListByMember returns all of a member's bookings, newest first.
func (s *SQLiteStore) ListByMember(ctx context.Context, memberID string) ([]domain.Booking, error) {
	return s.list(ctx, "SELECT "+bookingColumns+" FROM booking b WHERE b.member_id = ? ORDER BY b.created_at DESC", memberID)
}

// ListDueReminders returns confirmed, not yet reminded bookings for lessons dated in [fromDate, toDate].
func (s *SQLiteStore) ListDueReminders(ctx context.Context, fromDate, toDate string) ([]domain.Booking, error) {
	return s.list(ctx, `SELECT `+bookingColumns+` FROM booking b
		JOIN lesson l ON l.id = b.lesson_id
		WHERE b.status = 'confirmed' AND b.reminded_at IS NULL AND l.date >= ? AND l.date <= ?
		ORDER BY l.date, l.start_time`, fromDate, toDate)
}

// MarkReminded stamps reminded_at on a booking that is still confirmed and not yet reminded.
// It touches no other column, so a concurrent cancellation is never overwritten.
// POST: returns false when the booking no longer qualifies
func (s *SQLiteStore) MarkReminded(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE booking SET reminded_at = ? WHERE id = ? AND status = 'confirmed' AND reminded_at IS NULL`,
		storage.FormatTime(at), id)
	if err != nil {
		return false, fmt.Errorf("mark booking %s reminded: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanBooking(scan func(dest ...any) error) (domain.Booking, error) {
	var b domain.Booking
	var createdAt string
	var cancelledAt, remindedAt sql.NullString
	if err := scan(&b.ID, &b.LessonID, &b.MemberID, &b.Status, &createdAt, &cancelledAt, &remindedAt); err != nil {
		return domain.Booking{}, err
	}
	b.CreatedAt, _ = storage.ParseTime(createdAt)
	b.CancelledAt = storage.ParseNullTime(cancelledAt)
	b.RemindedAt = storage.ParseNullTime(remindedAt)
	return b, nil
}
