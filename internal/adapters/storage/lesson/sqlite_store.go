package lesson

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gymportal/internal/adapters/storage"
	domain "gymportal/internal/domain/lesson"
)

const selectLesson = "SELECT id, title, category, instructor, room, description, date, start_time, end_time, capacity FROM lesson"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new lesson store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Lesson by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Lesson, error) {
	l, err := scanLesson(s.db.QueryRowContext(ctx, selectLesson+" WHERE id = ?", id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Lesson{}, fmt.Errorf("lesson %s: %w", id, domain.ErrNotFound)
	}
	return l, err
}

// Save persists a Lesson (insert or update).
// PRE: entity has been validated
func (s *SQLiteStore) Save(ctx context.Context, l domain.Lesson) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO lesson (id, title, category, instructor, room, description, date, start_time, end_time, capacity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, category=excluded.category, instructor=excluded.instructor,
			room=excluded.room, description=excluded.description, date=excluded.date,
			start_time=excluded.start_time, end_time=excluded.end_time, capacity=excluded.capacity`,
		l.ID, l.Title, l.Category, l.Instructor, l.Room, l.Description, l.Date, l.StartTime, l.EndTime, l.Capacity,
	)
	if err != nil {
		return fmt.Errorf("save lesson: %w", err)
	}
	return nil
}

// Delete removes a Lesson; its bookings cascade.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM lesson WHERE id = ?", id)
	return err
}

// ListByDate returns the lessons on one date ordered by start time.
func (s *SQLiteStore) ListByDate(ctx context.Context, date string) ([]domain.Lesson, error) {
	return s.list(ctx, selectLesson+" WHERE date = ? ORDER BY start_time, title", date)
}

// ListByDateRange returns lessons with from <= date <= to, ordered by date and time.
func (s *SQLiteStore) ListByDateRange(ctx context.Context, from, to string) ([]domain.Lesson, error) {
	return s.list(ctx, selectLesson+" WHERE date >= ? AND date <= ? ORDER BY date, start_time, title", from, to)
}

// CountByDate returns the number of lessons per date in [from, to].
func (s *SQLiteStore) CountByDate(ctx context.Context, from, to string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT date, COUNT(*) FROM lesson WHERE date >= ? AND date <= ? GROUP BY date", from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var date string
		var n int
		if err := rows.Scan(&date, &n); err != nil {
			return nil, err
		}
		counts[date] = n
	}
	return counts, rows.Err()
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Lesson, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Lesson
	for rows.Next() {
		l, err := scanLesson(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func scanLesson(scan func(dest ...any) error) (domain.Lesson, error) {
	var l domain.Lesson
	err := scan(&l.ID, &l.Title, &l.Category, &l.Instructor, &l.Room, &l.Description, &l.Date, &l.StartTime, &l.EndTime, &l.Capacity)
	return l, err
}
