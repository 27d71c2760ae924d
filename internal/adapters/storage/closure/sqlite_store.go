package closure

import (
	"context"
	"fmt"
	"time"

	"gymportal/internal/adapters/storage"
	domain "gymportal/internal/domain/closure"
)

const dateFormat = "2006-01-02"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new closure store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists a Closure (insert or update).
// PRE: entity has been validated
func (s *SQLiteStore) Save(ctx context.Context, c domain.Closure) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO closure (id, name, start_date, end_date) VALUES (?, ?, ?, ?) ON CONFLICT(id) DO UPDATE SET name=excluded.name, start_date=excluded.start_date, end_date=excluded.end_date",
		c.ID, c.Name, c.StartDate.Format(dateFormat), c.EndDate.Format(dateFormat),
	)
	if err != nil {
		return fmt.Errorf("save closure: %w", err)
	}
	return nil
}

// Delete removes a Closure.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM closure WHERE id = ?", id)
	return err
}

// List returns all closures ordered by start date.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Closure, error) {
	return s.list(ctx, "SELECT id, name, start_date, end_date FROM closure ORDER BY start_date")
}

// ListOverlapping returns closures that cover any date in [from, to].
func (s *SQLiteStore) ListOverlapping(ctx context.Context, from, to string) ([]domain.Closure, error) {
	return s.list(ctx, "SELECT id, name, start_date, end_date FROM closure WHERE start_date <= ? AND end_date >= ? ORDER BY start_date", to, from)
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Closure, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Closure
	for rows.Next() {
		var c domain.Closure
		var startStr, endStr string
		if err := rows.Scan(&c.ID, &c.Name, &startStr, &endStr); err != nil {
			return nil, err
		}
		c.StartDate, _ = time.Parse(dateFormat, startStr)
		c.EndDate, _ = time.Parse(dateFormat, endStr)
		out = append(out, c)
	}
	return out, rows.Err()
}
