package pilates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gymportal/internal/adapters/storage"
	domain "gymportal/internal/domain/pilates"
)

const (
	selectSlot        = "SELECT id, day, start_time, end_time, instructor, level, capacity FROM pilates_slot"
	selectReservation = "SELECT id, slot_id, date, member_id, status, created_at, cancelled_at FROM pilates_reservation"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new pilates store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetSlot retrieves a Slot by its ID.
// POST: Returns the entity or an error wrapping domain.ErrSlotNotFound
func (s *SQLiteStore) GetSlot(ctx context.Context, id string) (domain.Slot, error) {
	var sl domain.Slot
	err := s.db.QueryRowContext(ctx, selectSlot+" WHERE id = ?", id).
		Scan(&sl.ID, &sl.Day, &sl.StartTime, &sl.EndTime, &sl.Instructor, &sl.Level, &sl.Capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Slot{}, fmt.Errorf("slot %s: %w", id, domain.ErrSlotNotFound)
	}
	return sl, err
}

// SaveSlot persists a Slot (insert or update).
// PRE: entity has been validated
func (s *SQLiteStore) SaveSlot(ctx context.Context, sl domain.Slot) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO pilates_slot (id, day, start_time, end_time, instructor, level, capacity)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET day=excluded.day, start_time=excluded.start_time, end_time=excluded.end_time,
			instructor=excluded.instructor, level=excluded.level, capacity=excluded.capacity`,
		sl.ID, sl.Day, sl.StartTime, sl.EndTime, sl.Instructor, sl.Level, sl.Capacity,
	)
	if err != nil {
		return fmt.Errorf("save slot: %w", err)
	}
	return nil
}

// DeleteSlot removes a Slot; its reservations cascade.
func (s *SQLiteStore) DeleteSlot(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM pilates_slot WHERE id = ?", id)
	return err
}

// ListSlots returns the weekly timetable ordered by start time.
func (s *SQLiteStore) ListSlots(ctx context.Context) ([]domain.Slot, error) {
	rows, err := s.db.QueryContext(ctx, selectSlot+" ORDER BY start_time, day")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Slot
	for rows.Next() {
		var sl domain.Slot
		if err := rows.Scan(&sl.ID, &sl.Day, &sl.StartTime, &sl.EndTime, &sl.Instructor, &sl.Level, &sl.Capacity); err != nil {
			return nil, err
		}
		out = append(out, sl)
	}
	return out, rows.Err()
}

// GetReservation retrieves a Reservation by its ID.
// POST: Returns the entity or an error wrapping domain.ErrReservationNotFound
func (s *SQLiteStore) GetReservation(ctx context.Context, id string) (domain.Reservation, error) {
	r, err := scanReservation(s.db.QueryRowContext(ctx, selectReservation+" WHERE id = ?", id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Reservation{}, fmt.Errorf("reservation %s: %w", id, domain.ErrReservationNotFound)
	}
	return r, err
}

// SaveReservation persists a Reservation (insert or update).
// PRE: entity has been validated
func (s *SQLiteStore) SaveReservation(ctx context.Context, r domain.Reservation) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO pilates_reservation (id, slot_id, date, member_id, status, created_at, cancelled_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET status=excluded.status, cancelled_at=excluded.cancelled_at`,
		r.ID, r.SlotID, r.Date, r.MemberID, r.Status, storage.FormatTime(r.CreatedAt), storage.NullableTime(r.CancelledAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.ErrAlreadyReserved
		}
		return fmt.Errorf("save reservation: %w", err)
	}
	return nil
}

// ListReservationsByOccurrence returns all reservations for one slot on one date.
func (s *SQLiteStore) ListReservationsByOccurrence(ctx context.Context, slotID, date string) ([]domain.Reservation, error) {
	return s.listReservations(ctx, selectReservation+" WHERE slot_id = ? AND date = ? ORDER BY created_at", slotID, date)
}

// ListReservationsByDateRange returns confirmed reservations dated in [from, to].
func (s *SQLiteStore) ListReservationsByDateRange(ctx context.Context, from, to string) ([]domain.Reservation, error) {
	return s.listReservations(ctx, selectReservation+" WHERE status = 'confirmed' AND date >= ? AND date <= ? ORDER BY date, created_at", from, to)
}

func (s *SQLiteStore) listReservations(ctx context.Context, query string, args ...any) ([]domain.Reservation, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		r, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanReservation(scan func(dest ...any) error) (domain.Reservation, error) {
	var r domain.Reservation
	var createdAt string
	var cancelledAt sql.NullString
	if err := scan(&r.ID, &r.SlotID, &r.Date, &r.MemberID, &r.Status, &createdAt, &cancelledAt); err != nil {
		return domain.Reservation{}, err
	}
	r.CreatedAt, _ = storage.ParseTime(createdAt)
	r.CancelledAt = storage.ParseNullTime(cancelledAt)
	return r, nil
}
