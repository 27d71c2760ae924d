package pilates

import (
	"context"

	domain "gymportal/internal/domain/pilates"
)

// Store persists the pilates timetable and reservations.
type Store interface {
	GetSlot(ctx context.Context, id string) (domain.Slot, error)
	SaveSlot(ctx context.Context, value domain.Slot) error
	DeleteSlot(ctx context.Context, id string) error
	ListSlots(ctx context.Context) ([]domain.Slot, error)

	GetReservation(ctx context.Context, id string) (domain.Reservation, error)
	SaveReservation(ctx context.Context, value domain.Reservation) error
	ListReservationsByOccurrence(ctx context.Context, slotID, date string) ([]domain.Reservation, error)
	ListReservationsByDateRange(ctx context.Context, from, to string) ([]domain.Reservation, error)
}
