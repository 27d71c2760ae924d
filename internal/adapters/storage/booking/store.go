package booking

import (
	"context"
	"time"

	domain "gymportal/internal/domain/booking"
)

// Store persists Booking state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Booking, error)
	Save(ctx context.Context, value domain.Booking) error
	ListByLesson(ctx context.Context, lessonID string) ([]domain.Booking, error)
	ListActiveByLessons(ctx context.Context, lessonIDs []string) ([]domain.Booking, error)
	ListByMember(ctx context.Context, memberID string) ([]domain.Booking, error)
	ListDueReminders(ctx context.Context, fromDate, toDate string) ([]domain.Booking, error)
	MarkReminded(ctx context.Context, id string, at time.Time) (bool, error)
}
