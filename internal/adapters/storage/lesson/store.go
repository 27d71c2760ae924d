package lesson

import (
	"context"

	domain "gymportal/internal/domain/lesson"
)

// Store persists Lesson state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Lesson, error)
	Save(ctx context.Context, value domain.Lesson) error
	Delete(ctx context.Context, id string) error
	ListByDate(ctx context.Context, date string) ([]domain.Lesson, error)
	ListByDateRange(ctx context.Context, from, to string) ([]domain.Lesson, error)
	CountByDate(ctx context.Context, from, to string) (map[string]int, error)
}
