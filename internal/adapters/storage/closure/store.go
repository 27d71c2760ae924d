package closure

import (
	"context"

	domain "gymportal/internal/domain/closure"
)

// Store persists Closure state.
type Store interface {
	Save(ctx context.Context, value domain.Closure) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Closure, error)
	ListOverlapping(ctx context.Context, from, to string) ([]domain.Closure, error)
}
