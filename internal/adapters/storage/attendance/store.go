package attendance

import (
	"context"

	domain "gymportal/internal/domain/attendance"
)

// Store persists Attendance state.
type Store interface {
	Save(ctx context.Context, value domain.Attendance) error
	ListByDate(ctx context.Context, date string) ([]domain.Attendance, error)
	CountByMemberAndDate(ctx context.Context, memberID, date string, guest bool) (int, error)
}
