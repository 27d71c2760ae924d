package qrcode

import (
	"context"

	domain "gymportal/internal/domain/qrcode"
)

// Store persists member QR codes.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Code, error)
	GetByToken(ctx context.Context, token string) (domain.Code, error)
	Save(ctx context.Context, value domain.Code) error
	ListByMember(ctx context.Context, memberID string) ([]domain.Code, error)
}
