package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"gymportal/internal/domain/member"
	"gymportal/internal/domain/qrcode"

	"github.com/google/uuid"
)

// TokenIssuer issues the opaque token encoded into a QR code.
type TokenIssuer interface {
	Issue(category string) (string, error)
}

// UUIDTokenIssuer issues random 32-hex-digit tokens.
type UUIDTokenIssuer struct{}

// Issue implements TokenIssuer.
func (UUIDTokenIssuer) Issue(string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(id.String(), "-", ""), nil
}

// QRCodeStore defines the store interface needed by QR code orchestrators.
type QRCodeStore interface {
	GetByID(ctx context.Context, id string) (qrcode.Code, error)
	GetByToken(ctx context.Context, token string) (qrcode.Code, error)
	Save(ctx context.Context, c qrcode.Code) error
	ListByMember(ctx context.Context, memberID string) ([]qrcode.Code, error)
}

// GenerateQRCodeInput carries input for the orchestrator.
type GenerateQRCodeInput struct {
	MemberID string
	Category string
	Label    string
}

// GenerateQRCodeDeps holds dependencies for GenerateQRCode.
type GenerateQRCodeDeps struct {
	CodeStore   QRCodeStore
	MemberStore MemberStoreForBooking
	Issuer      TokenIssuer
	Location    *time.Location
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteGenerateQRCode issues a new code of the requested category.
// Generating an entry code revokes the member's previous active entry code.
// PRE: MemberID non-empty; Category is valid
// POST: New active code persisted
// INVARIANT: at most one active entry code and qrcode.MaxActiveGuest active guest codes per member
func ExecuteGenerateQRCode(ctx context.Context, input GenerateQRCodeInput, deps GenerateQRCodeDeps) (qrcode.Code, error) {
	if !qrcode.IsValidCategory(input.Category) {
		return qrcode.Code{}, qrcode.ErrInvalidCategory
	}
	label := strings.TrimSpace(input.Label)
	if len(label) > qrcode.MaxLabelLength {
		return qrcode.Code{}, qrcode.ErrLabelTooLong
	}

	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return qrcode.Code{}, err
	}
	if !m.IsActive() {
		return qrcode.Code{}, member.ErrSuspended
	}

	now := deps.Now()
	existing, err := deps.CodeStore.ListByMember(ctx, m.ID)
	if err != nil {
		return qrcode.Code{}, err
	}

	var supersede []qrcode.Code
	activeGuests := 0
	for _, c := range existing {
		if c.Category != input.Category || !c.IsActive(now) {
			continue
		}
		switch c.Category {
		case qrcode.CategoryEntry:
			supersede = append(supersede, c)
		case qrcode.CategoryGuest:
			activeGuests++
		}
	}
	if input.Category == qrcode.CategoryGuest && activeGuests >= qrcode.MaxActiveGuest {
		return qrcode.Code{}, qrcode.ErrGuestLimit
	}

	token, err := deps.Issuer.Issue(input.Category)
	if err != nil {
		return qrcode.Code{}, err
	}
	code := qrcode.Code{
		ID:        deps.GenerateID(),
		MemberID:  m.ID,
		Category:  input.Category,
		Token:     token,
		Label:     label,
		CreatedAt: now,
		ExpiresAt: qrcode.ExpiryFor(input.Category, now, deps.Location),
	}
	if err := code.Validate(); err != nil {
		return qrcode.Code{}, err
	}

	for _, old := range supersede {
		if err := old.Revoke(now); err != nil {
			continue
		}
		if err := deps.CodeStore.Save(ctx, old); err != nil {
			return qrcode.Code{}, err
		}
		slog.Info("qr_event", "event", "code_superseded", "code_id", old.ID, "member_id", m.ID)
	}
	if err := deps.CodeStore.Save(ctx, code); err != nil {
		return qrcode.Code{}, err
	}

	slog.Info("qr_event", "event", "code_generated", "code_id", code.ID, "member_id", m.ID, "category", code.Category)
	return code, nil
}

// RevokeQRCodeInput carries input for the orchestrator.
type RevokeQRCodeInput struct {
	CodeID   string
	MemberID string
}

// RevokeQRCodeDeps holds dependencies for RevokeQRCode.
type RevokeQRCodeDeps struct {
	CodeStore QRCodeStore
	Now       func() time.Time
}

// ExecuteRevokeQRCode disables a code. Only its owner may revoke it.
// PRE: CodeID non-empty
// POST: RevokedAt set; a second revoke returns qrcode.ErrAlreadyRevoked
func ExecuteRevokeQRCode(ctx context.Context, input RevokeQRCodeInput, deps RevokeQRCodeDeps) (qrcode.Code, error) {
	c, err := deps.CodeStore.GetByID(ctx, input.CodeID)
	if err != nil {
		return qrcode.Code{}, err
	}
	if c.MemberID != input.MemberID {
		return qrcode.Code{}, qrcode.ErrNotOwner
	}
	if err := c.Revoke(deps.Now()); err != nil {
		return qrcode.Code{}, err
	}
	if err := deps.CodeStore.Save(ctx, c); err != nil {
		return qrcode.Code{}, err
	}
	slog.Info("qr_event", "event", "code_revoked", "code_id", c.ID, "member_id", c.MemberID)
	return c, nil
}
