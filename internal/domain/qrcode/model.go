package qrcode

import (
	"errors"
	"strings"
	"time"
)

// Category constants
const (
	CategoryEntry  = "entry"  // membership check-in
	CategoryGuest  = "guest"  // guest day pass
	CategoryLocker = "locker" // locker access for the day
)

// ValidCategories contains all valid category values, in page order.
var ValidCategories = []string{CategoryEntry, CategoryGuest, CategoryLocker}

// State constants
const (
	StateActive  = "active"
	StateExpired = "expired"
	StateRevoked = "revoked"
	StateUsed    = "used"
)

// PayloadPrefix starts every encoded QR payload.
const PayloadPrefix = "GYM1"

// Limits
const (
	GuestPassValidity = 24 * time.Hour
	MaxActiveGuest    = 3
	MaxLabelLength    = 60
)

// Domain errors
var (
	ErrInvalidCategory = errors.New("category must be entry, guest or locker")
	ErrEmptyMemberID   = errors.New("code must belong to a member")
	ErrEmptyToken      = errors.New("code token cannot be empty")
	ErrLabelTooLong    = errors.New("label cannot exceed 60 characters")
	ErrAlreadyRevoked  = errors.New("code is already revoked")
	ErrNotActive       = errors.New("code is not active")
	ErrGuestLimit      = errors.New("you already have the maximum number of active guest passes")
	ErrMalformed       = errors.New("not a gym QR code")
	ErrNotFound        = errors.New("code not found")
	ErrNotOwner        = errors.New("code belongs to another member")
)

// Code is a QR code issued to a member.
type Code struct {
	ID        string
	MemberID  string
	Category  string
	Token     string // opaque, issued by a TokenIssuer
	Label     string
	CreatedAt time.Time
	ExpiresAt time.Time // zero means never
	RevokedAt time.Time
	UsedAt    time.Time
}

// Validate checks if the Code has valid data.
// PRE: Code struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Code) Validate() error {
	if c.MemberID == "" {
		return ErrEmptyMemberID
	}
	if !IsValidCategory(c.Category) {
		return ErrInvalidCategory
	}
	if strings.TrimSpace(c.Token) == "" {
		return ErrEmptyToken
	}
	if len(c.Label) > MaxLabelLength {
		return ErrLabelTooLong
	}
	if c.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}
	return nil
}

// ExpiryFor returns when a new code of the given category expires, or zero for never.
// Locker codes run to the end of the creation day in loc.
func ExpiryFor(category string, now time.Time, loc *time.Location) time.Time {
	switch category {
	case CategoryGuest:
		return now.Add(GuestPassValidity)
	case CategoryLocker:
		local := now.In(loc)
		y, m, d := local.Date()
		return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	}
	return time.Time{}
}

// State derives the display state of the code at now.
// Order of precedence: revoked, used, expired, active.
func (c *Code) State(now time.Time) string {
	if !c.RevokedAt.IsZero() {
		return StateRevoked
	}
	if !c.UsedAt.IsZero() {
		return StateUsed
	}
	if !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt) {
		return StateExpired
	}
	return StateActive
}

// IsActive reports whether the code can still be scanned.
func (c *Code) IsActive(now time.Time) bool {
	return c.State(now) == StateActive
}

// Revoke disables the code.
// PRE: code is not revoked
// POST: RevokedAt is now
func (c *Code) Revoke(now time.Time) error {
	if !c.RevokedAt.IsZero() {
		return ErrAlreadyRevoked
	}
	c.RevokedAt = now
	return nil
}

// MarkScanned records a successful scan. Guest passes are single use.
// PRE: code is active
// POST: UsedAt is set for guest passes
func (c *Code) MarkScanned(now time.Time) error {
	if !c.IsActive(now) {
		return ErrNotActive
	}
	if c.Category == CategoryGuest {
		c.UsedAt = now
	}
	return nil
}

// Payload returns the string encoded into the QR image.
func (c *Code) Payload() string {
	return PayloadPrefix + ":" + c.Category + ":" + c.Token
}

// ParsePayload splits a scanned payload into category and token.
func ParsePayload(payload string) (category, token string, err error) {
	parts := strings.SplitN(strings.TrimSpace(payload), ":", 3)
	if len(parts) != 3 || parts[0] != PayloadPrefix {
		return "", "", ErrMalformed
	}
	if !IsValidCategory(parts[1]) || parts[2] == "" {
		return "", "", ErrMalformed
	}
	return parts[1], parts[2], nil
}

// Filename returns the download filename for the code's PNG image,
// dated by the creation day in loc (the gym's timezone).
func (c *Code) Filename(loc *time.Location) string {
	created := c.CreatedAt
	if loc != nil {
		created = created.In(loc)
	}
	return "gym-" + c.Category + "-" + created.Format("20060102") + ".png"
}

// IsValidCategory reports whether category is known.
func IsValidCategory(category string) bool {
	for _, v := range ValidCategories {
		if v == category {
			return true
		}
	}
	return false
}
