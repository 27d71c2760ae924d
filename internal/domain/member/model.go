package member

import (
	"errors"
	"strings"
)

// MaxNameLength bounds the display name.
const MaxNameLength = 100

// Status constants
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// Domain errors
var (
	ErrEmptyName        = errors.New("member name cannot be empty")
	ErrNameTooLong      = errors.New("member name cannot exceed 100 characters")
	ErrInvalidEmail     = errors.New("member email must be valid")
	ErrInvalidStatus    = errors.New("status must be 'active' or 'suspended'")
	ErrEmptyAccountID   = errors.New("member must be linked to an account")
	ErrNotFound         = errors.New("member not found")
	ErrSuspended        = errors.New("membership is suspended")
	ErrAlreadySuspended = errors.New("member is already suspended")
	ErrNotSuspended     = errors.New("member is not suspended")
)

// Member is the gym profile behind a member account.
type Member struct {
	ID        string
	AccountID string
	Name      string
	Email     string
	Status    string
}

// Validate checks if the Member has valid data.
// PRE: Member struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Email must contain '@', Name must not be empty
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if len(m.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if !strings.Contains(m.Email, "@") {
		return ErrInvalidEmail
	}
	if m.AccountID == "" {
		return ErrEmptyAccountID
	}
	if m.Status != StatusActive && m.Status != StatusSuspended {
		return ErrInvalidStatus
	}
	return nil
}

// IsActive returns true if the member may book and check in.
func (m *Member) IsActive() bool {
	return m.Status == StatusActive
}

// FirstName returns the first word of the name for greetings.
func (m *Member) FirstName() string {
	if f := strings.Fields(m.Name); len(f) > 0 {
		return f[0]
	}
	return ""
}

// Suspend blocks bookings and entry.
// PRE: Member is active
// POST: Status is suspended
func (m *Member) Suspend() error {
	if m.Status == StatusSuspended {
		return ErrAlreadySuspended
	}
	m.Status = StatusSuspended
	return nil
}

// Reinstate lifts a suspension.
// PRE: Member is suspended
// POST: Status is active
func (m *Member) Reinstate() error {
	if m.Status != StatusSuspended {
		return ErrNotSuspended
	}
	m.Status = StatusActive
	return nil
}
