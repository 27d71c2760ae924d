package attendance

import (
	"errors"
	"time"
)

// Entry methods
const (
	MethodQR     = "qr"
	MethodManual = "manual"
)

// Domain errors
var (
	ErrEmptyMemberID  = errors.New("attendance must be associated with a member")
	ErrNoCheckInTime  = errors.New("check-in time must be set")
	ErrInvalidMethod  = errors.New("method must be 'qr' or 'manual'")
	ErrMissingCode    = errors.New("qr check-ins must reference a code")
	ErrAlreadyInToday = errors.New("member already checked in today")
)

// Attendance records one entry to the gym.
type Attendance struct {
	ID          string
	MemberID    string
	CheckInTime time.Time
	Date        string // YYYY-MM-DD in gym time
	Method      string
	CodeID      string // set for qr entries
	Category    string // qr category used, empty for manual
	Guest       bool   // entry on a guest pass
	ScannedBy   string // staff account ID
}

// Validate checks if the Attendance has valid data.
// PRE: Attendance struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: MemberID must not be empty, CheckInTime must be set
func (a *Attendance) Validate() error {
	if a.MemberID == "" {
		return ErrEmptyMemberID
	}
	if a.CheckInTime.IsZero() {
		return ErrNoCheckInTime
	}
	switch a.Method {
	case MethodQR:
		if a.CodeID == "" {
			return ErrMissingCode
		}
	case MethodManual:
	default:
		return ErrInvalidMethod
	}
	return nil
}
