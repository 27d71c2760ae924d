package booking

import (
	"errors"
	"time"
)

// Status constants
const (
	StatusConfirmed  = "confirmed"
	StatusWaitlisted = "waitlisted"
	StatusCancelled  = "cancelled"
)

// WaitlistLimit is the maximum number of waitlisted bookings per lesson.
const WaitlistLimit = 5

// Domain errors
var (
	ErrEmptyLessonID    = errors.New("booking must reference a lesson")
	ErrEmptyMemberID    = errors.New("booking must belong to a member")
	ErrInvalidStatus    = errors.New("status must be confirmed, waitlisted or cancelled")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrAlreadyBooked    = errors.New("you already have a booking for this lesson")
	ErrLessonFull       = errors.New("lesson and waitlist are full")
	ErrLessonStarted    = errors.New("lesson has already started")
	ErrCutoffPassed     = errors.New("bookings can no longer be cancelled for this lesson")
	ErrNotOwner         = errors.New("booking belongs to another member")
	ErrNotFound         = errors.New("booking not found")
	ErrNotWaitlisted    = errors.New("only waitlisted bookings can be promoted")
)

// Booking is a member's place on a lesson.
type Booking struct {
	ID          string
	LessonID    string
	MemberID    string
	Status      string
	CreatedAt   time.Time
	CancelledAt time.Time
	RemindedAt  time.Time
}

// Validate checks if the Booking has valid data.
// PRE: Booking struct is populated
// POST: Returns nil if valid, error otherwise
func (b *Booking) Validate() error {
	if b.LessonID == "" {
		return ErrEmptyLessonID
	}
	if b.MemberID == "" {
		return ErrEmptyMemberID
	}
	switch b.Status {
	case StatusConfirmed, StatusWaitlisted, StatusCancelled:
	default:
		return ErrInvalidStatus
	}
	if b.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}
	return nil
}

// IsActive returns true if the booking still holds a place or a waitlist slot.
// INVARIANT: Booking fields are not mutated
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed || b.Status == StatusWaitlisted
}

// Cancel releases the booking.
// A confirmed booking may only be cancelled before lessonStart minus cutoff;
// a waitlisted booking may be cancelled any time before the lesson starts.
// PRE: booking is active
// POST: Status is cancelled, CancelledAt is now
func (b *Booking) Cancel(now, lessonStart time.Time, cutoff time.Duration) error {
	if b.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if !now.Before(lessonStart) {
		return ErrLessonStarted
	}
	if b.Status == StatusConfirmed && now.After(lessonStart.Add(-cutoff)) {
		return ErrCutoffPassed
	}
	b.Status = StatusCancelled
	b.CancelledAt = now
	return nil
}

// Promote moves a waitlisted booking onto the lesson.
// PRE: Status is waitlisted
// POST: Status is confirmed
func (b *Booking) Promote() error {
	if b.Status != StatusWaitlisted {
		return ErrNotWaitlisted
	}
	b.Status = StatusConfirmed
	return nil
}

// NeedsReminder reports whether a reminder email should still be sent.
// INVARIANT: Booking fields are not mutated
func (b *Booking) NeedsReminder() bool {
	return b.Status == StatusConfirmed && b.RemindedAt.IsZero()
}

// Counts tallies confirmed and waitlisted bookings.
func Counts(bookings []Booking) (confirmed, waitlisted int) {
	for _, b := range bookings {
		switch b.Status {
		case StatusConfirmed:
			confirmed++
		case StatusWaitlisted:
			waitlisted++
		}
	}
	return confirmed, waitlisted
}

// NextInWaitlist returns the oldest waitlisted booking, or nil if the waitlist is empty.
func NextInWaitlist(bookings []Booking) *Booking {
	var next *Booking
	for i := range bookings {
		b := &bookings[i]
		if b.Status != StatusWaitlisted {
			continue
		}
		if next == nil || b.CreatedAt.Before(next.CreatedAt) {
			next = b
		}
	}
	return next
}
