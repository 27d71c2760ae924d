package pilates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Day of week constants
const (
	Monday    = "monday"
	Tuesday   = "tuesday"
	Wednesday = "wednesday"
	Thursday  = "thursday"
	Friday    = "friday"
	Saturday  = "saturday"
	Sunday    = "sunday"
)

// ValidDays contains all valid day values, in grid order.
var ValidDays = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Level constants
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelAll          = "all"
)

// Reservation status constants
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Cell state constants, as seen by one member.
const (
	CellClosed    = "closed"
	CellPast      = "past"
	CellBooked    = "booked"
	CellFull      = "full"
	CellFewSpots  = "few_spots"
	CellAvailable = "available"
)

// FewSpotsThreshold is the number of remaining reformers at or below which a slot is flagged.
const FewSpotsThreshold = 2

// Domain errors
var (
	ErrInvalidDay          = errors.New("day must be a valid day of the week")
	ErrInvalidTime         = errors.New("slot times must be in HH:MM format")
	ErrEndBeforeStart      = errors.New("slot must end after it starts")
	ErrEmptyInstructor     = errors.New("instructor cannot be empty")
	ErrInvalidLevel        = errors.New("level must be beginner, intermediate, advanced or all")
	ErrInvalidCapacity     = errors.New("capacity must be between 1 and 30")
	ErrWrongWeekday        = errors.New("date does not fall on the slot's day")
	ErrSlotStarted         = errors.New("this session has already started")
	ErrSlotFull            = errors.New("this session is full")
	ErrStudioClosed        = errors.New("the studio is closed on this date")
	ErrAlreadyReserved     = errors.New("you already have a place in this session")
	ErrAlreadyCancelled    = errors.New("reservation is already cancelled")
	ErrCutoffPassed        = errors.New("reservation can no longer be cancelled")
	ErrNotOwner            = errors.New("reservation belongs to another member")
	ErrSlotNotFound        = errors.New("pilates slot not found")
	ErrReservationNotFound = errors.New("reservation not found")
)

// Slot is a recurring weekly pilates session.
type Slot struct {
	ID         string
	Day        string // monday, tuesday, etc.
	StartTime  string // HH:MM format
	EndTime    string // HH:MM format
	Instructor string
	Level      string
	Capacity   int // reformers in the room
}

// Validate checks if the Slot has valid data.
// PRE: Slot struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Slot) Validate() error {
	if !isValidDay(s.Day) {
		return ErrInvalidDay
	}
	start, err := time.Parse("15:04", s.StartTime)
	if err != nil {
		return ErrInvalidTime
	}
	end, err := time.Parse("15:04", s.EndTime)
	if err != nil {
		return ErrInvalidTime
	}
	if !end.After(start) {
		return ErrEndBeforeStart
	}
	if strings.TrimSpace(s.Instructor) == "" {
		return ErrEmptyInstructor
	}
	switch s.Level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelAll:
	default:
		return ErrInvalidLevel
	}
	if s.Capacity < 1 || s.Capacity > 30 {
		return ErrInvalidCapacity
	}
	return nil
}

// Weekday returns the slot's day as a time.Weekday.
func (s *Slot) Weekday() time.Weekday {
	for i := time.Sunday; i <= time.Saturday; i++ {
		if strings.ToLower(i.String()) == s.Day {
			return i
		}
	}
	return -1
}

// FallsOn reports whether the calendar date matches the slot's weekday.
func (s *Slot) FallsOn(date time.Time) bool {
	return date.Weekday() == s.Weekday()
}

// StartsAt returns the instant the occurrence on date begins, in loc.
// PRE: StartTime is HH:MM
func (s *Slot) StartsAt(date time.Time, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", s.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time %q: %w", s.StartTime, err)
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc), nil
}

// DurationMinutes returns the session length in minutes, or 0 if the times are invalid.
func (s *Slot) DurationMinutes() int {
	start, err := time.Parse("15:04", s.StartTime)
	if err != nil {
		return 0
	}
	end, err := time.Parse("15:04", s.EndTime)
	if err != nil {
		return 0
	}
	return int(end.Sub(start).Minutes())
}

// CellState derives how one occurrence of the slot is displayed to a member.
// Order of precedence: closed, past, booked, full, few spots, available.
func (s *Slot) CellState(start, now time.Time, closed bool, booked int, mine bool) string {
	if closed {
		return CellClosed
	}
	if !now.Before(start) {
		return CellPast
	}
	if mine {
		return CellBooked
	}
	left := s.Capacity - booked
	if left <= 0 {
		return CellFull
	}
	if left <= FewSpotsThreshold {
		return CellFewSpots
	}
	return CellAvailable
}

// Reservation is a member's place in one dated occurrence of a slot.
type Reservation struct {
	ID          string
	SlotID      string
	Date        string // YYYY-MM-DD of the occurrence
	MemberID    string
	Status      string
	CreatedAt   time.Time
	CancelledAt time.Time
}

// Validate checks if the Reservation has valid data.
// PRE: Reservation struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Reservation) Validate() error {
	if r.SlotID == "" {
		return errors.New("reservation must reference a slot")
	}
	if r.MemberID == "" {
		return errors.New("reservation must belong to a member")
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return errors.New("reservation date must be in YYYY-MM-DD format")
	}
	if r.Status != StatusConfirmed && r.Status != StatusCancelled {
		return errors.New("status must be confirmed or cancelled")
	}
	return nil
}

// IsActive returns true if the reservation holds a reformer.
func (r *Reservation) IsActive() bool {
	return r.Status == StatusConfirmed
}

// Cancel releases the reformer.
// PRE: reservation is confirmed
// POST: Status is cancelled, CancelledAt is now
func (r *Reservation) Cancel(now, start time.Time, cutoff time.Duration) error {
	if r.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if now.After(start.Add(-cutoff)) {
		return ErrCutoffPassed
	}
	r.Status = StatusCancelled
	r.CancelledAt = now
	return nil
}

func isValidDay(day string) bool {
	for _, d := range ValidDays {
		if d == day {
			return true
		}
	}
	return false
}
