package lesson

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Category constants
const (
	CategoryGroup      = "group"
	CategoryFunctional = "functional"
	CategoryYoga       = "yoga"
	CategorySpinning   = "spinning"
	CategoryBoxing     = "boxing"
)

// ValidCategories contains all valid category values.
var ValidCategories = []string{CategoryGroup, CategoryFunctional, CategoryYoga, CategorySpinning, CategoryBoxing}

// Availability constants describe a lesson from one member's point of view.
const (
	AvailabilityPast       = "past"
	AvailabilityBooked     = "booked"
	AvailabilityWaitlisted = "waitlisted"
	AvailabilityFull       = "full"
	AvailabilityFewSpots   = "few_spots"
	AvailabilityAvailable  = "available"
)

// FewSpotsThreshold is the number of remaining spots at or below which a lesson is flagged.
const FewSpotsThreshold = 3

// Max length constants for admin-editable fields.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 1000
	MaxCapacity          = 200
)

// Domain errors
var (
	ErrEmptyTitle      = errors.New("lesson title cannot be empty")
	ErrTitleTooLong    = errors.New("lesson title cannot exceed 100 characters")
	ErrInvalidCategory = errors.New("category must be one of: group, functional, yoga, spinning, boxing")
	ErrInvalidDate     = errors.New("lesson date must be in YYYY-MM-DD format")
	ErrInvalidTime     = errors.New("lesson times must be in HH:MM format")
	ErrEndBeforeStart  = errors.New("lesson must end after it starts")
	ErrInvalidCapacity = errors.New("capacity must be between 1 and 200")
	ErrNotFound        = errors.New("lesson not found")
)

// Lesson is a single dated class that members can book.
type Lesson struct {
	ID          string
	Title       string
	Category    string
	Instructor  string
	Room        string
	Description string
	Date        string // YYYY-MM-DD
	StartTime   string // HH:MM
	EndTime     string // HH:MM
	Capacity    int
}

// Validate checks if the Lesson has valid data.
// PRE: Lesson struct is populated
// POST: Returns nil if valid, error otherwise
func (l *Lesson) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return ErrEmptyTitle
	}
	if len(l.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if len(l.Description) > MaxDescriptionLength {
		return errors.New("lesson description cannot exceed 1000 characters")
	}
	if !isValidCategory(l.Category) {
		return ErrInvalidCategory
	}
	if _, err := time.Parse("2006-01-02", l.Date); err != nil {
		return ErrInvalidDate
	}
	start, err := time.Parse("15:04", l.StartTime)
	if err != nil {
		return ErrInvalidTime
	}
	end, err := time.Parse("15:04", l.EndTime)
	if err != nil {
		return ErrInvalidTime
	}
	if !end.After(start) {
		return ErrEndBeforeStart
	}
	if l.Capacity < 1 || l.Capacity > MaxCapacity {
		return ErrInvalidCapacity
	}
	return nil
}

// StartsAt returns the lesson start as an instant in the gym's location.
// PRE: Date and StartTime are well-formed
func (l *Lesson) StartsAt(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", l.Date+" "+l.StartTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid lesson start %q %q: %w", l.Date, l.StartTime, err)
	}
	return t, nil
}

// HasStarted reports whether the lesson has started at now.
// Lessons with unparseable times are treated as started so they cannot be booked.
func (l *Lesson) HasStarted(now time.Time, loc *time.Location) bool {
	start, err := l.StartsAt(loc)
	if err != nil {
		return true
	}
	return !now.Before(start)
}

// DurationMinutes returns the lesson length in minutes, or 0 if the times are invalid.
func (l *Lesson) DurationMinutes() int {
	start, err := time.Parse("15:04", l.StartTime)
	if err != nil {
		return 0
	}
	end, err := time.Parse("15:04", l.EndTime)
	if err != nil {
		return 0
	}
	return int(end.Sub(start).Minutes())
}

// SpotsLeft returns how many confirmed places remain.
// POST: result >= 0
func (l *Lesson) SpotsLeft(confirmed int) int {
	left := l.Capacity - confirmed
	if left < 0 {
		return 0
	}
	return left
}

// MemberBooking summarises the member's own booking on a lesson.
type MemberBooking int

const (
	NotBooked MemberBooking = iota
	HoldsConfirmed
	HoldsWaitlisted
)

// Availability derives the display status of a lesson for one member.
// Order of precedence: past, booked, waitlisted, full, few spots, available.
func (l *Lesson) Availability(now time.Time, loc *time.Location, confirmed int, mine MemberBooking) string {
	if l.HasStarted(now, loc) {
		return AvailabilityPast
	}
	switch mine {
	case HoldsConfirmed:
		return AvailabilityBooked
	case HoldsWaitlisted:
		return AvailabilityWaitlisted
	}
	left := l.SpotsLeft(confirmed)
	if left == 0 {
		return AvailabilityFull
	}
	if left <= FewSpotsThreshold {
		return AvailabilityFewSpots
	}
	return AvailabilityAvailable
}

func isValidCategory(c string) bool {
	for _, v := range ValidCategories {
		if v == c {
			return true
		}
	}
	return false
}
