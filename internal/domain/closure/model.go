package closure

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyName      = errors.New("closure name cannot be empty")
	ErrInvalidDates   = errors.New("start date must be before or equal to end date")
	ErrEmptyStartDate = errors.New("start date cannot be zero")
	ErrEmptyEndDate   = errors.New("end date cannot be zero")
)

// Closure is a day (or range) when the studio is shut and no sessions run.
type Closure struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// Validate checks if the Closure has valid data.
// PRE: Closure struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Closure) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if c.StartDate.IsZero() {
		return ErrEmptyStartDate
	}
	if c.EndDate.IsZero() {
		return ErrEmptyEndDate
	}
	if c.StartDate.After(c.EndDate) {
		return ErrInvalidDates
	}
	return nil
}

// Contains returns true if the calendar date of t falls within this closure, inclusive.
// INVARIANT: Closure fields are not mutated
func (c *Closure) Contains(t time.Time) bool {
	d := t.Format("2006-01-02")
	return d >= c.StartDate.Format("2006-01-02") && d <= c.EndDate.Format("2006-01-02")
}

// AnyContains reports whether any closure covers the date of t.
func AnyContains(closures []Closure, t time.Time) bool {
	for i := range closures {
		if closures[i].Contains(t) {
			return true
		}
	}
	return false
}
