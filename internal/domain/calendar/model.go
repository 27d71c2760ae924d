package calendar

import (
	"errors"
	"time"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// MonthLayout is the format of the ?month= query parameter.
const MonthLayout = "2006-01"

// Domain errors
var (
	ErrInvalidDate  = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidMonth = errors.New("month must be in YYYY-MM format")
)

// Day is a single cell of a month grid.
type Day struct {
	Date       time.Time
	InMonth    bool // false for leading/trailing days borrowed from neighbouring months
	IsToday    bool
	IsSelected bool
	IsPast     bool
	Count      int // number of lessons on this date
}

// Key returns the day's date in DateLayout.
func (d Day) Key() string {
	return d.Date.Format(DateLayout)
}

// Month is a rendered month grid made of complete weeks.
// INVARIANT: every week holds exactly 7 days; the grid holds 4..6 weeks.
type Month struct {
	Year  int
	Month time.Month
	Weeks [][]Day
	Prev  time.Time // first day of the previous month
	Next  time.Time // first day of the next month
}

// Key returns the month in MonthLayout.
func (m Month) Key() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format(MonthLayout)
}

// BuildMonth lays out the given month as complete weeks starting on firstWeekday.
// counts maps DateLayout keys to the number of lessons on that date.
// PRE: month is 1..12
// POST: returns a grid whose first cell is on firstWeekday and whose last cell is the day before it
func BuildMonth(year int, month time.Month, firstWeekday time.Weekday, today, selected time.Time, counts map[string]int) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -leadingDays(first.Weekday(), firstWeekday))
	end := last.AddDate(0, 0, 6-leadingDays(last.Weekday(), firstWeekday))

	todayKey := DateOnly(today).Format(DateLayout)
	selectedKey := ""
	if !selected.IsZero() {
		selectedKey = DateOnly(selected).Format(DateLayout)
	}
	todayDate := DateOnly(today)

	var weeks [][]Day
	for d := start; !d.After(end); d = d.AddDate(0, 0, 7) {
		week := make([]Day, 7)
		for i := range week {
			date := d.AddDate(0, 0, i)
			key := date.Format(DateLayout)
			week[i] = Day{
				Date:       date,
				InMonth:    date.Month() == month,
				IsToday:    key == todayKey,
				IsSelected: key == selectedKey,
				IsPast:     date.Before(todayDate),
				Count:      counts[key],
			}
		}
		weeks = append(weeks, week)
	}

	return Month{
		Year:  year,
		Month: month,
		Weeks: weeks,
		Prev:  first.AddDate(0, -1, 0),
		Next:  first.AddDate(0, 1, 0),
	}
}

// WeekStart returns the first day of the week containing t.
// PRE: none
// POST: result is a date (midnight UTC) falling on firstWeekday, at most 6 days before t
func WeekStart(t time.Time, firstWeekday time.Weekday) time.Time {
	d := DateOnly(t)
	return d.AddDate(0, 0, -leadingDays(d.Weekday(), firstWeekday))
}

// WeekDays returns the 7 consecutive dates starting at start.
func WeekDays(start time.Time) []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// DateOnly strips the clock from t and returns midnight UTC of the same calendar day.
// The calendar day is read in t's own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ParseMonth parses a YYYY-MM string into the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidMonth
	}
	return t, nil
}

// MonthRange returns the first and last date keys of the month containing t.
func MonthRange(t time.Time) (string, string) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(DateLayout), last.Format(DateLayout)
}

// leadingDays is how many days separate weekday wd from the start of its week.
func leadingDays(wd, firstWeekday time.Weekday) int {
	return (int(wd) - int(firstWeekday) + 7) % 7
}
