package projections

import (
	"context"
	"sort"
	"time"

	domainBooking "gymportal/internal/domain/booking"
	"gymportal/internal/domain/calendar"
	domainLesson "gymportal/internal/domain/lesson"
)

// BookingCalendarQuery carries query parameters.
type BookingCalendarQuery struct {
	MemberID string
	Month    string // YYYY-MM, optional
	Date     string // YYYY-MM-DD, optional
}

// LessonView is one lesson as seen by the member.
type LessonView struct {
	Lesson      domainLesson.Lesson
	Start       time.Time
	Confirmed   int
	Waitlisted  int
	SpotsLeft   int
	Status      string // lesson.Availability*
	MyBookingID string
	CanBook     bool
	CanCancel   bool
}

// BookingCalendarResult carries the month grid and the selected day's lessons.
type BookingCalendarResult struct {
	Month    calendar.Month
	Selected time.Time
	Lessons  []LessonView
}

// BookingCalendarDeps holds dependencies for BookingCalendar.
type BookingCalendarDeps struct {
	LessonStore  LessonStore
	BookingStore BookingStore
	Location     *time.Location
	FirstWeekday time.Weekday
	Cutoff       time.Duration
	Now          func() time.Time
}

// QueryBookingCalendar builds the month grid and the lesson list for the selected day.
// Without a date the selection is today when it lies in the month, otherwise the month's first day.
// PRE: Month and Date, when set, are well-formed
// POST: Lessons are sorted by start time and carry the member's availability status
func QueryBookingCalendar(ctx context.Context, query BookingCalendarQuery, deps BookingCalendarDeps) (BookingCalendarResult, error) {
	now := deps.Now().In(deps.Location)
	today := calendar.DateOnly(now)

	selected, err := resolveSelection(query, today)
	if err != nil {
		return BookingCalendarResult{}, err
	}

	gridStart := calendar.WeekStart(time.Date(selected.Year(), selected.Month(), 1, 0, 0, 0, 0, time.UTC), deps.FirstWeekday)
	counts, err := deps.LessonStore.CountByDate(ctx, gridStart.Format(calendar.DateLayout), gridStart.AddDate(0, 0, 41).Format(calendar.DateLayout))
	if err != nil {
		return BookingCalendarResult{}, err
	}
	month := calendar.BuildMonth(selected.Year(), selected.Month(), deps.FirstWeekday, now, selected, counts)

	lessons, err := deps.LessonStore.ListByDate(ctx, selected.Format(calendar.DateLayout))
	if err != nil {
		return BookingCalendarResult{}, err
	}
	views, err := lessonViews(ctx, lessons, query.MemberID, now, deps)
	if err != nil {
		return BookingCalendarResult{}, err
	}

	return BookingCalendarResult{Month: month, Selected: selected, Lessons: views}, nil
}

func resolveSelection(query BookingCalendarQuery, today time.Time) (time.Time, error) {
	if query.Date != "" {
		return calendar.ParseDate(query.Date)
	}
	if query.Month == "" {
		return today, nil
	}
	first, err := calendar.ParseMonth(query.Month)
	if err != nil {
		return time.Time{}, err
	}
	if today.Year() == first.Year() && today.Month() == first.Month() {
		return today, nil
	}
	return first, nil
}

func lessonViews(ctx context.Context, lessons []domainLesson.Lesson, memberID string, now time.Time, deps BookingCalendarDeps) ([]LessonView, error) {
	if len(lessons) == 0 {
		return []LessonView{}, nil
	}
	ids := make([]string, len(lessons))
	for i, l := range lessons {
		ids[i] = l.ID
	}
	bookings, err := deps.BookingStore.ListActiveByLessons(ctx, ids)
	if err != nil {
		return nil, err
	}
	byLesson := make(map[string][]domainBooking.Booking)
	for _, b := range bookings {
		byLesson[b.LessonID] = append(byLesson[b.LessonID], b)
	}

	views := make([]LessonView, 0, len(lessons))
	for _, l := range lessons {
		confirmed, waitlisted := domainBooking.Counts(byLesson[l.ID])
		v := LessonView{
			Lesson:     l,
			Confirmed:  confirmed,
			Waitlisted: waitlisted,
			SpotsLeft:  l.SpotsLeft(confirmed),
		}
		v.Start, _ = l.StartsAt(deps.Location)

		mine := domainLesson.NotBooked
		for _, b := range byLesson[l.ID] {
			if b.MemberID != memberID {
				continue
			}
			v.MyBookingID = b.ID
			if b.Status == domainBooking.StatusConfirmed {
				mine = domainLesson.HoldsConfirmed
			} else {
				mine = domainLesson.HoldsWaitlisted
			}
		}
		v.Status = l.Availability(now, deps.Location, confirmed, mine)
		switch v.Status {
		case domainLesson.AvailabilityAvailable, domainLesson.AvailabilityFewSpots:
			v.CanBook = true
		case domainLesson.AvailabilityFull:
			v.CanBook = waitlisted < domainBooking.WaitlistLimit
		case domainLesson.AvailabilityBooked:
			v.CanCancel = now.Before(v.Start.Add(-deps.Cutoff))
		case domainLesson.AvailabilityWaitlisted:
			v.CanCancel = true
		}
		views = append(views, v)
	}
	sort.SliceStable(views, func(i, j int) bool { return views[i].Lesson.StartTime < views[j].Lesson.StartTime })
	return views, nil
}
