package projections

import (
	"context"
	"errors"
	"sort"
	"time"

	"gymportal/internal/application/listutil"
	domainBooking "gymportal/internal/domain/booking"
	domainLesson "gymportal/internal/domain/lesson"
)

// MyBookings list columns and filters.
var MyBookingsSpec = listutil.Spec{
	SortColumns: []string{"date", "created"},
	DefaultDir:  listutil.Desc,
	FilterKeys:  []string{"status"},
}

// MyBookingsQuery carries query parameters.
type MyBookingsQuery struct {
	MemberID string
	Params   listutil.Params
}

// MyBookingView is one row of the member's booking history.
type MyBookingView struct {
	Booking domainBooking.Booking
	Lesson  domainLesson.Lesson
	Start   time.Time
	IsPast  bool
}

// MyBookingsResult carries one page of history.
type MyBookingsResult struct {
	Items []MyBookingView
	Page  listutil.PageInfo
}

// MyBookingsDeps holds dependencies for MyBookings.
type MyBookingsDeps struct {
	LessonStore  LessonStore
	BookingStore BookingStore
	Location     *time.Location
	Now          func() time.Time
}

// QueryMyBookings pages through the member's bookings.
// PRE: MemberID is non-empty; Params came from listutil.Parse with MyBookingsSpec
// POST: Items hold at most PerPage rows, filtered by status and sorted by lesson start or booking time
func QueryMyBookings(ctx context.Context, query MyBookingsQuery, deps MyBookingsDeps) (MyBookingsResult, error) {
	bookings, err := deps.BookingStore.ListByMember(ctx, query.MemberID)
	if err != nil {
		return MyBookingsResult{}, err
	}
	now := deps.Now()
	status := query.Params.Filters["status"]

	lessons := make(map[string]domainLesson.Lesson)
	rows := make([]MyBookingView, 0, len(bookings))
	for _, b := range bookings {
		if status != "" && b.Status != status {
			continue
		}
		l, ok := lessons[b.LessonID]
		if !ok {
			l, err = deps.LessonStore.GetByID(ctx, b.LessonID)
			if errors.Is(err, domainLesson.ErrNotFound) {
				continue
			}
			if err != nil {
				return MyBookingsResult{}, err
			}
			lessons[b.LessonID] = l
		}
		start, _ := l.StartsAt(deps.Location)
		rows = append(rows, MyBookingView{Booking: b, Lesson: l, Start: start, IsPast: !now.Before(start)})
	}

	less := func(i, j int) bool { return rows[i].Start.Before(rows[j].Start) }
	if query.Params.Sort == "created" {
		less = func(i, j int) bool { return rows[i].Booking.CreatedAt.Before(rows[j].Booking.CreatedAt) }
	}
	if query.Params.Dir == listutil.Desc {
		asc := less
		less = func(i, j int) bool { return asc(j, i) }
	}
	sort.SliceStable(rows, less)

	page := listutil.NewPageInfo(query.Params.Page, query.Params.PerPage, len(rows))
	return MyBookingsResult{Items: listutil.Paginate(rows, page), Page: page}, nil
}
