package web

import (
	"net/http"
	"net/url"
	"time"

	"gymportal/internal/adapters/http/middleware"
	"gymportal/internal/application/listutil"
	"gymportal/internal/application/orchestrators"
	"gymportal/internal/application/projections"
	"gymportal/internal/domain/booking"
	"gymportal/internal/domain/calendar"
	"gymportal/internal/i18n"
)

// requireMember returns the session when it belongs to a member profile.
// Staff accounts without one are sent to the desk page.
func requireMember(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if ok && sess.MemberID != "" {
		return sess, true
	}
	if isJSON(r) || r.Method != http.MethodGet {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "a member profile is required"})
		return sess, false
	}
	http.Redirect(w, r, "/scan", http.StatusSeeOther)
	return sess, false
}

type dayJSON struct {
	Date       string `json:"date"`
	InMonth    bool   `json:"in_month"`
	IsToday    bool   `json:"is_today"`
	IsSelected bool   `json:"is_selected"`
	IsPast     bool   `json:"is_past"`
	Count      int    `json:"count"`
}

type lessonJSON struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	CategoryLabel string `json:"category_label"`
	Instructor    string `json:"instructor"`
	Room          string `json:"room"`
	Description   string `json:"description"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Capacity      int    `json:"capacity"`
	Confirmed     int    `json:"confirmed"`
	Waitlisted    int    `json:"waitlisted"`
	SpotsLeft     int    `json:"spots_left"`
	Status        string `json:"status"`
	StatusLabel   string `json:"status_label"`
	MyBookingID   string `json:"my_booking_id,omitempty"`
	CanBook       bool   `json:"can_book"`
	CanCancel     bool   `json:"can_cancel"`
}

type calendarJSON struct {
	Month       string       `json:"month"`
	Title       string       `json:"title"`
	Prev        string       `json:"prev"`
	Next        string       `json:"next"`
	Selected    string       `json:"selected"`
	SelectedDay string       `json:"selected_label"`
	Weekdays    []string     `json:"weekdays"`
	Weeks       [][]dayJSON  `json:"weeks"`
	Lessons     []lessonJSON `json:"lessons"`
}

type bookingJSON struct {
	ID          string    `json:"id"`
	LessonID    string    `json:"lesson_id"`
	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	CreatedAt   time.Time `json:"created_at"`
}

func toBookingJSON(t *i18n.Translator, b booking.Booking) bookingJSON {
	return bookingJSON{ID: b.ID, LessonID: b.LessonID, Status: b.Status, StatusLabel: t.T("booking." + b.Status), CreatedAt: b.CreatedAt}
}

func toLessonJSON(t *i18n.Translator, v projections.LessonView) lessonJSON {
	l := v.Lesson
	return lessonJSON{
		ID: l.ID, Title: l.Title, Category: l.Category, CategoryLabel: t.T("category." + l.Category),
		Instructor: l.Instructor, Room: l.Room, Description: l.Description,
		Date: l.Date, StartTime: l.StartTime, EndTime: l.EndTime, Capacity: l.Capacity,
		Confirmed: v.Confirmed, Waitlisted: v.Waitlisted, SpotsLeft: v.SpotsLeft,
		Status: v.Status, StatusLabel: t.T("availability." + v.Status),
		MyBookingID: v.MyBookingID, CanBook: v.CanBook, CanCancel: v.CanCancel,
	}
}

// weekdayHeaders returns short weekday names starting at first.
func weekdayHeaders(t *i18n.Translator, first time.Weekday) []string {
	out := make([]string, 7)
	for i := range out {
		out[i] = t.WeekdayShort((first + time.Weekday(i)) % 7)
	}
	return out
}

func toCalendarJSON(t *i18n.Translator, res projections.BookingCalendarResult) calendarJSON {
	m := res.Month
	out := calendarJSON{
		Month:       m.Key(),
		Title:       t.FormatMonth(m.Year, m.Month),
		Prev:        m.Prev.Format(calendar.MonthLayout),
		Next:        m.Next.Format(calendar.MonthLayout),
		Selected:    res.Selected.Format(calendar.DateLayout),
		SelectedDay: t.FormatDay(res.Selected),
		Weekdays:    weekdayHeaders(t, settings.FirstWeekday),
		Weeks:       make([][]dayJSON, len(m.Weeks)),
		Lessons:     make([]lessonJSON, len(res.Lessons)),
	}
	for i, week := range m.Weeks {
		out.Weeks[i] = make([]dayJSON, len(week))
		for j, d := range week {
			out.Weeks[i][j] = dayJSON{Date: d.Key(), InMonth: d.InMonth, IsToday: d.IsToday, IsSelected: d.IsSelected, IsPast: d.IsPast, Count: d.Count}
		}
	}
	for i, v := range res.Lessons {
		out.Lessons[i] = toLessonJSON(t, v)
	}
	return out
}

func queryCalendar(r *http.Request, memberID string) (projections.BookingCalendarResult, error) {
	return projections.QueryBookingCalendar(r.Context(), projections.BookingCalendarQuery{
		MemberID: memberID,
		Month:    r.URL.Query().Get("month"),
		Date:     r.URL.Query().Get("date"),
	}, projections.BookingCalendarDeps{
		LessonStore:  stores.LessonStore,
		BookingStore: stores.BookingStore,
		Location:     settings.Location,
		FirstWeekday: settings.FirstWeekday,
		Cutoff:       settings.CancelCutoff,
		Now:          timeNow,
	})
}

// handleBookingsPage handles GET /bookings
func handleBookingsPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	res, err := queryCalendar(r, sess.MemberID)
	if err != nil {
		fail(w, r, err, "/bookings")
		return
	}
	t := i18n.FromContext(r.Context())
	renderTemplate(w, r, "bookings.html", newPage(r, "bookings.title", "bookings", toCalendarJSON(t, res)))
}

// handleBookingsAPI handles GET /api/bookings
func handleBookingsAPI(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	res, err := queryCalendar(r, sess.MemberID)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, toCalendarJSON(i18n.FromContext(r.Context()), res))
}

// handleBookLesson handles POST /bookings
// JSON body {"lesson_id"} or form field lesson_id.
func handleBookLesson(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	var in struct {
		LessonID string `json:"lesson_id"`
	}
	if isJSON(r) {
		if err := strictDecode(r, &in); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}
	} else {
		in.LessonID = r.FormValue("lesson_id")
	}
	back := backTo(r, "/bookings")

	b, err := orchestrators.ExecuteBookLesson(r.Context(), orchestrators.BookLessonInput{
		LessonID: in.LessonID,
		MemberID: sess.MemberID,
	}, orchestrators.BookLessonDeps{
		LessonStore:  stores.LessonStore,
		BookingStore: stores.BookingStore,
		MemberStore:  stores.MemberStore,
		Mailer:       lessonMailer(),
		Location:     settings.Location,
		GenerateID:   generateID,
		Now:          timeNow,
	})
	if err != nil {
		fail(w, r, err, back)
		return
	}
	if isJSON(r) {
		writeJSON(w, http.StatusCreated, toBookingJSON(i18n.FromContext(r.Context()), b))
		return
	}
	redirectWith(w, r, back, "ok", "bookings."+b.Status)
}

// handleCancelBooking handles POST /bookings/{id}/cancel
func handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	back := backTo(r, "/bookings")

	res, err := orchestrators.ExecuteCancelBooking(r.Context(), orchestrators.CancelBookingInput{
		BookingID: r.PathValue("id"),
		MemberID:  sess.MemberID,
		AsAdmin:   middleware.IsAdmin(r.Context()),
	}, orchestrators.CancelBookingDeps{
		LessonStore:  stores.LessonStore,
		BookingStore: stores.BookingStore,
		MemberStore:  stores.MemberStore,
		Mailer:       lessonMailer(),
		Location:     settings.Location,
		Cutoff:       settings.CancelCutoff,
		Now:          timeNow,
	})
	if err != nil {
		fail(w, r, err, back)
		return
	}
	if isJSON(r) {
		t := i18n.FromContext(r.Context())
		out := map[string]any{"booking": toBookingJSON(t, res.Booking)}
		if res.Promoted != nil {
			out["promoted_id"] = res.Promoted.ID
		}
		writeJSON(w, http.StatusOK, out)
		return
	}
	redirectWith(w, r, back, "ok", "bookings.cancelled")
}

type myBookingJSON struct {
	bookingJSON
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	Start     time.Time `json:"start"`
	IsPast    bool      `json:"is_past"`
}

type myBookingsJSON struct {
	Items []myBookingJSON   `json:"items"`
	Page  listutil.PageInfo `json:"page"`
	Query url.Values        `json:"query"`
}

func queryMyBookings(r *http.Request, memberID string) (myBookingsJSON, error) {
	params := listutil.Parse(r.URL.Query(), projections.MyBookingsSpec)
	res, err := projections.QueryMyBookings(r.Context(), projections.MyBookingsQuery{MemberID: memberID, Params: params}, projections.MyBookingsDeps{
		LessonStore:  stores.LessonStore,
		BookingStore: stores.BookingStore,
		Location:     settings.Location,
		Now:          timeNow,
	})
	if err != nil {
		return myBookingsJSON{}, err
	}
	t := i18n.FromContext(r.Context())
	out := myBookingsJSON{Items: make([]myBookingJSON, len(res.Items)), Page: res.Page, Query: params.Query()}
	for i, v := range res.Items {
		out.Items[i] = myBookingJSON{
			bookingJSON: toBookingJSON(t, v.Booking),
			Title:       v.Lesson.Title,
			Category:    v.Lesson.Category,
			Date:        v.Lesson.Date,
			StartTime:   v.Lesson.StartTime,
			Start:       v.Start,
			IsPast:      v.IsPast,
		}
	}
	return out, nil
}

// handleMyBookingsPage handles GET /bookings/mine
func handleMyBookingsPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	res, err := queryMyBookings(r, sess.MemberID)
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "my_bookings.html", newPage(r, "bookings.mine", "bookings", res))
}

// handleMyBookingsAPI handles GET /api/bookings/mine
func handleMyBookingsAPI(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	res, err := queryMyBookings(r, sess.MemberID)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
