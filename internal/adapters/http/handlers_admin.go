package web

import (
	"net/http"
	"strconv"
	"time"

	"gymportal/internal/adapters/email"
	memberStore "gymportal/internal/adapters/storage/member"
	"gymportal/internal/application/orchestrators"
	"gymportal/internal/domain/calendar"
	"gymportal/internal/domain/closure"
	"gymportal/internal/domain/lesson"
	"gymportal/internal/domain/member"
	"gymportal/internal/domain/pilates"
)

// maxLessonRange bounds GET /api/admin/lessons.
const maxLessonRange = 92 * 24 * time.Hour

type lessonAdminJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Instructor  string `json:"instructor"`
	Room        string `json:"room"`
	Description string `json:"description"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Capacity    int    `json:"capacity"`
}

func (j lessonAdminJSON) toDomain() lesson.Lesson {
	return lesson.Lesson{
		ID: j.ID, Title: j.Title, Category: j.Category, Instructor: j.Instructor,
		Room: j.Room, Description: j.Description, Date: j.Date,
		StartTime: j.StartTime, EndTime: j.EndTime, Capacity: j.Capacity,
	}
}

func lessonToAdminJSON(l lesson.Lesson) lessonAdminJSON {
	return lessonAdminJSON{
		ID: l.ID, Title: l.Title, Category: l.Category, Instructor: l.Instructor,
		Room: l.Room, Description: l.Description, Date: l.Date,
		StartTime: l.StartTime, EndTime: l.EndTime, Capacity: l.Capacity,
	}
}

type slotJSON struct {
	ID         string `json:"id"`
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Instructor string `json:"instructor"`
	Level      string `json:"level"`
	Capacity   int    `json:"capacity"`
}

type closureJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func closureToJSON(c closure.Closure) closureJSON {
	return closureJSON{
		ID:        c.ID,
		Name:      c.Name,
		StartDate: c.StartDate.Format(calendar.DateLayout),
		EndDate:   c.EndDate.Format(calendar.DateLayout),
	}
}

type memberJSON struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Status    string `json:"status"`
}

func memberToJSON(m member.Member) memberJSON {
	return memberJSON{ID: m.ID, AccountID: m.AccountID, Name: m.Name, Email: m.Email, Status: m.Status}
}

// parseOptionalDate parses s, treating empty as the zero time.
func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return calendar.ParseDate(s)
}

func lessonAdminDeps() orchestrators.LessonAdminDeps {
	return orchestrators.LessonAdminDeps{
		LessonStore:  stores.LessonStore,
		BookingStore: stores.BookingStore,
		GenerateID:   generateID,
	}
}

// handleAdminLessons handles GET /api/admin/lessons?from=&to=
// Defaults to the current month.
func handleAdminLessons(w http.ResponseWriter, r *http.Request) {
	from, to := calendar.MonthRange(timeNow().In(settings.Location))
	if v := r.URL.Query().Get("from"); v != "" {
		from = v
	}
	if v := r.URL.Query().Get("to"); v != "" {
		to = v
	}
	fromDate, err := calendar.ParseDate(from)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	toDate, err := calendar.ParseDate(to)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if toDate.Before(fromDate) || toDate.Sub(fromDate) > maxLessonRange {
		badRequest(w, "from must not be after to, and the range cannot exceed 92 days")
		return
	}

	lessons, err := stores.LessonStore.ListByDateRange(r.Context(), from, to)
	if err != nil {
		internalError(w, err)
		return
	}
	out := make([]lessonAdminJSON, len(lessons))
	for i, l := range lessons {
		out[i] = lessonToAdminJSON(l)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleAdminSaveLesson handles POST /api/admin/lessons
// An empty id creates the lesson.
func handleAdminSaveLesson(w http.ResponseWriter, r *http.Request) {
	var in lessonAdminJSON
	if err := strictDecode(r, &in); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	created := in.ID == ""
	l, err := orchestrators.ExecuteSaveLesson(r.Context(), in.toDomain(), lessonAdminDeps())
	if err != nil {
		failAdmin(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, lessonToAdminJSON(l))
}

// handleAdminDeleteLesson handles DELETE /api/admin/lessons {"id"}
func handleAdminDeleteLesson(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID string `json:"id"`
	}
	if err := strictDecode(r, &in); err != nil || in.ID == "" {
		badRequest(w, "id is required")
		return
	}
	if err := orchestrators.ExecuteDeleteLesson(r.Context(), in.ID, lessonAdminDeps()); err != nil {
		failAdmin(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleAdminSlots handles GET /api/admin/pilates/slots
func handleAdminSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := stores.PilatesStore.ListSlots(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	out := make([]slotJSON, len(slots))
	for i, s := range slots {
		out[i] = slotJSON{ID: s.ID, Day: s.Day, StartTime: s.StartTime, EndTime: s.EndTime, Instructor: s.Instructor, Level: s.Level, Capacity: s.Capacity}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleAdminSaveSlot handles POST /api/admin/pilates/slots
func handleAdminSaveSlot(w http.ResponseWriter, r *http.Request) {
	var in slotJSON
	if err := strictDecode(r, &in); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	created := in.ID == ""
	s, err := orchestrators.ExecuteSaveSlot(r.Context(), pilates.Slot{
		ID: in.ID, Day: in.Day, StartTime: in.StartTime, EndTime: in.EndTime,
		Instructor: in.Instructor, Level: in.Level, Capacity: in.Capacity,
	}, stores.PilatesStore, generateID)
	if err != nil {
		failAdmin(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, slotJSON{ID: s.ID, Day: s.Day, StartTime: s.StartTime, EndTime: s.EndTime, Instructor: s.Instructor, Level: s.Level, Capacity: s.Capacity})
}

// handleAdminDeleteSlot handles DELETE /api/admin/pilates/slots {"id"}
// Existing reservations keep their slot id and drop out of the grid.
func handleAdminDeleteSlot(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID string `json:"id"`
	}
	if err := strictDecode(r, &in); err != nil || in.ID == "" {
		badRequest(w, "id is required")
		return
	}
	if err := stores.PilatesStore.DeleteSlot(r.Context(), in.ID); err != nil {
		failAdmin(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleAdminClosures handles GET /api/admin/closures
func handleAdminClosures(w http.ResponseWriter, r *http.Request) {
	list, err := stores.ClosureStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	out := make([]closureJSON, len(list))
	for i, c := range list {
		out[i] = closureToJSON(c)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleAdminSaveClosure handles POST /api/admin/closures
func handleAdminSaveClosure(w http.ResponseWriter, r *http.Request) {
	var in closureJSON
	if err := strictDecode(r, &in); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	start, err := parseOptionalDate(in.StartDate)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	end, err := parseOptionalDate(in.EndDate)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	c, err := orchestrators.ExecuteSaveClosure(r.Context(), closure.Closure{
		ID: in.ID, Name: in.Name, StartDate: start, EndDate: end,
	}, stores.ClosureStore, generateID)
	if err != nil {
		failAdmin(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, closureToJSON(c))
}

// handleAdminDeleteClosure handles DELETE /api/admin/closures {"id"}
func handleAdminDeleteClosure(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID string `json:"id"`
	}
	if err := strictDecode(r, &in); err != nil || in.ID == "" {
		badRequest(w, "id is required")
		return
	}
	if err := stores.ClosureStore.Delete(r.Context(), in.ID); err != nil {
		failAdmin(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleAdminMembers handles GET /api/admin/members?status=&limit=&offset=
func handleAdminMembers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	offset, _ := strconv.Atoi(q.Get("offset"))
	if offset < 0 {
		offset = 0
	}
	status := q.Get("status")
	if status != "" && status != member.StatusActive && status != member.StatusSuspended {
		badRequest(w, member.ErrInvalidStatus.Error())
		return
	}
	list, err := stores.MemberStore.List(r.Context(), memberStore.ListFilter{Limit: limit, Offset: offset, Status: status})
	if err != nil {
		internalError(w, err)
		return
	}
	out := make([]memberJSON, len(list))
	for i, m := range list {
		out[i] = memberToJSON(m)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleAdminCreateMember handles POST /api/admin/members {"name","email","password"}
func handleAdminCreateMember(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := strictDecode(r, &in); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	m, err := orchestrators.ExecuteRegisterMember(r.Context(), orchestrators.RegisterMemberInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	}, orchestrators.RegisterMemberDeps{
		AccountStore: stores.AccountStore,
		MemberStore:  stores.MemberStore,
		GenerateID:   generateID,
		Now:          timeNow,
	})
	if err != nil {
		failAdmin(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, memberToJSON(m))
}

// handleAdminMemberStatus handles POST /api/admin/members/{id}/status {"status"}
// Suspending a member also ends their open sessions.
func handleAdminMemberStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status string `json:"status"`
	}
	if err := strictDecode(r, &in); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	m, err := orchestrators.ExecuteSetMemberStatus(r.Context(), r.PathValue("id"), in.Status, stores.MemberStore)
	if err != nil {
		failAdmin(w, r, err)
		return
	}
	if m.Status == member.StatusSuspended {
		sessions.DeleteAccount(m.AccountID)
	}
	writeJSON(w, http.StatusOK, memberToJSON(m))
}

// handleAdminPerf handles GET /api/admin/perf?since=<duration>
func handleAdminPerf(w http.ResponseWriter, r *http.Request) {
	window := time.Hour
	if v := r.URL.Query().Get("since"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			badRequest(w, "since must be a positive duration such as 15m")
			return
		}
		window = d
	}
	if perfCollector == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "performance collection is disabled"})
		return
	}
	writeJSON(w, http.StatusOK, perfCollector.Snapshot(timeNow().Add(-window), 10))
}

type outboxJSON struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	Tag     string   `json:"tag"`
}

// handleAdminOutbox handles GET /api/admin/outbox
// Only available with the logging sender; newest first.
func handleAdminOutbox(w http.ResponseWriter, r *http.Request) {
	logSender, ok := emailSender.(*email.LogSender)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "outbox is only kept in development"})
		return
	}
	sent := logSender.Sent()
	out := make([]outboxJSON, 0, len(sent))
	for i := len(sent) - 1; i >= 0; i-- {
		m := sent[i]
		out = append(out, outboxJSON{To: m.To, Subject: m.Subject, Text: m.Text, Tag: m.Tag})
	}
	writeJSON(w, http.StatusOK, out)
}
