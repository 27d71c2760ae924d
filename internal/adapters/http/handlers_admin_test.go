package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gymportal/internal/adapters/http/middleware"
	"gymportal/internal/adapters/http/perf"
)

// adminCall runs h with a JSON body as the admin.
func adminCall(h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, authRequest(method, target, body, adminSession))
	return rec
}

func TestAdminLessons(t *testing.T) {
	newTestEnv(t)

	rec := adminCall(handleAdminSaveLesson, http.MethodPost, "/api/admin/lessons",
		`{"title":"Box Fit","category":"boxing","instructor":"Luca","date":"2026-03-04","start_time":"19:00","end_time":"20:00","capacity":12}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %q", rec.Code, rec.Body.String())
	}
	created := decodeJSON[lessonAdminJSON](t, rec)
	if created.ID == "" || created.Capacity != 12 {
		t.Errorf("created = %+v", created)
	}

	created.Capacity = 10
	rec = adminCall(handleAdminSaveLesson, http.MethodPost, "/api/admin/lessons", mustJSON(t, created))
	if rec.Code != http.StatusOK {
		t.Errorf("update status = %d, body %q", rec.Code, rec.Body.String())
	}

	rec = adminCall(handleAdminLessons, http.MethodGet, "/api/admin/lessons?from=2026-03-01&to=2026-03-31", "")
	lessons := decodeJSON[[]lessonAdminJSON](t, rec)
	if len(lessons) != 2 || lessons[0].ID != "L1" || lessons[1].Capacity != 10 {
		t.Errorf("lessons = %+v", lessons)
	}

	rec = adminCall(handleAdminLessons, http.MethodGet, "/api/admin/lessons?from=2026-01-01&to=2026-06-30", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("oversized range status = %d", rec.Code)
	}

	rec = adminCall(handleAdminDeleteLesson, http.MethodDelete, "/api/admin/lessons", `{"id":"`+created.ID+`"}`)
	if rec.Code != http.StatusOK {
		t.Errorf("delete status = %d, body %q", rec.Code, rec.Body.String())
	}
}

func TestAdminLessons_Validation(t *testing.T) {
	newTestEnv(t)
	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing title", `{"category":"yoga","date":"2026-03-04","start_time":"09:00","end_time":"10:00","capacity":5}`, http.StatusBadRequest},
		{"end before start", `{"title":"Yoga","category":"yoga","date":"2026-03-04","start_time":"10:00","end_time":"09:00","capacity":5}`, http.StatusBadRequest},
		{"unknown field", `{"title":"Yoga","colour":"red"}`, http.StatusBadRequest},
		{"unknown lesson", `{"id":"nope","title":"Yoga","category":"yoga","date":"2026-03-04","start_time":"09:00","end_time":"10:00","capacity":5}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := adminCall(handleAdminSaveLesson, http.MethodPost, "/api/admin/lessons", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %q)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestAdminDeleteLesson_WithBookings(t *testing.T) {
	newTestEnv(t)
	if rec := postBooking(t, "L1", annaSession); rec.Code != http.StatusCreated {
		t.Fatalf("book status = %d", rec.Code)
	}

	rec := adminCall(handleAdminDeleteLesson, http.MethodDelete, "/api/admin/lessons", `{"id":"L1"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("delete status = %d, want 409", rec.Code)
	}

	rec = adminCall(handleAdminSaveLesson, http.MethodPost, "/api/admin/lessons",
		`{"id":"L1","title":"Spin 45","category":"spinning","instructor":"Marco","date":"2026-03-03","start_time":"18:00","end_time":"18:45","capacity":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("capacity zero status = %d", rec.Code)
	}
}

func TestAdminSlots(t *testing.T) {
	newTestEnv(t)

	rec := adminCall(handleAdminSaveSlot, http.MethodPost, "/api/admin/pilates/slots",
		`{"day":"tuesday","start_time":"18:00","end_time":"18:50","instructor":"Sara","level":"beginner","capacity":4}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("clashing slot status = %d, body %q", rec.Code, rec.Body.String())
	}

	rec = adminCall(handleAdminSaveSlot, http.MethodPost, "/api/admin/pilates/slots",
		`{"day":"thursday","start_time":"07:30","end_time":"08:20","instructor":"Sara","level":"beginner","capacity":4}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %q", rec.Code, rec.Body.String())
	}
	created := decodeJSON[slotJSON](t, rec)

	rec = adminCall(handleAdminSaveSlot, http.MethodPost, "/api/admin/pilates/slots",
		`{"day":"someday","start_time":"07:30","end_time":"08:20","instructor":"Sara","level":"beginner","capacity":4}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad day status = %d", rec.Code)
	}

	rec = adminCall(handleAdminSlots, http.MethodGet, "/api/admin/pilates/slots", "")
	if slots := decodeJSON[[]slotJSON](t, rec); len(slots) != 2 {
		t.Errorf("slots = %+v", slots)
	}

	rec = adminCall(handleAdminDeleteSlot, http.MethodDelete, "/api/admin/pilates/slots", `{"id":"`+created.ID+`"}`)
	if rec.Code != http.StatusOK {
		t.Errorf("delete status = %d", rec.Code)
	}
	rec = adminCall(handleAdminSlots, http.MethodGet, "/api/admin/pilates/slots", "")
	if slots := decodeJSON[[]slotJSON](t, rec); len(slots) != 1 || slots[0].ID != "S1" {
		t.Errorf("after delete = %+v", slots)
	}
}

func TestAdminClosures(t *testing.T) {
	newTestEnv(t)

	rec := adminCall(handleAdminSaveClosure, http.MethodPost, "/api/admin/closures",
		`{"name":"Easter","start_date":"2026-04-05","end_date":"2026-04-06"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %q", rec.Code, rec.Body.String())
	}
	created := decodeJSON[closureJSON](t, rec)
	if created.ID == "" || created.StartDate != "2026-04-05" || created.EndDate != "2026-04-06" {
		t.Errorf("created = %+v", created)
	}

	for _, body := range []string{
		`{"name":"Easter","start_date":"2026-04-06","end_date":"2026-04-05"}`,
		`{"name":"","start_date":"2026-04-05","end_date":"2026-04-06"}`,
		`{"name":"Easter","start_date":"05/04/2026","end_date":"2026-04-06"}`,
	} {
		if rec := adminCall(handleAdminSaveClosure, http.MethodPost, "/api/admin/closures", body); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", body, rec.Code)
		}
	}

	rec = adminCall(handleAdminClosures, http.MethodGet, "/api/admin/closures", "")
	if list := decodeJSON[[]closureJSON](t, rec); len(list) != 1 || list[0].Name != "Easter" {
		t.Errorf("closures = %+v", list)
	}

	rec = adminCall(handleAdminDeleteClosure, http.MethodDelete, "/api/admin/closures", `{"id":"`+created.ID+`"}`)
	if rec.Code != http.StatusOK {
		t.Errorf("delete status = %d", rec.Code)
	}
	rec = adminCall(handleAdminClosures, http.MethodGet, "/api/admin/closures", "")
	if list := decodeJSON[[]closureJSON](t, rec); len(list) != 0 {
		t.Errorf("after delete = %+v", list)
	}
}

func TestAdminMembers(t *testing.T) {
	newTestEnv(t)

	rec := adminCall(handleAdminCreateMember, http.MethodPost, "/api/admin/members",
		`{"name":"Carla Bianchi","email":"Carla@Example.com","password":"a long enough secret"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %q", rec.Code, rec.Body.String())
	}
	carla := decodeJSON[memberJSON](t, rec)
	if carla.Email != "carla@example.com" || carla.Status != "active" || carla.AccountID == "" {
		t.Errorf("created = %+v", carla)
	}

	rec = adminCall(handleAdminCreateMember, http.MethodPost, "/api/admin/members",
		`{"name":"Carla Again","email":"carla@example.com","password":"a long enough secret"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate email status = %d, body %q", rec.Code, rec.Body.String())
	}

	rec = adminCall(handleAdminMembers, http.MethodGet, "/api/admin/members", "")
	if list := decodeJSON[[]memberJSON](t, rec); len(list) != 3 {
		t.Errorf("members = %d, want 3", len(list))
	}
	rec = adminCall(handleAdminMembers, http.MethodGet, "/api/admin/members?status=frozen", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad status filter = %d", rec.Code)
	}
}

func TestAdminMemberStatus_SuspendEndsSessions(t *testing.T) {
	newTestEnv(t)
	token, err := sessions.Create(annaSession)
	if err != nil {
		t.Fatal(err)
	}

	req := authRequest(http.MethodPost, "/api/admin/members/m1/status", `{"status":"suspended"}`, adminSession)
	req.SetPathValue("id", "m1")
	rec := httptest.NewRecorder()
	handleAdminMemberStatus(rec, req)
	if rec.Code != http.StatusOK || decodeJSON[memberJSON](t, rec).Status != "suspended" {
		t.Fatalf("suspend = %d %q", rec.Code, rec.Body.String())
	}
	if _, ok := sessions.Get(token); ok {
		t.Error("suspended member's session should be gone")
	}

	if rec := postBooking(t, "L1", annaSession); rec.Code != http.StatusForbidden || errorCode(t, rec) != "error.suspended" {
		t.Errorf("suspended booking = %d %q", rec.Code, rec.Body.String())
	}

	req = authRequest(http.MethodPost, "/api/admin/members/m1/status", `{"status":"suspended"}`, adminSession)
	req.SetPathValue("id", "m1")
	rec = httptest.NewRecorder()
	handleAdminMemberStatus(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("second suspend = %d", rec.Code)
	}

	req = authRequest(http.MethodPost, "/api/admin/members/ghost/status", `{"status":"active"}`, adminSession)
	req.SetPathValue("id", "ghost")
	rec = httptest.NewRecorder()
	handleAdminMemberStatus(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown member = %d", rec.Code)
	}
}

func TestAdminPerf(t *testing.T) {
	env := newTestEnv(t)
	env.perf.Record(perf.Entry{Kind: perf.KindRequest, Name: "GET /bookings", Status: 200, Duration: 40 * time.Millisecond, At: fixedTime})
	env.perf.Record(perf.Entry{Kind: perf.KindQuery, Name: "SELECT lesson", Duration: 2 * time.Millisecond, At: fixedTime})

	rec := adminCall(handleAdminPerf, http.MethodGet, "/api/admin/perf?since=15m", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	snap := decodeJSON[perf.Snapshot](t, rec)
	if snap.Requests < 1 || snap.Queries < 1 || len(snap.SlowestRoutes) == 0 {
		t.Errorf("snapshot = %+v", snap)
	}

	rec = adminCall(handleAdminPerf, http.MethodGet, "/api/admin/perf?since=soon", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad since = %d", rec.Code)
	}
}

func TestAdminOutbox(t *testing.T) {
	newTestEnv(t)
	postBooking(t, "L1", annaSession)
	postBooking(t, "L1", brunoSession)

	rec := adminCall(handleAdminOutbox, http.MethodGet, "/api/admin/outbox", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	out := decodeJSON[[]outboxJSON](t, rec)
	if len(out) != 2 || out[0].Tag != "lesson_waitlisted" || out[1].Tag != "lesson_booked" {
		t.Errorf("outbox = %+v", out)
	}
	if !strings.Contains(out[1].Subject, "Spin 45") {
		t.Errorf("subject = %q", out[1].Subject)
	}

	SetEmailSender(nil)
	rec = adminCall(handleAdminOutbox, http.MethodGet, "/api/admin/outbox", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("without log sender = %d", rec.Code)
	}
}

func TestAdminRoutes_RequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	for _, sess := range []middleware.Session{annaSession, staffSession} {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/members", nil)
		if rec := env.serve(req, &sess); rec.Code != http.StatusForbidden {
			t.Errorf("%s: status = %d, want 403", sess.Role, rec.Code)
		}
	}
}
