package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gymportal/internal/adapters/http/middleware"
	"gymportal/internal/adapters/storage/storagetest"
	"gymportal/internal/domain/closure"
)

func reserve(t *testing.T, body string, sess middleware.Session) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handleReservePilates(rec, authRequest(http.MethodPost, "/pilates/reservations", body, sess))
	return rec
}

func TestReservePilates(t *testing.T) {
	newTestEnv(t)

	rec := reserve(t, `{"slot_id":"S1","date":"2026-03-03"}`, annaSession)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	res := decodeJSON[map[string]string](t, rec)
	if res["status"] != "confirmed" || res["id"] == "" {
		t.Errorf("reply = %v", res)
	}

	tests := []struct {
		name       string
		body       string
		sess       middleware.Session
		wantStatus int
		wantCode   string
	}{
		{"twice", `{"slot_id":"S1","date":"2026-03-03"}`, annaSession, http.StatusConflict, "error.already_reserved"},
		{"wrong weekday", `{"slot_id":"S1","date":"2026-03-04"}`, annaSession, http.StatusBadRequest, "error.wrong_weekday"},
		{"past", `{"slot_id":"S1","date":"2026-02-24"}`, annaSession, http.StatusConflict, "error.slot_started"},
		{"unknown slot", `{"slot_id":"S9","date":"2026-03-03"}`, annaSession, http.StatusNotFound, "error.slot_not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := reserve(t, tt.body, tt.sess)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %q)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if code := errorCode(t, rec); code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}

func TestReservePilates_Full(t *testing.T) {
	env := newTestEnv(t)
	reserve(t, `{"slot_id":"S1","date":"2026-03-03"}`, annaSession)
	reserve(t, `{"slot_id":"S1","date":"2026-03-03"}`, brunoSession)
	carla := middleware.Session{AccountID: "acct-m3", MemberID: "m3", Role: "member"}
	storagetest.SeedMember(t, env.db, "acct-m3", "m3", "carla@example.com")

	rec := reserve(t, `{"slot_id":"S1","date":"2026-03-03"}`, carla)
	if rec.Code != http.StatusConflict || errorCode(t, rec) != "error.slot_full" {
		t.Errorf("full slot = %d %q", rec.Code, rec.Body.String())
	}
}

func TestReservePilates_Closed(t *testing.T) {
	newTestEnv(t)
	day := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	if err := stores.ClosureStore.Save(context.Background(), closure.Closure{ID: "c1", Name: "Maintenance", StartDate: day, EndDate: day}); err != nil {
		t.Fatalf("seed closure: %v", err)
	}
	rec := reserve(t, `{"slot_id":"S1","date":"2026-03-03"}`, annaSession)
	if rec.Code != http.StatusConflict || errorCode(t, rec) != "error.closed" {
		t.Errorf("closed = %d %q", rec.Code, rec.Body.String())
	}
}

func TestCancelPilates(t *testing.T) {
	newTestEnv(t)
	id := decodeJSON[map[string]string](t, reserve(t, `{"slot_id":"S1","date":"2026-03-03"}`, annaSession))["id"]

	req := authRequest(http.MethodPost, "/pilates/reservations/"+id+"/cancel", `{}`, brunoSession)
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	handleCancelPilates(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("foreign cancel status = %d, want 403", rec.Code)
	}

	req = authRequest(http.MethodPost, "/pilates/reservations/"+id+"/cancel", `{}`, annaSession)
	req.SetPathValue("id", id)
	rec = httptest.NewRecorder()
	handleCancelPilates(rec, req)
	if rec.Code != http.StatusOK || decodeJSON[map[string]string](t, rec)["status"] != "cancelled" {
		t.Fatalf("cancel = %d %q", rec.Code, rec.Body.String())
	}

	req = authRequest(http.MethodPost, "/pilates/reservations/"+id+"/cancel", `{}`, annaSession)
	req.SetPathValue("id", id)
	rec = httptest.NewRecorder()
	handleCancelPilates(rec, req)
	if rec.Code != http.StatusConflict || errorCode(t, rec) != "error.already_cancelled" {
		t.Errorf("second cancel = %d %q", rec.Code, rec.Body.String())
	}
}

func TestPilatesAPI_Week(t *testing.T) {
	newTestEnv(t)
	reserve(t, `{"slot_id":"S1","date":"2026-03-03"}`, annaSession)

	rec := httptest.NewRecorder()
	handlePilatesAPI(rec, authRequest(http.MethodGet, "/api/pilates?week=2026-03-04", "", annaSession))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decodeJSON[pilatesWeekJSON](t, rec)
	if got.Start != "2026-03-02" || got.PrevWeek != "2026-02-23" || got.NextWeek != "2026-03-09" {
		t.Errorf("week = %s prev %s next %s", got.Start, got.PrevWeek, got.NextWeek)
	}
	if len(got.Days) != 7 || !got.Days[0].IsToday {
		t.Errorf("days = %+v", got.Days)
	}
	if len(got.Rows) != 1 || got.Rows[0].StartTime != "18:00" {
		t.Fatalf("rows = %+v", got.Rows)
	}
	cells := got.Rows[0].Cells
	if len(cells) != 7 {
		t.Fatalf("cells = %d, want 7", len(cells))
	}
	tue := cells[1]
	if tue.SlotID != "S1" || tue.State != "booked" || !tue.CanCancel || tue.CanReserve || tue.SpotsLeft != 1 {
		t.Errorf("tuesday cell = %+v", tue)
	}
	if cells[0].SlotID != "" {
		t.Errorf("monday cell should be empty: %+v", cells[0])
	}
	if tue.LevelLabel != "All levels" {
		t.Errorf("level label = %q", tue.LevelLabel)
	}
}
