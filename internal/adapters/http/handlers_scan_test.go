package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func scan(t *testing.T, payload string) scanJSON {
	t.Helper()
	rec := httptest.NewRecorder()
	handleScan(rec, authRequest(http.MethodPost, "/scan", `{"payload":"`+payload+`"}`, staffSession))
	if rec.Code != http.StatusOK {
		t.Fatalf("scan status = %d, body %q", rec.Code, rec.Body.String())
	}
	return decodeJSON[scanJSON](t, rec)
}

func deskCounts(t *testing.T) map[string]any {
	t.Helper()
	rec := httptest.NewRecorder()
	handleDeskTodayAPI(rec, authRequest(http.MethodGet, "/api/desk/today", "", staffSession))
	return decodeJSON[map[string]any](t, rec)
}

func TestScan_EntryRecordedOncePerDay(t *testing.T) {
	newTestEnv(t)
	code := generateCode(t, `{"category":"entry"}`, annaSession)

	first := scan(t, code.Payload)
	if first.Result != "ok" || !first.Admitted || !first.Recorded {
		t.Fatalf("first scan = %+v", first)
	}
	if first.Message != "Welcome, Member m1!" {
		t.Errorf("message = %q", first.Message)
	}

	second := scan(t, code.Payload)
	if second.Result != "ok" || !second.Admitted || second.Recorded {
		t.Errorf("repeat scan = %+v, want admitted without a new record", second)
	}

	got := deskCounts(t)
	if got["date"] != "2026-03-02" || got["members"] != float64(1) || got["guests"] != float64(0) {
		t.Errorf("desk today = %v", got)
	}
}

func TestScan_Rejections(t *testing.T) {
	newTestEnv(t)
	code := generateCode(t, `{"category":"entry"}`, annaSession)
	req := authRequest(http.MethodPost, "/qr/"+code.ID+"/revoke", `{}`, annaSession)
	req.SetPathValue("id", code.ID)
	handleRevokeQR(httptest.NewRecorder(), req)

	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"garbage", "hello", "invalid"},
		{"unknown token", "GYM1:entry:deadbeef", "unknown"},
		{"revoked", code.Payload, "revoked"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scan(t, tt.payload)
			if got.Result != tt.want || got.Admitted || got.Recorded || got.MemberName != "" {
				t.Errorf("scan = %+v, want rejected as %s", got, tt.want)
			}
		})
	}
}

func TestScan_GuestPassSingleUse(t *testing.T) {
	newTestEnv(t)
	code := generateCode(t, `{"category":"guest"}`, annaSession)

	if got := scan(t, code.Payload); got.Result != "guest" || !got.Recorded {
		t.Fatalf("guest scan = %+v", got)
	}
	if got := scan(t, code.Payload); got.Result != "used" || got.Admitted {
		t.Errorf("second guest scan = %+v", got)
	}
	if got := deskCounts(t); got["guests"] != float64(1) || got["members"] != float64(0) {
		t.Errorf("desk today = %v", got)
	}
}

func TestScan_FormRendersResult(t *testing.T) {
	newTestEnv(t)
	rec := httptest.NewRecorder()
	handleScan(rec, formRequest("/scan", url.Values{"payload": {"nope"}}, staffSession))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Not a valid gym code.") {
		t.Error("scan page should show the outcome")
	}
}

func TestManualCheckIn(t *testing.T) {
	newTestEnv(t)

	rec := httptest.NewRecorder()
	handleManualCheckIn(rec, authRequest(http.MethodPost, "/scan/manual", `{"member_id":"m2"}`, staffSession))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	got := decodeJSON[map[string]string](t, rec)
	if got["member_id"] != "m2" || got["method"] != "manual" || got["date"] != "2026-03-02" {
		t.Errorf("check-in = %v", got)
	}

	rec = httptest.NewRecorder()
	handleManualCheckIn(rec, authRequest(http.MethodPost, "/scan/manual", `{"member_id":"m2"}`, staffSession))
	if rec.Code != http.StatusConflict || errorCode(t, rec) != "scan.already_in" {
		t.Errorf("second check-in = %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handleManualCheckIn(rec, authRequest(http.MethodPost, "/scan/manual", `{"member_id":""}`, staffSession))
	if rec.Code != http.StatusNotFound || errorCode(t, rec) != "error.member_not_found" {
		t.Errorf("empty member = %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handleManualCheckIn(rec, formRequest("/scan/manual", url.Values{"member_id": {"m1"}}, staffSession))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/scan?ok=scan.manual_ok" {
		t.Errorf("form check-in = %d %q", rec.Code, rec.Header().Get("Location"))
	}
}
