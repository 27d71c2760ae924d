package web

import (
	"net/http"

	"gymportal/internal/adapters/http/middleware"
	memberStore "gymportal/internal/adapters/storage/member"
	"gymportal/internal/application/orchestrators"
	"gymportal/internal/application/projections"
	"gymportal/internal/domain/member"
	"gymportal/internal/i18n"
)

type scanPage struct {
	Today   projections.DeskTodayResult
	Members []member.Member
	Result  *scanJSON
}

type scanJSON struct {
	Result     string `json:"result"`
	Message    string `json:"message"`
	Admitted   bool   `json:"admitted"`
	MemberName string `json:"member_name,omitempty"`
	Category   string `json:"category,omitempty"`
	Recorded   bool   `json:"recorded"`
}

func admitted(result string) bool {
	switch result {
	case orchestrators.ScanOK, orchestrators.ScanGuest, orchestrators.ScanLocker:
		return true
	}
	return false
}

func toScanJSON(t *i18n.Translator, res orchestrators.ScanResult) scanJSON {
	ok := admitted(res.Result)
	msg := t.T("scan." + res.Result)
	if ok {
		msg = t.T("scan."+res.Result, res.MemberName)
	}
	return scanJSON{
		Result:     res.Result,
		Message:    msg,
		Admitted:   ok,
		MemberName: res.MemberName,
		Category:   res.Category,
		Recorded:   res.Attendance != nil,
	}
}

func scanDeps() orchestrators.ScanQRCodeDeps {
	return orchestrators.ScanQRCodeDeps{
		CodeStore:       stores.QRCodeStore,
		MemberStore:     stores.MemberStore,
		AttendanceStore: stores.AttendanceStore,
		Location:        settings.Location,
		GenerateID:      generateID,
		Now:             timeNow,
	}
}

func deskToday(r *http.Request) (projections.DeskTodayResult, error) {
	return projections.QueryDeskToday(r.Context(), stores.AttendanceStore, settings.Location, timeNow())
}

// renderScan renders the desk page, optionally with the outcome of the last scan.
func renderScan(w http.ResponseWriter, r *http.Request, result *scanJSON) {
	today, err := deskToday(r)
	if err != nil {
		internalError(w, err)
		return
	}
	members, err := stores.MemberStore.List(r.Context(), memberStore.ListFilter{Status: member.StatusActive, Limit: 500})
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "scan.html", newPage(r, "scan.title", "scan", scanPage{Today: today, Members: members, Result: result}))
}

// handleScanPage handles GET /scan
func handleScanPage(w http.ResponseWriter, r *http.Request) {
	renderScan(w, r, nil)
}

// handleScan handles POST /scan
// JSON body {"payload"} or the same form field. Rejections are a 200 with
// admitted=false: the desk reads the outcome, not the status code.
func handleScan(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	var in struct {
		Payload string `json:"payload"`
	}
	if isJSON(r) {
		if err := strictDecode(r, &in); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}
	} else {
		in.Payload = r.FormValue("payload")
	}

	res, err := orchestrators.ExecuteScanQRCode(r.Context(), orchestrators.ScanQRCodeInput{
		Payload:   in.Payload,
		ScannedBy: sess.AccountID,
	}, scanDeps())
	if err != nil {
		internalError(w, err)
		return
	}
	out := toScanJSON(i18n.FromContext(r.Context()), res)
	if isJSON(r) {
		writeJSON(w, http.StatusOK, out)
		return
	}
	renderScan(w, r, &out)
}

// handleManualCheckIn handles POST /scan/manual
func handleManualCheckIn(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	var in struct {
		MemberID string `json:"member_id"`
	}
	if isJSON(r) {
		if err := strictDecode(r, &in); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}
	} else {
		in.MemberID = r.FormValue("member_id")
	}
	if in.MemberID == "" {
		fail(w, r, member.ErrNotFound, "/scan")
		return
	}

	a, err := orchestrators.ExecuteManualCheckIn(r.Context(), orchestrators.ManualCheckInInput{
		MemberID:  in.MemberID,
		ScannedBy: sess.AccountID,
	}, scanDeps())
	if err != nil {
		fail(w, r, err, "/scan")
		return
	}
	if isJSON(r) {
		writeJSON(w, http.StatusCreated, map[string]string{"id": a.ID, "member_id": a.MemberID, "date": a.Date, "method": a.Method})
		return
	}
	redirectWith(w, r, "/scan", "ok", "scan.manual_ok")
}

// handleDeskTodayAPI handles GET /api/desk/today
func handleDeskTodayAPI(w http.ResponseWriter, r *http.Request) {
	today, err := deskToday(r)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": today.Date, "members": today.Members, "guests": today.Guests})
}
