package web

import (
	"net/http"

	"gymportal/internal/adapters/http/middleware"
	"gymportal/internal/application/orchestrators"
	"gymportal/internal/application/projections"
	"gymportal/internal/domain/calendar"
	"gymportal/internal/i18n"
)

type pilatesCellJSON struct {
	SlotID          string `json:"slot_id,omitempty"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time,omitempty"`
	EndTime         string `json:"end_time,omitempty"`
	Instructor      string `json:"instructor,omitempty"`
	Level           string `json:"level,omitempty"`
	LevelLabel      string `json:"level_label,omitempty"`
	Capacity        int    `json:"capacity,omitempty"`
	Booked          int    `json:"booked"`
	SpotsLeft       int    `json:"spots_left"`
	State           string `json:"state,omitempty"`
	StateLabel      string `json:"state_label,omitempty"`
	ClosureName     string `json:"closure_name,omitempty"`
	MyReservationID string `json:"my_reservation_id,omitempty"`
	CanReserve      bool   `json:"can_reserve"`
	CanCancel       bool   `json:"can_cancel"`
}

type pilatesDayJSON struct {
	Date        string `json:"date"`
	Label       string `json:"label"`
	Weekday     string `json:"weekday"`
	IsToday     bool   `json:"is_today"`
	ClosureName string `json:"closure_name,omitempty"`
}

type pilatesRowJSON struct {
	StartTime string            `json:"start_time"`
	Cells     []pilatesCellJSON `json:"cells"`
}

type pilatesWeekJSON struct {
	Start    string           `json:"start"`
	Title    string           `json:"title"`
	PrevWeek string           `json:"prev_week"`
	NextWeek string           `json:"next_week"`
	ThisWeek string           `json:"this_week"`
	Days     []pilatesDayJSON `json:"days"`
	Rows     []pilatesRowJSON `json:"rows"`
}

func toPilatesJSON(t *i18n.Translator, res projections.PilatesWeekResult) pilatesWeekJSON {
	out := pilatesWeekJSON{
		Start:    res.Start.Format(calendar.DateLayout),
		Title:    t.T("pilates.week_of", t.FormatDay(res.Start)),
		PrevWeek: res.PrevWeek,
		NextWeek: res.NextWeek,
		ThisWeek: res.ThisWeek,
		Days:     make([]pilatesDayJSON, len(res.Days)),
		Rows:     make([]pilatesRowJSON, len(res.Rows)),
	}
	for i, d := range res.Days {
		out.Days[i] = pilatesDayJSON{
			Date:        d.Date.Format(calendar.DateLayout),
			Label:       t.FormatDay(d.Date),
			Weekday:     t.WeekdayShort(d.Date.Weekday()),
			IsToday:     d.IsToday,
			ClosureName: d.ClosureName,
		}
	}
	for i, row := range res.Rows {
		cells := make([]pilatesCellJSON, len(row.Cells))
		for j, c := range row.Cells {
			cell := pilatesCellJSON{Date: c.Date, ClosureName: c.ClosureName}
			if c.Slot != nil {
				cell.SlotID = c.Slot.ID
				cell.StartTime = c.Slot.StartTime
				cell.EndTime = c.Slot.EndTime
				cell.Instructor = c.Slot.Instructor
				cell.Level = c.Slot.Level
				cell.LevelLabel = t.T("level." + c.Slot.Level)
				cell.Capacity = c.Slot.Capacity
				cell.Booked = c.Booked
				cell.SpotsLeft = c.SpotsLeft
				cell.State = c.State
				cell.StateLabel = t.T("cell." + c.State)
				cell.MyReservationID = c.MyReservationID
				cell.CanReserve = c.CanReserve
				cell.CanCancel = c.CanCancel
			}
			cells[j] = cell
		}
		out.Rows[i] = pilatesRowJSON{StartTime: row.StartTime, Cells: cells}
	}
	return out
}

func queryPilatesWeek(r *http.Request, memberID string) (projections.PilatesWeekResult, error) {
	return projections.QueryPilatesWeek(r.Context(), projections.PilatesWeekQuery{
		MemberID: memberID,
		Anchor:   r.URL.Query().Get("week"),
	}, projections.PilatesWeekDeps{
		PilatesStore: stores.PilatesStore,
		ClosureStore: stores.ClosureStore,
		Location:     settings.Location,
		Cutoff:       settings.CancelCutoff,
		Now:          timeNow,
	})
}

// handlePilatesPage handles GET /pilates
func handlePilatesPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	res, err := queryPilatesWeek(r, sess.MemberID)
	if err != nil {
		fail(w, r, err, "/pilates")
		return
	}
	renderTemplate(w, r, "pilates.html", newPage(r, "pilates.title", "pilates", toPilatesJSON(i18n.FromContext(r.Context()), res)))
}

// handlePilatesAPI handles GET /api/pilates
func handlePilatesAPI(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	res, err := queryPilatesWeek(r, sess.MemberID)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, toPilatesJSON(i18n.FromContext(r.Context()), res))
}

// handleReservePilates handles POST /pilates/reservations
// JSON body {"slot_id","date"} or the same form fields.
func handleReservePilates(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	var in struct {
		SlotID string `json:"slot_id"`
		Date   string `json:"date"`
	}
	if isJSON(r) {
		if err := strictDecode(r, &in); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}
	} else {
		in.SlotID, in.Date = r.FormValue("slot_id"), r.FormValue("date")
	}
	back := backTo(r, "/pilates?week="+in.Date)

	res, err := orchestrators.ExecuteReservePilates(r.Context(), orchestrators.ReservePilatesInput{
		SlotID:   in.SlotID,
		Date:     in.Date,
		MemberID: sess.MemberID,
	}, orchestrators.ReservePilatesDeps{
		PilatesStore: stores.PilatesStore,
		ClosureStore: stores.ClosureStore,
		MemberStore:  stores.MemberStore,
		Location:     settings.Location,
		GenerateID:   generateID,
		Now:          timeNow,
	})
	if err != nil {
		fail(w, r, err, back)
		return
	}
	if isJSON(r) {
		writeJSON(w, http.StatusCreated, map[string]string{"id": res.ID, "slot_id": res.SlotID, "date": res.Date, "status": res.Status})
		return
	}
	redirectWith(w, r, back, "ok", "pilates.reserved")
}

// handleCancelPilates handles POST /pilates/reservations/{id}/cancel
func handleCancelPilates(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	back := backTo(r, "/pilates")

	res, err := orchestrators.ExecuteCancelPilates(r.Context(), orchestrators.CancelPilatesInput{
		ReservationID: r.PathValue("id"),
		MemberID:      sess.MemberID,
		AsAdmin:       middleware.IsAdmin(r.Context()),
	}, orchestrators.CancelPilatesDeps{
		PilatesStore: stores.PilatesStore,
		Location:     settings.Location,
		Cutoff:       settings.CancelCutoff,
		Now:          timeNow,
	})
	if err != nil {
		fail(w, r, err, back)
		return
	}
	if isJSON(r) {
		writeJSON(w, http.StatusOK, map[string]string{"id": res.ID, "status": res.Status})
		return
	}
	redirectWith(w, r, back, "ok", "pilates.cancelled")
}
