package projections

import (
	"context"
	"sort"
	"time"

	"gymportal/internal/domain/calendar"
	domainClosure "gymportal/internal/domain/closure"
	domainPilates "gymportal/internal/domain/pilates"
)

// PilatesWeekQuery carries query parameters.
type PilatesWeekQuery struct {
	MemberID string
	Anchor   string // any YYYY-MM-DD in the wanted week; empty means this week
}

// PilatesCell is one slot occurrence in the week grid. Slot is nil for an empty cell.
type PilatesCell struct {
	Slot            *domainPilates.Slot
	Date            string
	Booked          int
	SpotsLeft       int
	State           string // pilates.Cell*
	ClosureName     string
	MyReservationID string
	CanReserve      bool
	CanCancel       bool
}

// PilatesRow is one start time across the seven days.
type PilatesRow struct {
	StartTime string
	Cells     []PilatesCell // always 7, Monday first
}

// PilatesDay is a column header.
type PilatesDay struct {
	Date        time.Time
	IsToday     bool
	ClosureName string
}

// PilatesWeekResult carries the week grid.
type PilatesWeekResult struct {
	Start    time.Time
	Days     []PilatesDay
	Rows     []PilatesRow
	PrevWeek string
	NextWeek string
	ThisWeek string
}

// PilatesWeekDeps holds dependencies for PilatesWeek.
type PilatesWeekDeps struct {
	PilatesStore PilatesStore
	ClosureStore ClosureStore
	Location     *time.Location
	Cutoff       time.Duration
	Now          func() time.Time
}

// QueryPilatesWeek lays out the weekly timetable for the week containing the anchor.
// PRE: Anchor, when set, is YYYY-MM-DD
// POST: Rows are the distinct slot start times in ascending order; each row has 7 cells
func QueryPilatesWeek(ctx context.Context, query PilatesWeekQuery, deps PilatesWeekDeps) (PilatesWeekResult, error) {
	now := deps.Now().In(deps.Location)
	anchor := calendar.DateOnly(now)
	if query.Anchor != "" {
		var err error
		if anchor, err = calendar.ParseDate(query.Anchor); err != nil {
			return PilatesWeekResult{}, err
		}
	}
	start := calendar.WeekStart(anchor, time.Monday)
	dates := calendar.WeekDays(start)
	from := dates[0].Format(calendar.DateLayout)
	to := dates[6].Format(calendar.DateLayout)

	slots, err := deps.PilatesStore.ListSlots(ctx)
	if err != nil {
		return PilatesWeekResult{}, err
	}
	reservations, err := deps.PilatesStore.ListReservationsByDateRange(ctx, from, to)
	if err != nil {
		return PilatesWeekResult{}, err
	}
	closures, err := deps.ClosureStore.ListOverlapping(ctx, from, to)
	if err != nil {
		return PilatesWeekResult{}, err
	}

	type occurrence struct{ slotID, date string }
	booked := make(map[occurrence]int)
	mine := make(map[occurrence]string)
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		key := occurrence{r.SlotID, r.Date}
		booked[key]++
		if r.MemberID == query.MemberID {
			mine[key] = r.ID
		}
	}

	todayKey := calendar.DateOnly(now).Format(calendar.DateLayout)
	days := make([]PilatesDay, len(dates))
	for i, d := range dates {
		days[i] = PilatesDay{Date: d, IsToday: d.Format(calendar.DateLayout) == todayKey, ClosureName: closureName(closures, d)}
	}

	rowIndex := make(map[string]int)
	var starts []string
	for _, s := range slots {
		if _, ok := rowIndex[s.StartTime]; !ok {
			rowIndex[s.StartTime] = -1
			starts = append(starts, s.StartTime)
		}
	}
	sort.Strings(starts)
	rows := make([]PilatesRow, len(starts))
	for i, st := range starts {
		rowIndex[st] = i
		rows[i] = PilatesRow{StartTime: st, Cells: make([]PilatesCell, 7)}
		for j := range rows[i].Cells {
			rows[i].Cells[j].Date = dates[j].Format(calendar.DateLayout)
		}
	}

	for i := range slots {
		s := slots[i]
		if s.Weekday() < 0 {
			continue
		}
		col := int((s.Weekday() + 6) % 7) // Monday = 0
		date := dates[col]
		cell := &rows[rowIndex[s.StartTime]].Cells[col]
		key := occurrence{s.ID, cell.Date}
		begin, err := s.StartsAt(date, deps.Location)
		if err != nil {
			continue
		}

		cell.Slot = &s
		cell.Booked = booked[key]
		cell.SpotsLeft = max(s.Capacity-cell.Booked, 0)
		cell.MyReservationID = mine[key]
		cell.ClosureName = days[col].ClosureName
		cell.State = s.CellState(begin, now, cell.ClosureName != "", cell.Booked, cell.MyReservationID != "")
		switch cell.State {
		case domainPilates.CellAvailable, domainPilates.CellFewSpots:
			cell.CanReserve = true
		case domainPilates.CellBooked:
			cell.CanCancel = now.Before(begin.Add(-deps.Cutoff))
		}
	}

	return PilatesWeekResult{
		Start:    start,
		Days:     days,
		Rows:     rows,
		PrevWeek: start.AddDate(0, 0, -7).Format(calendar.DateLayout),
		NextWeek: start.AddDate(0, 0, 7).Format(calendar.DateLayout),
		ThisWeek: calendar.WeekStart(calendar.DateOnly(now), time.Monday).Format(calendar.DateLayout),
	}, nil
}

// closureName returns the name of the first closure covering d, or "".
func closureName(closures []domainClosure.Closure, d time.Time) string {
	for i := range closures {
		if closures[i].Contains(d) {
			return closures[i].Name
		}
	}
	return ""
}
