package projections

import (
	"context"
	"time"
)

// DeskTodayResult summarises today's entries for the scan page.
type DeskTodayResult struct {
	Date    string
	Members int
	Guests  int
}

// QueryDeskToday counts today's member and guest entries.
// PRE: loc is the gym's location
// POST: Members counts distinct members; Guests counts guest entries
func QueryDeskToday(ctx context.Context, store AttendanceStore, loc *time.Location, now time.Time) (DeskTodayResult, error) {
	date := now.In(loc).Format("2006-01-02")
	records, err := store.ListByDate(ctx, date)
	if err != nil {
		return DeskTodayResult{}, err
	}
	res := DeskTodayResult{Date: date}
	seen := make(map[string]bool)
	for _, a := range records {
		if a.Guest {
			res.Guests++
			continue
		}
		if !seen[a.MemberID] {
			seen[a.MemberID] = true
			res.Members++
		}
	}
	return res, nil
}
