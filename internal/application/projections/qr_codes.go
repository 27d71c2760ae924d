package projections

import (
	"context"
	"sort"
	"time"

	domainQR "gymportal/internal/domain/qrcode"
)

// MaxHistoryPerCategory bounds how many inactive codes are listed per category.
const MaxHistoryPerCategory = 5

// QRCodeView is one code with its state at query time.
type QRCodeView struct {
	Code    domainQR.Code
	State   string
	Payload string
}

// QRGroup holds one category's codes, active first then newest first.
type QRGroup struct {
	Category    string
	Codes       []QRCodeView
	Active      int
	CanGenerate bool
}

// MyQRCodesDeps holds dependencies for MyQRCodes.
type MyQRCodesDeps struct {
	CodeStore QRCodeStore
	Now       func() time.Time
}

// QueryMyQRCodes groups the member's codes by category.
// PRE: memberID is non-empty
// POST: One group per category in qrcode.ValidCategories order, even when empty
func QueryMyQRCodes(ctx context.Context, memberID string, deps MyQRCodesDeps) ([]QRGroup, error) {
	codes, err := deps.CodeStore.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	now := deps.Now()

	byCategory := make(map[string][]QRCodeView)
	for _, c := range codes {
		byCategory[c.Category] = append(byCategory[c.Category], QRCodeView{Code: c, State: c.State(now), Payload: c.Payload()})
	}

	groups := make([]QRGroup, 0, len(domainQR.ValidCategories))
	for _, cat := range domainQR.ValidCategories {
		views := byCategory[cat]
		sort.SliceStable(views, func(i, j int) bool {
			ai, aj := views[i].State == domainQR.StateActive, views[j].State == domainQR.StateActive
			if ai != aj {
				return ai
			}
			return views[i].Code.CreatedAt.After(views[j].Code.CreatedAt)
		})

		g := QRGroup{Category: cat, Codes: make([]QRCodeView, 0, len(views))}
		history := 0
		for _, v := range views {
			if v.State == domainQR.StateActive {
				g.Active++
			} else {
				if history == MaxHistoryPerCategory {
					continue
				}
				history++
			}
			g.Codes = append(g.Codes, v)
		}
		g.CanGenerate = cat != domainQR.CategoryGuest || g.Active < domainQR.MaxActiveGuest
		groups = append(groups, g)
	}
	return groups, nil
}
