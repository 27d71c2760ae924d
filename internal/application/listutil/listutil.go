// Package listutil parses list query parameters (page, sort, filter) and
// slices in-memory result sets for the member history pages.
package listutil

import (
	"net/url"
	"strconv"
)

// Sort directions
const (
	Asc  = "asc"
	Desc = "desc"
)

// DefaultPerPage is the default number of rows per page.
const DefaultPerPage = 10

// PerPageOptions are the allowed rows-per-page values.
var PerPageOptions = []int{10, 20, 50}

// Params is a parsed list request.
type Params struct {
	Page    int               // 1-indexed
	PerPage int               // one of PerPageOptions
	Sort    string            // one of the allowed columns, or the default
	Dir     string            // Asc or Desc
	Filters map[string]string // recognised filter keys only
}

// Spec describes what a list accepts.
type Spec struct {
	SortColumns []string // first entry is the default
	DefaultDir  string
	FilterKeys  []string
}

// Parse reads page, per_page, sort, dir and filters from q.
// PRE: spec.SortColumns is non-empty
// POST: every field holds a valid value; unknown input falls back to defaults
func Parse(q url.Values, spec Spec) Params {
	p := Params{Filters: make(map[string]string)}

	p.Page, _ = strconv.Atoi(q.Get("page"))
	if p.Page < 1 {
		p.Page = 1
	}
	p.PerPage, _ = strconv.Atoi(q.Get("per_page"))
	if !contains(PerPageOptions, p.PerPage) {
		p.PerPage = DefaultPerPage
	}

	p.Sort = q.Get("sort")
	if !contains(spec.SortColumns, p.Sort) {
		p.Sort = spec.SortColumns[0]
	}
	p.Dir = q.Get("dir")
	if p.Dir != Asc && p.Dir != Desc {
		p.Dir = spec.DefaultDir
		if p.Dir == "" {
			p.Dir = Asc
		}
	}

	for _, key := range spec.FilterKeys {
		if v := q.Get(key); v != "" {
			p.Filters[key] = v
		}
	}
	return p
}

// Query encodes p back into URL values, for pagination links.
func (p Params) Query() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("per_page", strconv.Itoa(p.PerPage))
	q.Set("sort", p.Sort)
	q.Set("dir", p.Dir)
	for k, v := range p.Filters {
		q.Set(k, v)
	}
	return q
}

// PageInfo carries pagination metadata for rendering.
type PageInfo struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPageInfo computes pagination metadata.
// PRE: total >= 0
// POST: TotalPages >= 1; Page clamped to [1, TotalPages]
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	page = min(max(page, 1), totalPages)
	return PageInfo{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Offset returns the index of the first row on the current page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// HasPrev reports whether there is a page before this one.
func (p PageInfo) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether there is a page after this one.
func (p PageInfo) HasNext() bool { return p.Page < p.TotalPages }

// PageNumbers returns at most 5 page numbers centred on the current page.
func (p PageInfo) PageNumbers() []int {
	const maxButtons = 5
	start := max(p.Page-maxButtons/2, 1)
	end := start + maxButtons - 1
	if end > p.TotalPages {
		end = p.TotalPages
		start = max(end-maxButtons+1, 1)
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// Paginate returns the rows of items on the page described by info.
// POST: result aliases items; it is empty when the page is past the end
func Paginate[T any](items []T, info PageInfo) []T {
	from := info.Offset()
	if from >= len(items) {
		return items[:0]
	}
	to := min(from+info.PerPage, len(items))
	return items[from:to]
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
