// Package perf keeps a bounded in-memory window of request and query timings
// for the admin performance endpoint.
package perf

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingSize is the default capacity of the ring buffer.
const DefaultRingSize = 1000

// Kind distinguishes HTTP requests from database queries.
type Kind uint8

const (
	KindRequest Kind = iota
	KindQuery
)

// Entry is a single timing sample.
type Entry struct {
	Kind     Kind
	Name     string // "GET /bookings" or "SELECT booking"
	Status   int    // HTTP status, 0 for queries
	Failed   bool   // 5xx response or query error
	Duration time.Duration
	At       time.Time
}

// Collector is a fixed-size ring of entries. When full, the oldest entry is
// overwritten. Aggregation only happens in Snapshot.
type Collector struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	total   atomic.Int64
}

// NewCollector creates a collector holding up to size entries.
// PRE: size > 0, otherwise DefaultRingSize is used
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{entries: make([]Entry, size)}
}

// Record stores e, overwriting the oldest entry when the ring is full.
// Safe for concurrent use.
func (c *Collector) Record(e Entry) {
	c.mu.Lock()
	c.entries[c.next] = e
	c.next = (c.next + 1) % len(c.entries)
	c.mu.Unlock()
	c.total.Add(1)
}

// TotalRecorded returns the number of entries ever recorded.
func (c *Collector) TotalRecorded() int64 {
	return c.total.Load()
}

// Stat aggregates samples for one name.
type Stat struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Errors int     `json:"errors"`
	AvgMs  float64 `json:"avg_ms"`
	P95Ms  float64 `json:"p95_ms"`
	MaxMs  float64 `json:"max_ms"`
}

// Snapshot is the aggregated view returned to the admin endpoint.
type Snapshot struct {
	Since          time.Time `json:"since"`
	TotalRecorded  int64     `json:"total_recorded"`
	Requests       int       `json:"requests"`
	Queries        int       `json:"queries"`
	RequestErrors  int       `json:"request_errors"`
	RequestP50Ms   float64   `json:"request_p50_ms"`
	RequestP95Ms   float64   `json:"request_p95_ms"`
	RequestP99Ms   float64   `json:"request_p99_ms"`
	QueryP95Ms     float64   `json:"query_p95_ms"`
	SlowestRoutes  []Stat    `json:"slowest_routes"`
	SlowestQueries []Stat    `json:"slowest_queries"`
}

// Snapshot aggregates entries recorded at or after since, keeping the topN
// slowest routes and queries ranked by p95.
func (c *Collector) Snapshot(since time.Time, topN int) Snapshot {
	c.mu.Lock()
	buf := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if !e.At.IsZero() && !e.At.Before(since) {
			buf = append(buf, e)
		}
	}
	c.mu.Unlock()

	snap := Snapshot{Since: since, TotalRecorded: c.TotalRecorded()}
	var reqMs, queryMs []float64
	routes := map[string][]Entry{}
	queries := map[string][]Entry{}

	for _, e := range buf {
		ms := toMs(e.Duration)
		switch e.Kind {
		case KindRequest:
			snap.Requests++
			if e.Failed {
				snap.RequestErrors++
			}
			reqMs = append(reqMs, ms)
			routes[e.Name] = append(routes[e.Name], e)
		case KindQuery:
			snap.Queries++
			queryMs = append(queryMs, ms)
			queries[e.Name] = append(queries[e.Name], e)
		}
	}

	sort.Float64s(reqMs)
	sort.Float64s(queryMs)
	snap.RequestP50Ms = percentile(reqMs, 50)
	snap.RequestP95Ms = percentile(reqMs, 95)
	snap.RequestP99Ms = percentile(reqMs, 99)
	snap.QueryP95Ms = percentile(queryMs, 95)
	snap.SlowestRoutes = rank(routes, topN)
	snap.SlowestQueries = rank(queries, topN)
	return snap
}

func toMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

// percentile interpolates the p-th percentile of an ascending slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p / 100) * float64(len(sorted)-1)
	lo, hi := int(math.Floor(idx)), int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func rank(groups map[string][]Entry, topN int) []Stat {
	stats := make([]Stat, 0, len(groups))
	for name, entries := range groups {
		s := Stat{Name: name, Count: len(entries)}
		durations := make([]float64, len(entries))
		var sum float64
		for i, e := range entries {
			ms := toMs(e.Duration)
			durations[i] = ms
			sum += ms
			if ms > s.MaxMs {
				s.MaxMs = ms
			}
			if e.Failed {
				s.Errors++
			}
		}
		sort.Float64s(durations)
		s.AvgMs = sum / float64(len(entries))
		s.P95Ms = percentile(durations, 95)
		stats = append(stats, s)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].P95Ms != stats[j].P95Ms {
			return stats[i].P95Ms > stats[j].P95Ms
		}
		return stats[i].Name < stats[j].Name
	})
	if topN > 0 && len(stats) > topN {
		stats = stats[:topN]
	}
	return stats
}
