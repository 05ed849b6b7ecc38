package tagger

import (
	"slices"
	"sync"
	"time"
)

// call is one request to the remote tagger.
type call struct {
	at        time.Time
	latencyMs int64
	runes     int
	err       error
}

// StatsSnapshot aggregates the tagger calls inside the rolling window.
// Latency fields cover every call, failed ones included.
type StatsSnapshot struct {
	Count     int     `json:"count"`
	Failed    int     `json:"failed"`
	Retryable int     `json:"retryable"`
	Runes     int     `json:"runes"`
	MinMs     int64   `json:"min_ms"`
	MaxMs     int64   `json:"max_ms"`
	AvgMs     float64 `json:"avg_ms"`
	P50Ms     float64 `json:"p50_ms"`
	P95Ms     float64 `json:"p95_ms"`
	P99Ms     float64 `json:"p99_ms"`
}

// Stats keeps remote tagger calls newer than a rolling window.
type Stats struct {
	mu     sync.Mutex
	calls  []call
	window time.Duration
}

func NewStats(window time.Duration) *Stats {
	if window <= 0 {
		window = time.Hour
	}
	return &Stats{window: window}
}

// Record adds a call that sent the given number of runes and ended with err.
func (s *Stats) Record(latency time.Duration, runes int, err error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked(now)
	s.calls = append(s.calls, call{
		at:        now,
		latencyMs: max(latency.Milliseconds(), 0),
		runes:     runes,
		err:       err,
	})
}

func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked(time.Now())
	if len(s.calls) == 0 {
		return StatsSnapshot{}
	}

	var snap StatsSnapshot
	latencies := make([]int64, len(s.calls))
	var total int64
	for i, c := range s.calls {
		latencies[i] = c.latencyMs
		total += c.latencyMs
		snap.Runes += c.runes
		switch {
		case c.err == nil:
		case IsRetryable(c.err):
			snap.Retryable++
		default:
			snap.Failed++
		}
	}
	slices.Sort(latencies)

	snap.Count = len(latencies)
	snap.MinMs = latencies[0]
	snap.MaxMs = latencies[len(latencies)-1]
	snap.AvgMs = float64(total) / float64(len(latencies))
	snap.P50Ms = percentile(latencies, 50)
	snap.P95Ms = percentile(latencies, 95)
	snap.P99Ms = percentile(latencies, 99)
	return snap
}

func (s *Stats) expireLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	i := 0
	for i < len(s.calls) && s.calls[i].at.Before(cutoff) {
		i++
	}
	s.calls = slices.Delete(s.calls, 0, i)
}

// percentile interpolates linearly between the closest ranks of sorted.
func percentile(sorted []int64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return float64(sorted[0])
	case pct >= 100:
		return float64(sorted[len(sorted)-1])
	}

	rank := float64(len(sorted)-1) * pct / 100.0
	lower := int(rank)
	if lower+1 >= len(sorted) {
		return float64(sorted[lower])
	}
	frac := rank - float64(lower)
	return float64(sorted[lower]) + float64(sorted[lower+1]-sorted[lower])*frac
}
