package paging

import (
	"log/slog"
	"slices"
	"time"
)

// Histogram keeps the last maxSize integer samples in a ring and answers
// order statistics over them. Percentiles interpolate between ranks.
type Histogram struct {
	ring   []uint64
	next   int // ring slot written by the next Record
	full   bool
	sorted []uint64 // sorted copy of the ring, nil when stale
}

// NewHistogram creates a histogram holding up to maxSize samples
func NewHistogram(maxSize int) *Histogram {
	if maxSize <= 0 {
		maxSize = 10000
	}
	return &Histogram{ring: make([]uint64, maxSize)}
}

// Record adds a sample, overwriting the oldest once the ring is full
func (h *Histogram) Record(v uint64) {
	h.ring[h.next] = v
	h.next++
	if h.next == len(h.ring) {
		h.next = 0
		h.full = true
	}
	h.sorted = nil
}

func (h *Histogram) samples() []uint64 {
	if h.full {
		return h.ring
	}
	return h.ring[:h.next]
}

func (h *Histogram) ordered() []uint64 {
	if h.sorted == nil {
		h.sorted = slices.Clone(h.samples())
		slices.Sort(h.sorted)
	}
	return h.sorted
}

// Percentile returns the p-th percentile (0-100), 0 when empty
func (h *Histogram) Percentile(p float64) float64 {
	s := h.ordered()
	if len(s) == 0 {
		return 0
	}

	rank := p / 100 * float64(len(s)-1)
	lo := int(rank)
	if lo >= len(s)-1 {
		return float64(s[len(s)-1])
	}
	frac := rank - float64(lo)
	return float64(s[lo]) + frac*(float64(s[lo+1])-float64(s[lo]))
}

// Mean returns the sample average
func (h *Histogram) Mean() float64 {
	s := h.samples()
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		sum += float64(v)
	}
	return sum / float64(len(s))
}

// Min returns the smallest sample
func (h *Histogram) Min() uint64 {
	if s := h.ordered(); len(s) > 0 {
		return s[0]
	}
	return 0
}

// Max returns the largest sample
func (h *Histogram) Max() uint64 {
	if s := h.ordered(); len(s) > 0 {
		return s[len(s)-1]
	}
	return 0
}

// Count returns the number of retained samples
func (h *Histogram) Count() int {
	return len(h.samples())
}

// Reset drops every sample
func (h *Histogram) Reset() {
	h.next = 0
	h.full = false
	h.sorted = nil
}

// HistogramSnapshot summarizes a histogram
type HistogramSnapshot struct {
	Count int     `json:"count"`
	Min   uint64  `json:"min"`
	Max   uint64  `json:"max"`
	Mean  float64 `json:"mean"`
	P50   float64 `json:"p50"`
	P95   float64 `json:"p95"`
	P99   float64 `json:"p99"`
}

// Snapshot captures the current distribution
func (h *Histogram) Snapshot() HistogramSnapshot {
	return HistogramSnapshot{
		Count: h.Count(),
		Min:   h.Min(),
		Max:   h.Max(),
		Mean:  h.Mean(),
		P50:   h.Percentile(50),
		P95:   h.Percentile(95),
		P99:   h.Percentile(99),
	}
}

// Metrics is an Observer that derives replacement metrics from access
// events: hit rate, first-touch misses, and how long evicted pages stayed
// resident (in accesses).
type Metrics struct {
	reads            uint64
	writes           uint64
	hits             uint64
	misses           uint64
	compulsoryMisses uint64
	evictions        uint64
	dirtyEvictions   uint64

	seen      map[uint32]struct{} // pages referenced at least once
	residency *Histogram
	startTime time.Time
}

// NewMetrics creates a new metrics tracker
func NewMetrics() *Metrics {
	return &Metrics{
		seen:      make(map[uint32]struct{}),
		residency: NewHistogram(10000),
		startTime: time.Now(),
	}
}

// OnAccess records one access event
func (m *Metrics) OnAccess(ev AccessEvent) {
	if ev.Op.IsWrite() {
		m.writes++
	} else {
		m.reads++
	}

	if ev.Outcome == OutcomeHit {
		m.hits++
		return
	}

	m.misses++
	if _, ok := m.seen[ev.Page]; !ok {
		m.seen[ev.Page] = struct{}{}
		m.compulsoryMisses++
	}

	if ev.Outcome == OutcomeMissEvict {
		m.evictions++
		if ev.VictimDirty {
			m.dirtyEvictions++
		}
		m.residency.Record(ev.Residency)
	}
}

func (m *Metrics) GetReads() uint64 {
	return m.reads
}

func (m *Metrics) GetWrites() uint64 {
	return m.writes
}

func (m *Metrics) GetHits() uint64 {
	return m.hits
}

func (m *Metrics) GetMisses() uint64 {
	return m.misses
}

// GetCompulsoryMisses returns misses on pages never referenced before
func (m *Metrics) GetCompulsoryMisses() uint64 {
	return m.compulsoryMisses
}

func (m *Metrics) GetEvictions() uint64 {
	return m.evictions
}

func (m *Metrics) GetDirtyEvictions() uint64 {
	return m.dirtyEvictions
}

// GetDistinctPages returns the number of different pages referenced
func (m *Metrics) GetDistinctPages() uint64 {
	return uint64(len(m.seen))
}

func (m *Metrics) GetHitRate() float64 {
	total := m.hits + m.misses
	if total == 0 {
		return 0.0
	}
	return float64(m.hits) / float64(total)
}

// GetResidency returns the residency distribution of evicted pages
func (m *Metrics) GetResidency() HistogramSnapshot {
	return m.residency.Snapshot()
}

func (m *Metrics) GetElapsed() time.Duration {
	return time.Since(m.startTime)
}

// MetricsSnapshot is the serializable form of Metrics
type MetricsSnapshot struct {
	Reads            uint64            `json:"reads"`
	Writes           uint64            `json:"writes"`
	Hits             uint64            `json:"hits"`
	Misses           uint64            `json:"misses"`
	CompulsoryMisses uint64            `json:"compulsory_misses"`
	Evictions        uint64            `json:"evictions"`
	DirtyEvictions   uint64            `json:"dirty_evictions"`
	DistinctPages    uint64            `json:"distinct_pages"`
	HitRate          float64           `json:"hit_rate"`
	Residency        HistogramSnapshot `json:"residency"`
}

// Snapshot captures the current metrics
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Reads:            m.reads,
		Writes:           m.writes,
		Hits:             m.hits,
		Misses:           m.misses,
		CompulsoryMisses: m.compulsoryMisses,
		Evictions:        m.evictions,
		DirtyEvictions:   m.dirtyEvictions,
		DistinctPages:    m.GetDistinctPages(),
		HitRate:          m.GetHitRate(),
		Residency:        m.GetResidency(),
	}
}

// LogMetrics logs all metrics using structured logging
func (m *Metrics) LogMetrics(logger *slog.Logger, algorithm string) {
	residency := m.GetResidency()

	logger.Info("Replacement Metrics",
		slog.String("algorithm", algorithm),
		slog.Group("accesses",
			slog.Uint64("reads", m.reads),
			slog.Uint64("writes", m.writes),
			slog.Uint64("distinct_pages", m.GetDistinctPages()),
		),
		slog.Group("frames",
			slog.Uint64("hits", m.hits),
			slog.Uint64("misses", m.misses),
			slog.Uint64("compulsory_misses", m.compulsoryMisses),
			slog.Float64("hit_rate", m.GetHitRate()),
			slog.Uint64("evictions", m.evictions),
			slog.Uint64("dirty_evictions", m.dirtyEvictions),
		),
		slog.Group("residency_accesses",
			slog.Int("count", residency.Count),
			slog.Float64("mean", residency.Mean),
			slog.Float64("p50", residency.P50),
			slog.Float64("p95", residency.P95),
			slog.Float64("p99", residency.P99),
		),
		slog.Duration("elapsed", m.GetElapsed()),
	)
}

// Reset clears all metrics
func (m *Metrics) Reset() {
	m.reads = 0
	m.writes = 0
	m.hits = 0
	m.misses = 0
	m.compulsoryMisses = 0
	m.evictions = 0
	m.dirtyEvictions = 0
	clear(m.seen)
	m.residency.Reset()
	m.startTime = time.Now()
}
