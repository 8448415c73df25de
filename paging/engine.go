package paging

import (
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"
)

// Stats holds the counters reported at the end of a run
type Stats struct {
	TotalAccesses      uint64 `json:"total_accesses"`
	PageFaults         uint64 `json:"page_faults"`
	PagesWrittenToDisk uint64 `json:"pages_written_to_disk"`
}

// RecordSource yields trace records until io.EOF
type RecordSource interface {
	Next() (AccessRecord, error)
}

// Engine replays accesses against a simulated physical memory.
// An Engine is owned by a single run and is not safe for concurrent use.
type Engine struct {
	translator AddressTranslator
	frames     *FrameTable
	replacer   Replacer
	stats      Stats
	clock      uint64 // incremented once per valid access
	observers  []Observer
	logger     *slog.Logger
	rng        *rand.Rand
}

// EngineOption customizes an Engine
type EngineOption func(*Engine)

// WithLogger sets the logger used for skipped-access warnings
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithObserver registers an observer called after every valid access
func WithObserver(o Observer) EngineOption {
	return func(e *Engine) {
		e.observers = append(e.observers, o)
	}
}

// WithRand sets the random source for the random policy.
// It takes precedence over Config.Seed.
func WithRand(rng *rand.Rand) EngineOption {
	return func(e *Engine) {
		e.rng = rng
	}
}

// EngineParams are the inputs the engine needs, independent of the
// configuration surface. Ranges are the caller's responsibility.
type EngineParams struct {
	Algorithm     string
	PageSizeBytes uint32
	TotalFrames   uint32
	Seed          *uint64 // nil: seed the random policy from the wall clock
}

// NewEngine creates an engine with an empty frame table sized from cfg
func NewEngine(cfg *Config, opts ...EngineOption) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewEngineWithParams(EngineParams{
		Algorithm:     cfg.Algorithm,
		PageSizeBytes: cfg.PageSizeBytes(),
		TotalFrames:   cfg.TotalFrames(),
		Seed:          cfg.Seed,
	}, opts...)
}

// NewEngineWithParams creates an engine without the configuration range
// checks. TotalFrames must still be in [1, MaxFrames].
func NewEngineWithParams(p EngineParams, opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		translator: NewAddressTranslator(p.PageSizeBytes),
		logger:     discardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}

	frames, err := NewFrameTable(p.TotalFrames)
	if err != nil {
		return nil, err
	}
	e.frames = frames

	if e.rng == nil {
		seed := uint64(time.Now().UnixNano())
		if p.Seed != nil {
			seed = *p.Seed
		}
		e.rng = NewSeededRand(seed)
	}

	replacer, err := NewReplacer(p.Algorithm, frames.Size(), e.rng)
	if err != nil {
		return nil, err
	}
	e.replacer = replacer

	return e, nil
}

// Access processes one trace record.
// Records with an invalid operation return ErrCodeInvalidOperation and
// leave every counter untouched.
func (e *Engine) Access(rec AccessRecord) (AccessEvent, error) {
	if rec.Op != OpRead && rec.Op != OpWrite {
		return AccessEvent{}, ErrInvalidOperation("Access", rec.Raw)
	}

	e.stats.TotalAccesses++
	e.clock++

	write := rec.Op.IsWrite()
	page := e.translator.Translate(rec.Address)

	ev := AccessEvent{
		Index:   e.stats.TotalAccesses,
		Address: rec.Address,
		Op:      rec.Op,
		Page:    page,
	}

	if idx, ok := e.frames.Lookup(page); ok {
		e.frames.Touch(idx, write, e.clock)
		ev.Outcome = OutcomeHit
		ev.Frame = idx
		e.notify(ev)
		return ev, nil
	}

	e.stats.PageFaults++

	if idx, ok := e.frames.FindFree(); ok {
		e.frames.Load(idx, page, write, e.clock)
		ev.Outcome = OutcomeMissFree
		ev.Frame = idx
		e.notify(ev)
		return ev, nil
	}

	victim := e.replacer.Victim(e.frames)
	if victim >= e.frames.Size() {
		return AccessEvent{}, ErrFrameOutOfRange("Access", victim, e.frames.Size())
	}
	old := e.frames.Frame(victim)
	if old.dirty {
		e.stats.PagesWrittenToDisk++
	}

	ev.Outcome = OutcomeMissEvict
	ev.Frame = victim
	ev.VictimFrame = victim
	ev.VictimPage = old.pageNumber
	ev.VictimDirty = old.dirty
	ev.Residency = e.clock - old.loadedAt

	e.frames.Load(victim, page, write, e.clock)
	e.notify(ev)
	return ev, nil
}

func (e *Engine) notify(ev AccessEvent) {
	for _, o := range e.observers {
		o.OnAccess(ev)
	}
}

// Run consumes src until it is exhausted and returns the final stats.
// Records with an invalid operation are logged and skipped. Any other
// source error stops the run; the stats accumulated so far are returned
// with it.
func (e *Engine) Run(src RecordSource) (Stats, error) {
	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			return e.stats, nil
		}
		if err != nil {
			return e.stats, err
		}

		if _, err := e.Access(rec); err != nil {
			if IsErrorCode(err, ErrCodeInvalidOperation) {
				e.logger.Warn("skipping access with invalid operation",
					slog.String("op", string(rec.Raw)),
					slog.String("address", formatAddress(rec.Address)),
				)
				continue
			}
			return e.stats, err
		}
	}
}

// Stats returns a snapshot of the counters
func (e *Engine) Stats() Stats {
	return e.stats
}

// Frames returns the frame table. Callers must treat it as read-only.
func (e *Engine) Frames() *FrameTable {
	return e.frames
}

// TotalFrames returns the number of physical frames
func (e *Engine) TotalFrames() uint32 {
	return e.frames.Size()
}

// OffsetBits returns the page offset width used for translation
func (e *Engine) OffsetBits() uint32 {
	return e.translator.OffsetBits()
}

// Algorithm returns the active replacement policy name
func (e *Engine) Algorithm() string {
	return e.replacer.Name()
}
