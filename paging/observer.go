package paging

import (
	"context"
	"fmt"
	"log/slog"
)

// Observer receives every processed access. Observers must not
// modify engine state.
type Observer interface {
	OnAccess(ev AccessEvent)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(ev AccessEvent)

// OnAccess calls f(ev)
func (f ObserverFunc) OnAccess(ev AccessEvent) {
	f(ev)
}

// DebugObserver logs each access at debug level
type DebugObserver struct {
	logger *slog.Logger
}

// NewDebugObserver creates an observer that traces accesses to logger
func NewDebugObserver(logger *slog.Logger) *DebugObserver {
	return &DebugObserver{logger: logger}
}

// OnAccess logs the access and its outcome
func (d *DebugObserver) OnAccess(ev AccessEvent) {
	if !d.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	attrs := []slog.Attr{
		slog.Uint64("access", ev.Index),
		slog.String("address", formatAddress(ev.Address)),
		slog.String("op", ev.Op.String()),
		slog.Uint64("page", uint64(ev.Page)),
		slog.String("result", ev.Outcome.String()),
		slog.Uint64("frame", uint64(ev.Frame)),
	}

	if ev.Outcome == OutcomeMissEvict {
		attrs = append(attrs,
			slog.Group("victim",
				slog.Uint64("frame", uint64(ev.VictimFrame)),
				slog.Uint64("page", uint64(ev.VictimPage)),
				slog.Bool("dirty", ev.VictimDirty),
				slog.Uint64("residency", ev.Residency),
			),
		)
	}

	d.logger.LogAttrs(context.Background(), slog.LevelDebug, "access", attrs...)
}

func formatAddress(addr uint32) string {
	return fmt.Sprintf("0x%08x", addr)
}
