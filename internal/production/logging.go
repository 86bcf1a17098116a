package production

import (
	"context"
	"log/slog"

	"github.com/comalice/transientx"
)

// SlogObserver logs protocol events. Clones and scope changes are logged at
// Debug, seals at Info and contract violations at Warn.
type SlogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver returns an observer logging to logger, or to slog.Default()
// when logger is nil.
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogObserver{logger: logger.With("component", "transientx")}
}

func (o *SlogObserver) Observe(e transientx.Event) {
	level := slog.LevelDebug
	switch e.Kind {
	case transientx.EventSeal:
		level = slog.LevelInfo
	case transientx.EventViolation:
		level = slog.LevelWarn
	}
	ctx := context.Background()
	if !o.logger.Enabled(ctx, level) {
		return
	}
	attrs := []slog.Attr{
		slog.String("kind", e.Kind.String()),
		slog.String("op", e.Op),
		slog.Int("scope", e.Scope),
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("error", e.Err.Error()))
	}
	o.logger.LogAttrs(ctx, level, "mutation protocol event", attrs...)
}
