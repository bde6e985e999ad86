package logging

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/lo"
)

// MultiHandler fans a record out to the file, OTel and GELF sinks. Every
// enabled sink gets the record even when an earlier one fails.
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler drops nil handlers, so optional sinks can be passed as is.
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{
		handlers: lo.Filter(handlers, func(h slog.Handler, _ int) bool { return h != nil }),
	}
}

// Len is the number of sinks.
func (m *MultiHandler) Len() int {
	return len(m.handlers)
}

// Enabled returns true if any handler is enabled for the given level.
func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return lo.SomeBy(m.handlers, func(h slog.Handler) bool { return h.Enabled(ctx, level) })
}

// Handle sends a clone of r to each enabled sink and joins their errors.
func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &MultiHandler{handlers: lo.Map(m.handlers, func(h slog.Handler, _ int) slog.Handler {
		return h.WithAttrs(attrs)
	})}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return m
	}
	return &MultiHandler{handlers: lo.Map(m.handlers, func(h slog.Handler, _ int) slog.Handler {
		return h.WithGroup(name)
	})}
}
