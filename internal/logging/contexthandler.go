package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// ContextProvider is a function that returns dynamic context attributes.
type ContextProvider func() []slog.Attr

// ContextHandler wraps another handler and appends the attributes returned
// by provider to every record at the time it is handled.
type ContextHandler struct {
	inner    slog.Handler
	provider ContextProvider
}

func NewContextHandler(inner slog.Handler, provider ContextProvider) *ContextHandler {
	return &ContextHandler{inner: inner, provider: provider}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.provider != nil {
		r.AddAttrs(h.provider()...)
	}
	return h.inner.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.wrap(h.inner.WithAttrs(attrs))
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.wrap(h.inner.WithGroup(name))
}

func (h *ContextHandler) wrap(inner slog.Handler) *ContextHandler {
	return &ContextHandler{inner: inner, provider: h.provider}
}

// SessionContext carries the attached pid and the current tick number for
// ContextHandler. It is written by the tick loop and read by any goroutine
// that logs.
type SessionContext struct {
	pid  atomic.Uint32
	tick atomic.Uint64
}

func (s *SessionContext) SetPid(pid uint32) {
	s.pid.Store(pid)
}

// Advance bumps the tick counter and returns the new value.
func (s *SessionContext) Advance() uint64 {
	return s.tick.Add(1)
}

func (s *SessionContext) Tick() uint64 {
	return s.tick.Load()
}

// Attrs is a ContextProvider. Unset values are left out.
func (s *SessionContext) Attrs() []slog.Attr {
	var attrs []slog.Attr
	if pid := s.pid.Load(); pid != 0 {
		attrs = append(attrs, slog.Uint64("pid", uint64(pid)))
	}
	if tick := s.tick.Load(); tick != 0 {
		attrs = append(attrs, slog.Uint64("tick", tick))
	}
	return attrs
}
