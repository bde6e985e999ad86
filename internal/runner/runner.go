package runner

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/memscope/memscope/internal/overlay"
	"github.com/memscope/memscope/internal/snapshot"
)

// ErrTargetGone is returned by Run when the target window or process
// disappears. It marks a clean, operator-visible shutdown.
var ErrTargetGone = errors.New("target gone")

// Builder produces one snapshot per call.
type Builder interface {
	Build(width, height int) (*snapshot.Snapshot, error)
}

// Observer is told the outcome of every build.
type Observer interface {
	Observe(snap *snapshot.Snapshot, err error)
}

// Dependencies holds all dependencies for the runner
type Dependencies struct {
	Target   overlay.Target
	Builder  Builder
	Observer Observer
	Logger   *slog.Logger

	// Advance is called once per tick, typically SessionContext.Advance.
	Advance func() uint64
}

// Runner drives one read-resolve-project cycle per Tick. It is not safe for
// concurrent use; all ticks run on the caller's goroutine.
type Runner struct {
	deps Dependencies
	geom overlay.Geometry
	last *snapshot.Snapshot
}

// New creates a runner. initial is the geometry used until the target
// reports one.
func New(deps Dependencies, initial overlay.Geometry) *Runner {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Runner{deps: deps, geom: initial}
}

// Tick runs one cycle: target liveness, geometry, build, observe. ok is false
// once the target is gone. A failed build yields a frame with no snapshot.
func (r *Runner) Tick() (overlay.Frame, bool) {
	if r.deps.Advance != nil {
		r.deps.Advance()
	}

	if !r.deps.Target.Alive() {
		r.deps.Logger.Info("Target no longer valid")
		return overlay.Frame{}, false
	}

	if g, ok := r.deps.Target.Geometry(); ok && g.Valid() {
		if g != r.geom {
			r.deps.Logger.Debug("Target geometry changed", "from", r.geom.String(), "to", g.String())
		}
		r.geom = g
	}

	snap, err := r.deps.Builder.Build(r.geom.Width, r.geom.Height)
	if r.deps.Observer != nil {
		r.deps.Observer.Observe(snap, err)
	}
	if err != nil {
		snap = nil
	}
	r.last = snap

	return overlay.Frame{Snapshot: snap, Geometry: r.geom}, true
}

// Last is the snapshot of the most recent tick, nil if that build failed.
func (r *Runner) Last() *snapshot.Snapshot {
	return r.last
}

func (r *Runner) Geometry() overlay.Geometry {
	return r.geom
}

// Run ticks until ctx is cancelled or the target goes away, sleeping pacing
// between ticks. It returns nil on cancellation and ErrTargetGone on loss.
func (r *Runner) Run(ctx context.Context, pacing time.Duration) error {
	var timer *time.Timer
	if pacing > 0 {
		timer = time.NewTimer(pacing)
		defer timer.Stop()
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		if _, ok := r.Tick(); !ok {
			return ErrTargetGone
		}

		if timer == nil {
			continue
		}
		timer.Reset(pacing)
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
}
