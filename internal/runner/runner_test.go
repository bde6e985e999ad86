package runner

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memscope/memscope/internal/monitor"
	"github.com/memscope/memscope/internal/overlay"
	"github.com/memscope/memscope/internal/snapshot"
)

type fakeTarget struct {
	// aliveFor is the number of Alive calls that report true; <0 means forever.
	aliveFor int
	geoms    []overlay.Geometry
	calls    int
}

func (f *fakeTarget) Alive() bool {
	if f.aliveFor < 0 {
		return true
	}
	if f.aliveFor == 0 {
		return false
	}
	f.aliveFor--
	return true
}

func (f *fakeTarget) Geometry() (overlay.Geometry, bool) {
	if len(f.geoms) == 0 {
		return overlay.Geometry{}, false
	}
	g := f.geoms[min(f.calls, len(f.geoms)-1)]
	f.calls++
	return g, true
}

type sizeCall struct{ w, h int }

type fakeBuilder struct {
	calls []sizeCall
	err   error
	hook  func(n int)
}

func (b *fakeBuilder) Build(width, height int) (*snapshot.Snapshot, error) {
	b.calls = append(b.calls, sizeCall{width, height})
	if b.hook != nil {
		b.hook(len(b.calls))
	}
	if b.err != nil {
		return nil, b.err
	}
	return &snapshot.Snapshot{Width: width, Height: height, Players: make([]snapshot.PlayerSnapshot, 2)}, nil
}

func testLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

var initial = overlay.Geometry{Width: 1920, Height: 1080}

func TestTick_BuildsWithTargetGeometry(t *testing.T) {
	log, buf := testLogger()
	tgt := &fakeTarget{aliveFor: -1, geoms: []overlay.Geometry{{X: 5, Y: 6, Width: 1280, Height: 720}}}
	b := &fakeBuilder{}
	mon := monitor.NewService(monitor.Dependencies{Logger: log})

	r := New(Dependencies{Target: tgt, Builder: b, Observer: mon, Logger: log}, initial)
	frame, ok := r.Tick()

	require.True(t, ok)
	require.NotNil(t, frame.Snapshot)
	assert.Equal(t, overlay.Geometry{X: 5, Y: 6, Width: 1280, Height: 720}, frame.Geometry)
	assert.Equal(t, []sizeCall{{1280, 720}}, b.calls)
	assert.Same(t, frame.Snapshot, r.Last())
	assert.Equal(t, uint64(1), mon.Status().Built)
	assert.Contains(t, buf.String(), "Target geometry changed")
}

func TestTick_KeepsGeometryWhenUnreadable(t *testing.T) {
	tgt := &fakeTarget{aliveFor: -1}
	b := &fakeBuilder{}

	r := New(Dependencies{Target: tgt, Builder: b}, initial)
	frame, ok := r.Tick()

	require.True(t, ok)
	assert.Equal(t, initial, frame.Geometry)
	assert.Equal(t, []sizeCall{{1920, 1080}}, b.calls)
}

func TestTick_IgnoresInvalidGeometry(t *testing.T) {
	tgt := &fakeTarget{aliveFor: -1, geoms: []overlay.Geometry{{Width: 800, Height: 600}, {Width: 0, Height: 0}}}
	r := New(Dependencies{Target: tgt, Builder: &fakeBuilder{}}, initial)

	r.Tick()
	frame, _ := r.Tick()
	assert.Equal(t, overlay.Geometry{Width: 800, Height: 600}, frame.Geometry)
	assert.Equal(t, frame.Geometry, r.Geometry())
}

func TestTick_BuildFailureYieldsEmptyFrame(t *testing.T) {
	tgt := &fakeTarget{aliveFor: -1}
	mon := monitor.NewService(monitor.Dependencies{})
	r := New(Dependencies{Target: tgt, Builder: &fakeBuilder{err: snapshot.ErrNoLocalPawn}, Observer: mon}, initial)

	frame, ok := r.Tick()
	require.True(t, ok, "a failed build is not fatal")
	assert.Nil(t, frame.Snapshot)
	assert.Nil(t, r.Last())
	assert.Equal(t, uint64(1), mon.Status().Failed)
}

func TestTick_TargetGone(t *testing.T) {
	log, buf := testLogger()
	b := &fakeBuilder{}
	r := New(Dependencies{Target: &fakeTarget{aliveFor: 0}, Builder: b, Logger: log}, initial)

	_, ok := r.Tick()
	assert.False(t, ok)
	assert.Empty(t, b.calls, "nothing is read once the target is gone")
	assert.Contains(t, buf.String(), "Target no longer valid")
}

func TestTick_Advance(t *testing.T) {
	var ticks uint64
	r := New(Dependencies{
		Target:  &fakeTarget{aliveFor: -1},
		Builder: &fakeBuilder{},
		Advance: func() uint64 { ticks++; return ticks },
	}, initial)

	for i := 0; i < 3; i++ {
		r.Tick()
	}
	assert.Equal(t, uint64(3), ticks)
}

func TestRun_StopsWhenTargetGone(t *testing.T) {
	b := &fakeBuilder{}
	r := New(Dependencies{Target: &fakeTarget{aliveFor: 3}, Builder: b}, initial)

	err := r.Run(context.Background(), time.Millisecond)
	assert.ErrorIs(t, err, ErrTargetGone)
	assert.Len(t, b.calls, 3)
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := &fakeBuilder{}
	b.hook = func(int) { cancel() }
	r := New(Dependencies{Target: &fakeTarget{aliveFor: -1}, Builder: b}, initial)

	err := r.Run(ctx, time.Hour)
	assert.NoError(t, err, "cancellation interrupts the pacing wait")
	assert.Len(t, b.calls, 1)
}

func TestRun_NoPacing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := &fakeBuilder{}
	b.hook = func(n int) {
		if n == 5 {
			cancel()
		}
	}
	r := New(Dependencies{Target: &fakeTarget{aliveFor: -1}, Builder: b}, initial)

	require.NoError(t, r.Run(ctx, 0))
	assert.Len(t, b.calls, 5)
}

func TestRunner_IsFrameSource(t *testing.T) {
	r := New(Dependencies{Target: &fakeTarget{aliveFor: -1}, Builder: &fakeBuilder{}}, initial)
	var _ overlay.FrameSource = r

	frame, ok := r.Tick()
	require.True(t, ok)
	assert.Len(t, frame.Snapshot.Players, 2)
}
