package overlay

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memscope/memscope/internal/memory"
	"github.com/memscope/memscope/internal/projection"
	"github.com/memscope/memscope/internal/snapshot"
)

type op struct {
	kind       string
	x, y, w, h float32
	c          color.RGBA
	text       string
}

// recordingSurface records every draw call between BeginFrame and EndFrame.
type recordingSurface struct {
	began, ended int
	ops          []op
}

func (r *recordingSurface) BeginFrame() { r.began++ }
func (r *recordingSurface) EndFrame()   { r.ended++ }

func (r *recordingSurface) DrawLine(x1, y1, x2, y2 float32, c color.RGBA, thickness float32) {
	r.ops = append(r.ops, op{kind: "line", x: x1, y: y1, w: x2, h: y2, c: c})
}

func (r *recordingSurface) DrawFilledRect(x, y, w, h float32, c color.RGBA) {
	r.ops = append(r.ops, op{kind: "rect", x: x, y: y, w: w, h: h, c: c})
}

func (r *recordingSurface) DrawFilledCircle(x, y, radius float32, c color.RGBA) {
	r.ops = append(r.ops, op{kind: "circle", x: x, y: y, w: radius, c: c})
}

func (r *recordingSurface) DrawText(x, y float32, s string, c color.RGBA) {
	r.ops = append(r.ops, op{kind: "text", x: x, y: y, c: c, text: s})
}

func (r *recordingSurface) count(kind string) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}

func (r *recordingSurface) find(kind string) []op {
	var out []op
	for _, o := range r.ops {
		if o.kind == kind {
			out = append(out, o)
		}
	}
	return out
}

func testSnapshot(players ...snapshot.PlayerSnapshot) *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Local:   snapshot.LocalState{Controller: 0x1000, Pawn: memory.Address(0x2000), Team: 2},
		Players: players,
		Width:   1920,
		Height:  1080,
	}
}

func TestPresent_NilSnapshotDrawsWatermark(t *testing.T) {
	var s recordingSurface
	NewPresenter(false).Present(&s, nil, 1920, 1080)

	assert.Equal(t, 1, s.began)
	assert.Equal(t, 1, s.ended)
	require.Len(t, s.ops, 2)
	assert.Equal(t, op{kind: "rect", x: 10, y: 10, w: 200, h: 30, c: color.RGBA{0, 0, 0, 180}}, s.ops[0])
	assert.Equal(t, "memscope - 0 players", s.ops[1].text)
	assert.Equal(t, White, s.ops[1].c)
}

func TestPresent_DebugShapes(t *testing.T) {
	var s recordingSurface
	NewPresenter(true).Present(&s, nil, 1920, 1080)

	rects := s.find("rect")
	require.Len(t, rects, 2)
	assert.Equal(t, op{kind: "rect", x: 910, y: 490, w: 100, h: 100, c: color.RGBA{255, 0, 0, 128}}, rects[1])

	lines := s.find("line")
	require.Len(t, lines, 4)
	for _, l := range lines {
		assert.Equal(t, Yellow, l.c)
	}
	assert.Equal(t, float32(900), lines[0].x)
	assert.Equal(t, float32(480), lines[0].y)
}

func TestPresent_EnemyAndAlly(t *testing.T) {
	enemy := snapshot.PlayerSnapshot{
		Team:     3,
		Health:   50,
		Position: projection.Vector3{X: 300},
		Screen:   projection.Vector2{X: 500, Y: 400},
		Valid:    true,
	}
	ally := snapshot.PlayerSnapshot{
		Team:     2,
		Health:   100,
		Position: projection.Vector3{X: 100},
		Screen:   projection.Vector2{X: 800, Y: 600},
		Valid:    true,
	}

	var s recordingSurface
	NewPresenter(false).Present(&s, testSnapshot(enemy, ally), 1920, 1080)

	assert.Equal(t, "memscope - 2 players", s.find("text")[0].text)

	lines := s.find("line")
	require.Len(t, lines, 8)
	for _, l := range lines[:4] {
		assert.Equal(t, Red, l.c)
	}
	for _, l := range lines[4:] {
		assert.Equal(t, Green, l.c)
	}

	// enemy at distance 3: box 10x20, top-left (495, 380)
	assert.Equal(t, float32(495), lines[0].x)
	assert.Equal(t, float32(380), lines[0].y)

	rects := s.find("rect")
	require.Len(t, rects, 3)
	assert.Equal(t, op{kind: "rect", x: 487, y: 390, w: 5, h: 10, c: color.RGBA{0, 255, 0, 200}}, rects[1])

	circles := s.find("circle")
	require.Len(t, circles, 2)
	assert.Equal(t, op{kind: "circle", x: 500, y: 400, w: 5, c: color.RGBA{255, 0, 0, 200}}, circles[0])
	assert.Equal(t, color.RGBA{0, 255, 0, 200}, circles[1].c)
}

func TestPresent_SkipsOffscreen(t *testing.T) {
	tests := []struct {
		name   string
		screen projection.Vector2
		drawn  bool
	}{
		{"inside", projection.Vector2{X: 10, Y: 10}, true},
		{"right edge", projection.Vector2{X: 1920, Y: 10}, true},
		{"left of surface", projection.Vector2{X: -1, Y: 10}, false},
		{"below surface", projection.Vector2{X: 10, Y: 1081}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s recordingSurface
			p := snapshot.PlayerSnapshot{Team: 3, Health: 80, Position: projection.Vector3{X: 100}, Screen: tt.screen}
			NewPresenter(false).Present(&s, testSnapshot(p), 1920, 1080)

			if tt.drawn {
				assert.Equal(t, 1, s.count("circle"))
			} else {
				assert.Equal(t, 0, s.count("circle"))
			}
			assert.Equal(t, "memscope - 1 players", s.find("text")[0].text)
		})
	}
}

func TestBoxSize(t *testing.T) {
	tests := []struct {
		d    float32
		w, h float32
	}{
		{0.5, 60, 120},
		{1, 30, 60},
		{2, 15, 30},
		{3, 10, 20},
		{10, 10, 20},
	}
	for _, tt := range tests {
		w, h := BoxSize(tt.d)
		assert.InDelta(t, tt.w, w, 1e-4, "width at %v", tt.d)
		assert.InDelta(t, tt.h, h, 1e-4, "height at %v", tt.d)
	}
}

func TestDistanceOf(t *testing.T) {
	snap := testSnapshot()
	assert.InDelta(t, 5, distanceOf(snap, snapshot.PlayerSnapshot{Position: projection.Vector3{X: 300, Y: 400}}), 1e-4)
	assert.Equal(t, float32(fallbackDistance), distanceOf(snap, snapshot.PlayerSnapshot{}))

	snap.Local.Pawn = 0
	assert.Equal(t, float32(fallbackDistance), distanceOf(snap, snapshot.PlayerSnapshot{Position: projection.Vector3{X: 300}}))
}

func TestGeometry(t *testing.T) {
	g := Geometry{X: 10, Y: 20, Width: 1280, Height: 720}
	assert.True(t, g.Valid())
	assert.Equal(t, "1280x720+10+20", g.String())
	assert.False(t, Geometry{Width: 100}.Valid())
}
