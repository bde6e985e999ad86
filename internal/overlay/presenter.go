package overlay

import (
	"fmt"
	"image/color"

	"github.com/memscope/memscope/internal/snapshot"
)

const (
	boxHeightScale = 60
	boxWidthScale  = 30
	minBoxHeight   = 20
	minBoxWidth    = 10
	boxThickness   = 2

	// fallbackDistance is used when no distance can be derived.
	fallbackDistance = 10

	healthBarOffset = 8
	healthBarWidth  = 5
	markerRadius    = 5
)

var (
	watermarkFill = color.RGBA{0, 0, 0, 180}
	debugFill     = color.RGBA{255, 0, 0, 128}
	healthFill    = color.RGBA{0, 255, 0, 200}
	enemyMarker   = color.RGBA{255, 0, 0, 200}
	allyMarker    = color.RGBA{0, 255, 0, 200}
)

// Presenter draws one snapshot onto a Surface. It holds no per-frame state.
type Presenter struct {
	// DebugShapes draws a fixed test pattern in the middle of the surface.
	DebugShapes bool
	// Title prefixes the watermark text.
	Title string
}

func NewPresenter(debugShapes bool) Presenter {
	return Presenter{DebugShapes: debugShapes, Title: "memscope"}
}

// Present renders snap on a width x height surface. A nil snap draws the
// watermark only.
func (p Presenter) Present(s Surface, snap *snapshot.Snapshot, width, height int) {
	s.BeginFrame()
	defer s.EndFrame()

	var players []snapshot.PlayerSnapshot
	if snap != nil {
		players = snap.Players
	}

	s.DrawFilledRect(10, 10, 200, 30, watermarkFill)
	s.DrawText(20, 20, fmt.Sprintf("%s - %d players", p.Title, len(players)), White)

	if p.DebugShapes {
		cx, cy := float32(width/2), float32(height/2)
		s.DrawFilledRect(cx-50, cy-50, 100, 100, debugFill)
		DrawRect(s, cx-60, cy-60, 120, 120, Yellow, boxThickness)
	}

	for _, pl := range players {
		if !pl.Screen.In(float32(width), float32(height)) {
			continue
		}
		p.drawPlayer(s, snap, pl)
	}
}

func (p Presenter) drawPlayer(s Surface, snap *snapshot.Snapshot, pl snapshot.PlayerSnapshot) {
	w, h := BoxSize(distanceOf(snap, pl))
	x := pl.Screen.X - w/2
	y := pl.Screen.Y - h

	enemy := snap.IsEnemy(pl)
	boxColor, marker := Green, allyMarker
	if enemy {
		boxColor, marker = Red, enemyMarker
	}

	DrawRect(s, x, y, w, h, boxColor, boxThickness)

	bar := h * float32(pl.Health) / 100
	s.DrawFilledRect(x-healthBarOffset, y+h-bar, healthBarWidth, bar, healthFill)

	s.DrawFilledCircle(pl.Screen.X, pl.Screen.Y, markerRadius, marker)
}

// distanceOf is the player's distance from the world origin in units of 100.
func distanceOf(snap *snapshot.Snapshot, pl snapshot.PlayerSnapshot) float32 {
	if snap.Local.Pawn.IsNull() {
		return fallbackDistance
	}
	d := pl.Position.Length() / 100
	if d <= 0 {
		return fallbackDistance
	}
	return d
}

// BoxSize returns the box width and height for a player at distance d.
func BoxSize(d float32) (w, h float32) {
	w = max(boxWidthScale/d, minBoxWidth)
	h = max(boxHeightScale/d, minBoxHeight)
	return w, h
}
