package overlay

import "image/color"

// Surface is an alpha-blended draw target laid over the target window.
// Coordinates are in pixels relative to the window's client area.
type Surface interface {
	BeginFrame()
	DrawLine(x1, y1, x2, y2 float32, c color.RGBA, thickness float32)
	DrawFilledRect(x, y, w, h float32, c color.RGBA)
	DrawFilledCircle(x, y, r float32, c color.RGBA)
	DrawText(x, y float32, s string, c color.RGBA)
	EndFrame()
}

var (
	White  = color.RGBA{255, 255, 255, 255}
	Red    = color.RGBA{255, 0, 0, 255}
	Green  = color.RGBA{0, 255, 0, 255}
	Yellow = color.RGBA{255, 255, 0, 255}
)

// DrawRect strokes the outline of a rectangle with four lines.
func DrawRect(s Surface, x, y, w, h float32, c color.RGBA, thickness float32) {
	s.DrawLine(x, y, x+w, y, c, thickness)
	s.DrawLine(x, y+h, x+w, y+h, c, thickness)
	s.DrawLine(x, y, x, y+h, c, thickness)
	s.DrawLine(x+w, y, x+w, y+h, c, thickness)
}
