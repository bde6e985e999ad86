package overlay

import (
	"errors"
	"fmt"
)

var (
	// ErrWindowNotFound is returned when no window of the target process qualifies.
	ErrWindowNotFound = errors.New("target window not found")

	// ErrInvalidGeometry is returned when the target window has an empty client area.
	ErrInvalidGeometry = errors.New("invalid window geometry")
)

// Geometry is the target window's client area in screen coordinates.
type Geometry struct {
	X, Y          int
	Width, Height int
}

func (g Geometry) Valid() bool {
	return g.Width > 0 && g.Height > 0
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", g.Width, g.Height, g.X, g.Y)
}

// Target is the external window the overlay tracks. Both methods are polled
// once per tick.
type Target interface {
	// Alive reports whether the target window (or process) still exists.
	Alive() bool
	// Geometry returns the current client area; ok is false when it cannot
	// be read this tick.
	Geometry() (g Geometry, ok bool)
}

// TargetOptions describes how to find the target window.
type TargetOptions struct {
	Pid    uint32
	Class  string
	Titles []string

	// Fallback is used where window tracking is unavailable.
	Fallback Geometry
}
