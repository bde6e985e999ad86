package overlay

import "github.com/memscope/memscope/internal/snapshot"

// Frame is what one tick hands to the window.
type Frame struct {
	Snapshot *snapshot.Snapshot
	Geometry Geometry
}

// FrameSource runs one tick. ok is false once the target is gone.
type FrameSource interface {
	Tick() (frame Frame, ok bool)
}
