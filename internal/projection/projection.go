// Package projection maps world-space points to surface pixels using the
// view-projection matrix read from the target each tick.
package projection

import (
	"fmt"
	"strings"
)

// Matrix4x4 is row-major: m[row][col]. Row i dotted with (x, y, z, 1) gives
// clip coordinate i.
type Matrix4x4 [4][4]float32

// DefaultNearClip is the clip-space w below which a point is treated as
// behind the camera.
const DefaultNearClip float32 = 0.1

// Mapping selects how normalized device coordinates become pixels.
type Mapping int

const (
	// MappingLegacy is w/2*ndc + (ndc + w/2) horizontally and
	// -h/2*ndc + (ndc + h/2) vertically. It adds the ndc term once more
	// than a plain viewport transform would, which shifts points by under
	// a pixel. It is the default so output matches existing deployments.
	MappingLegacy Mapping = iota
	// MappingCentered is the textbook (ndc*0.5 + 0.5) * size viewport
	// transform with y flipped.
	MappingCentered
)

func (m Mapping) String() string {
	switch m {
	case MappingLegacy:
		return "legacy"
	case MappingCentered:
		return "centered"
	default:
		return fmt.Sprintf("Mapping(%d)", int(m))
	}
}

// ParseMapping accepts "legacy" or "centered"; empty means legacy.
func ParseMapping(s string) (Mapping, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return MappingLegacy, nil
	case "centered":
		return MappingCentered, nil
	default:
		return MappingLegacy, fmt.Errorf("unknown projection mapping %q", s)
	}
}

// Projector holds the projection tunables. The zero value is not useful;
// start from NewProjector.
type Projector struct {
	NearClip float32
	Mapping  Mapping
}

func NewProjector() Projector {
	return Projector{NearClip: DefaultNearClip, Mapping: MappingLegacy}
}

// Project returns the pixel position of world on a width x height surface,
// or false when the point is behind or too close to the camera. The result
// is not clipped to the surface.
func (p Projector) Project(world Vector3, m Matrix4x4, width, height int) (Vector2, bool) {
	clipX := m[0][0]*world.X + m[0][1]*world.Y + m[0][2]*world.Z + m[0][3]
	clipY := m[1][0]*world.X + m[1][1]*world.Y + m[1][2]*world.Z + m[1][3]
	clipW := m[3][0]*world.X + m[3][1]*world.Y + m[3][2]*world.Z + m[3][3]

	if clipW < p.NearClip {
		return Vector2{}, false
	}

	ndcX := clipX / clipW
	ndcY := clipY / clipW
	w := float32(width)
	h := float32(height)

	switch p.Mapping {
	case MappingCentered:
		return Vector2{
			X: (ndcX*0.5 + 0.5) * w,
			Y: (0.5 - ndcY*0.5) * h,
		}, true
	default:
		return Vector2{
			X: (w/2)*ndcX + (ndcX + w/2),
			Y: -(h/2)*ndcY + (ndcY + h/2),
		}, true
	}
}

// Project is Projector.Project with the default near clip and legacy mapping.
func Project(world Vector3, m Matrix4x4, width, height int) (Vector2, bool) {
	return NewProjector().Project(world, m, width, height)
}
