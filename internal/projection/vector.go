package projection

import "math"

// Vector3 is a world-space point as the target stores it: three packed
// little-endian float32s.
type Vector3 struct {
	X, Y, Z float32
}

// Vector2 is a point in surface pixels.
type Vector2 struct {
	X, Y float32
}

func (v Vector3) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

func (v Vector3) DistanceTo(o Vector3) float32 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}.Length()
}

func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// In reports whether v lies inside a width x height surface.
func (v Vector2) In(width, height float32) bool {
	return v.X >= 0 && v.X <= width && v.Y >= 0 && v.Y <= height
}
