package sim

import "math"

// Vec2 represents a 2D vector in viewport pixels
type Vec2 struct {
	X float64
	Y float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length of v
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector of v.
// ok is false for a zero-length vector, in which case the zero vector is returned.
func (v Vec2) Normalize() (unit Vec2, ok bool) {
	l := v.Len()
	if l == 0 {
		return Vec2{}, false
	}
	return Vec2{X: v.X / l, Y: v.Y / l}, true
}

// FromAngle returns the unit vector pointing at angle (radians, 0 = east, y grows downward)
func FromAngle(angle float64) Vec2 {
	return Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Angle returns the direction of v in radians
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Distance calculates the distance between two points
func Distance(a, b Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// PointSegmentDistance returns the distance from p to the closest point of segment a-b.
// A zero-length segment degrades to the point-to-point distance.
func PointSegmentDistance(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return Distance(p, a)
	}

	// Project p onto the segment and clamp the parameter to [0, 1]
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / lenSq
	t = clamp(t, 0, 1)

	closest := Vec2{X: a.X + ab.X*t, Y: a.Y + ab.Y*t}
	return Distance(p, closest)
}

// NormalizeAngle wraps angle into [0, 2π)
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(angle, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// MoveToward moves from toward target by at most step, never overshooting
func MoveToward(from, target Vec2, step float64) Vec2 {
	delta := target.Sub(from)
	dist := delta.Len()
	if dist == 0 || dist <= step {
		return target
	}
	return from.Add(delta.Scale(step / dist))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
