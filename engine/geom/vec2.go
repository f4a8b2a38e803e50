package geom

import "math"

// normEpsilon is the length below which a vector normalizes to zero
const normEpsilon = 1e-5

// Vec2 is a 2D vector in arena units
type Vec2 struct {
	X, Y float64
}

func V2(x, y float64) Vec2 { return Vec2{x, y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Neg() Vec2            { return Vec2{-v.X, -v.Y} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64  { return o.Sub(v).Len() }
func (v Vec2) IsZero() bool         { return v.X == 0 && v.Y == 0 }

// Normalize returns the unit vector of v, or the zero vector when v is
// (nearly) zero length.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l < normEpsilon {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Angle returns the heading of v in radians (0 = +X, counter-clockwise)
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Lerp interpolates between a and b; t is not clamped
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Clamp limits v to [lo, hi]. When lo > hi the result is lo.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits t to [0, 1]
func Clamp01(t float64) float64 { return Clamp(t, 0, 1) }

// LerpScalar interpolates between a and b with t clamped to [0, 1]
func LerpScalar(a, b, t float64) float64 { return a + (b-a)*Clamp01(t) }

// Deg converts radians to degrees
func Deg(rad float64) float64 { return rad * 180 / math.Pi }
