package core

import "math"

// Vec is a point or offset in world units.
type Vec struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in world units.
type Rect struct {
	X, Y float64 // top-left corner
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec {
	return Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Valid reports whether the rectangle has a positive area.
func (r Rect) Valid() bool { return r.W > 0 && r.H > 0 }

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Vec) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Clamp restricts v to [lo, hi]. The lower bound wins when lo > hi.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
