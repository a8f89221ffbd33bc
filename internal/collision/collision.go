package collision

import (
	"fmt"

	"grove/internal/core"
)

// Overlaps reports whether a and b share interior area. Rectangles that only
// touch along an edge do not overlap.
func Overlaps(a, b core.Rect) bool {
	return a.X < b.Right() && a.Right() > b.X && a.Y < b.Bottom() && a.Bottom() > b.Y
}

// Engine answers collision queries for a fixed-size probe against a static
// obstacle set.
type Engine struct {
	rects []core.Rect
	probe core.Size
}

// NewEngine validates the obstacles and probe size.
func NewEngine(rects []core.Rect, probe core.Size) (*Engine, error) {
	if probe.W <= 0 || probe.H <= 0 {
		return nil, fmt.Errorf("probe size must be positive, got %vx%v", probe.W, probe.H)
	}
	for i, r := range rects {
		if !r.Valid() {
			return nil, fmt.Errorf("obstacle %d has non-positive size %vx%v", i, r.W, r.H)
		}
	}
	owned := make([]core.Rect, len(rects))
	copy(owned, rects)
	return &Engine{rects: owned, probe: probe}, nil
}

// Probe returns the probe size.
func (e *Engine) Probe() core.Size { return e.probe }

// Hitbox returns the probe rectangle with its top-left corner at (x, y).
func (e *Engine) Hitbox(x, y float64) core.Rect {
	return core.Rect{X: x, Y: y, W: e.probe.W, H: e.probe.H}
}

// WouldCollide reports whether the probe at (x, y) overlaps any obstacle.
func (e *Engine) WouldCollide(x, y float64) bool {
	box := e.Hitbox(x, y)
	for _, r := range e.rects {
		if Overlaps(box, r) {
			return true
		}
	}
	return false
}

// Obstacles returns the obstacle set. Callers must not modify it.
func (e *Engine) Obstacles() []core.Rect { return e.rects }
