// Package physics provides geometry helpers, pixel masks and a spatial grid
// for the collision broad phase.
package physics

import "math"

// Point is a 2D coordinate in world space.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box with integer pixel coordinates.
type Rect struct {
	X, Y int
	W, H int
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Intersects reports whether two rectangles share at least one pixel.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Angle returns the sprite rotation (degrees, counter-clockwise, in [0, 360))
// that turns a downward-facing sprite at (x1,y1) toward (x2,y2).
func Angle(x1, y1, x2, y2 float64) float64 {
	deg := math.Atan2(y1-y2, x1-x2) * (180 / math.Pi)
	a := math.Mod(-(deg + 90), 360)
	if a < 0 {
		a += 360
	}
	return a
}

// Direction returns the heading in radians from (x1,y1) to (x2,y2).
func Direction(x1, y1, x2, y2 float64) float64 {
	return math.Atan2(y2-y1, x2-x1)
}
