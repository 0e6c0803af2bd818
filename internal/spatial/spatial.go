// internal/spatial/spatial.go
package spatial

import "go-lane-defense/internal/types"

// Rect is an axis-aligned box in world pixels. X, Y is the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// RectAround builds a box from its horizontal centre and its bottom edge.
func RectAround(cx, bottom, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: bottom - h, W: w, H: h}
}

func (r Rect) Left() float64    { return r.X }
func (r Rect) Right() float64   { return r.X + r.W }
func (r Rect) Top() float64     { return r.Y }
func (r Rect) Bottom() float64  { return r.Y + r.H }
func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Overlaps reports whether the two boxes share any area. Touching edges do
// not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether the point lies inside the box.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Body is anything that can be tracked by a Group.
type Body interface {
	EntityID() types.EntityID
	Bounds() Rect
	Alive() bool
}
