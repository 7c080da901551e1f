// Package core holds the terminal-agnostic primitives the runner draws
// and collides with: the screen buffer, rectangles, input frames and the
// runtime config. It depends on nothing outside the standard library so
// the simulation stays testable headless.
package core

// Rect is an axis-aligned box in screen cells, used for hazard collision
// and for the pause and death overlays.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle from its top-left corner and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the box.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first row past the box.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects reports whether two boxes overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
