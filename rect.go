package scenesync

import "math"

// Rect represents an axis-aligned rectangle.
// Min is the corner with the minimum coordinates, Max the corner with the
// maximum coordinates. All containment tests are inclusive.
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// EmptyRect returns the identity element for Union: a rectangle that
// contains nothing and overlaps nothing.
func EmptyRect() Rect {
	return Rect{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// IsEmpty reports whether the rectangle is inverted or has non-finite
// corners. Degenerate rectangles (zero width or height) are not empty:
// a horizontal line still has a box.
func (r Rect) IsEmpty() bool {
	if !r.Min.IsFinite() || !r.Max.IsFinite() {
		return true
	}
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Extend returns the smallest rectangle containing r and p.
func (r Rect) Extend(p Point) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, p.X), Y: math.Min(r.Min.Y, p.Y)},
		Max: Point{X: math.Max(r.Max.X, p.X), Y: math.Max(r.Max.Y, p.Y)},
	}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ContainsRect returns true if inner lies entirely inside r.
func (r Rect) ContainsRect(inner Rect) bool {
	return inner.Min.X >= r.Min.X && inner.Max.X <= r.Max.X &&
		inner.Min.Y >= r.Min.Y && inner.Max.Y <= r.Max.Y
}

// Overlaps returns true unless a separating axis exists on X or Y.
// Touching edges count as overlap.
func (r Rect) Overlaps(other Rect) bool {
	return !(r.Max.X < other.Min.X ||
		r.Min.X > other.Max.X ||
		r.Max.Y < other.Min.Y ||
		r.Min.Y > other.Max.Y)
}

// Corners returns the four corners counter-clockwise from Min.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	}
}
