package scenesync

import "sort"

// Bezier segment types used by Path.
// Based on kurbo patterns, adapted for Go idioms.

// lengthAccuracy is the chord/polygon tolerance used by the arc length
// approximations, in document units.
const lengthAccuracy = 1e-3

// maxLengthDepth bounds the subdivision depth of the arc length
// approximations so that NaN control points cannot recurse forever.
const maxLengthDepth = 16

// -------------------------------------------------------------------
// Line
// -------------------------------------------------------------------

// Line represents a line segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

// Eval evaluates the line at parameter t (0 to 1).
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// BoundingBox returns the axis-aligned bounding box of the line.
func (l Line) BoundingBox() Rect {
	return NewRect(l.P0, l.P1)
}

// Length returns the length of the line segment.
func (l Line) Length() float64 {
	return l.P0.Distance(l.P1)
}

// -------------------------------------------------------------------
// QuadBez - Quadratic Bezier Curve
// -------------------------------------------------------------------

// QuadBez represents a quadratic Bezier curve with control points P0, P1, P2.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Subdivide splits the curve at t=0.5 into two halves using de Casteljau.
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	mid := q.Eval(0.5)
	return QuadBez{P0: q.P0, P1: q.P0.Lerp(q.P1, 0.5), P2: mid},
		QuadBez{P0: mid, P1: q.P1.Lerp(q.P2, 0.5), P2: q.P2}
}

// Extrema returns parameter values where the derivative is zero.
func (q QuadBez) Extrema() []float64 {
	var result []float64

	// B'(t) = 2[(P1-P0) + t(P2-2P1+P0)]
	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	dd := d1.Sub(d0)

	if dd.X != 0 {
		if t := -d0.X / dd.X; t > 0 && t < 1 {
			result = append(result, t)
		}
	}
	if dd.Y != 0 {
		if t := -d0.Y / dd.Y; t > 0 && t < 1 {
			result = append(result, t)
		}
	}

	sort.Float64s(result)
	return result
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (q QuadBez) BoundingBox() Rect {
	bbox := NewRect(q.P0, q.P2)
	for _, t := range q.Extrema() {
		bbox = bbox.Extend(q.Eval(t))
	}
	return bbox
}

// Length approximates the arc length by adaptive subdivision.
func (q QuadBez) Length() float64 {
	return quadLength(q, lengthAccuracy*lengthAccuracy, 0)
}

func quadLength(q QuadBez, accuracySq float64, depth int) float64 {
	chord := q.P0.Distance(q.P2)
	polygon := q.P0.Distance(q.P1) + q.P1.Distance(q.P2)

	diff := polygon - chord
	if diff*diff <= accuracySq || depth >= maxLengthDepth {
		return (chord + polygon) / 2
	}

	q1, q2 := q.Subdivide()
	return quadLength(q1, accuracySq, depth+1) + quadLength(q2, accuracySq, depth+1)
}

// -------------------------------------------------------------------
// CubicBez - Cubic Bezier Curve
// -------------------------------------------------------------------

// CubicBez represents a cubic Bezier curve with control points P0, P1, P2, P3.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t

	return Point{
		X: mt3*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t3*c.P3.X,
		Y: mt3*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t3*c.P3.Y,
	}
}

// Subdivide splits the curve at t=0.5 into two halves using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, 0.5)
	p12 := c.P1.Lerp(c.P2, 0.5)
	p23 := c.P2.Lerp(c.P3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)

	return CubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		CubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// Extrema returns parameter values where the derivative is zero.
// For a cubic Bezier, there can be up to 4 extrema (2 for x, 2 for y).
func (c CubicBez) Extrema() []float64 {
	result := make([]float64, 0, 4)

	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)

	result = append(result, unitRoots(d0.X-2*d1.X+d2.X, 2*(d1.X-d0.X), d0.X)...)
	result = append(result, unitRoots(d0.Y-2*d1.Y+d2.Y, 2*(d1.Y-d0.Y), d0.Y)...)

	sort.Float64s(result)
	return result
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (c CubicBez) BoundingBox() Rect {
	bbox := NewRect(c.P0, c.P3)
	for _, t := range c.Extrema() {
		bbox = bbox.Extend(c.Eval(t))
	}
	return bbox
}

// Length approximates the arc length by adaptive subdivision.
func (c CubicBez) Length() float64 {
	return cubicLength(c, lengthAccuracy*lengthAccuracy, 0)
}

func cubicLength(c CubicBez, accuracySq float64, depth int) float64 {
	chord := c.P0.Distance(c.P3)
	polygon := c.P0.Distance(c.P1) + c.P1.Distance(c.P2) + c.P2.Distance(c.P3)

	diff := polygon - chord
	if diff*diff <= accuracySq || depth >= maxLengthDepth {
		return (chord + polygon) / 2
	}

	c1, c2 := c.Subdivide()
	return cubicLength(c1, accuracySq, depth+1) + cubicLength(c2, accuracySq, depth+1)
}
