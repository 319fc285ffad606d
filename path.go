package scenesync

import "math"

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo sets the start point of the path.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the path with a line back to its start point.
type Close struct{}

func (Close) isPathElement() {}

// segment is one evaluable piece of a Path.
type segment interface {
	Eval(t float64) Point
	BoundingBox() Rect
	Length() float64
}

// Path is a single connected curve made of line, quadratic and cubic
// segments, as found in NURBS-free CAD exports and SVG path data.
// Segment i spans the parameter interval [i, i+1].
//
// Path implements Curve. Build it with MoveTo followed by drawing calls;
// a MoveTo after the first segment is ignored because a curve has a
// single connected component.
type Path struct {
	elements []PathElement
	segments []segment
	start    Point // Starting point of the path
	current  Point // Current point
	started  bool
	closed   bool
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo sets the start point.
func (p *Path) MoveTo(x, y float64) {
	if len(p.segments) > 0 {
		return
	}
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
	p.started = true
}

// LineTo draws a line to a point.
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.ensureStarted(pt)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.segments = append(p.segments, Line{P0: p.current, P1: pt})
	p.current = pt
}

// QuadraticTo draws a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	ctrl := Pt(cx, cy)
	pt := Pt(x, y)
	p.ensureStarted(ctrl)
	p.elements = append(p.elements, QuadTo{Control: ctrl, Point: pt})
	p.segments = append(p.segments, QuadBez{P0: p.current, P1: ctrl, P2: pt})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	ctrl1 := Pt(c1x, c1y)
	ctrl2 := Pt(c2x, c2y)
	pt := Pt(x, y)
	p.ensureStarted(ctrl1)
	p.elements = append(p.elements, CubicTo{Control1: ctrl1, Control2: ctrl2, Point: pt})
	p.segments = append(p.segments, CubicBez{P0: p.current, P1: ctrl1, P2: ctrl2, P3: pt})
	p.current = pt
}

// Close closes the path by drawing a line to the start point when the
// current point is elsewhere.
func (p *Path) Close() {
	if !p.started || p.closed {
		return
	}
	if p.current.Distance(p.start) > closeTolerance {
		p.segments = append(p.segments, Line{P0: p.current, P1: p.start})
	}
	p.elements = append(p.elements, Close{})
	p.current = p.start
	p.closed = true
}

// ensureStarted treats a drawing call without a preceding MoveTo as
// starting at pt, matching SVG's implicit move.
func (p *Path) ensureStarted(pt Point) {
	if p.started {
		return
	}
	p.start = pt
	p.current = pt
	p.started = true
	p.elements = append(p.elements, MoveTo{Point: pt})
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// Domain implements Curve.
func (p *Path) Domain() (float64, float64) {
	return 0, float64(len(p.segments))
}

// PointAt implements Curve.
func (p *Path) PointAt(t float64) Point {
	n := len(p.segments)
	if n == 0 {
		return p.start
	}
	t = clampParam(t, 0, float64(n))
	i := int(math.Floor(t))
	if i >= n {
		return p.segments[n-1].Eval(1)
	}
	return p.segments[i].Eval(t - float64(i))
}

// Length implements Curve.
func (p *Path) Length() float64 {
	var length float64
	for _, s := range p.segments {
		length += s.Length()
	}
	return length
}

// BoundingBox implements Curve. It uses curve extrema for accuracy.
func (p *Path) BoundingBox() Rect {
	if !p.started {
		return EmptyRect()
	}
	bbox := NewRect(p.start, p.start)
	for _, s := range p.segments {
		bbox = bbox.Union(s.BoundingBox())
	}
	return bbox
}

// IsClosed implements Curve.
func (p *Path) IsClosed() bool {
	if len(p.segments) == 0 {
		return false
	}
	return p.closed || p.current.Distance(p.start) <= closeTolerance
}
