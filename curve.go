package scenesync

import "math"

// Curve is the canonical curve the conversion pipeline consumes.
//
// A curve is a continuous map from its parameter domain to the plane.
// Implementations must be safe to query repeatedly and are never mutated
// by the pipeline.
type Curve interface {
	// Domain returns the parameter interval [t0, t1].
	Domain() (t0, t1 float64)

	// PointAt evaluates the curve at parameter t. Values outside the
	// domain are clamped.
	PointAt(t float64) Point

	// Length returns the arc length in document units.
	Length() float64

	// BoundingBox returns the tight axis-aligned box of the curve.
	BoundingBox() Rect

	// IsClosed reports whether the curve ends where it starts.
	IsClosed() bool
}

// closeTolerance is the distance under which two end points are treated
// as coincident.
const closeTolerance = 1e-9

func clampParam(t, t0, t1 float64) float64 {
	if t < t0 {
		return t0
	}
	if t > t1 {
		return t1
	}
	return t
}

// -------------------------------------------------------------------
// LineCurve
// -------------------------------------------------------------------

// LineCurve is a straight segment with domain [0, 1].
type LineCurve struct {
	Line
}

// NewLineCurve creates a line curve from p0 to p1.
func NewLineCurve(p0, p1 Point) *LineCurve {
	return &LineCurve{Line: Line{P0: p0, P1: p1}}
}

// Domain implements Curve.
func (l *LineCurve) Domain() (float64, float64) { return 0, 1 }

// PointAt implements Curve.
func (l *LineCurve) PointAt(t float64) Point { return l.Eval(clampParam(t, 0, 1)) }

// IsClosed implements Curve. A line is never closed.
func (l *LineCurve) IsClosed() bool { return false }

// -------------------------------------------------------------------
// Polyline
// -------------------------------------------------------------------

// Polyline is a chain of straight segments. Segment i spans the parameter
// interval [i, i+1]. When Closed is set and the end points differ, a
// closing segment back to the first point is appended.
type Polyline struct {
	Points []Point
	Closed bool
}

// NewPolyline creates a polyline through pts.
func NewPolyline(pts []Point, closed bool) *Polyline {
	return &Polyline{Points: pts, Closed: closed}
}

// RectPolyline returns the closed boundary of r.
func RectPolyline(r Rect) *Polyline {
	c := r.Corners()
	return &Polyline{Points: c[:], Closed: true}
}

func (p *Polyline) vertex(i int) Point {
	return p.Points[i%len(p.Points)]
}

func (p *Polyline) endsCoincide() bool {
	n := len(p.Points)
	return n > 2 && p.Points[0].Distance(p.Points[n-1]) <= closeTolerance
}

func (p *Polyline) segmentCount() int {
	n := len(p.Points)
	if n < 2 {
		return 0
	}
	if p.Closed && n > 2 && !p.endsCoincide() {
		return n
	}
	return n - 1
}

// Domain implements Curve.
func (p *Polyline) Domain() (float64, float64) {
	return 0, float64(p.segmentCount())
}

// PointAt implements Curve.
func (p *Polyline) PointAt(t float64) Point {
	n := p.segmentCount()
	if n == 0 {
		if len(p.Points) == 1 {
			return p.Points[0]
		}
		return Point{}
	}
	t = clampParam(t, 0, float64(n))
	i := int(math.Floor(t))
	if i >= n {
		return p.vertex(n)
	}
	return p.vertex(i).Lerp(p.vertex(i+1), t-float64(i))
}

// Length implements Curve.
func (p *Polyline) Length() float64 {
	var length float64
	for i := 0; i < p.segmentCount(); i++ {
		length += p.vertex(i).Distance(p.vertex(i + 1))
	}
	return length
}

// BoundingBox implements Curve.
func (p *Polyline) BoundingBox() Rect {
	bbox := EmptyRect()
	for _, pt := range p.Points {
		bbox = bbox.Extend(pt)
	}
	return bbox
}

// IsClosed implements Curve.
func (p *Polyline) IsClosed() bool {
	if len(p.Points) < 3 {
		return false
	}
	return p.Closed || p.endsCoincide()
}

// -------------------------------------------------------------------
// Arc
// -------------------------------------------------------------------

// Arc is a circular arc parameterized by angle in radians, counter-clockwise
// from Start to End. A sweep of 2π or more is a full circle.
type Arc struct {
	Center     Point
	Radius     float64
	Start, End float64
}

// NewCircle creates a full circle.
func NewCircle(center Point, radius float64) *Arc {
	return &Arc{Center: center, Radius: radius, Start: 0, End: 2 * math.Pi}
}

// Domain implements Curve.
func (a *Arc) Domain() (float64, float64) { return a.Start, a.End }

// PointAt implements Curve.
func (a *Arc) PointAt(t float64) Point {
	sin, cos := math.Sincos(clampParam(t, a.Start, a.End))
	return Point{X: a.Center.X + a.Radius*cos, Y: a.Center.Y + a.Radius*sin}
}

// Length implements Curve.
func (a *Arc) Length() float64 {
	return math.Abs(a.Radius) * (a.End - a.Start)
}

// BoundingBox implements Curve.
// The box covers both end points plus every axis crossing (multiples of
// π/2) inside the sweep.
func (a *Arc) BoundingBox() Rect {
	if a.IsClosed() {
		r := math.Abs(a.Radius)
		return Rect{
			Min: Point{X: a.Center.X - r, Y: a.Center.Y - r},
			Max: Point{X: a.Center.X + r, Y: a.Center.Y + r},
		}
	}
	bbox := NewRect(a.PointAt(a.Start), a.PointAt(a.End))
	const quarter = math.Pi / 2
	// An open sweep crosses at most four axes.
	k := math.Ceil(a.Start / quarter)
	for i := 0; i < 4 && k*quarter <= a.End; i++ {
		bbox = bbox.Extend(a.PointAt(k * quarter))
		k++
	}
	return bbox
}

// IsClosed implements Curve.
func (a *Arc) IsClosed() bool {
	return a.End-a.Start >= 2*math.Pi-closeTolerance
}
