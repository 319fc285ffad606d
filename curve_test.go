package scenesync

import (
	"math"
	"testing"
)

const epsilon = 1e-10

func pointsEqual(p1, p2 Point, eps float64) bool {
	return math.Abs(p1.X-p2.X) < eps && math.Abs(p1.Y-p2.Y) < eps
}

// -------------------------------------------------------------------
// Rect Tests
// -------------------------------------------------------------------

func TestRect_NewRect(t *testing.T) {
	tests := []struct {
		name      string
		p1, p2    Point
		expectMin Point
		expectMax Point
	}{
		{
			name: "normal order",
			p1:   Pt(0, 0), p2: Pt(10, 10),
			expectMin: Pt(0, 0), expectMax: Pt(10, 10),
		},
		{
			name: "reversed order",
			p1:   Pt(10, 10), p2: Pt(0, 0),
			expectMin: Pt(0, 0), expectMax: Pt(10, 10),
		},
		{
			name: "mixed",
			p1:   Pt(5, 0), p2: Pt(0, 5),
			expectMin: Pt(0, 0), expectMax: Pt(5, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRect(tt.p1, tt.p2)
			if !pointsEqual(r.Min, tt.expectMin, epsilon) {
				t.Errorf("Min = %v, want %v", r.Min, tt.expectMin)
			}
			if !pointsEqual(r.Max, tt.expectMax, epsilon) {
				t.Errorf("Max = %v, want %v", r.Max, tt.expectMax)
			}
		})
	}
}

func TestRect_WidthHeight(t *testing.T) {
	r := NewRect(Pt(0, 0), Pt(10, 5))
	if r.Width() != 10 {
		t.Errorf("Width() = %v, want 10", r.Width())
	}
	if r.Height() != 5 {
		t.Errorf("Height() = %v, want 5", r.Height())
	}
}

func TestRect_Union(t *testing.T) {
	r1 := NewRect(Pt(0, 0), Pt(5, 5))
	r2 := NewRect(Pt(3, 3), Pt(10, 10))
	u := r1.Union(r2)

	if !pointsEqual(u.Min, Pt(0, 0), epsilon) {
		t.Errorf("Union Min = %v, want (0, 0)", u.Min)
	}
	if !pointsEqual(u.Max, Pt(10, 10), epsilon) {
		t.Errorf("Union Max = %v, want (10, 10)", u.Max)
	}

	if got := EmptyRect().Union(r1); got != r1 {
		t.Errorf("EmptyRect().Union(r1) = %v, want %v", got, r1)
	}
}

func TestRect_Contains(t *testing.T) {
	r := NewRect(Pt(0, 0), Pt(10, 10))

	tests := []struct {
		name   string
		p      Point
		expect bool
	}{
		{"inside", Pt(5, 5), true},
		{"corner", Pt(0, 0), true},
		{"far corner", Pt(10, 10), true},
		{"edge", Pt(5, 0), true},
		{"outside", Pt(15, 5), false},
		{"just below", Pt(5, -1e-9), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Contains(tt.p)
			if result != tt.expect {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, result, tt.expect)
			}
		})
	}
}

func TestRect_ContainsRect(t *testing.T) {
	r := NewRect(Pt(0, 0), Pt(10, 10))

	tests := []struct {
		name   string
		inner  Rect
		expect bool
	}{
		{"inside", NewRect(Pt(1, 1), Pt(9, 9)), true},
		{"equal", r, true},
		{"straddles", NewRect(Pt(5, 5), Pt(15, 15)), false},
		{"degenerate on edge", NewRect(Pt(0, 0), Pt(10, 0)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.ContainsRect(tt.inner); got != tt.expect {
				t.Errorf("ContainsRect(%v) = %v, want %v", tt.inner, got, tt.expect)
			}
		})
	}
}

func TestRect_Overlaps(t *testing.T) {
	r := NewRect(Pt(0, 0), Pt(10, 10))

	tests := []struct {
		name   string
		other  Rect
		expect bool
	}{
		{"partial", NewRect(Pt(5, 5), Pt(15, 15)), true},
		{"contained", NewRect(Pt(2, 2), Pt(3, 3)), true},
		{"touching edge", NewRect(Pt(10, 0), Pt(20, 10)), true},
		{"touching corner", NewRect(Pt(10, 10), Pt(20, 20)), true},
		{"disjoint x", NewRect(Pt(11, 0), Pt(20, 10)), false},
		{"disjoint y", NewRect(Pt(0, -5), Pt(10, -1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Overlaps(tt.other); got != tt.expect {
				t.Errorf("Overlaps(%v) = %v, want %v", tt.other, got, tt.expect)
			}
			if got := tt.other.Overlaps(r); got != tt.expect {
				t.Errorf("reverse Overlaps = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestRect_IsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		r      Rect
		expect bool
	}{
		{"normal", NewRect(Pt(0, 0), Pt(1, 1)), false},
		{"zero height", NewRect(Pt(0, 0), Pt(5, 0)), false},
		{"point", NewRect(Pt(2, 2), Pt(2, 2)), false},
		{"empty", EmptyRect(), true},
		{"inverted", Rect{Min: Pt(1, 1), Max: Pt(0, 0)}, true},
		{"nan", Rect{Min: Pt(math.NaN(), 0), Max: Pt(1, 1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.IsEmpty(); got != tt.expect {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestRect_Corners(t *testing.T) {
	c := NewRect(Pt(0, 0), Pt(4, 2)).Corners()
	want := [4]Point{Pt(0, 0), Pt(4, 0), Pt(4, 2), Pt(0, 2)}
	if c != want {
		t.Errorf("Corners() = %v, want %v", c, want)
	}
}

// -------------------------------------------------------------------
// Line Tests
// -------------------------------------------------------------------

func TestLine_Eval(t *testing.T) {
	l := Line{P0: Pt(0, 0), P1: Pt(10, 10)}

	tests := []struct {
		name   string
		t      float64
		expect Point
	}{
		{"t=0", 0, Pt(0, 0)},
		{"t=1", 1, Pt(10, 10)},
		{"t=0.5", 0.5, Pt(5, 5)},
		{"t=0.25", 0.25, Pt(2.5, 2.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := l.Eval(tt.t)
			if !pointsEqual(result, tt.expect, epsilon) {
				t.Errorf("Eval(%v) = %v, want %v", tt.t, result, tt.expect)
			}
		})
	}
}

func TestLine_BoundingBox(t *testing.T) {
	l := Line{P0: Pt(10, 0), P1: Pt(0, 5)}
	bbox := l.BoundingBox()
	if !pointsEqual(bbox.Min, Pt(0, 0), epsilon) || !pointsEqual(bbox.Max, Pt(10, 5), epsilon) {
		t.Errorf("BoundingBox() = %v", bbox)
	}
}

func TestLine_Length(t *testing.T) {
	l := Line{P0: Pt(0, 0), P1: Pt(3, 4)}
	if got := l.Length(); math.Abs(got-5) > epsilon {
		t.Errorf("Length() = %v, want 5", got)
	}
}

// -------------------------------------------------------------------
// QuadBez Tests
// -------------------------------------------------------------------

func TestQuadBez_Eval(t *testing.T) {
	q := QuadBez{P0: Pt(0, 0), P1: Pt(1, 2), P2: Pt(2, 0)}

	tests := []struct {
		name   string
		t      float64
		expect Point
	}{
		{"start", 0, Pt(0, 0)},
		{"end", 1, Pt(2, 0)},
		{"middle", 0.5, Pt(1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := q.Eval(tt.t)
			if !pointsEqual(result, tt.expect, epsilon) {
				t.Errorf("Eval(%v) = %v, want %v", tt.t, result, tt.expect)
			}
		})
	}
}

func TestQuadBez_Subdivide(t *testing.T) {
	q := QuadBez{P0: Pt(0, 0), P1: Pt(1, 2), P2: Pt(2, 0)}
	q1, q2 := q.Subdivide()

	if !pointsEqual(q1.P0, q.P0, epsilon) || !pointsEqual(q2.P2, q.P2, epsilon) {
		t.Error("Subdivide should keep the end points")
	}
	if !pointsEqual(q1.P2, q2.P0, epsilon) {
		t.Error("halves should meet")
	}
	for _, tt := range []float64{0, 0.3, 0.7, 1} {
		if !pointsEqual(q1.Eval(tt), q.Eval(tt/2), epsilon) {
			t.Errorf("first half at %v = %v, want %v", tt, q1.Eval(tt), q.Eval(tt/2))
		}
	}
}

func TestQuadBez_Extrema(t *testing.T) {
	q := QuadBez{P0: Pt(0, 0), P1: Pt(1, 2), P2: Pt(2, 0)}
	extrema := q.Extrema()
	if len(extrema) != 1 || math.Abs(extrema[0]-0.5) > epsilon {
		t.Errorf("Extrema() = %v, want [0.5]", extrema)
	}

	straight := QuadBez{P0: Pt(0, 0), P1: Pt(1, 1), P2: Pt(2, 2)}
	if got := straight.Extrema(); len(got) != 0 {
		t.Errorf("straight Extrema() = %v, want none", got)
	}
}

func TestQuadBez_BoundingBox(t *testing.T) {
	q := QuadBez{P0: Pt(0, 0), P1: Pt(1, 2), P2: Pt(2, 0)}
	bbox := q.BoundingBox()

	// The control point is at y=2 but the curve peaks at y=1.
	if !pointsEqual(bbox.Min, Pt(0, 0), epsilon) || !pointsEqual(bbox.Max, Pt(2, 1), epsilon) {
		t.Errorf("BoundingBox() = %v, want (0,0)-(2,1)", bbox)
	}
}

func TestQuadBez_Length(t *testing.T) {
	straight := QuadBez{P0: Pt(0, 0), P1: Pt(1, 0), P2: Pt(2, 0)}
	if got := straight.Length(); math.Abs(got-2) > 1e-6 {
		t.Errorf("straight Length() = %v, want 2", got)
	}

	q := QuadBez{P0: Pt(0, 0), P1: Pt(1, 2), P2: Pt(2, 0)}
	got := q.Length()
	chord, polygon := 2.0, 2*math.Sqrt(5)
	if got <= chord || got >= polygon {
		t.Errorf("Length() = %v, want between %v and %v", got, chord, polygon)
	}
}

// -------------------------------------------------------------------
// CubicBez Tests
// -------------------------------------------------------------------

func TestCubicBez_Eval(t *testing.T) {
	c := CubicBez{P0: Pt(0, 0), P1: Pt(0, 1), P2: Pt(1, 1), P3: Pt(1, 0)}

	tests := []struct {
		name   string
		t      float64
		expect Point
	}{
		{"start", 0, Pt(0, 0)},
		{"end", 1, Pt(1, 0)},
		{"middle", 0.5, Pt(0.5, 0.75)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Eval(tt.t)
			if !pointsEqual(result, tt.expect, epsilon) {
				t.Errorf("Eval(%v) = %v, want %v", tt.t, result, tt.expect)
			}
		})
	}
}

func TestCubicBez_Subdivide(t *testing.T) {
	c := CubicBez{P0: Pt(0, 0), P1: Pt(0, 1), P2: Pt(1, 1), P3: Pt(1, 0)}
	c1, c2 := c.Subdivide()

	if !pointsEqual(c1.P3, c.Eval(0.5), epsilon) || !pointsEqual(c2.P0, c.Eval(0.5), epsilon) {
		t.Error("halves should meet at the midpoint")
	}
	for _, tt := range []float64{0, 0.25, 0.5, 1} {
		if !pointsEqual(c2.Eval(tt), c.Eval(0.5+tt/2), epsilon) {
			t.Errorf("second half at %v = %v, want %v", tt, c2.Eval(tt), c.Eval(0.5+tt/2))
		}
	}
}

func TestCubicBez_Extrema(t *testing.T) {
	c := CubicBez{P0: Pt(0, 0), P1: Pt(0, 1), P2: Pt(1, 1), P3: Pt(1, 0)}
	extrema := c.Extrema()

	found := false
	for _, e := range extrema {
		if math.Abs(e-0.5) < 1e-9 {
			found = true
		}
		if e < 0 || e > 1 {
			t.Errorf("extremum %v outside [0,1]", e)
		}
	}
	if !found {
		t.Errorf("Extrema() = %v, want y extremum at 0.5", extrema)
	}
}

func TestCubicBez_BoundingBox(t *testing.T) {
	c := CubicBez{P0: Pt(0, 0), P1: Pt(0, 1), P2: Pt(1, 1), P3: Pt(1, 0)}
	bbox := c.BoundingBox()

	if !pointsEqual(bbox.Min, Pt(0, 0), 1e-9) || !pointsEqual(bbox.Max, Pt(1, 0.75), 1e-9) {
		t.Errorf("BoundingBox() = %v, want (0,0)-(1,0.75)", bbox)
	}
}

func TestCubicBez_Length(t *testing.T) {
	straight := CubicBez{P0: Pt(0, 0), P1: Pt(1, 0), P2: Pt(2, 0), P3: Pt(3, 0)}
	if got := straight.Length(); math.Abs(got-3) > 1e-6 {
		t.Errorf("straight Length() = %v, want 3", got)
	}

	// A cubic approximation of a quarter circle of radius 1.
	const k = 0.5522847498
	quarter := CubicBez{P0: Pt(1, 0), P1: Pt(1, k), P2: Pt(k, 1), P3: Pt(0, 1)}
	if got := quarter.Length(); math.Abs(got-math.Pi/2) > 1e-3 {
		t.Errorf("quarter Length() = %v, want ~%v", got, math.Pi/2)
	}
}

func TestCubicBez_LengthNaN(t *testing.T) {
	c := CubicBez{P0: Pt(0, 0), P1: Pt(math.NaN(), 0), P2: Pt(1, 1), P3: Pt(1, 0)}
	// Must terminate.
	_ = c.Length()
}

// -------------------------------------------------------------------
// LineCurve Tests
// -------------------------------------------------------------------

func TestLineCurve(t *testing.T) {
	l := NewLineCurve(Pt(0, 0), Pt(10, 0))

	t0, t1 := l.Domain()
	if t0 != 0 || t1 != 1 {
		t.Errorf("Domain() = [%v, %v], want [0, 1]", t0, t1)
	}
	if got := l.PointAt(0.3); !pointsEqual(got, Pt(3, 0), epsilon) {
		t.Errorf("PointAt(0.3) = %v, want (3, 0)", got)
	}
	if got := l.PointAt(2); !pointsEqual(got, Pt(10, 0), epsilon) {
		t.Errorf("PointAt(2) = %v, want clamped (10, 0)", got)
	}
	if got := l.PointAt(-1); !pointsEqual(got, Pt(0, 0), epsilon) {
		t.Errorf("PointAt(-1) = %v, want clamped (0, 0)", got)
	}
	if l.IsClosed() {
		t.Error("a line is never closed")
	}
	if got := l.Length(); got != 10 {
		t.Errorf("Length() = %v, want 10", got)
	}
}

// -------------------------------------------------------------------
// Polyline Tests
// -------------------------------------------------------------------

func TestPolyline_Open(t *testing.T) {
	p := NewPolyline([]Point{Pt(0, 0), Pt(4, 0), Pt(4, 3)}, false)

	t0, t1 := p.Domain()
	if t0 != 0 || t1 != 2 {
		t.Errorf("Domain() = [%v, %v], want [0, 2]", t0, t1)
	}
	if got := p.Length(); math.Abs(got-7) > epsilon {
		t.Errorf("Length() = %v, want 7", got)
	}
	if got := p.PointAt(1.5); !pointsEqual(got, Pt(4, 1.5), epsilon) {
		t.Errorf("PointAt(1.5) = %v, want (4, 1.5)", got)
	}
	if got := p.PointAt(2); !pointsEqual(got, Pt(4, 3), epsilon) {
		t.Errorf("PointAt(2) = %v, want (4, 3)", got)
	}
	if p.IsClosed() {
		t.Error("open polyline reports closed")
	}
}

func TestPolyline_Closed(t *testing.T) {
	tests := []struct {
		name     string
		pts      []Point
		closed   bool
		segments float64
		length   float64
		isClosed bool
	}{
		{
			name:     "closed flag appends segment",
			pts:      []Point{Pt(0, 0), Pt(3, 0), Pt(3, 4)},
			closed:   true,
			segments: 3, length: 12, isClosed: true,
		},
		{
			name:     "coincident ends",
			pts:      []Point{Pt(0, 0), Pt(3, 0), Pt(3, 4), Pt(0, 0)},
			closed:   false,
			segments: 3, length: 12, isClosed: true,
		},
		{
			name:     "closed flag with coincident ends",
			pts:      []Point{Pt(0, 0), Pt(3, 0), Pt(3, 4), Pt(0, 0)},
			closed:   true,
			segments: 3, length: 12, isClosed: true,
		},
		{
			name:     "two points never close",
			pts:      []Point{Pt(0, 0), Pt(5, 0)},
			closed:   true,
			segments: 1, length: 5, isClosed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPolyline(tt.pts, tt.closed)
			if _, t1 := p.Domain(); t1 != tt.segments {
				t.Errorf("Domain end = %v, want %v", t1, tt.segments)
			}
			if got := p.Length(); math.Abs(got-tt.length) > epsilon {
				t.Errorf("Length() = %v, want %v", got, tt.length)
			}
			if got := p.IsClosed(); got != tt.isClosed {
				t.Errorf("IsClosed() = %v, want %v", got, tt.isClosed)
			}
		})
	}
}

func TestPolyline_Degenerate(t *testing.T) {
	single := NewPolyline([]Point{Pt(2, 3)}, false)
	if _, t1 := single.Domain(); t1 != 0 {
		t.Errorf("single point Domain end = %v, want 0", t1)
	}
	if got := single.PointAt(0); got != Pt(2, 3) {
		t.Errorf("single point PointAt = %v, want (2, 3)", got)
	}
	if got := single.Length(); got != 0 {
		t.Errorf("single point Length = %v, want 0", got)
	}

	empty := NewPolyline(nil, false)
	if !empty.BoundingBox().IsEmpty() {
		t.Error("empty polyline should have an empty box")
	}
}

func TestRectPolyline(t *testing.T) {
	p := RectPolyline(NewRect(Pt(0, 0), Pt(10, 5)))
	if !p.IsClosed() {
		t.Error("rect polyline should be closed")
	}
	if got := p.Length(); math.Abs(got-30) > epsilon {
		t.Errorf("Length() = %v, want 30", got)
	}
	if got := p.PointAt(4); !pointsEqual(got, Pt(0, 0), epsilon) {
		t.Errorf("PointAt(end) = %v, want back at (0, 0)", got)
	}
}

// -------------------------------------------------------------------
// Arc Tests
// -------------------------------------------------------------------

func TestArc_Circle(t *testing.T) {
	c := NewCircle(Pt(5, 5), 2)

	if !c.IsClosed() {
		t.Error("circle should be closed")
	}
	if got := c.Length(); math.Abs(got-4*math.Pi) > epsilon {
		t.Errorf("Length() = %v, want 4π", got)
	}
	bbox := c.BoundingBox()
	if !pointsEqual(bbox.Min, Pt(3, 3), epsilon) || !pointsEqual(bbox.Max, Pt(7, 7), epsilon) {
		t.Errorf("BoundingBox() = %v, want (3,3)-(7,7)", bbox)
	}
	if got := c.PointAt(math.Pi / 2); !pointsEqual(got, Pt(5, 7), 1e-9) {
		t.Errorf("PointAt(π/2) = %v, want (5, 7)", got)
	}
}

func TestArc_BoundingBox(t *testing.T) {
	s := math.Sqrt2 / 2

	tests := []struct {
		name       string
		start, end float64
		min, max   Point
	}{
		{"quarter", 0, math.Pi / 2, Pt(0, 0), Pt(1, 1)},
		{"top crossing", math.Pi / 4, 3 * math.Pi / 4, Pt(-s, s), Pt(s, 1)},
		{"no crossing", math.Pi / 8, math.Pi / 4, Pt(s, math.Sin(math.Pi/8)), Pt(math.Cos(math.Pi/8), s)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Arc{Center: Pt(0, 0), Radius: 1, Start: tt.start, End: tt.end}
			bbox := a.BoundingBox()
			if !pointsEqual(bbox.Min, tt.min, 1e-9) || !pointsEqual(bbox.Max, tt.max, 1e-9) {
				t.Errorf("BoundingBox() = %v, want %v-%v", bbox, tt.min, tt.max)
			}
			if a.IsClosed() {
				t.Error("partial arc reports closed")
			}
		})
	}
}

func TestArc_BoundingBoxHugeAngles(t *testing.T) {
	// At this magnitude every multiple of π/2 nearby is the same float.
	a := &Arc{Center: Pt(0, 0), Radius: 1, Start: 1e300, End: 1e300}
	bbox := a.BoundingBox()
	if bbox.IsEmpty() {
		t.Errorf("BoundingBox() = %v, want a non-empty box", bbox)
	}
}
