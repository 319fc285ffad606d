package scenesync

import (
	"math"
	"testing"
)

func TestSegmentCount(t *testing.T) {
	def := DefaultSampleOptions()

	tests := []struct {
		name   string
		length float64
		opts   SampleOptions
		want   int
	}{
		{"exact", 10, def, 10},
		{"below min", 0.4, def, 2},
		{"zero", 0, def, 2},
		{"half rounds to even down", 2.5, def, 2},
		{"half rounds to even up", 3.5, def, 4},
		{"above max", 1e9, def, 10000},
		{"nan", math.NaN(), def, 2},
		{"inf", math.Inf(1), def, 10000},
		{"density", 10, SampleOptions{Density: 2.5, MinSegments: 2, MaxSegments: 100}, 25},
		{"min below one", 0, SampleOptions{Density: 1, MinSegments: 0, MaxSegments: 10}, 1},
		{"max below min", 50, SampleOptions{Density: 1, MinSegments: 8, MaxSegments: 3}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentCount(tt.length, tt.opts); got != tt.want {
				t.Errorf("SegmentCount(%v) = %d, want %d", tt.length, got, tt.want)
			}
		})
	}
}

func TestSampleOptions_Scaled(t *testing.T) {
	o := DefaultSampleOptions()
	s := o.Scaled(2)

	if s.Density != 2 {
		t.Errorf("Scaled(2).Density = %v, want 2", s.Density)
	}
	if s.MinSegments != o.MinSegments || s.MaxSegments != o.MaxSegments {
		t.Error("Scaled should keep the clamps")
	}
	if o.Density != DefaultDensity {
		t.Error("Scaled should not modify the receiver")
	}
}

func TestSample_OpenLine(t *testing.T) {
	pts := Sample(NewLineCurve(Pt(0, 0), Pt(10, 0)), DefaultSampleOptions())

	if len(pts) != 11 {
		t.Fatalf("len = %d, want 11", len(pts))
	}
	for i, pt := range pts {
		if !pointsEqual(pt, Pt(float64(i), 0), epsilon) {
			t.Errorf("pts[%d] = %v, want (%d, 0)", i, pt, i)
		}
	}
}

func TestSample_Closed(t *testing.T) {
	tests := []struct {
		name  string
		curve Curve
		want  int
	}{
		{"circle r=1", NewCircle(Pt(0, 0), 1), 6},
		{"rect 10x5", RectPolyline(NewRect(Pt(0, 0), Pt(10, 5))), 30},
		{"square path", unitSquare(), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := Sample(tt.curve, DefaultSampleOptions())
			if len(pts) != tt.want {
				t.Fatalf("len = %d, want %d", len(pts), tt.want)
			}
			first, last := pts[0], pts[len(pts)-1]
			if pointsEqual(first, last, 1e-9) {
				t.Errorf("closed sample repeats its first point: %v", last)
			}
		})
	}
}

func TestSample_ParameterUniform(t *testing.T) {
	// Segments of length 1 and 9: half the samples land on the short one.
	p := NewPolyline([]Point{Pt(0, 0), Pt(1, 0), Pt(10, 0)}, false)
	pts := Sample(p, DefaultSampleOptions())

	if len(pts) != 11 {
		t.Fatalf("len = %d, want 11", len(pts))
	}
	if !pointsEqual(pts[5], Pt(1, 0), epsilon) {
		t.Errorf("pts[5] = %v, want the middle vertex (1, 0)", pts[5])
	}
	if !pointsEqual(pts[10], Pt(10, 0), epsilon) {
		t.Errorf("last = %v, want (10, 0)", pts[10])
	}
}

func TestSample_EndpointExact(t *testing.T) {
	a := &Arc{Center: Pt(0, 0), Radius: 3, Start: 0.1, End: 2.9}
	pts := Sample(a, DefaultSampleOptions())
	if len(pts) == 0 {
		t.Fatal("no samples")
	}
	if got, want := pts[len(pts)-1], a.PointAt(a.End); got != want {
		t.Errorf("last = %v, want exactly %v", got, want)
	}
	if got, want := pts[0], a.PointAt(a.Start); got != want {
		t.Errorf("first = %v, want exactly %v", got, want)
	}
}

func TestSample_Degenerate(t *testing.T) {
	tests := []struct {
		name  string
		curve Curve
	}{
		{"nil", nil},
		{"zero length", NewLineCurve(Pt(1, 1), Pt(1, 1))},
		{"empty path", NewPath()},
		{"nan", NewLineCurve(Pt(0, 0), Pt(math.NaN(), 1))},
		{"reversed arc", &Arc{Center: Pt(0, 0), Radius: 1, Start: 1, End: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if pts := Sample(tt.curve, DefaultSampleOptions()); pts != nil {
				t.Errorf("Sample() = %v, want nil", pts)
			}
		})
	}
}

func TestSample_Deterministic(t *testing.T) {
	c := CubicBez{P0: Pt(0, 0), P1: Pt(3, 8), P2: Pt(7, -4), P3: Pt(10, 2)}
	p := NewPath()
	p.MoveTo(c.P0.X, c.P0.Y)
	p.CubicTo(c.P1.X, c.P1.Y, c.P2.X, c.P2.Y, c.P3.X, c.P3.Y)

	a := Sample(p, DefaultSampleOptions())
	b := Sample(p, DefaultSampleOptions())
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func BenchmarkSample(b *testing.B) {
	c := NewCircle(Pt(0, 0), 500)
	opts := DefaultSampleOptions()
	b.ReportAllocs()
	for b.Loop() {
		_ = Sample(c, opts)
	}
}
