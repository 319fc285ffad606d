package scenesync

import "math"

// Default sampling parameters.
const (
	DefaultDensity     = 1.0
	DefaultMinSegments = 2
	DefaultMaxSegments = 10000
)

// SampleOptions controls how densely a curve is discretized.
//
// The segment count grows with curve length so that small and large
// curves keep a similar visual fidelity.
type SampleOptions struct {
	// Density is the number of segments per document unit of length.
	Density float64

	// MinSegments and MaxSegments clamp the segment count.
	MinSegments int
	MaxSegments int
}

// DefaultSampleOptions returns density 1.0 clamped to [2, 10000].
func DefaultSampleOptions() SampleOptions {
	return SampleOptions{
		Density:     DefaultDensity,
		MinSegments: DefaultMinSegments,
		MaxSegments: DefaultMaxSegments,
	}
}

// Scaled returns a copy with the density multiplied by factor.
func (o SampleOptions) Scaled(factor float64) SampleOptions {
	o.Density *= factor
	return o
}

// SegmentCount returns clamp(round(length*density), min, max).
// Halves round to even.
func SegmentCount(length float64, opts SampleOptions) int {
	lo, hi := opts.MinSegments, opts.MaxSegments
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}

	v := math.RoundToEven(length * opts.Density)
	switch {
	case math.IsNaN(v) || v < float64(lo):
		return lo
	case v > float64(hi):
		return hi
	}
	return int(v)
}

// Sample discretizes c into an ordered polyline.
//
// Parameters are spaced uniformly over the curve domain. Open curves yield
// SegmentCount+1 points including the end; closed curves yield
// SegmentCount points so the first point is not repeated.
//
// A nil curve, a curve with zero or non-finite length, or a curve with an
// empty domain yields nil.
func Sample(c Curve, opts SampleOptions) []Point {
	if c == nil {
		return nil
	}
	length := c.Length()
	if !isFinite(length) || length <= 0 {
		return nil
	}
	t0, t1 := c.Domain()
	if !isFinite(t0) || !isFinite(t1) || t1 <= t0 {
		return nil
	}

	n := SegmentCount(length, opts)
	count := n + 1
	if c.IsClosed() {
		count = n
	}

	pts := make([]Point, count)
	span := t1 - t0
	for i := range pts {
		t := t0 + span*float64(i)/float64(n)
		if i == n {
			t = t1
		}
		pts[i] = c.PointAt(t)
	}
	return pts
}
