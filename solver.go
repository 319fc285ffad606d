package scenesync

import "math"

// rootSlack is how far outside [0, 1] a root may fall and still be clamped
// onto the interval.
const rootSlack = 1e-12

// unitRoots returns the real roots of a*t² + b*t + c in [0, 1], ascending.
// A quadratic term too small to divide by leaves the linear root. A
// polynomial that is identically zero has no isolated roots.
func unitRoots(a, b, c float64) []float64 {
	var roots []float64
	if p, q := b/a, c/a; isFinite(p) && isFinite(q) {
		roots = monicRoots(p, q)
	} else if r := -c / b; isFinite(r) {
		roots = []float64{r}
	}

	in := roots[:0]
	for _, r := range roots {
		if r >= -rootSlack && r <= 1+rootSlack {
			in = append(in, math.Min(math.Max(r, 0), 1))
		}
	}
	return in
}

// monicRoots solves t² + p*t + q = 0. The larger-magnitude root is taken
// from the formula and the other from the product q.
func monicRoots(p, q float64) []float64 {
	disc := p*p - 4*q
	var r float64
	switch {
	case !isFinite(disc):
		r = -p
	case disc < 0:
		return nil
	case disc == 0:
		return []float64{-p / 2}
	default:
		r = -(p + math.Copysign(math.Sqrt(disc), p)) / 2
	}

	s := q / r
	switch {
	case !isFinite(s):
		return []float64{r}
	case s < r:
		return []float64{s, r}
	}
	return []float64{r, s}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
