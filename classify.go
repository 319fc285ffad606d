package scenesync

// DefaultClassifyFactor is the density multiplier used when sampling a
// curve for frame classification.
const DefaultClassifyFactor = 2.0

// CurveInRect reports whether c belongs to the frame box r.
//
// The test runs in three stages: reject when the boxes are disjoint,
// accept when r contains the whole curve box, otherwise sample c with opts
// and accept when any sample lies inside r. A curve that only clips a
// frame corner between two samples is not assigned to it.
func CurveInRect(c Curve, r Rect, opts SampleOptions) bool {
	if c == nil || r.IsEmpty() {
		return false
	}
	box := c.BoundingBox()
	if box.IsEmpty() || !box.Overlaps(r) {
		return false
	}
	if r.ContainsRect(box) {
		return true
	}
	for _, pt := range Sample(c, opts) {
		if r.Contains(pt) {
			return true
		}
	}
	return false
}

// BoxInRect reports whether an item with bounding box box belongs to r.
// The item fills its box, so any overlap places one of its points inside r.
func BoxInRect(box, r Rect) bool {
	if box.IsEmpty() || r.IsEmpty() {
		return false
	}
	return box.Overlaps(r)
}

// Classifier assigns items to the first matching frame box.
type Classifier struct {
	// Frames are tested in order; the first match wins.
	Frames []Rect

	// Sampling is used for the point-in-box stage of curve tests.
	Sampling SampleOptions
}

// NewClassifier returns a classifier whose sampling is display density
// scaled by factor.
func NewClassifier(frames []Rect, display SampleOptions, factor float64) *Classifier {
	if factor <= 0 {
		factor = DefaultClassifyFactor
	}
	return &Classifier{Frames: frames, Sampling: display.Scaled(factor)}
}

// ClassifyCurve returns the index of the first frame containing c, or -1.
func (k *Classifier) ClassifyCurve(c Curve) int {
	for i, r := range k.Frames {
		if CurveInRect(c, r, k.Sampling) {
			return i
		}
	}
	return -1
}

// ClassifyBox returns the index of the first frame overlapping box, or -1.
func (k *Classifier) ClassifyBox(box Rect) int {
	for i, r := range k.Frames {
		if BoxInRect(box, r) {
			return i
		}
	}
	return -1
}
