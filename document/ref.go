package document

import "github.com/gogpu/scenesync"

// RefKind tags the variant a Ref holds.
type RefKind int

const (
	// RefCurve is a directly supplied curve.
	RefCurve RefKind = iota + 1
	// RefRect is a directly supplied axis-aligned rectangle.
	RefRect
	// RefHandle is an opaque object handle, resolved against a document.
	RefHandle
)

func (k RefKind) String() string {
	switch k {
	case RefCurve:
		return "curve"
	case RefRect:
		return "rect"
	case RefHandle:
		return "handle"
	default:
		return "invalid"
	}
}

// Ref is a geometry input as handed over by a visual-programming host:
// either the geometry itself or a handle to an object in a document.
type Ref struct {
	Kind   RefKind
	Curve  scenesync.Curve
	Rect   scenesync.Rect
	Handle string
}

// CurveRef wraps a curve.
func CurveRef(c scenesync.Curve) Ref { return Ref{Kind: RefCurve, Curve: c} }

// RectRef wraps a rectangle.
func RectRef(r scenesync.Rect) Ref { return Ref{Kind: RefRect, Rect: r} }

// HandleRef wraps an object handle.
func HandleRef(handle string) Ref { return Ref{Kind: RefHandle, Handle: handle} }

// Inputs are the parameters of one conversion run.
type Inputs struct {
	// Drawing curves, in input order.
	Drawing []Ref

	// Frames, in input order.
	Frames []Ref

	// SingleFrame is set when the frames input was a single value rather
	// than a list. It only affects frame naming.
	SingleFrame bool

	// StrokeWeight overrides the configured stroke weight when set.
	StrokeWeight *float64
}
