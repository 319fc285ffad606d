package document

import (
	"github.com/google/uuid"

	"github.com/gogpu/scenesync"
)

// ObjectType classifies the geometry an object carries. Values are bit
// flags so a Filter can select several types at once.
type ObjectType uint32

const (
	// TypeCurve objects carry a scenesync.Curve.
	TypeCurve ObjectType = 1 << iota
	// TypeAnnotation objects carry a TextEntity.
	TypeAnnotation
	// TypeTextDot objects carry a TextDot.
	TypeTextDot
	// TypeOther objects carry geometry the pipeline does not convert
	// (surfaces, meshes, broken geometry).
	TypeOther
)

// String returns a readable name for the type.
func (t ObjectType) String() string {
	switch t {
	case TypeCurve:
		return "curve"
	case TypeAnnotation:
		return "annotation"
	case TypeTextDot:
		return "textdot"
	case TypeOther:
		return "other"
	default:
		return "mixed"
	}
}

// Color is an 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// ColorSource says where an object's display color comes from.
type ColorSource int

const (
	// ColorFromLayer uses the owning layer's color. It is the zero value.
	ColorFromLayer ColorSource = iota
	// ColorFromObject uses Attributes.Color.
	ColorFromObject
)

// Attributes are the per-object display attributes.
type Attributes struct {
	LayerIndex  int
	ColorSource ColorSource
	Color       Color
	// ColorNamed is set when Color was given by name ("black") rather
	// than as raw channels. An unnamed black is the host's "no color".
	ColorNamed bool
}

// Layer is an entry of the document layer table.
type Layer struct {
	Name     string
	Color    Color
	HasColor bool
}

// Font is an entry of the document font table. Family may be empty when
// the font could not be identified.
type Font struct {
	Family string
	Bold   bool
	Italic bool

	// File is the font file the entry was read from, if any.
	File string
}

// TextEntity is a block of annotation text anchored at a plane origin.
type TextEntity struct {
	// Text is the plain text content, without formatting codes.
	Text string

	Origin scenesync.Point

	// FontIndex indexes the document font table; -1 when unset.
	FontIndex int

	// Height is the text height in document units; 0 when unset.
	Height float64

	Bounds scenesync.Rect
}

// BoundingBox returns the box the text occupies.
func (t *TextEntity) BoundingBox() scenesync.Rect { return t.Bounds }

// TextDot is a text label pinned to a point. Dots have no font metadata.
type TextDot struct {
	Text   string
	Point  scenesync.Point
	Bounds scenesync.Rect
}

// BoundingBox returns the box the dot occupies.
func (d *TextDot) BoundingBox() scenesync.Rect { return d.Bounds }

// Object is one entry of the document object table. Exactly one of Curve,
// Text and Dot is set, matching Type; TypeOther objects carry none.
type Object struct {
	ID   uuid.UUID
	Type ObjectType

	Curve scenesync.Curve
	Text  *TextEntity
	Dot   *TextDot

	Attributes Attributes

	Hidden  bool
	Locked  bool
	Deleted bool
}

// Filter selects objects during enumeration.
type Filter struct {
	// Types is a mask of accepted types; zero accepts every type.
	Types ObjectType

	IncludeHidden  bool
	IncludeLocked  bool
	IncludeDeleted bool
}

// Match reports whether o passes the filter.
func (f Filter) Match(o *Object) bool {
	if o == nil {
		return false
	}
	if f.Types != 0 && f.Types&o.Type == 0 {
		return false
	}
	if o.Deleted && !f.IncludeDeleted {
		return false
	}
	if o.Hidden && !f.IncludeHidden {
		return false
	}
	if o.Locked && !f.IncludeLocked {
		return false
	}
	return true
}

// Document is the read-only view of a CAD document the pipeline consumes.
type Document interface {
	// Find returns the live (not deleted) object with the given handle.
	Find(id uuid.UUID) (*Object, bool)

	// Objects enumerates objects matching f in document order.
	// Documents that cannot filter by type return ErrFilterUnsupported
	// when f.Types is non-zero.
	Objects(f Filter) ([]*Object, error)

	// Layer returns the layer table entry at index.
	Layer(index int) (Layer, error)

	// Font returns the font table entry at index.
	Font(index int) (Font, error)
}
