package convert

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gogpu/scenesync"
	"github.com/gogpu/scenesync/document"
)

// ErrUnresolvable is returned when a reference does not lead to usable
// geometry: a malformed or unknown handle, or an object of the wrong type.
var ErrUnresolvable = errors.New("convert: unresolvable reference")

// lookup finds the live object behind a handle.
func lookup(doc document.Document, handle string) (*document.Object, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: handle %q: no document", ErrUnresolvable, handle)
	}
	id, err := uuid.Parse(handle)
	if err != nil {
		return nil, fmt.Errorf("%w: handle %q: %v", ErrUnresolvable, handle, err)
	}
	obj, ok := doc.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: handle %s: not found", ErrUnresolvable, id)
	}
	return obj, nil
}

// resolveCurve returns the curve a reference stands for. Rectangles
// resolve to their closed boundary.
func resolveCurve(doc document.Document, ref document.Ref) (scenesync.Curve, error) {
	switch ref.Kind {
	case document.RefCurve:
		if ref.Curve == nil {
			return nil, fmt.Errorf("%w: nil curve", ErrUnresolvable)
		}
		return ref.Curve, nil
	case document.RefRect:
		if ref.Rect.IsEmpty() {
			return nil, fmt.Errorf("%w: empty rectangle", ErrUnresolvable)
		}
		return scenesync.RectPolyline(ref.Rect), nil
	case document.RefHandle:
		obj, err := lookup(doc, ref.Handle)
		if err != nil {
			return nil, err
		}
		if obj.Type != document.TypeCurve || obj.Curve == nil {
			return nil, fmt.Errorf("%w: object %s is %v, not a curve", ErrUnresolvable, obj.ID, obj.Type)
		}
		return obj.Curve, nil
	}
	return nil, fmt.Errorf("%w: kind %v", ErrUnresolvable, ref.Kind)
}

// resolveFrameBounds returns the box of a frame reference: the rectangle
// itself, or the bounding box of a curve.
func resolveFrameBounds(doc document.Document, ref document.Ref) (scenesync.Rect, error) {
	if ref.Kind == document.RefRect {
		if ref.Rect.IsEmpty() {
			return scenesync.Rect{}, fmt.Errorf("%w: empty rectangle", ErrUnresolvable)
		}
		return ref.Rect, nil
	}
	c, err := resolveCurve(doc, ref)
	if err != nil {
		return scenesync.Rect{}, err
	}
	box := c.BoundingBox()
	if box.IsEmpty() {
		return scenesync.Rect{}, fmt.Errorf("%w: curve has no bounding box", ErrUnresolvable)
	}
	return box, nil
}
