package scene

import (
	"encoding/json"
	"fmt"

	"github.com/gogpu/scenesync"
)

// Record type tags.
const (
	TypeFrame = "frame"
	TypeCurve = "curve"
	TypeText  = "text"
)

// Point is an [x, y] pair.
type Point [2]Number

// PointFrom converts a geometry point.
func PointFrom(p scenesync.Point) Point {
	return Point{Number(p.X), Number(p.Y)}
}

// Frame is a rectangular region curves and texts are grouped under.
type Frame struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	X      Number `json:"x"`
	Y      Number `json:"y"`
	Width  Number `json:"width"`
	Height Number `json:"height"`

	// Bounds is the frame box used during classification. It is not
	// written.
	Bounds scenesync.Rect `json:"-"`
}

// FrameID returns the id of the frame at position index of the input list.
func FrameID(index int) string {
	return fmt.Sprintf("frame_%d", index)
}

// FrameName returns the display name of the frame at position index.
// A frame given on its own rather than in a list is just "Frame".
func FrameName(index int, single bool) string {
	if single {
		return "Frame"
	}
	return fmt.Sprintf("Frame %d", index+1)
}

// NewFrame builds the frame record for box r at input position index.
func NewFrame(index int, single bool, r scenesync.Rect) Frame {
	return Frame{
		ID:     FrameID(index),
		Name:   FrameName(index, single),
		X:      Number(r.Min.X),
		Y:      Number(r.Min.Y),
		Width:  Number(r.Width()),
		Height: Number(r.Height()),
		Bounds: r,
	}
}

// MarshalJSON implements json.Marshaler.
func (f Frame) MarshalJSON() ([]byte, error) {
	type frame Frame
	return json.Marshal(struct {
		Type string `json:"type"`
		frame
	}{TypeFrame, frame(f)})
}

// Style is the stroke of a curve.
type Style struct {
	// Stroke is a "#rrggbb" color.
	Stroke      string `json:"stroke"`
	StrokeWidth Number `json:"strokeWidth"`
}

// CurveRecord is a sampled curve.
type CurveRecord struct {
	Points        []Point `json:"points"`
	Closed        bool    `json:"closed"`
	Style         Style   `json:"style"`
	ParentFrameID *string `json:"parentFrameId"`
}

// MarshalJSON implements json.Marshaler. A curve without points is written
// with an empty list.
func (c CurveRecord) MarshalJSON() ([]byte, error) {
	type curve CurveRecord
	if c.Points == nil {
		c.Points = []Point{}
	}
	return json.Marshal(struct {
		Type string `json:"type"`
		curve
	}{TypeCurve, curve(c)})
}

// Font names a font family and style.
type Font struct {
	Family string `json:"family"`
	Style  string `json:"style"`
}

// Color is an 8-bit RGB color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// TextRecord is an annotation text anchored at X, Y.
type TextRecord struct {
	Text          string  `json:"text"`
	X             Number  `json:"x"`
	Y             Number  `json:"y"`
	Font          Font    `json:"font"`
	FontSize      Number  `json:"fontSize"`
	Color         Color   `json:"color"`
	ParentFrameID *string `json:"parentFrameId"`
}

// MarshalJSON implements json.Marshaler.
func (t TextRecord) MarshalJSON() ([]byte, error) {
	type text TextRecord
	return json.Marshal(struct {
		Type string `json:"type"`
		text
	}{TypeText, text(t)})
}

// Parent returns a pointer to the id of frames[index], or nil when index
// is out of range.
func Parent(frames []Frame, index int) *string {
	if index < 0 || index >= len(frames) {
		return nil
	}
	id := frames[index].ID
	return &id
}
