// Package figma turns a scene into the shape list a Figma plugin consumes:
// FRAME, VECTOR and TEXT nodes with 0..1 colors and SVG-like path data.
package figma

import (
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/scenesync"
	"github.com/gogpu/scenesync/scene"
)

// Node types.
const (
	TypeFrame  = "FRAME"
	TypeVector = "VECTOR"
	TypeText   = "TEXT"
)

// DefaultStrokeWeight replaces a zero stroke width.
const DefaultStrokeWeight = 2.0

// timeLayout matches JavaScript's Date.toISOString.
const timeLayout = "2006-01-02T15:04:05.000Z"

// Color is an RGB color with channels in 0..1.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Paint is a solid fill or stroke.
type Paint struct {
	Type  string `json:"type"`
	Color Color  `json:"color"`
}

func solid(c colorful.Color) Paint {
	return Paint{Type: "SOLID", Color: Color{R: c.R, G: c.G, B: c.B}}
}

// VectorPath is one path of a vector node.
type VectorPath struct {
	WindingRule string `json:"windingRule"`
	Data        string `json:"data"`
}

// Frame is a FRAME node.
type Frame struct {
	Type   string  `json:"type"`
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Vector is a VECTOR node drawn from a sampled curve.
type Vector struct {
	Type          string       `json:"type"`
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	X             float64      `json:"x"`
	Y             float64      `json:"y"`
	Width         float64      `json:"width"`
	Height        float64      `json:"height"`
	Fills         []Paint      `json:"fills"`
	Strokes       []Paint      `json:"strokes"`
	StrokeWeight  float64      `json:"strokeWeight"`
	VectorPaths   []VectorPath `json:"vectorPaths"`
	ParentFrameID *string      `json:"parentFrameId"`
}

// Text is a TEXT node.
type Text struct {
	Type          string     `json:"type"`
	Name          string     `json:"name"`
	Text          string     `json:"text"`
	X             float64    `json:"x"`
	Y             float64    `json:"y"`
	Font          scene.Font `json:"font"`
	FontSize      float64    `json:"fontSize"`
	Fills         []Paint    `json:"fills"`
	ParentFrameID *string    `json:"parentFrameId"`
}

// Metadata describes a Document.
type Metadata struct {
	TotalShapes int    `json:"totalShapes"`
	LastUpdated string `json:"lastUpdated"`
}

// Document is the figma-ready payload. Shapes holds Frame, Vector and Text
// values in that order.
type Document struct {
	Shapes   []any    `json:"shapes"`
	Metadata Metadata `json:"metadata"`
}

// Convert builds the figma-ready document of s, stamped with now.
//
// Curves without points are dropped. Vector ids and names count records
// over the whole scene, frames included, so the first curve after two
// frames is "curve-2" / "Curve 3".
func Convert(s *scene.Scene, now time.Time) *Document {
	shapes := make([]any, 0, s.Len())
	for _, f := range s.Frames {
		shapes = append(shapes, Frame{
			Type:   TypeFrame,
			ID:     f.ID,
			Name:   f.Name,
			X:      f.X.Round(),
			Y:      f.Y.Round(),
			Width:  f.Width.Round(),
			Height: f.Height.Round(),
		})
	}

	index := len(s.Frames)
	for _, c := range s.Curves {
		if v, ok := vector(c, index); ok {
			shapes = append(shapes, v)
		}
		index++
	}
	for i, t := range s.Texts {
		shapes = append(shapes, Text{
			Type:          TypeText,
			Name:          "Text " + strconv.Itoa(i+1),
			Text:          t.Text,
			X:             t.X.Round(),
			Y:             t.Y.Round(),
			Font:          t.Font,
			FontSize:      t.FontSize.Round(),
			Fills:         []Paint{solid(rgb255(t.Color))},
			ParentFrameID: t.ParentFrameID,
		})
	}

	scenesync.Logger().Debug("figma: converted", "shapes", len(shapes), "records", s.Len())
	return &Document{
		Shapes: shapes,
		Metadata: Metadata{
			TotalShapes: len(shapes),
			LastUpdated: now.UTC().Format(timeLayout),
		},
	}
}

func vector(c scene.CurveRecord, index int) (Vector, bool) {
	if len(c.Points) == 0 {
		return Vector{}, false
	}

	box := scenesync.EmptyRect()
	for _, p := range c.Points {
		box = box.Extend(scenesync.Pt(p[0].Round(), p[1].Round()))
	}

	weight := c.Style.StrokeWidth.Round()
	if weight == 0 || math.IsNaN(weight) {
		weight = DefaultStrokeWeight
	}

	stroke, err := colorful.Hex(c.Style.Stroke)
	if err != nil {
		scenesync.Logger().Debug("figma: invalid stroke color", "stroke", c.Style.Stroke, "err", err)
		stroke = colorful.Color{}
	}

	return Vector{
		Type:         TypeVector,
		ID:           "curve-" + strconv.Itoa(index),
		Name:         "Curve " + strconv.Itoa(index+1),
		X:            box.Min.X,
		Y:            box.Min.Y,
		Width:        box.Width(),
		Height:       box.Height(),
		Fills:        []Paint{},
		Strokes:      []Paint{solid(stroke)},
		StrokeWeight: weight,
		VectorPaths: []VectorPath{{
			WindingRule: "NONZERO",
			Data:        pathData(c.Points, box.Min, c.Closed),
		}},
		ParentFrameID: c.ParentFrameID,
	}, true
}

// pathData writes points relative to origin as "M x y L x y ...", with a
// trailing "Z" for closed curves.
func pathData(pts []scene.Point, origin scenesync.Point, closed bool) string {
	var b strings.Builder
	for i, p := range pts {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(formatCoord(p[0].Round() - origin.X))
		b.WriteByte(' ')
		b.WriteString(formatCoord(p[1].Round() - origin.Y))
	}
	if closed {
		b.WriteString(" Z")
	}
	return b.String()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(scene.Number(v).Round(), 'f', -1, 64)
}

func rgb255(c scene.Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Encode writes d as indented JSON followed by a newline.
func Encode(w io.Writer, d *Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
