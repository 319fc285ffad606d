package convert

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/scenesync"
	"github.com/gogpu/scenesync/document"
	"github.com/gogpu/scenesync/fonts"
	"github.com/gogpu/scenesync/scene"
)

// ErrMissingMetadata is returned by style lookups when a field is unset or
// invalid. Callers substitute the configured default for that field.
var ErrMissingMetadata = errors.New("convert: missing metadata")

// black is the color of last resort.
var black = scene.Color{}

func toSceneColor(c document.Color) scene.Color {
	return scene.Color{R: c.R, G: c.G, B: c.B}
}

// objectColor returns the color set on the object itself. Black given as
// raw channels is the host's unset value and counts as missing; named
// black is kept.
func objectColor(obj *document.Object) (scene.Color, error) {
	a := obj.Attributes
	if a.ColorSource != document.ColorFromObject {
		return black, fmt.Errorf("%w: object color is by layer", ErrMissingMetadata)
	}
	if a.Color == (document.Color{}) && !a.ColorNamed {
		return black, fmt.Errorf("%w: object color is unnamed black", ErrMissingMetadata)
	}
	return toSceneColor(a.Color), nil
}

// layerColor returns the color of the layer at index.
func layerColor(doc document.Document, index int) (scene.Color, error) {
	if index < 0 {
		return black, fmt.Errorf("%w: layer index %d", ErrMissingMetadata, index)
	}
	l, err := doc.Layer(index)
	if err != nil {
		return black, fmt.Errorf("%w: %v", ErrMissingMetadata, err)
	}
	if !l.HasColor {
		return black, fmt.Errorf("%w: layer %d has no color", ErrMissingMetadata, index)
	}
	return toSceneColor(l.Color), nil
}

// effectiveColor resolves object color, then layer color, then black.
func effectiveColor(doc document.Document, obj *document.Object) scene.Color {
	c, err := objectColor(obj)
	if err == nil {
		return c
	}
	c, err = layerColor(doc, obj.Attributes.LayerIndex)
	if err == nil {
		return c
	}
	scenesync.Logger().Debug("convert: default text color", "object", obj.ID, "err", err)
	return black
}

// entityFont returns the font table entry of a text entity. When the entry
// has no family but names a font file, the family and aspect are read from
// the file.
func entityFont(doc document.Document, ent *document.TextEntity, reg *fonts.Registry) (document.Font, error) {
	if ent.FontIndex < 0 {
		return document.Font{}, fmt.Errorf("%w: no font index", ErrMissingMetadata)
	}
	f, err := doc.Font(ent.FontIndex)
	if err != nil {
		return document.Font{}, fmt.Errorf("%w: %v", ErrMissingMetadata, err)
	}
	if f.Family == "" && f.File != "" && reg != nil {
		if desc, err := reg.Describe(f.File); err == nil {
			f.Family = desc.Family
			f.Bold = f.Bold || desc.Bold
			f.Italic = f.Italic || desc.Italic
		}
	}
	return f, nil
}

// textHeight returns the height of a text entity.
func textHeight(ent *document.TextEntity) (float64, error) {
	if !validHeight(ent.Height) {
		return 0, fmt.Errorf("%w: text height %v", ErrMissingMetadata, ent.Height)
	}
	return ent.Height, nil
}

func validHeight(h float64) bool {
	return h > 0 && !math.IsInf(h, 0)
}

// textStyle is the resolved style of one text record.
type textStyle struct {
	font  scene.Font
	size  float64
	color scene.Color
}

// defaultStyle is the style of an entity without font metadata.
func (c Config) defaultStyle() textStyle {
	return textStyle{
		font:  scene.Font{Family: c.DefaultFont.Family, Style: c.DefaultFont.Style},
		size:  c.DefaultFont.Size,
		color: black,
	}
}

// resolveStyle resolves font, size and color of a text object field by
// field. Text dots carry no font metadata and only get a color.
func (c Config) resolveStyle(doc document.Document, obj *document.Object) textStyle {
	st := c.defaultStyle()
	st.color = effectiveColor(doc, obj)

	ent := obj.Text
	if ent == nil {
		return st
	}

	if f, err := entityFont(doc, ent, c.Fonts); err != nil {
		scenesync.Logger().Debug("convert: default font", "object", obj.ID, "err", err)
	} else {
		if f.Family != "" {
			st.font.Family = f.Family
		}
		st.font.Style = fonts.StyleName(f.Bold, f.Italic)
	}

	if h, err := textHeight(ent); err != nil {
		scenesync.Logger().Debug("convert: default font size", "object", obj.ID, "err", err)
	} else {
		st.size = h
	}
	return st
}
