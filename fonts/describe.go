package fonts

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Description is the font metadata carried into text records.
type Description struct {
	Family string
	Bold   bool
	Italic bool
}

// Style returns the combined style name, e.g. "Bold Italic".
func (d Description) Style() string {
	return StyleName(d.Bold, d.Italic)
}

// Describe reads family, weight and slant from TrueType/OpenType data.
func Describe(data []byte) (Description, error) {
	if len(data) == 0 {
		return Description{}, ErrEmptyFontData
	}
	if d, err := describeGoText(data); err == nil {
		return d, nil
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return Description{}, fmt.Errorf("fonts: failed to parse font: %w", err)
	}
	return describeSFNT(f)
}

// describeGoText uses the OS/2 and name tables through go-text/typesetting.
func describeGoText(data []byte) (Description, error) {
	ld, err := opentype.NewLoader(bytes.NewReader(data))
	if err != nil {
		return Description{}, fmt.Errorf("fonts: failed to load font: %w", err)
	}
	fd, _ := font.Describe(ld, nil)
	if fd.Family == "" {
		return Description{}, ErrNoFamily
	}
	return Description{
		Family: fd.Family,
		Bold:   fd.Aspect.Weight >= font.WeightBold,
		Italic: fd.Aspect.Style == font.StyleItalic,
	}, nil
}

// describeSFNT falls back to the name table subfamily and the post table
// italic angle.
func describeSFNT(f *sfnt.Font) (Description, error) {
	var buf sfnt.Buffer

	family, _ := f.Name(&buf, sfnt.NameIDFamily)
	if family == "" {
		family, _ = f.Name(&buf, sfnt.NameIDFull)
	}
	if family == "" {
		return Description{}, ErrNoFamily
	}

	subfamily, _ := f.Name(&buf, sfnt.NameIDSubfamily)
	bold, italic := ParseStyleName(subfamily)
	if post := f.PostTable(); post != nil && post.ItalicAngle != 0 {
		italic = true
	}
	return Description{Family: family, Bold: bold, Italic: italic}, nil
}
