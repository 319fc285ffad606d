// Package fonts reads the font metadata a scene needs from TrueType and
// OpenType files: family name, bold and italic flags, and glyph advances
// for sizing annotation text.
//
// Metadata comes from go-text/typesetting first; when it cannot describe
// the file, the sfnt name and post tables from golang.org/x/image are used.
//
//	reg := fonts.NewRegistry()
//	desc, err := reg.Describe("fonts/Inter-BoldItalic.ttf")
//	if err != nil {
//	    // fall back to defaults
//	}
//	fmt.Println(desc.Family, desc.Style()) // Inter Bold Italic
//
// A Registry caches parsed files by path and is safe for concurrent use.
package fonts
