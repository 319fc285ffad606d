package fonts

import "strings"

// Style names understood by the design tool.
const (
	StyleRegular    = "Regular"
	StyleBold       = "Bold"
	StyleItalic     = "Italic"
	StyleBoldItalic = "Bold Italic"
)

// StyleName combines independent bold and italic flags into a style name.
func StyleName(bold, italic bool) string {
	switch {
	case bold && italic:
		return StyleBoldItalic
	case bold:
		return StyleBold
	case italic:
		return StyleItalic
	default:
		return StyleRegular
	}
}

// ParseStyleName infers bold and italic flags from a subfamily or face
// name such as "SemiBold Oblique".
func ParseStyleName(name string) (bold, italic bool) {
	lower := strings.ToLower(name)
	for _, w := range []string{"bold", "black", "heavy"} {
		if strings.Contains(lower, w) {
			bold = true
			break
		}
	}
	italic = strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
	return bold, italic
}
