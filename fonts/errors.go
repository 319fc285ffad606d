package fonts

import "errors"

// Sentinel errors for fonts package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("fonts: empty font data")

	// ErrNoFamily is returned when a font file carries no family name.
	ErrNoFamily = errors.New("fonts: no family name")
)
