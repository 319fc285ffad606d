package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/scenesync/internal/cache"
)

// EstimatedAdvance is the advance width, as a fraction of the text height,
// assumed per character when no font file is available.
const EstimatedAdvance = 0.6

// defaultRegistryLimit bounds the number of parsed font files kept.
const defaultRegistryLimit = 64

// fileKey identifies one version of a font file. A rewritten file gets a
// new key.
type fileKey struct {
	path  string
	mtime int64
	size  int64
}

// entry is one parsed font file.
type entry struct {
	desc Description
	font *sfnt.Font
	err  error
}

// Registry loads font files on first use and caches them by absolute path,
// modification time and size. Files that cannot be read are retried on the
// next lookup.
//
// Registry is safe for concurrent use.
type Registry struct {
	files *cache.Cache[fileKey, *entry]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{files: cache.New[fileKey, *entry](defaultRegistryLimit)}
}

func (r *Registry) load(path string) *entry {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	info, err := os.Stat(path)
	if err != nil {
		return &entry{err: fmt.Errorf("fonts: failed to read font file: %w", err)}
	}
	key := fileKey{path: path, mtime: info.ModTime().UnixNano(), size: info.Size()}

	unreadable := false
	e := r.files.GetOrCreate(key, func() *entry {
		// #nosec G304 -- font paths come from the document being converted
		data, err := os.ReadFile(path)
		if err != nil {
			unreadable = true
			return &entry{err: fmt.Errorf("fonts: failed to read font file: %w", err)}
		}
		f, err := sfnt.Parse(data)
		if err != nil {
			return &entry{err: fmt.Errorf("fonts: failed to parse font: %w", err)}
		}
		desc, err := Describe(data)
		if err != nil {
			return &entry{font: f, err: err}
		}
		return &entry{desc: desc, font: f}
	})
	if unreadable {
		r.files.Delete(key)
	}
	return e
}

// Describe returns the metadata of the font file at path.
func (r *Registry) Describe(path string) (Description, error) {
	e := r.load(path)
	if e.err != nil {
		return Description{}, e.err
	}
	return e.desc, nil
}

// Advance returns the width of text set in the font at path with the
// given size, in the same units as size. Kerning is ignored.
func (r *Registry) Advance(path, text string, size float64) (float64, error) {
	e := r.load(path)
	if e.font == nil {
		return 0, e.err
	}

	var buf sfnt.Buffer
	ppem := fixed.Int26_6(size * 64)
	var total fixed.Int26_6
	for _, ch := range text {
		idx, err := e.font.GlyphIndex(&buf, ch)
		if err != nil {
			return 0, fmt.Errorf("fonts: glyph index for %q: %w", ch, err)
		}
		adv, err := e.font.GlyphAdvance(&buf, idx, ppem, xfont.HintingNone)
		if err != nil {
			return 0, fmt.Errorf("fonts: glyph advance for %q: %w", ch, err)
		}
		total += adv
	}
	return float64(total) / 64, nil
}

// Estimate returns the approximate width of text at the given height when
// no font file is available.
func Estimate(text string, height float64) float64 {
	return EstimatedAdvance * height * float64(utf8.RuneCountInString(text))
}
