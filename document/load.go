package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/scenesync"
	"github.com/gogpu/scenesync/fonts"
)

// DefaultTextHeight is the height given to text entities that do not
// declare one when their bounding box is computed.
const DefaultTextHeight = 1.0

// Option configures Load and Decode.
type Option func(*loadOptions)

type loadOptions struct {
	registry *fonts.Registry
	baseDir  string
}

// WithFontRegistry sets the registry used to identify and measure font
// files referenced by the font table. Without it, Load uses a private one.
func WithFontRegistry(r *fonts.Registry) Option {
	return func(o *loadOptions) {
		o.registry = r
	}
}

// WithBaseDir sets the directory relative font file paths resolve against.
// Load defaults it to the snapshot's directory.
func WithBaseDir(dir string) Option {
	return func(o *loadOptions) {
		o.baseDir = dir
	}
}

// Load reads and decodes the snapshot file at path. YAML and JSON are both
// accepted.
func Load(path string, opts ...Option) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithBaseDir(filepath.Dir(path))}, opts...)
	s, err := Decode(bytes.NewReader(data), opts...)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Path = path
		}
		return nil, err
	}
	return s, nil
}

// Decode decodes a snapshot from r.
func Decode(r io.Reader, opts ...Option) (*Snapshot, error) {
	o := loadOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = fonts.NewRegistry()
	}

	var f fileSnapshot
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, &DecodeError{Err: err}
	}

	s := NewSnapshot()
	for i, fl := range f.Layers {
		l, err := fl.layer()
		if err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("layers[%d]: %w", i, err)}
		}
		s.AddLayer(l)
	}
	for _, ff := range f.Fonts {
		s.AddFont(ff.font(&o))
	}
	for i, fo := range f.Objects {
		obj, err := fo.object(s, &o)
		if err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("objects[%d]: %w", i, err)}
		}
		if _, dup := s.byID[obj.ID]; dup {
			return nil, &DecodeError{Err: fmt.Errorf("objects[%d]: duplicate id %s", i, obj.ID)}
		}
		s.Add(obj)
	}

	in, err := f.Inputs.inputs()
	if err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("inputs: %w", err)}
	}
	s.SetInputs(in)

	scenesync.Logger().Debug("document: snapshot decoded",
		"layers", len(s.layers), "fonts", len(s.fonts), "objects", len(s.objects))
	return s, nil
}

// -------------------------------------------------------------------
// File schema
// -------------------------------------------------------------------

type fileSnapshot struct {
	Layers  []fileLayer  `yaml:"layers"`
	Fonts   []fileFont   `yaml:"fonts"`
	Objects []fileObject `yaml:"objects"`
	Inputs  fileInputs   `yaml:"inputs"`
}

type fileLayer struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type fileFont struct {
	Family string `yaml:"family"`
	Bold   bool   `yaml:"bold"`
	Italic bool   `yaml:"italic"`
	Style  string `yaml:"style"`
	File   string `yaml:"file"`
}

type fileObject struct {
	ID      string     `yaml:"id"`
	Layer   int        `yaml:"layer"`
	Color   string     `yaml:"color"`
	Hidden  bool       `yaml:"hidden"`
	Locked  bool       `yaml:"locked"`
	Deleted bool       `yaml:"deleted"`
	Curve   *fileCurve `yaml:"curve"`
	Text    *fileText  `yaml:"text"`
	Dot     *fileDot   `yaml:"dot"`
	Other   string     `yaml:"other"`
}

type fileCurve struct {
	Line     *fileLine     `yaml:"line"`
	Polyline *filePolyline `yaml:"polyline"`
	Arc      *fileArc      `yaml:"arc"`
	Circle   *fileCircle   `yaml:"circle"`
	Rect     *fileRect     `yaml:"rect"`
	Path     []fileSegment `yaml:"path"`
}

type fileLine struct {
	From []float64 `yaml:"from"`
	To   []float64 `yaml:"to"`
}

type filePolyline struct {
	Points [][]float64 `yaml:"points"`
	Closed bool        `yaml:"closed"`
}

type fileArc struct {
	Center []float64 `yaml:"center"`
	Radius float64   `yaml:"radius"`
	Start  float64   `yaml:"start"`
	End    float64   `yaml:"end"`
}

type fileCircle struct {
	Center []float64 `yaml:"center"`
	Radius float64   `yaml:"radius"`
}

type fileRect struct {
	Min []float64 `yaml:"min"`
	Max []float64 `yaml:"max"`
}

type fileSegment struct {
	Move  []float64   `yaml:"move"`
	Line  []float64   `yaml:"line"`
	Quad  [][]float64 `yaml:"quad"`
	Cubic [][]float64 `yaml:"cubic"`
	Close bool        `yaml:"close"`
}

type fileText struct {
	Text   string    `yaml:"text"`
	Origin []float64 `yaml:"origin"`
	Font   *int      `yaml:"font"`
	Height float64   `yaml:"height"`
	BBox   *fileRect `yaml:"bbox"`
}

type fileDot struct {
	Text  string    `yaml:"text"`
	Point []float64 `yaml:"point"`
	BBox  *fileRect `yaml:"bbox"`
}

type fileInputs struct {
	Drawing      refList  `yaml:"drawing"`
	Frames       refList  `yaml:"frames"`
	StrokeWeight *float64 `yaml:"stroke_weight"`
}

// refList accepts either a single reference or a sequence of them.
type refList struct {
	refs   []fileRef
	single bool
}

func (l *refList) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.SequenceNode {
		return n.Decode(&l.refs)
	}
	var r fileRef
	if err := n.Decode(&r); err != nil {
		return err
	}
	l.refs = []fileRef{r}
	l.single = true
	return nil
}

// fileRef is an object handle (a bare string or {handle: ...}) or inline
// geometry.
type fileRef struct {
	Handle string     `yaml:"handle"`
	Curve  *fileCurve `yaml:"curve"`
	Rect   *fileRect  `yaml:"rect"`
}

func (r *fileRef) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		r.Handle = n.Value
		return nil
	}
	type plain fileRef
	return n.Decode((*plain)(r))
}

// -------------------------------------------------------------------
// Conversion
// -------------------------------------------------------------------

func (fl fileLayer) layer() (Layer, error) {
	l := Layer{Name: fl.Name}
	if fl.Color == "" {
		return l, nil
	}
	c, _, err := parseColor(fl.Color)
	if err != nil {
		return Layer{}, err
	}
	l.Color = c
	l.HasColor = true
	return l, nil
}

// font merges the declared entry with what the font file says about
// itself. Declared values win; a file that cannot be read leaves the
// declaration as is.
func (ff fileFont) font(o *loadOptions) Font {
	f := Font{Family: ff.Family, Bold: ff.Bold, Italic: ff.Italic}
	if ff.Style != "" {
		b, i := fonts.ParseStyleName(ff.Style)
		f.Bold = f.Bold || b
		f.Italic = f.Italic || i
	}
	if ff.File == "" {
		return f
	}
	f.File = ff.File
	if !filepath.IsAbs(f.File) && o.baseDir != "" {
		f.File = filepath.Join(o.baseDir, f.File)
	}

	desc, err := o.registry.Describe(f.File)
	if err != nil {
		scenesync.Logger().Debug("document: font file unreadable", "file", f.File, "err", err)
		return f
	}
	if f.Family == "" {
		f.Family = desc.Family
	}
	if ff.Style == "" && !ff.Bold && !ff.Italic {
		f.Bold, f.Italic = desc.Bold, desc.Italic
	}
	return f
}

func (fo fileObject) object(s *Snapshot, o *loadOptions) (*Object, error) {
	obj := &Object{
		Hidden:  fo.Hidden,
		Locked:  fo.Locked,
		Deleted: fo.Deleted,
		Attributes: Attributes{
			LayerIndex: fo.Layer,
		},
	}
	if fo.ID != "" {
		id, err := uuid.Parse(fo.ID)
		if err != nil {
			return nil, fmt.Errorf("id: %w", err)
		}
		obj.ID = id
	}
	if fo.Color != "" && !strings.EqualFold(fo.Color, "bylayer") && !strings.EqualFold(fo.Color, "by_layer") {
		c, named, err := parseColor(fo.Color)
		if err != nil {
			return nil, err
		}
		obj.Attributes.ColorSource = ColorFromObject
		obj.Attributes.Color = c
		obj.Attributes.ColorNamed = named
	}

	set := 0
	for _, present := range []bool{fo.Curve != nil, fo.Text != nil, fo.Dot != nil, fo.Other != ""} {
		if present {
			set++
		}
	}
	if set > 1 {
		return nil, errors.New("object carries more than one geometry")
	}

	switch {
	case fo.Curve != nil:
		c, err := fo.Curve.curve()
		if err != nil {
			return nil, fmt.Errorf("curve: %w", err)
		}
		obj.Type = TypeCurve
		obj.Curve = c
	case fo.Text != nil:
		t, err := fo.Text.entity(s, o)
		if err != nil {
			return nil, fmt.Errorf("text: %w", err)
		}
		obj.Type = TypeAnnotation
		obj.Text = t
	case fo.Dot != nil:
		d, err := fo.Dot.dot()
		if err != nil {
			return nil, fmt.Errorf("dot: %w", err)
		}
		obj.Type = TypeTextDot
		obj.Dot = d
	default:
		obj.Type = TypeOther
	}
	return obj, nil
}

func (fc *fileCurve) curve() (scenesync.Curve, error) {
	switch {
	case fc.Line != nil:
		p0, err := toPoint(fc.Line.From)
		if err != nil {
			return nil, err
		}
		p1, err := toPoint(fc.Line.To)
		if err != nil {
			return nil, err
		}
		return scenesync.NewLineCurve(p0, p1), nil

	case fc.Polyline != nil:
		pts := make([]scenesync.Point, len(fc.Polyline.Points))
		for i, v := range fc.Polyline.Points {
			p, err := toPoint(v)
			if err != nil {
				return nil, fmt.Errorf("points[%d]: %w", i, err)
			}
			pts[i] = p
		}
		return scenesync.NewPolyline(pts, fc.Polyline.Closed), nil

	case fc.Arc != nil:
		center, err := toPoint(fc.Arc.Center)
		if err != nil {
			return nil, err
		}
		start, end, err := arcAngles(fc.Arc.Start, fc.Arc.End)
		if err != nil {
			return nil, err
		}
		return &scenesync.Arc{
			Center: center,
			Radius: fc.Arc.Radius,
			Start:  start * math.Pi / 180,
			End:    end * math.Pi / 180,
		}, nil

	case fc.Circle != nil:
		center, err := toPoint(fc.Circle.Center)
		if err != nil {
			return nil, err
		}
		return scenesync.NewCircle(center, fc.Circle.Radius), nil

	case fc.Rect != nil:
		r, err := fc.Rect.rect()
		if err != nil {
			return nil, err
		}
		return scenesync.RectPolyline(r), nil

	case len(fc.Path) > 0:
		return pathFromSegments(fc.Path)
	}
	return nil, errors.New("no curve geometry")
}

// arcAngles normalizes counter-clockwise arc angles in degrees: start is
// reduced to [0, 360) and the sweep to [0, 360]. An end below start wraps
// around once.
func arcAngles(start, end float64) (float64, float64, error) {
	sweep := end - start
	if math.IsNaN(sweep) || math.IsInf(sweep, 0) {
		return 0, 0, fmt.Errorf("arc angles %v..%v: sweep is not finite", start, end)
	}
	if sweep < 0 {
		sweep = math.Mod(sweep, 360)
		if sweep < 0 {
			sweep += 360
		}
	}
	sweep = math.Min(sweep, 360)
	start = math.Mod(start, 360)
	if start < 0 {
		start += 360
	}
	return start, start + sweep, nil
}

func pathFromSegments(segs []fileSegment) (*scenesync.Path, error) {
	p := scenesync.NewPath()
	for i, s := range segs {
		switch {
		case s.Move != nil:
			pt, err := toPoint(s.Move)
			if err != nil {
				return nil, fmt.Errorf("path[%d]: %w", i, err)
			}
			p.MoveTo(pt.X, pt.Y)
		case s.Line != nil:
			pt, err := toPoint(s.Line)
			if err != nil {
				return nil, fmt.Errorf("path[%d]: %w", i, err)
			}
			p.LineTo(pt.X, pt.Y)
		case s.Quad != nil:
			pts, err := toPoints(s.Quad, 2)
			if err != nil {
				return nil, fmt.Errorf("path[%d]: quad: %w", i, err)
			}
			p.QuadraticTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y)
		case s.Cubic != nil:
			pts, err := toPoints(s.Cubic, 3)
			if err != nil {
				return nil, fmt.Errorf("path[%d]: cubic: %w", i, err)
			}
			p.CubicTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case s.Close:
			p.Close()
		default:
			return nil, fmt.Errorf("path[%d]: empty segment", i)
		}
	}
	return p, nil
}

func (ft *fileText) entity(s *Snapshot, o *loadOptions) (*TextEntity, error) {
	origin, err := toPoint(ft.Origin)
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	t := &TextEntity{
		Text:      ft.Text,
		Origin:    origin,
		FontIndex: -1,
		Height:    ft.Height,
	}
	if ft.Font != nil {
		t.FontIndex = *ft.Font
	}
	if ft.BBox != nil {
		r, err := ft.BBox.rect()
		if err != nil {
			return nil, fmt.Errorf("bbox: %w", err)
		}
		t.Bounds = r
		return t, nil
	}

	var file string
	if f, err := s.Font(t.FontIndex); err == nil {
		file = f.File
	}
	t.Bounds = measureText(t.Text, origin, t.Height, file, o.registry)
	return t, nil
}

func (fd *fileDot) dot() (*TextDot, error) {
	pt, err := toPoint(fd.Point)
	if err != nil {
		return nil, fmt.Errorf("point: %w", err)
	}
	d := &TextDot{Text: fd.Text, Point: pt, Bounds: scenesync.NewRect(pt, pt)}
	if fd.BBox != nil {
		r, err := fd.BBox.rect()
		if err != nil {
			return nil, fmt.Errorf("bbox: %w", err)
		}
		d.Bounds = r
	}
	return d, nil
}

func (fi fileInputs) inputs() (Inputs, error) {
	in := Inputs{StrokeWeight: fi.StrokeWeight, SingleFrame: fi.Frames.single}
	var err error
	if in.Drawing, err = fi.Drawing.toRefs(); err != nil {
		return Inputs{}, fmt.Errorf("drawing: %w", err)
	}
	if in.Frames, err = fi.Frames.toRefs(); err != nil {
		return Inputs{}, fmt.Errorf("frames: %w", err)
	}
	return in, nil
}

func (l refList) toRefs() ([]Ref, error) {
	if len(l.refs) == 0 {
		return nil, nil
	}
	out := make([]Ref, len(l.refs))
	for i, fr := range l.refs {
		switch {
		case fr.Curve != nil:
			c, err := fr.Curve.curve()
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = CurveRef(c)
		case fr.Rect != nil:
			r, err := fr.Rect.rect()
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = RectRef(r)
		default:
			out[i] = HandleRef(fr.Handle)
		}
	}
	return out, nil
}

func (fr *fileRect) rect() (scenesync.Rect, error) {
	lo, err := toPoint(fr.Min)
	if err != nil {
		return scenesync.Rect{}, fmt.Errorf("min: %w", err)
	}
	hi, err := toPoint(fr.Max)
	if err != nil {
		return scenesync.Rect{}, fmt.Errorf("max: %w", err)
	}
	return scenesync.NewRect(lo, hi), nil
}

// toPoint converts [x, y] or [x, y, z]; Z is dropped.
func toPoint(v []float64) (scenesync.Point, error) {
	if len(v) != 2 && len(v) != 3 {
		return scenesync.Point{}, fmt.Errorf("point needs 2 or 3 coordinates, got %d", len(v))
	}
	return scenesync.Pt(v[0], v[1]), nil
}

func toPoints(vs [][]float64, n int) ([]scenesync.Point, error) {
	if len(vs) != n {
		return nil, fmt.Errorf("want %d points, got %d", n, len(vs))
	}
	pts := make([]scenesync.Point, n)
	for i, v := range vs {
		p, err := toPoint(v)
		if err != nil {
			return nil, err
		}
		pts[i] = p
	}
	return pts, nil
}

// parseColor accepts "#rrggbb", "#rgb" and SVG color names. named reports
// whether s was a name.
func parseColor(s string) (c Color, named bool, err error) {
	if rgba, ok := colornames.Map[strings.ToLower(strings.TrimSpace(s))]; ok {
		return Color{R: rgba.R, G: rgba.G, B: rgba.B}, true, nil
	}
	hex, err := colorful.Hex(s)
	if err != nil {
		return Color{}, false, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := hex.RGB255()
	return Color{R: r, G: g, B: b}, false, nil
}

// measureText returns the box of text anchored at its lower-left origin.
// Lines stack upward from the origin. Width comes from the font file when
// one is readable, otherwise from a per-rune estimate.
func measureText(text string, origin scenesync.Point, height float64, file string, reg *fonts.Registry) scenesync.Rect {
	if !(height > 0) || math.IsInf(height, 0) {
		height = DefaultTextHeight
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	var width float64
	for _, line := range lines {
		w := fonts.Estimate(line, height)
		if file != "" && reg != nil {
			if adv, err := reg.Advance(file, line, height); err == nil {
				w = adv
			}
		}
		width = math.Max(width, w)
	}
	return scenesync.Rect{
		Min: origin,
		Max: scenesync.Pt(origin.X+width, origin.Y+height*float64(len(lines))),
	}
}
