package convert

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/scenesync"
	"github.com/gogpu/scenesync/document"
	"github.com/gogpu/scenesync/scene"
)

// Report counts the outcome of a run.
type Report struct {
	Frames int
	Curves int
	Texts  int

	SkippedFrames int
	SkippedCurves int
	SkippedTexts  int

	// TextError is set when document texts could not be read at all.
	TextError error
}

// LogValue implements slog.LogValuer.
func (r Report) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("frames", r.Frames),
		slog.Int("curves", r.Curves),
		slog.Int("texts", r.Texts),
		slog.Int("skipped_frames", r.SkippedFrames),
		slog.Int("skipped_curves", r.SkippedCurves),
		slog.Int("skipped_texts", r.SkippedTexts),
	}
	if r.TextError != nil {
		attrs = append(attrs, slog.String("text_error", r.TextError.Error()))
	}
	return slog.GroupValue(attrs...)
}

// Convert runs the pipeline once.
//
// Frames and drawing curves are taken from in and resolved against the
// host's current document. Texts are collected from the host's active
// document. host may be nil, in which case only direct geometry resolves
// and no texts are collected.
func Convert(host *document.Host, in document.Inputs, cfg Config) (*scene.Scene, Report) {
	cfg.applyDefaults()
	var report Report

	var doc document.Document
	if host != nil {
		if doc = host.Current(); doc == nil {
			doc = host.Active()
		}
	}

	frames := convertFrames(doc, in, &report)

	boxes := make([]scenesync.Rect, len(frames))
	for i, f := range frames {
		boxes[i] = f.Bounds
	}
	display := cfg.SampleOptions()
	classifier := scenesync.NewClassifier(boxes, display, cfg.ClassifyDensityFactor)

	curves := convertCurves(doc, in, cfg, frames, classifier, &report)

	tc := &textCollector{cfg: cfg, frames: frames, classifier: classifier}
	texts, skipped, err := tc.collect(host)
	report.SkippedTexts = skipped
	if err != nil {
		report.TextError = err
		scenesync.Logger().Warn("convert: document texts skipped", "err", err)
	}
	report.Texts = len(texts)

	s := scene.Assemble(frames, curves, texts)
	scenesync.Logger().Info("convert: scene assembled", "report", report)
	return s, report
}

func convertFrames(doc document.Document, in document.Inputs, report *Report) []scene.Frame {
	var frames []scene.Frame
	for i, ref := range in.Frames {
		box, err := resolveFrameBounds(doc, ref)
		if err != nil {
			report.SkippedFrames++
			scenesync.Logger().Debug("convert: frame skipped", "index", i, "err", err)
			continue
		}
		frames = append(frames, scene.NewFrame(i, in.SingleFrame, box))
	}
	report.Frames = len(frames)
	return frames
}

func convertCurves(doc document.Document, in document.Inputs, cfg Config, frames []scene.Frame,
	classifier *scenesync.Classifier, report *Report) []scene.CurveRecord {
	style := scene.Style{
		Stroke:      strokeHex(cfg.StrokeColor),
		StrokeWidth: scene.Number(strokeWeight(in, cfg)),
	}
	display := cfg.SampleOptions()

	var curves []scene.CurveRecord
	for i, ref := range in.Drawing {
		c, err := resolveCurve(doc, ref)
		if err != nil {
			report.SkippedCurves++
			scenesync.Logger().Debug("convert: curve skipped", "index", i, "err", err)
			continue
		}
		pts := scenesync.Sample(c, display)
		rec := scene.CurveRecord{
			Points:        make([]scene.Point, len(pts)),
			Closed:        c.IsClosed(),
			Style:         style,
			ParentFrameID: scene.Parent(frames, classifier.ClassifyCurve(c)),
		}
		for j, p := range pts {
			rec.Points[j] = scene.PointFrom(p)
		}
		curves = append(curves, rec)
	}
	report.Curves = len(curves)
	return curves
}

// strokeWeight returns the run override when it is usable, otherwise the
// configured weight.
func strokeWeight(in document.Inputs, cfg Config) float64 {
	if in.StrokeWeight != nil {
		if w := *in.StrokeWeight; validWeight(w) {
			return w
		}
		scenesync.Logger().Debug("convert: invalid stroke weight override", "value", *in.StrokeWeight)
	}
	return cfg.StrokeWeight
}

// strokeHex normalizes a configured stroke color to lowercase "#rrggbb".
func strokeHex(s string) string {
	c, err := colorful.Hex(s)
	if err != nil {
		return DefaultStrokeColor
	}
	return c.Hex()
}

// ConvertFile loads the snapshot at path and converts it with the inputs
// it carries.
func ConvertFile(path string, cfg Config, opts ...document.Option) (*scene.Scene, Report, error) {
	if cfg.Fonts != nil {
		opts = append([]document.Option{document.WithFontRegistry(cfg.Fonts)}, opts...)
	}
	snap, err := document.Load(path, opts...)
	if err != nil {
		var de *document.DecodeError
		if errors.As(err, &de) {
			return nil, Report{}, err
		}
		return nil, Report{}, fmt.Errorf("convert: load %s: %w", path, err)
	}
	s, report := Convert(document.NewHost(snap), snap.Inputs(), cfg)
	return s, report, nil
}
