package convert

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/scenesync"
	"github.com/gogpu/scenesync/document"
	"github.com/gogpu/scenesync/scene"
)

// textFilter selects every annotation and text dot that is still part of
// the design, hidden and locked ones included.
var textFilter = document.Filter{
	Types:          document.TypeAnnotation | document.TypeTextDot,
	IncludeHidden:  true,
	IncludeLocked:  true,
	IncludeDeleted: false,
}

// textObjects enumerates the text objects of doc. Documents that cannot
// filter by type are enumerated in full and filtered here.
func textObjects(doc document.Document) ([]*document.Object, error) {
	objs, err := doc.Objects(textFilter)
	if !errors.Is(err, document.ErrFilterUnsupported) {
		return objs, err
	}

	all := textFilter
	all.Types = 0
	objs, err = doc.Objects(all)
	if err != nil {
		return nil, err
	}
	out := objs[:0:0]
	for _, o := range objs {
		if textFilter.Match(o) {
			out = append(out, o)
		}
	}
	return out, nil
}

// normalizeText folds CRLF line breaks and composes the text to NFC.
func normalizeText(s string) string {
	return norm.NFC.String(strings.ReplaceAll(s, "\r\n", "\n"))
}

// textCollector turns the document's text objects into records.
type textCollector struct {
	cfg        Config
	frames     []scene.Frame
	classifier *scenesync.Classifier
}

// collect reads every text object of the host's active document with the
// current document redirected to it. It returns the records and the number
// of objects skipped for lack of geometry.
func (tc *textCollector) collect(host *document.Host) ([]scene.TextRecord, int, error) {
	var (
		records []scene.TextRecord
		skipped int
	)
	err := document.WithContext(host, func(doc document.Document) error {
		objs, err := textObjects(doc)
		if err != nil {
			return err
		}
		for _, obj := range objs {
			rec, ok := tc.record(doc, obj)
			if !ok {
				skipped++
				continue
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return records, skipped, nil
}

// record builds the record of one object. It reports false when the
// object carries no text geometry.
func (tc *textCollector) record(doc document.Document, obj *document.Object) (scene.TextRecord, bool) {
	var (
		text   string
		anchor scenesync.Point
		box    scenesync.Rect
	)
	switch {
	case obj.Type == document.TypeAnnotation && obj.Text != nil:
		text, anchor, box = obj.Text.Text, obj.Text.Origin, obj.Text.BoundingBox()
	case obj.Type == document.TypeTextDot && obj.Dot != nil:
		text, anchor, box = obj.Dot.Text, obj.Dot.Point, obj.Dot.BoundingBox()
	default:
		scenesync.Logger().Debug("convert: text object without geometry", "object", obj.ID, "type", obj.Type)
		return scene.TextRecord{}, false
	}

	st := tc.cfg.resolveStyle(doc, obj)
	return scene.TextRecord{
		Text:          normalizeText(text),
		X:             scene.Number(anchor.X),
		Y:             scene.Number(anchor.Y),
		Font:          st.font,
		FontSize:      scene.Number(st.size),
		Color:         st.color,
		ParentFrameID: scene.Parent(tc.frames, tc.classifier.ClassifyBox(box)),
	}, true
}
