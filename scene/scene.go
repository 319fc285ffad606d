package scene

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/scenesync"
)

// ErrUnknownType is returned when decoding a record with an unrecognized
// "type".
var ErrUnknownType = errors.New("scene: unknown record type")

// Scene is the ordered output of one conversion run.
type Scene struct {
	Frames []Frame
	Curves []CurveRecord
	Texts  []TextRecord
}

// Assemble builds a scene from the three record streams. The slices are
// copied and frame bounds are cleared.
func Assemble(frames []Frame, curves []CurveRecord, texts []TextRecord) *Scene {
	s := &Scene{
		Frames: make([]Frame, len(frames)),
		Curves: append([]CurveRecord(nil), curves...),
		Texts:  append([]TextRecord(nil), texts...),
	}
	for i, f := range frames {
		f.Bounds = scenesync.Rect{}
		s.Frames[i] = f
	}
	return s
}

// Len returns the total number of records.
func (s *Scene) Len() int {
	return len(s.Frames) + len(s.Curves) + len(s.Texts)
}

// MarshalJSON writes frames, curves and texts as one array, in that order.
func (s *Scene) MarshalJSON() ([]byte, error) {
	records := make([]any, 0, s.Len())
	for _, f := range s.Frames {
		records = append(records, f)
	}
	for _, c := range s.Curves {
		records = append(records, c)
	}
	for _, t := range s.Texts {
		records = append(records, t)
	}
	return json.Marshal(records)
}

// UnmarshalJSON reads an array of records, dispatching on "type".
func (s *Scene) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Scene{}
	for i, r := range raw {
		var head struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(r, &head); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		var err error
		switch head.Type {
		case TypeFrame:
			var f Frame
			err = json.Unmarshal(r, &f)
			s.Frames = append(s.Frames, f)
		case TypeCurve:
			var c CurveRecord
			err = json.Unmarshal(r, &c)
			s.Curves = append(s.Curves, c)
		case TypeText:
			var t TextRecord
			err = json.Unmarshal(r, &t)
			s.Texts = append(s.Texts, t)
		default:
			err = fmt.Errorf("%w %q", ErrUnknownType, head.Type)
		}
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// Encode writes s as indented JSON followed by a newline. Non-ASCII text
// is written as UTF-8 and HTML characters are not escaped.
func Encode(w io.Writer, s *Scene) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("scene: encode: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Marshal returns the encoded form of s.
func Marshal(s *Scene) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a scene from r.
func Decode(r io.Reader) (*Scene, error) {
	var s Scene
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("scene: decode: %w", err)
	}
	return &s, nil
}
