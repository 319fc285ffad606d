package document

import (
	"fmt"

	"github.com/google/uuid"
)

// Snapshot is an in-memory Document. It is built either programmatically
// with Add, AddLayer and AddFont, or decoded from a file with Load.
//
// A Snapshot is not safe for concurrent mutation; once built it may be read
// from any number of goroutines.
type Snapshot struct {
	layers  []Layer
	fonts   []Font
	objects []*Object
	byID    map[uuid.UUID]*Object
	inputs  Inputs
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{byID: make(map[uuid.UUID]*Object)}
}

// AddLayer appends a layer and returns its index.
func (s *Snapshot) AddLayer(l Layer) int {
	s.layers = append(s.layers, l)
	return len(s.layers) - 1
}

// AddFont appends a font table entry and returns its index.
func (s *Snapshot) AddFont(f Font) int {
	s.fonts = append(s.fonts, f)
	return len(s.fonts) - 1
}

// Add appends an object and returns its handle. A zero ID is replaced by a
// fresh random one.
func (s *Snapshot) Add(o *Object) uuid.UUID {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	s.objects = append(s.objects, o)
	s.byID[o.ID] = o
	return o.ID
}

// SetInputs sets the conversion inputs carried by the snapshot.
func (s *Snapshot) SetInputs(in Inputs) { s.inputs = in }

// Inputs returns the conversion inputs carried by the snapshot.
func (s *Snapshot) Inputs() Inputs { return s.inputs }

// Len returns the number of objects, deleted ones included.
func (s *Snapshot) Len() int { return len(s.objects) }

// Find implements Document.
func (s *Snapshot) Find(id uuid.UUID) (*Object, bool) {
	o, ok := s.byID[id]
	if !ok || o.Deleted {
		return nil, false
	}
	return o, true
}

// Objects implements Document.
func (s *Snapshot) Objects(f Filter) ([]*Object, error) {
	var out []*Object
	for _, o := range s.objects {
		if f.Match(o) {
			out = append(out, o)
		}
	}
	return out, nil
}

// Layer implements Document.
func (s *Snapshot) Layer(index int) (Layer, error) {
	if index < 0 || index >= len(s.layers) {
		return Layer{}, fmt.Errorf("layer %d: %w", index, ErrNotFound)
	}
	return s.layers[index], nil
}

// Font implements Document.
func (s *Snapshot) Font(index int) (Font, error) {
	if index < 0 || index >= len(s.fonts) {
		return Font{}, fmt.Errorf("font %d: %w", index, ErrNotFound)
	}
	return s.fonts[index], nil
}

// Compile-time interface check.
var _ Document = (*Snapshot)(nil)
