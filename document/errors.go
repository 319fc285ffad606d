package document

import (
	"errors"
	"fmt"
)

// Sentinel errors for document package.
var (
	// ErrNoActiveDocument is returned when the host has no active document.
	ErrNoActiveDocument = errors.New("document: no active document")

	// ErrNotFound is returned when a layer, font or object lookup fails.
	ErrNotFound = errors.New("document: not found")

	// ErrFilterUnsupported is returned by documents that cannot filter
	// objects by type. Callers enumerate everything and filter themselves.
	ErrFilterUnsupported = errors.New("document: type filter unsupported")
)

// DecodeError is returned when a snapshot file cannot be decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("document: decode: %v", e.Err)
	}
	return fmt.Sprintf("document: decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
