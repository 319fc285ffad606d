package document

import "sync"

// Host models the CAD application the pipeline runs inside. It tracks the
// active document (the one the user sees) and the current document (the
// one geometry lookups resolve against). The two differ when a script
// runs against a scratch document of its own.
//
// Host is safe for concurrent use. WithContext scopes on one host run one
// at a time.
type Host struct {
	mu      sync.RWMutex
	active  Document
	current Document

	// scope serializes WithContext so that restores happen in the reverse
	// order of the redirects.
	scope sync.Mutex
}

// NewHost creates a host whose active and current document are both doc.
// doc may be nil.
func NewHost(doc Document) *Host {
	return &Host{active: doc, current: doc}
}

// Active returns the active document, or nil.
func (h *Host) Active() Document {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.active
}

// Current returns the current document, or nil.
func (h *Host) Current() Document {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// SetActive replaces the active document. When the current document was
// the previous active one, it follows.
func (h *Host) SetActive(doc Document) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == h.active {
		h.current = doc
	}
	h.active = doc
}

// SetCurrent replaces the current document and returns the previous one.
func (h *Host) SetCurrent(doc Document) Document {
	h.mu.Lock()
	defer h.mu.Unlock()
	prev := h.current
	h.current = doc
	return prev
}

// WithContext runs body with the host's current document set to the active
// one, and restores the previous current document on every exit path,
// including a panic in body.
//
// When there is no active document, body is not called and
// ErrNoActiveDocument is returned. body must not call WithContext on the
// same host.
func WithContext(h *Host, body func(doc Document) error) error {
	if h == nil {
		return ErrNoActiveDocument
	}
	h.scope.Lock()
	defer h.scope.Unlock()

	doc := h.Active()
	if doc == nil {
		return ErrNoActiveDocument
	}
	prev := h.SetCurrent(doc)
	defer h.SetCurrent(prev)
	return body(doc)
}
