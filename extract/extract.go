// Package extract turns a PDF file into a page-indexed list of layout
// blocks. All PDF parsing is delegated to a rendering library; this package
// only reshapes what the library reports.
package extract

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownBackend is returned when a backend name has no registration.
var ErrUnknownBackend = errors.New("extract: unknown backend")

// Backend extracts the layout structure of the document at path. An
// implementation opens its own document handle per call and releases it on
// every exit path; on failure it returns a single wrapped error and never a
// partial Structure.
type Backend interface {
	Extract(ctx context.Context, path string) (*Structure, error)
	Name() string
}

// Registry maps backend names to implementations.
type Registry struct {
	backends map[string]Backend
}

// NewRegistry returns a registry with the built-in backends registered.
func NewRegistry() *Registry {
	r := &Registry{backends: make(map[string]Backend)}
	for _, b := range []Backend{&TabulaBackend{}, &BasicBackend{}} {
		r.Register(b)
	}
	return r
}

// Register adds or replaces a backend under its own name.
func (r *Registry) Register(b Backend) {
	r.backends[b.Name()] = b
}

// Get looks up a backend by name.
func (r *Registry) Get(name string) (Backend, error) {
	b, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	return b, nil
}

// Names returns the registered backend names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	return names
}
