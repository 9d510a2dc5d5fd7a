// Package pdflayout describes the page layout of PDF documents: text and
// image blocks with bounding boxes, in the order the rendering library
// reports them. It is a thin facade over the extract package, intended for
// inspection tooling such as the bundled HTTP service in cmd/server.
package pdflayout

import (
	"context"
	"log/slog"
	"time"

	"github.com/gaogushenling/pdflayout/extract"
)

// Engine extracts layout structures using a configured backend.
type Engine interface {
	// Extract returns the layout structure of the PDF at path. The call
	// opens and closes its own document handle; concurrent calls are
	// independent.
	Extract(ctx context.Context, path string) (*extract.Structure, error)

	// Backend reports the identifier of the active extraction backend,
	// as surfaced by the service's health endpoint.
	Backend() string
}

// New builds an Engine for the backend named in cfg.
func New(cfg Config) (Engine, error) {
	backend, err := extract.NewRegistry().Get(cfg.Backend)
	if err != nil {
		return nil, err
	}
	return &engine{backend: backend}, nil
}

type engine struct {
	backend extract.Backend
}

func (e *engine) Backend() string { return e.backend.Name() }

func (e *engine) Extract(ctx context.Context, path string) (*extract.Structure, error) {
	start := time.Now()
	structure, err := e.backend.Extract(ctx, path)
	if err != nil {
		return nil, err
	}
	slog.Debug("extracted layout",
		"path", path,
		"backend", e.backend.Name(),
		"pages", structure.PageCount,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return structure, nil
}
