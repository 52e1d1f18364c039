package render

import (
	"context"
	"fmt"
	"slices"

	"github.com/billie-coop/fr0st/internal/csync"
)

// Backend is a named Renderer.
type Backend interface {
	Renderer
	Name() string
}

// Registry dispatches renders to backends by Target.Backend.
type Registry struct {
	backends *csync.Map[string, Backend]
}

// NewRegistry creates a registry holding backends.
func NewRegistry(backends ...Backend) *Registry {
	r := &Registry{backends: csync.NewMap[string, Backend]()}
	for _, b := range backends {
		r.Register(b)
	}
	return r
}

// Register adds or replaces a backend.
func (r *Registry) Register(b Backend) {
	r.backends.Set(b.Name(), b)
}

// Has reports whether a backend is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.backends.Get(name)
	return ok
}

// Names lists registered backends alphabetically.
func (r *Registry) Names() []string {
	names := r.backends.Keys()
	slices.Sort(names)
	return names
}

// Render validates the target and hands it to its backend.
func (r *Registry) Render(ctx context.Context, t Target, progress ProgressFunc) (*Buffer, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	b, ok := r.backends.Get(t.Backend)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, t.Backend)
	}
	return b.Render(ctx, t, progress)
}
