package statex

import (
	"context"

	"github.com/ethanz-code/appkit/statex/internal"
)

// Registry tracks persisters by name for aggregate health checks and
// shutdown. This is a thin wrapper around internal.Registry.
type Registry struct {
	impl *internal.Registry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{impl: internal.NewRegistry()}
}

// Register adds a persister under name. Duplicate names are rejected.
func (r *Registry) Register(name string, p Persister) error {
	return r.impl.Register(name, p)
}

// Unregister removes a persister from the registry without closing it.
func (r *Registry) Unregister(name string) error {
	return r.impl.Unregister(name)
}

// Ping health-checks every registered persister.
func (r *Registry) Ping(ctx context.Context) error {
	return r.impl.Ping(ctx)
}

// Close closes every registered persister and empties the registry.
func (r *Registry) Close() error {
	return r.impl.Close()
}

// List returns the registered names.
func (r *Registry) List() []string {
	return r.impl.List()
}

// Get returns a registered persister by name.
func (r *Registry) Get(name string) (Persister, bool) {
	return r.impl.Get(name)
}
