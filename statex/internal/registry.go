package internal

import (
	"context"
	"sync"
	"time"

	"github.com/ethanz-code/appkit/core/errors"
)

// Persister mirrors the statex.Persister interface so the registry can live
// below the public package.
type Persister interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Registry tracks named persisters and aggregates their health.
type Registry struct {
	mu         sync.RWMutex
	persisters map[string]Persister
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{persisters: make(map[string]Persister)}
}

// Register adds a persister under name.
func (r *Registry) Register(name string, p Persister) error {
	if name == "" {
		return errors.New(errors.CodeInvalidArgument, "persister name is required")
	}
	if p == nil {
		return errors.New(errors.CodeInvalidArgument, "persister cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.persisters[name]; exists {
		return errors.Newf(errors.CodeAlreadyExists, "persister %q already registered", name)
	}
	r.persisters[name] = p
	return nil
}

// Unregister removes a persister.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.persisters[name]; !exists {
		return errors.Newf(errors.CodeNotFound, "persister %q not found", name)
	}
	delete(r.persisters, name)
	return nil
}

// Ping health-checks every registered persister.
func (r *Registry) Ping(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.persisters) == 0 {
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	for name, p := range r.persisters {
		if err := p.Ping(pingCtx); err != nil {
			return errors.Wrapf(errors.CodeUnavailable, "statex.Ping", err, "persister %q", name)
		}
	}
	return nil
}

// Close closes every registered persister, returning the first failure.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for name, p := range r.persisters {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(errors.CodeInternal, "statex.Close", err, "persister %q", name)
		}
	}
	r.persisters = make(map[string]Persister)
	return firstErr
}

// List returns the registered names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.persisters))
	for name := range r.persisters {
		names = append(names, name)
	}
	return names
}

// Get returns a registered persister.
func (r *Registry) Get(name string) (Persister, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.persisters[name]
	return p, ok
}
