// Package statex provides named, typed state stores with pluggable persistence.
//
// Overview:
//   - Responsibility: Keep application state in memory and mirror every
//     mutation to a persistence backend, keyed by store name
//   - Key Types: Store for state, Persister for backends, Registry for health
//   - Concurrency Model: Stores and persisters are safe for concurrent use
//   - Error Semantics: Mutations return errors when persistence fails; a
//     corrupt snapshot falls back to the initial state with a warning
//
// Usage:
//
//	store, err := statex.New(ctx, "session", Session{}, statex.WithPersister(p))
//	err = store.Update(ctx, func(s Session) Session { s.Token = tok; return s })
package statex

import (
	"context"
	"sync"

	"github.com/ethanz-code/appkit/core/errors"
	"github.com/ethanz-code/appkit/core/log"
	"github.com/ethanz-code/appkit/logx"
	"github.com/ethanz-code/appkit/statex/internal"
)

// Persister stores state snapshots keyed by store name.
// Implementations must be safe for concurrent use.
type Persister interface {
	// Save writes the snapshot for key, replacing any previous one.
	Save(ctx context.Context, key string, data []byte) error

	// Load returns the snapshot for key, or a NOT_FOUND coded error when no
	// snapshot exists.
	Load(ctx context.Context, key string) ([]byte, error)

	// Delete removes the snapshot for key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks backend health.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// Options configures a store.
type Options struct {
	Persister Persister  // Backend (default: in-memory)
	Logger    log.Logger // Logger (default: discard)
}

// Option mutates Options.
type Option func(*Options)

// WithPersister sets the persistence backend.
func WithPersister(p Persister) Option {
	return func(o *Options) { o.Persister = p }
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Store holds one named piece of state. Mutations go through Set, Update, or
// Reset, each of which persists the new snapshot before returning. Get hands
// out a shallow copy; callers must not mutate reference types inside it.
type Store[T any] struct {
	name      string
	initial   T
	persister Persister
	logger    log.Logger

	mu    sync.RWMutex
	state T
}

// New creates a store and hydrates it from the persister. When no snapshot
// exists the store starts from initial. A snapshot that fails to decode is
// discarded with a warning rather than failing construction.
func New[T any](ctx context.Context, name string, initial T, opts ...Option) (*Store[T], error) {
	if name == "" {
		return nil, errors.New(errors.CodeInvalidArgument, "store name is required")
	}

	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Persister == nil {
		options.Persister = NewMemoryPersister()
	}
	if options.Logger == nil {
		options.Logger = logx.Nop()
	}

	s := &Store[T]{
		name:      name,
		initial:   initial,
		persister: options.Persister,
		logger:    options.Logger,
		state:     initial,
	}

	data, err := options.Persister.Load(ctx, name)
	switch {
	case err == nil:
		var state T
		if decodeErr := internal.Decode(data, &state); decodeErr != nil {
			s.logger.Warn("discarding undecodable snapshot", "store", name, "error", decodeErr)
		} else {
			s.state = state
		}
	case errors.IsCode(err, errors.CodeNotFound):
		// First run for this store.
	default:
		return nil, errors.Wrapf(errors.CodeUnavailable, "statex.New", err, "hydrate store %q", name)
	}

	return s, nil
}

// Name returns the store's name, which is also its persistence key.
func (s *Store[T]) Name() string {
	return s.name
}

// Get returns the current state.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Set replaces the state and persists it.
func (s *Store[T]) Set(ctx context.Context, state T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	return s.persist(ctx)
}

// Update applies fn to the current state and persists the result. fn runs
// under the store lock and must not call back into the store.
func (s *Store[T]) Update(ctx context.Context, fn func(T) T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	return s.persist(ctx)
}

// Reset restores the initial state and persists it.
func (s *Store[T]) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.initial
	return s.persist(ctx)
}

func (s *Store[T]) persist(ctx context.Context) error {
	data, err := internal.Encode(s.state)
	if err != nil {
		return errors.Wrapf(errors.CodeInternal, "statex.persist", err, "encode store %q", s.name)
	}
	if err := s.persister.Save(ctx, s.name, data); err != nil {
		return errors.Wrapf(errors.CodeUnavailable, "statex.persist", err, "save store %q", s.name)
	}
	return nil
}
