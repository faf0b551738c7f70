package statex

import (
	"context"
	"sync"

	"github.com/ethanz-code/appkit/core/errors"
)

// MemoryPersister keeps snapshots in process memory. It is the default
// backend and the one tests use.
type MemoryPersister struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewMemoryPersister creates an empty in-memory persister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{snapshots: make(map[string][]byte)}
}

// Save stores a copy of data under key.
func (m *MemoryPersister) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.snapshots[key] = cp
	return nil
}

// Load returns the snapshot for key.
func (m *MemoryPersister) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.snapshots[key]
	if !ok {
		return nil, errors.Newf(errors.CodeNotFound, "no snapshot for %q", key)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// Delete removes the snapshot for key.
func (m *MemoryPersister) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, key)
	return nil
}

// Ping always succeeds.
func (m *MemoryPersister) Ping(context.Context) error { return nil }

// Close always succeeds.
func (m *MemoryPersister) Close() error { return nil }
