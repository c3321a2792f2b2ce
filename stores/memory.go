package stores

import (
	"context"
	"sync"

	o "github.com/launchdarkly/laws-harness/framework/opt"
)

// MemoryStore is a Store backed by a map. The zero value is ready to use.
type MemoryStore struct {
	data map[string]string
	lock sync.RWMutex
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) DSN() string { return "memory" }

func (m *MemoryStore) Get(_ context.Context, key string) (o.Maybe[string], error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	value, ok := m.data[key]
	return o.FromOK(value, ok), nil
}

func (m *MemoryStore) Put(_ context.Context, key, value string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.data == nil {
		m.data = make(map[string]string)
	}
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.lock.Lock()
	delete(m.data, key)
	m.lock.Unlock()
	return nil
}

// Len returns the number of keys currently stored.
func (m *MemoryStore) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.data)
}

func (m *MemoryStore) Close() error { return nil }
