package store

import (
	"context"
	"sync"
)

// MemoryStore keeps snapshots in process memory. It backs tests and the
// "memory" storage driver.
type MemoryStore struct {
	mu    sync.RWMutex
	data  map[string][]byte
	saves int
}

var (
	_ SnapshotStore = (*MemoryStore)(nil)
	_ BatchSaver    = (*MemoryStore)(nil)
)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Load implements SnapshotStore.
func (m *MemoryStore) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[name]
	if !ok {
		return nil, NewStoreError(name, "load", "no snapshot saved", ErrSnapshotNotFound)
	}
	return append([]byte(nil), data...), nil
}

// Save implements SnapshotStore.
func (m *MemoryStore) Save(ctx context.Context, name string, data []byte) error {
	return m.SaveAll(ctx, map[string][]byte{name: data})
}

// SaveAll implements BatchSaver.
func (m *MemoryStore) SaveAll(ctx context.Context, snapshots map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for name := range snapshots {
		if err := ValidateName(name); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for name, data := range snapshots {
		m.data[name] = append([]byte(nil), data...)
	}
	m.saves++
	return nil
}

// Saves reports how many save batches have been applied.
func (m *MemoryStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
