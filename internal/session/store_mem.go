package session

import (
	"context"
	"sync"
)

// memStore is the in-memory Store used when no Redis is configured.
type memStore struct {
	mu    sync.RWMutex
	snaps map[string]*Snapshot
}

func NewMemoryStore() Store {
	return &memStore{snaps: make(map[string]*Snapshot)}
}

func (m *memStore) Save(ctx context.Context, snap *Snapshot) error {
	if snap == nil || snap.ID == "" {
		return nil
	}
	copy := *snap
	copy.Pieces = append(copy.Pieces[:0:0], snap.Pieces...)
	m.mu.Lock()
	m.snaps[snap.ID] = &copy
	m.mu.Unlock()
	return nil
}

func (m *memStore) Load(ctx context.Context, id string) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.snaps[id]
	if !ok {
		return nil, nil
	}
	copy := *s
	copy.Pieces = append(copy.Pieces[:0:0], s.Pieces...)
	return &copy, nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.snaps, id)
	m.mu.Unlock()
	return nil
}
