package archive

import (
	"context"
	"sync"
)

// MemoryRepository keeps move records in process memory. It backs
// deployments without a database and the test suite.
type MemoryRepository struct {
	mu    sync.RWMutex
	moves map[string][]Record
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{moves: make(map[string][]Record)}
}

func (r *MemoryRepository) InsertMove(ctx context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.moves[rec.SessionID]
	for i := range list {
		if list[i].Number == rec.Number {
			list[i] = rec
			return nil
		}
	}
	r.moves[rec.SessionID] = append(list, rec)
	return nil
}

func (r *MemoryRepository) RecentMoves(ctx context.Context, sessionID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.moves[sessionID]
	var out []Record
	for i := len(list) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, list[i])
	}
	return out, nil
}
