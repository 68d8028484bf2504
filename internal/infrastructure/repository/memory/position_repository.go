package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/gislobo/matchvault/internal/resolve"
)

type PositionRepository struct {
	mu         sync.RWMutex
	idsByLabel map[string]int64
	nextID     int64
}

func NewPositionRepository() *PositionRepository {
	return &PositionRepository{idsByLabel: make(map[string]int64), nextID: 1}
}

func (r *PositionRepository) IDByLabel(_ context.Context, label string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idsByLabel[label]
	if !ok {
		return 0, fmt.Errorf("position %q: %w", label, resolve.ErrNotFound)
	}
	return id, nil
}

func (r *PositionRepository) Insert(_ context.Context, label string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.idsByLabel[label]; ok {
		return 0, fmt.Errorf("position %q: %w", label, resolve.ErrConflict)
	}

	id := r.nextID
	r.nextID++
	r.idsByLabel[label] = id
	return id, nil
}
