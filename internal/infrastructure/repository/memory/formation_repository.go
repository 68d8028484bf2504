package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/gislobo/matchvault/internal/resolve"
)

type FormationRepository struct {
	mu         sync.RWMutex
	idsByLabel map[string]int64
	nextID     int64
}

func NewFormationRepository() *FormationRepository {
	return &FormationRepository{idsByLabel: make(map[string]int64), nextID: 1}
}

func (r *FormationRepository) IDByLabel(_ context.Context, label string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idsByLabel[label]
	if !ok {
		return 0, fmt.Errorf("formation %q: %w", label, resolve.ErrNotFound)
	}
	return id, nil
}

func (r *FormationRepository) Insert(_ context.Context, label string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.idsByLabel[label]; ok {
		return 0, fmt.Errorf("formation %q: %w", label, resolve.ErrConflict)
	}

	id := r.nextID
	r.nextID++
	r.idsByLabel[label] = id
	return id, nil
}
