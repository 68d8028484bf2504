package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/gislobo/matchvault/internal/domain/coach"
	"github.com/gislobo/matchvault/internal/resolve"
)

type CoachRepository struct {
	mu      sync.RWMutex
	byExtID map[int64]coach.Coach
	nextID  int64
}

func NewCoachRepository() *CoachRepository {
	return &CoachRepository{byExtID: make(map[int64]coach.Coach), nextID: 1}
}

func (r *CoachRepository) IDByExternalID(_ context.Context, externalID int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byExtID[externalID]
	if !ok {
		return 0, fmt.Errorf("coach external id %d: %w", externalID, resolve.ErrNotFound)
	}
	return c.ID, nil
}

func (r *CoachRepository) Insert(_ context.Context, c coach.Coach) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byExtID[c.ExternalID]; ok {
		return 0, fmt.Errorf("coach external id %d: %w", c.ExternalID, resolve.ErrConflict)
	}

	c.ID = r.nextID
	r.nextID++
	r.byExtID[c.ExternalID] = c
	return c.ID, nil
}
