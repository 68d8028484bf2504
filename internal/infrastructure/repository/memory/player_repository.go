package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/gislobo/matchvault/internal/domain/player"
	"github.com/gislobo/matchvault/internal/resolve"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	byExtID map[int64]player.Player
	nextID  int64
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{byExtID: make(map[int64]player.Player), nextID: 1}
}

func (r *PlayerRepository) IDByExternalID(_ context.Context, externalID int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byExtID[externalID]
	if !ok {
		return 0, fmt.Errorf("player external id %d: %w", externalID, resolve.ErrNotFound)
	}
	return p.ID, nil
}

func (r *PlayerRepository) Insert(_ context.Context, p player.Player) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byExtID[p.ExternalID]; ok {
		return 0, fmt.Errorf("player external id %d: %w", p.ExternalID, resolve.ErrConflict)
	}

	p.ID = r.nextID
	r.nextID++
	r.byExtID[p.ExternalID] = p
	return p.ID, nil
}
