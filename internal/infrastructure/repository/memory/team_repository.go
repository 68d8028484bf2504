package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/gislobo/matchvault/internal/domain/team"
	"github.com/gislobo/matchvault/internal/resolve"
)

type TeamRepository struct {
	mu      sync.RWMutex
	byExtID map[int64]team.Team
	nextID  int64
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{byExtID: make(map[int64]team.Team), nextID: 1}
}

func (r *TeamRepository) IDByExternalID(_ context.Context, externalID int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byExtID[externalID]
	if !ok {
		return 0, fmt.Errorf("team external id %d: %w", externalID, resolve.ErrNotFound)
	}
	return t.ID, nil
}

func (r *TeamRepository) Insert(_ context.Context, t team.Team) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byExtID[t.ExternalID]; ok {
		return 0, fmt.Errorf("team external id %d: %w", t.ExternalID, resolve.ErrConflict)
	}

	t.ID = r.nextID
	r.nextID++
	r.byExtID[t.ExternalID] = t
	return t.ID, nil
}
