package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/gislobo/matchvault/internal/domain/league"
	"github.com/gislobo/matchvault/internal/resolve"
)

// LeagueRepository is seeded up front; ingestion never inserts leagues.
type LeagueRepository struct {
	mu      sync.RWMutex
	leagues []league.League
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	return &LeagueRepository{leagues: append([]league.League(nil), leagues...)}
}

func (r *LeagueRepository) IDByExternalID(_ context.Context, externalID int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.leagues {
		if l.ExternalID == externalID {
			return l.ID, nil
		}
	}
	return 0, fmt.Errorf("league external id %d: %w", externalID, resolve.ErrNotFound)
}
