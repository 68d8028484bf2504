package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/gislobo/matchvault/internal/domain/fixture"
	"github.com/gislobo/matchvault/internal/resolve"
)

type FixtureRepository struct {
	mu     sync.RWMutex
	nextID int64

	fixtures    []fixture.Fixture
	events      []fixture.Event
	teamStats   []fixture.TeamStatistics
	playerStats []fixture.PlayerStatistics
	lineups     []fixture.LineupEntry
}

func NewFixtureRepository() *FixtureRepository {
	return &FixtureRepository{nextID: 1}
}

func (r *FixtureRepository) IDByExternalID(_ context.Context, externalID int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.fixtures {
		if f.ExternalID == externalID {
			return f.ID, nil
		}
	}
	return 0, fmt.Errorf("fixture external id %d: %w", externalID, resolve.ErrNotFound)
}

func (r *FixtureRepository) Insert(_ context.Context, f fixture.Fixture) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.fixtures {
		if existing.ExternalID == f.ExternalID {
			return 0, fmt.Errorf("fixture external id %d: %w", f.ExternalID, resolve.ErrConflict)
		}
	}

	f.ID = r.allocID()
	r.fixtures = append(r.fixtures, f)
	return f.ID, nil
}

func (r *FixtureRepository) HasEvents(_ context.Context, fixtureID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.events {
		if e.FixtureID == fixtureID {
			return true, nil
		}
	}
	return false, nil
}

func (r *FixtureRepository) InsertEvent(_ context.Context, e fixture.Event) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = r.allocID()
	r.events = append(r.events, e)
	return e.ID, nil
}

func (r *FixtureRepository) HasTeamStatistics(_ context.Context, fixtureID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.teamStats {
		if s.FixtureID == fixtureID {
			return true, nil
		}
	}
	return false, nil
}

func (r *FixtureRepository) InsertTeamStatistics(_ context.Context, s fixture.TeamStatistics) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.teamStats {
		if existing.FixtureID == s.FixtureID && existing.TeamID == s.TeamID {
			return 0, fmt.Errorf("team statistics fixture %d team %d: %w", s.FixtureID, s.TeamID, resolve.ErrConflict)
		}
	}

	s.ID = r.allocID()
	r.teamStats = append(r.teamStats, s)
	return s.ID, nil
}

func (r *FixtureRepository) HasPlayerStatistics(_ context.Context, fixtureID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.playerStats {
		if s.FixtureID == fixtureID {
			return true, nil
		}
	}
	return false, nil
}

func (r *FixtureRepository) InsertPlayerStatistics(_ context.Context, s fixture.PlayerStatistics) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.playerStats {
		if existing.FixtureID == s.FixtureID && existing.PlayerID == s.PlayerID {
			return 0, fmt.Errorf("player statistics fixture %d player %d: %w", s.FixtureID, s.PlayerID, resolve.ErrConflict)
		}
	}

	s.ID = r.allocID()
	r.playerStats = append(r.playerStats, s)
	return s.ID, nil
}

func (r *FixtureRepository) HasLineups(_ context.Context, fixtureID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.lineups {
		if e.FixtureID == fixtureID {
			return true, nil
		}
	}
	return false, nil
}

func (r *FixtureRepository) InsertLineupEntry(_ context.Context, e fixture.LineupEntry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = r.allocID()
	r.lineups = append(r.lineups, e)
	return e.ID, nil
}

func (r *FixtureRepository) EventsByTypeIDs(_ context.Context, eventTypeIDs []int64) ([]fixture.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[int64]struct{}, len(eventTypeIDs))
	for _, id := range eventTypeIDs {
		wanted[id] = struct{}{}
	}

	out := make([]fixture.Event, 0)
	for _, e := range r.events {
		if _, ok := wanted[e.EventTypeID]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *FixtureRepository) MarkSubstitute(_ context.Context, fixtureID, playerID int64, substitute bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.playerStats {
		if r.playerStats[i].FixtureID == fixtureID && r.playerStats[i].PlayerID == playerID {
			flag := substitute
			r.playerStats[i].Substitute = &flag
			return nil
		}
	}
	return fmt.Errorf("player statistics fixture %d player %d: %w", fixtureID, playerID, resolve.ErrNotFound)
}

// PlayerStatistics exposes the stored stat rows for test assertions.
func (r *FixtureRepository) PlayerStatistics() []fixture.PlayerStatistics {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]fixture.PlayerStatistics(nil), r.playerStats...)
}

// Events exposes the stored events for test assertions.
func (r *FixtureRepository) Events() []fixture.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]fixture.Event(nil), r.events...)
}

// Fixtures exposes the stored fixtures for test assertions.
func (r *FixtureRepository) Fixtures() []fixture.Fixture {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]fixture.Fixture(nil), r.fixtures...)
}

// Lineups exposes the stored lineup entries for test assertions.
func (r *FixtureRepository) Lineups() []fixture.LineupEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]fixture.LineupEntry(nil), r.lineups...)
}

func (r *FixtureRepository) allocID() int64 {
	id := r.nextID
	r.nextID++
	return id
}
