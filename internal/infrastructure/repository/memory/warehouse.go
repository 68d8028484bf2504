package memory

import (
	"context"
	"strings"

	"github.com/gislobo/matchvault/internal/domain/league"
	"github.com/gislobo/matchvault/internal/domain/warehouse"
)

// Warehouse backs the usecase tests with map-based repositories. InTx
// offers no rollback; callers only rely on commit-path behavior.
type Warehouse struct {
	Countries  *CountryRepository
	Positions  *PositionRepository
	Referees   *RefereeRepository
	Venues     *VenueRepository
	Teams      *TeamRepository
	Leagues    *LeagueRepository
	Coaches    *CoachRepository
	EventTypes *EventTypeRepository
	Formations *FormationRepository
	Players    *PlayerRepository
	Fixtures   *FixtureRepository
}

func NewWarehouse(countries map[string]string, leagues []league.League) *Warehouse {
	return &Warehouse{
		Countries:  NewCountryRepository(countries),
		Positions:  NewPositionRepository(),
		Referees:   NewRefereeRepository(),
		Venues:     NewVenueRepository(),
		Teams:      NewTeamRepository(),
		Leagues:    NewLeagueRepository(leagues),
		Coaches:    NewCoachRepository(),
		EventTypes: NewEventTypeRepository(),
		Formations: NewFormationRepository(),
		Players:    NewPlayerRepository(),
		Fixtures:   NewFixtureRepository(),
	}
}

func (w *Warehouse) Repos() warehouse.RepoSet {
	return warehouse.RepoSet{
		Countries:  w.Countries,
		Positions:  w.Positions,
		Referees:   w.Referees,
		Venues:     w.Venues,
		Teams:      w.Teams,
		Leagues:    w.Leagues,
		Coaches:    w.Coaches,
		EventTypes: w.EventTypes,
		Formations: w.Formations,
		Players:    w.Players,
		Fixtures:   w.Fixtures,
	}
}

func (w *Warehouse) InTx(_ context.Context, fn func(warehouse.RepoSet) error) error {
	return fn(w.Repos())
}

func canonicalName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
