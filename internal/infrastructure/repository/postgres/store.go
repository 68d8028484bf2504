package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gislobo/matchvault/internal/domain/warehouse"
)

// Store is the Postgres-backed warehouse. It hands out repository sets
// bound either to the pooled handle or to one open transaction.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Repos() warehouse.RepoSet {
	return newRepoSet(s.db)
}

func (s *Store) InTx(ctx context.Context, fn func(warehouse.RepoSet) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(newRepoSet(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func newRepoSet(q Queryer) warehouse.RepoSet {
	return warehouse.RepoSet{
		Countries:  NewCountryRepository(q),
		Positions:  NewPositionRepository(q),
		Referees:   NewRefereeRepository(q),
		Venues:     NewVenueRepository(q),
		Teams:      NewTeamRepository(q),
		Leagues:    NewLeagueRepository(q),
		Coaches:    NewCoachRepository(q),
		EventTypes: NewEventTypeRepository(q),
		Formations: NewFormationRepository(q),
		Players:    NewPlayerRepository(q),
		Fixtures:   NewFixtureRepository(q),
	}
}
