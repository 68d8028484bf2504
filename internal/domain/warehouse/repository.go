package warehouse

import (
	"context"

	"github.com/gislobo/matchvault/internal/domain/coach"
	"github.com/gislobo/matchvault/internal/domain/country"
	"github.com/gislobo/matchvault/internal/domain/eventtype"
	"github.com/gislobo/matchvault/internal/domain/fixture"
	"github.com/gislobo/matchvault/internal/domain/formation"
	"github.com/gislobo/matchvault/internal/domain/league"
	"github.com/gislobo/matchvault/internal/domain/player"
	"github.com/gislobo/matchvault/internal/domain/position"
	"github.com/gislobo/matchvault/internal/domain/referee"
	"github.com/gislobo/matchvault/internal/domain/team"
	"github.com/gislobo/matchvault/internal/domain/venue"
)

// RepoSet bundles one repository per entity, all bound to the same
// execution scope: either the shared database handle or one open
// transaction.
type RepoSet struct {
	Countries  country.Repository
	Positions  position.Repository
	Referees   referee.Repository
	Venues     venue.Repository
	Teams      team.Repository
	Leagues    league.Repository
	Coaches    coach.Repository
	EventTypes eventtype.Repository
	Formations formation.Repository
	Players    player.Repository
	Fixtures   fixture.Repository
}

// Warehouse hands out repository sets and transaction scopes.
type Warehouse interface {
	// Repos returns repositories bound to the shared handle; each
	// statement autocommits.
	Repos() RepoSet
	// InTx runs fn with repositories bound to a single transaction,
	// committing when fn returns nil and rolling back otherwise.
	InTx(ctx context.Context, fn func(RepoSet) error) error
}
