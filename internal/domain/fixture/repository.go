package fixture

import "context"

// Repository persists the fixture fact row and its dependent fact tables.
// All writes run inside the caller's transaction scope.
type Repository interface {
	IDByExternalID(ctx context.Context, externalID int64) (int64, error)
	Insert(ctx context.Context, f Fixture) (int64, error)

	HasEvents(ctx context.Context, fixtureID int64) (bool, error)
	InsertEvent(ctx context.Context, e Event) (int64, error)

	HasTeamStatistics(ctx context.Context, fixtureID int64) (bool, error)
	InsertTeamStatistics(ctx context.Context, s TeamStatistics) (int64, error)

	HasPlayerStatistics(ctx context.Context, fixtureID int64) (bool, error)
	InsertPlayerStatistics(ctx context.Context, s PlayerStatistics) (int64, error)

	HasLineups(ctx context.Context, fixtureID int64) (bool, error)
	InsertLineupEntry(ctx context.Context, e LineupEntry) (int64, error)

	// EventsByTypeIDs lists events whose type key is in the given set,
	// across all fixtures. Used by the substitute repair pass.
	EventsByTypeIDs(ctx context.Context, eventTypeIDs []int64) ([]Event, error)
	// MarkSubstitute flips the substitute flag on a player's stat row.
	MarkSubstitute(ctx context.Context, fixtureID, playerID int64, substitute bool) error
}
