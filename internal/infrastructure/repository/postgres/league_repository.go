package postgres

import (
	"context"
	"fmt"

	qb "github.com/gislobo/matchvault/internal/platform/querybuilder"
	"github.com/gislobo/matchvault/internal/resolve"
)

// LeagueRepository is lookup-only: league rows are curated by hand and
// ingestion never writes them.
type LeagueRepository struct {
	q Queryer
}

func NewLeagueRepository(q Queryer) *LeagueRepository {
	return &LeagueRepository{q: q}
}

func (r *LeagueRepository) IDByExternalID(ctx context.Context, externalID int64) (int64, error) {
	query, args, err := qb.Select("id").From("league").
		Where(qb.Eq("externalid", externalID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build select league query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("league external id %d: %w", externalID, resolve.ErrNotFound)
		}
		return 0, fmt.Errorf("select league by external id: %w", err)
	}
	return id, nil
}
