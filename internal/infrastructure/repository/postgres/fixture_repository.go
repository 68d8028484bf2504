package postgres

import (
	"context"
	"fmt"

	"github.com/gislobo/matchvault/internal/domain/fixture"
	qb "github.com/gislobo/matchvault/internal/platform/querybuilder"
	"github.com/gislobo/matchvault/internal/resolve"
)

var eventSelectColumns = []string{
	"id",
	"fixtureid",
	"eventtypeid",
	"comments",
	"elapsed",
	"extraelapsed",
	"teamid",
	"playerid",
	"assistplayerid",
}

type FixtureRepository struct {
	q Queryer
}

func NewFixtureRepository(q Queryer) *FixtureRepository {
	return &FixtureRepository{q: q}
}

func (r *FixtureRepository) IDByExternalID(ctx context.Context, externalID int64) (int64, error) {
	query, args, err := qb.Select("id").From("fixture").
		Where(qb.Eq("externalid", externalID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build select fixture query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("fixture external id %d: %w", externalID, resolve.ErrNotFound)
		}
		return 0, fmt.Errorf("select fixture by external id: %w", err)
	}
	return id, nil
}

func (r *FixtureRepository) Insert(ctx context.Context, f fixture.Fixture) (int64, error) {
	query, args, err := qb.InsertModel("fixture", newFixtureTableModel(f), "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert fixture query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert fixture: %w", mapWriteErr(err))
	}
	return id, nil
}

func (r *FixtureRepository) HasEvents(ctx context.Context, fixtureID int64) (bool, error) {
	return r.hasRows(ctx, "event", fixtureID)
}

func (r *FixtureRepository) InsertEvent(ctx context.Context, e fixture.Event) (int64, error) {
	query, args, err := qb.InsertModel("event", newEventTableModel(e), "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert event query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert event: %w", mapWriteErr(err))
	}
	return id, nil
}

func (r *FixtureRepository) HasTeamStatistics(ctx context.Context, fixtureID int64) (bool, error) {
	return r.hasRows(ctx, "teamstatistics", fixtureID)
}

func (r *FixtureRepository) InsertTeamStatistics(ctx context.Context, s fixture.TeamStatistics) (int64, error) {
	query, args, err := qb.InsertModel("teamstatistics", newTeamStatisticsTableModel(s), "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert team statistics query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert team statistics: %w", mapWriteErr(err))
	}
	return id, nil
}

func (r *FixtureRepository) HasPlayerStatistics(ctx context.Context, fixtureID int64) (bool, error) {
	return r.hasRows(ctx, "playerstatistics", fixtureID)
}

func (r *FixtureRepository) InsertPlayerStatistics(ctx context.Context, s fixture.PlayerStatistics) (int64, error) {
	query, args, err := qb.InsertModel("playerstatistics", newPlayerStatisticsTableModel(s), "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert player statistics query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert player statistics: %w", mapWriteErr(err))
	}
	return id, nil
}

func (r *FixtureRepository) HasLineups(ctx context.Context, fixtureID int64) (bool, error) {
	return r.hasRows(ctx, "lineupentry", fixtureID)
}

func (r *FixtureRepository) InsertLineupEntry(ctx context.Context, e fixture.LineupEntry) (int64, error) {
	query, args, err := qb.InsertModel("lineupentry", newLineupEntryTableModel(e), "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert lineup entry query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert lineup entry: %w", mapWriteErr(err))
	}
	return id, nil
}

func (r *FixtureRepository) EventsByTypeIDs(ctx context.Context, eventTypeIDs []int64) ([]fixture.Event, error) {
	if len(eventTypeIDs) == 0 {
		return []fixture.Event{}, nil
	}

	ids := make([]any, 0, len(eventTypeIDs))
	for _, id := range eventTypeIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select(eventSelectColumns...).From("event").
		Where(qb.In("eventtypeid", ids)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select events query: %w", err)
	}

	var rows []eventRow
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select events by type: %w", err)
	}

	out := make([]fixture.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *FixtureRepository) MarkSubstitute(ctx context.Context, fixtureID, playerID int64, substitute bool) error {
	query, args, err := qb.Update("playerstatistics").
		Set("substitute", substitute).
		Where(qb.Eq("fixtureid", fixtureID), qb.Eq("playerid", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update substitute query: %w", err)
	}

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update substitute flag: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update substitute flag rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("player statistics fixture %d player %d: %w", fixtureID, playerID, resolve.ErrNotFound)
	}
	return nil
}

func (r *FixtureRepository) hasRows(ctx context.Context, table string, fixtureID int64) (bool, error) {
	query, args, err := qb.Select("COUNT(1)").From(table).
		Where(qb.Eq("fixtureid", fixtureID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build count %s query: %w", table, err)
	}

	var count int64
	if err := r.q.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("count %s rows: %w", table, err)
	}
	return count > 0, nil
}
