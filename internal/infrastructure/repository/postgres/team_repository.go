package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/gislobo/matchvault/internal/domain/team"
	qb "github.com/gislobo/matchvault/internal/platform/querybuilder"
	"github.com/gislobo/matchvault/internal/resolve"
)

type teamTableModel struct {
	ExternalID  int64      `db:"externalid"`
	Name        string     `db:"name"`
	CountryCode *string    `db:"countrycode"`
	Founded     *time.Time `db:"founded"`
}

type TeamRepository struct {
	q Queryer
}

func NewTeamRepository(q Queryer) *TeamRepository {
	return &TeamRepository{q: q}
}

func (r *TeamRepository) IDByExternalID(ctx context.Context, externalID int64) (int64, error) {
	query, args, err := qb.Select("id").From("team").
		Where(qb.Eq("externalid", externalID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build select team query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("team external id %d: %w", externalID, resolve.ErrNotFound)
		}
		return 0, fmt.Errorf("select team by external id: %w", err)
	}
	return id, nil
}

func (r *TeamRepository) Insert(ctx context.Context, t team.Team) (int64, error) {
	model := teamTableModel{
		ExternalID:  t.ExternalID,
		Name:        t.Name,
		CountryCode: t.CountryCode,
		Founded:     t.Founded,
	}

	query, args, err := qb.InsertModel("team", model, "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert team query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert team: %w", mapWriteErr(err))
	}
	return id, nil
}
