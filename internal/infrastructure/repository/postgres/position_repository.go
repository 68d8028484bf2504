package postgres

import (
	"context"
	"fmt"

	qb "github.com/gislobo/matchvault/internal/platform/querybuilder"
	"github.com/gislobo/matchvault/internal/resolve"
)

type PositionRepository struct {
	q Queryer
}

func NewPositionRepository(q Queryer) *PositionRepository {
	return &PositionRepository{q: q}
}

func (r *PositionRepository) IDByLabel(ctx context.Context, label string) (int64, error) {
	query, args, err := qb.Select("id").From("position").
		Where(qb.Eq("label", label)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build select position query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("position %q: %w", label, resolve.ErrNotFound)
		}
		return 0, fmt.Errorf("select position by label: %w", err)
	}
	return id, nil
}

func (r *PositionRepository) Insert(ctx context.Context, label string) (int64, error) {
	query, args, err := qb.InsertInto("position").
		Columns("label").
		Values(label).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert position query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert position: %w", mapWriteErr(err))
	}
	return id, nil
}
