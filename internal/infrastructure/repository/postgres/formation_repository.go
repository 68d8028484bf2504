package postgres

import (
	"context"
	"fmt"

	qb "github.com/gislobo/matchvault/internal/platform/querybuilder"
	"github.com/gislobo/matchvault/internal/resolve"
)

type FormationRepository struct {
	q Queryer
}

func NewFormationRepository(q Queryer) *FormationRepository {
	return &FormationRepository{q: q}
}

func (r *FormationRepository) IDByLabel(ctx context.Context, label string) (int64, error) {
	query, args, err := qb.Select("id").From("formation").
		Where(qb.Eq("label", label)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build select formation query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("formation %q: %w", label, resolve.ErrNotFound)
		}
		return 0, fmt.Errorf("select formation by label: %w", err)
	}
	return id, nil
}

func (r *FormationRepository) Insert(ctx context.Context, label string) (int64, error) {
	query, args, err := qb.InsertInto("formation").
		Columns("label").
		Values(label).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert formation query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert formation: %w", mapWriteErr(err))
	}
	return id, nil
}
