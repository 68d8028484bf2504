package postgres

import (
	"context"
	"fmt"

	qb "github.com/gislobo/matchvault/internal/platform/querybuilder"
)

type CountryRepository struct {
	q Queryer
}

func NewCountryRepository(q Queryer) *CountryRepository {
	return &CountryRepository{q: q}
}

func (r *CountryRepository) CodesByName(ctx context.Context) (map[string]string, error) {
	query, args, err := qb.Select("code", "LOWER(name) AS name").From("country").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select countries query: %w", err)
	}

	var rows []struct {
		Code string `db:"code"`
		Name string `db:"name"`
	}
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select countries: %w", err)
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[canonicalName(row.Name)] = row.Code
	}
	return out, nil
}
