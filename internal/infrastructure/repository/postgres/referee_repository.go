package postgres

import (
	"context"
	"fmt"

	"github.com/gislobo/matchvault/internal/domain/referee"
	qb "github.com/gislobo/matchvault/internal/platform/querybuilder"
)

// refereeFullNameExpr canonicalizes the stored split name the same way
// the candidate generator canonicalizes provider names.
const refereeFullNameExpr = "LOWER(TRIM(CONCAT_WS(' ', firstname, lastname)))"

type refereeTableModel struct {
	FirstName   string  `db:"firstname"`
	LastName    *string `db:"lastname"`
	CountryCode *string `db:"countrycode"`
}

type RefereeRepository struct {
	q Queryer
}

func NewRefereeRepository(q Queryer) *RefereeRepository {
	return &RefereeRepository{q: q}
}

func (r *RefereeRepository) IDsByFullName(ctx context.Context) (map[string]int64, error) {
	query, args, err := qb.Select("id", refereeFullNameExpr+" AS fullname").
		From("referee").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select referees query: %w", err)
	}

	var rows []struct {
		ID       int64  `db:"id"`
		FullName string `db:"fullname"`
	}
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select referees: %w", err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		if name := canonicalName(row.FullName); name != "" {
			out[name] = row.ID
		}
	}
	return out, nil
}

func (r *RefereeRepository) Insert(ctx context.Context, ref referee.Referee) (int64, error) {
	model := refereeTableModel{
		FirstName:   ref.FirstName,
		LastName:    ref.LastName,
		CountryCode: ref.CountryCode,
	}

	query, args, err := qb.InsertModel("referee", model, "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert referee query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert referee: %w", mapWriteErr(err))
	}
	return id, nil
}
