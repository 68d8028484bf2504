package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/gislobo/matchvault/internal/domain/coach"
	qb "github.com/gislobo/matchvault/internal/platform/querybuilder"
	"github.com/gislobo/matchvault/internal/resolve"
)

type coachTableModel struct {
	ExternalID       int64      `db:"externalid"`
	FirstName        *string    `db:"firstname"`
	LastName         *string    `db:"lastname"`
	BirthDate        *time.Time `db:"birthdate"`
	BirthPlace       *string    `db:"birthplace"`
	BirthCountryCode *string    `db:"birthcountrycode"`
	Nationality      *string    `db:"nationality"`
}

type CoachRepository struct {
	q Queryer
}

func NewCoachRepository(q Queryer) *CoachRepository {
	return &CoachRepository{q: q}
}

func (r *CoachRepository) IDByExternalID(ctx context.Context, externalID int64) (int64, error) {
	query, args, err := qb.Select("id").From("coach").
		Where(qb.Eq("externalid", externalID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build select coach query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("coach external id %d: %w", externalID, resolve.ErrNotFound)
		}
		return 0, fmt.Errorf("select coach by external id: %w", err)
	}
	return id, nil
}

func (r *CoachRepository) Insert(ctx context.Context, c coach.Coach) (int64, error) {
	model := coachTableModel{
		ExternalID:       c.ExternalID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		BirthDate:        c.BirthDate,
		BirthPlace:       c.BirthPlace,
		BirthCountryCode: c.BirthCountryCode,
		Nationality:      c.Nationality,
	}

	query, args, err := qb.InsertModel("coach", model, "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert coach query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert coach: %w", mapWriteErr(err))
	}
	return id, nil
}
