package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/gislobo/matchvault/internal/domain/player"
	qb "github.com/gislobo/matchvault/internal/platform/querybuilder"
	"github.com/gislobo/matchvault/internal/resolve"
)

type playerTableModel struct {
	ExternalID       int64      `db:"externalid"`
	FirstName        *string    `db:"firstname"`
	LastName         *string    `db:"lastname"`
	BirthDate        *time.Time `db:"birthdate"`
	BirthPlace       *string    `db:"birthplace"`
	BirthCountryCode *string    `db:"birthcountrycode"`
	Nationality      *string    `db:"nationality"`
	HeightCM         *int       `db:"heightcm"`
	WeightKG         *int       `db:"weightkg"`
}

type PlayerRepository struct {
	q Queryer
}

func NewPlayerRepository(q Queryer) *PlayerRepository {
	return &PlayerRepository{q: q}
}

func (r *PlayerRepository) IDByExternalID(ctx context.Context, externalID int64) (int64, error) {
	query, args, err := qb.Select("id").From("player").
		Where(qb.Eq("externalid", externalID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build select player query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("player external id %d: %w", externalID, resolve.ErrNotFound)
		}
		return 0, fmt.Errorf("select player by external id: %w", err)
	}
	return id, nil
}

func (r *PlayerRepository) Insert(ctx context.Context, p player.Player) (int64, error) {
	model := playerTableModel{
		ExternalID:       p.ExternalID,
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		BirthDate:        p.BirthDate,
		BirthPlace:       p.BirthPlace,
		BirthCountryCode: p.BirthCountryCode,
		Nationality:      p.Nationality,
		HeightCM:         p.HeightCM,
		WeightKG:         p.WeightKG,
	}

	query, args, err := qb.InsertModel("player", model, "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert player query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert player: %w", mapWriteErr(err))
	}
	return id, nil
}
