package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gislobo/matchvault/internal/domain/venue"
	qb "github.com/gislobo/matchvault/internal/platform/querybuilder"
	"github.com/gislobo/matchvault/internal/resolve"
)

type venueTableModel struct {
	ExternalID  *int64   `db:"externalid"`
	Name        string   `db:"name"`
	Address     *string  `db:"address"`
	City        *string  `db:"city"`
	State       *string  `db:"state"`
	CountryCode *string  `db:"countrycode"`
	Capacity    *int     `db:"capacity"`
	Surface     *string  `db:"surface"`
	Latitude    *float64 `db:"latitude"`
	Longitude   *float64 `db:"longitude"`
	Timezone    *string  `db:"timezone"`
}

type VenueRepository struct {
	q Queryer
}

func NewVenueRepository(q Queryer) *VenueRepository {
	return &VenueRepository{q: q}
}

func (r *VenueRepository) IDByExternalID(ctx context.Context, externalID int64) (int64, error) {
	query, args, err := qb.Select("id").From("venue").
		Where(qb.Eq("externalid", externalID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build select venue query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("venue external id %d: %w", externalID, resolve.ErrNotFound)
		}
		return 0, fmt.Errorf("select venue by external id: %w", err)
	}
	return id, nil
}

func (r *VenueRepository) IDsByNameWithoutExternalID(ctx context.Context) (map[string]int64, error) {
	query, args, err := qb.Select("id", "LOWER(name) AS name").
		From("venue").
		Where(qb.IsNull("externalid")).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select venues query: %w", err)
	}

	var rows []struct {
		ID   int64  `db:"id"`
		Name string `db:"name"`
	}
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select venues without external id: %w", err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		if name := canonicalName(row.Name); name != "" {
			out[name] = row.ID
		}
	}
	return out, nil
}

func (r *VenueRepository) Timezone(ctx context.Context, id int64) (string, error) {
	query, args, err := qb.Select("timezone").From("venue").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return "", fmt.Errorf("build select venue timezone query: %w", err)
	}

	var tz sql.NullString
	if err := r.q.GetContext(ctx, &tz, query, args...); err != nil {
		if isNotFound(err) {
			return "", fmt.Errorf("venue id %d: %w", id, resolve.ErrNotFound)
		}
		return "", fmt.Errorf("select venue timezone: %w", err)
	}
	return tz.String, nil
}

func (r *VenueRepository) Insert(ctx context.Context, v venue.Venue) (int64, error) {
	model := venueTableModel{
		ExternalID:  v.ExternalID,
		Name:        v.Name,
		Address:     v.Address,
		City:        v.City,
		State:       v.State,
		CountryCode: v.CountryCode,
		Capacity:    v.Capacity,
		Surface:     v.Surface,
		Latitude:    v.Latitude,
		Longitude:   v.Longitude,
		Timezone:    v.Timezone,
	}

	query, args, err := qb.InsertModel("venue", model, "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert venue query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert venue: %w", mapWriteErr(err))
	}
	return id, nil
}
