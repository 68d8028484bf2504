package postgres

import (
	"context"
	"fmt"

	qb "github.com/gislobo/matchvault/internal/platform/querybuilder"
	"github.com/gislobo/matchvault/internal/resolve"
)

type EventTypeRepository struct {
	q Queryer
}

func NewEventTypeRepository(q Queryer) *EventTypeRepository {
	return &EventTypeRepository{q: q}
}

func (r *EventTypeRepository) IDByTypeDetail(ctx context.Context, eventType, detail string) (int64, error) {
	query, args, err := qb.Select("id").From("eventtype").
		Where(qb.Eq("type", eventType), qb.Eq("detail", detail)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build select event type query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("event type %q/%q: %w", eventType, detail, resolve.ErrNotFound)
		}
		return 0, fmt.Errorf("select event type: %w", err)
	}
	return id, nil
}

func (r *EventTypeRepository) IDsByType(ctx context.Context, eventType string) ([]int64, error) {
	query, args, err := qb.Select("id").From("eventtype").
		Where(qb.Eq("type", eventType)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select event types query: %w", err)
	}

	var ids []int64
	if err := r.q.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select event types by type: %w", err)
	}
	return ids, nil
}

func (r *EventTypeRepository) Insert(ctx context.Context, eventType, detail string) (int64, error) {
	query, args, err := qb.InsertInto("eventtype").
		Columns("type", "detail").
		Values(eventType, detail).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert event type query: %w", err)
	}

	var id int64
	if err := r.q.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert event type: %w", mapWriteErr(err))
	}
	return id, nil
}
