package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gislobo/matchvault/internal/domain/eventtype"
	"github.com/gislobo/matchvault/internal/resolve"
)

type EventTypeRepository struct {
	mu     sync.RWMutex
	types  []eventtype.EventType
	nextID int64
}

func NewEventTypeRepository() *EventTypeRepository {
	return &EventTypeRepository{nextID: 1}
}

func (r *EventTypeRepository) IDByTypeDetail(_ context.Context, eventType, detail string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, et := range r.types {
		if et.Type == eventType && et.Detail == detail {
			return et.ID, nil
		}
	}
	return 0, fmt.Errorf("event type %q/%q: %w", eventType, detail, resolve.ErrNotFound)
}

func (r *EventTypeRepository) IDsByType(_ context.Context, eventType string) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []int64
	for _, et := range r.types {
		if et.Type == eventType {
			ids = append(ids, et.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *EventTypeRepository) Insert(_ context.Context, eventType, detail string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, et := range r.types {
		if et.Type == eventType && et.Detail == detail {
			return 0, fmt.Errorf("event type %q/%q: %w", eventType, detail, resolve.ErrConflict)
		}
	}

	id := r.nextID
	r.nextID++
	r.types = append(r.types, eventtype.EventType{ID: id, Type: eventType, Detail: detail})
	return id, nil
}
