package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/gislobo/matchvault/internal/domain/venue"
	"github.com/gislobo/matchvault/internal/resolve"
)

type VenueRepository struct {
	mu     sync.RWMutex
	venues []venue.Venue
	nextID int64
}

func NewVenueRepository() *VenueRepository {
	return &VenueRepository{nextID: 1}
}

func (r *VenueRepository) IDByExternalID(_ context.Context, externalID int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.venues {
		if v.ExternalID != nil && *v.ExternalID == externalID {
			return v.ID, nil
		}
	}
	return 0, fmt.Errorf("venue external id %d: %w", externalID, resolve.ErrNotFound)
}

func (r *VenueRepository) IDsByNameWithoutExternalID(_ context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int64)
	for _, v := range r.venues {
		if v.ExternalID != nil {
			continue
		}
		if name := canonicalName(v.Name); name != "" {
			out[name] = v.ID
		}
	}
	return out, nil
}

func (r *VenueRepository) Timezone(_ context.Context, id int64) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.venues {
		if v.ID != id {
			continue
		}
		if v.Timezone == nil {
			return "", nil
		}
		return *v.Timezone, nil
	}
	return "", fmt.Errorf("venue id %d: %w", id, resolve.ErrNotFound)
}

func (r *VenueRepository) Insert(_ context.Context, v venue.Venue) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := canonicalName(v.Name)
	for _, existing := range r.venues {
		if v.ExternalID != nil && existing.ExternalID != nil && *existing.ExternalID == *v.ExternalID {
			return 0, fmt.Errorf("venue external id %d: %w", *v.ExternalID, resolve.ErrConflict)
		}
		if v.ExternalID == nil && existing.ExternalID == nil && canonicalName(existing.Name) == name {
			return 0, fmt.Errorf("venue %q: %w", v.Name, resolve.ErrConflict)
		}
	}

	v.ID = r.nextID
	r.nextID++
	r.venues = append(r.venues, v)
	return v.ID, nil
}
