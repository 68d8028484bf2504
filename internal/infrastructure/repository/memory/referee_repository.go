package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/gislobo/matchvault/internal/domain/referee"
	"github.com/gislobo/matchvault/internal/resolve"
)

type RefereeRepository struct {
	mu       sync.RWMutex
	referees []referee.Referee
	nextID   int64
}

func NewRefereeRepository() *RefereeRepository {
	return &RefereeRepository{nextID: 1}
}

func (r *RefereeRepository) IDsByFullName(_ context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int64, len(r.referees))
	for _, ref := range r.referees {
		if name := canonicalName(ref.FullName()); name != "" {
			out[name] = ref.ID
		}
	}
	return out, nil
}

func (r *RefereeRepository) Insert(_ context.Context, ref referee.Referee) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := canonicalName(ref.FullName())
	for _, existing := range r.referees {
		if canonicalName(existing.FullName()) == name {
			return 0, fmt.Errorf("referee %q: %w", ref.FullName(), resolve.ErrConflict)
		}
	}

	ref.ID = r.nextID
	r.nextID++
	r.referees = append(r.referees, ref)
	return ref.ID, nil
}
