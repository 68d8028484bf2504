package usecase

import (
	"context"
	"sync"

	"github.com/gislobo/matchvault/internal/platform/cache"
)

type cacheJournalCtxKey struct{}

// cacheJournal collects cross-reference keys written while a fixture
// transaction is open. A rollback discards the reference rows those
// keys point at, so the keys have to go with them or every later
// fixture in the run reuses ids for rows that never committed.
type cacheJournal struct {
	mu   sync.Mutex
	keys []string
}

func withCacheJournal(ctx context.Context) (context.Context, *cacheJournal) {
	j := &cacheJournal{}
	return context.WithValue(ctx, cacheJournalCtxKey{}, j), j
}

func journalFrom(ctx context.Context) *cacheJournal {
	j, _ := ctx.Value(cacheJournalCtxKey{}).(*cacheJournal)
	return j
}

func (j *cacheJournal) record(key string) {
	if j == nil {
		return
	}
	j.mu.Lock()
	j.keys = append(j.keys, key)
	j.mu.Unlock()
}

func (j *cacheJournal) evict(ctx context.Context, store *cache.Store) {
	if j == nil {
		return
	}
	j.mu.Lock()
	keys := j.keys
	j.keys = nil
	j.mu.Unlock()

	for _, key := range keys {
		store.Delete(ctx, key)
	}
}
