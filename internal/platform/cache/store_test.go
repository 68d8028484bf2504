package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSetGet(t *testing.T) {
	ctx := context.Background()
	store := NewStore(0)

	store.Set(ctx, "team:33", int64(7))

	value, ok := store.Get(ctx, "team:33")
	require.True(t, ok)
	assert.Equal(t, int64(7), value)
	assert.Equal(t, 1, store.Len())
}

func TestStoreZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	store := NewStore(0)

	store.Set(ctx, "country:ireland", "IE")
	time.Sleep(5 * time.Millisecond)

	_, ok := store.Get(ctx, "country:ireland")
	assert.True(t, ok)
}

func TestStoreTTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Millisecond)

	store.Set(ctx, "player:874", int64(12))
	time.Sleep(5 * time.Millisecond)

	_, ok := store.Get(ctx, "player:874")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore(0)

	store.Set(ctx, "venue:556", int64(4))
	store.Delete(ctx, "venue:556")

	_, ok := store.Get(ctx, "venue:556")
	assert.False(t, ok)
}

func TestStoreEmptyKeyIsNoop(t *testing.T) {
	ctx := context.Background()
	store := NewStore(0)

	store.Set(ctx, "", "ignored")
	_, ok := store.Get(ctx, "")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestGetOrLoadCachesValue(t *testing.T) {
	ctx := context.Background()
	store := NewStore(0)
	loads := 0

	for i := 0; i < 3; i++ {
		value, err := store.GetOrLoad(ctx, "team:40", func(context.Context) (any, error) {
			loads++
			return int64(9), nil
		})
		require.NoError(t, err)
		assert.Equal(t, int64(9), value)
	}

	assert.Equal(t, 1, loads)
}

func TestGetOrLoadDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	store := NewStore(0)
	boom := errors.New("provider down")
	loads := 0

	_, err := store.GetOrLoad(ctx, "team:41", func(context.Context) (any, error) {
		loads++
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	value, err := store.GetOrLoad(ctx, "team:41", func(context.Context) (any, error) {
		loads++
		return int64(3), nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), value)
	assert.Equal(t, 2, loads)
}

func TestGetOrLoadRequiresLoader(t *testing.T) {
	store := NewStore(0)
	_, err := store.GetOrLoad(context.Background(), "k", nil)
	assert.Error(t, err)
}
