package querycache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type row struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

func newTestCache() (*Cache, *MemoryStore) {
	store := NewMemoryStore()
	return New(store, time.Minute, zap.NewNop()), store
}

func TestFetchLoadsOnceUntilInvalidated(t *testing.T) {
	cache, _ := newTestCache()
	key := NewKey("items", uuid.New())
	var loads int32

	load := func(ctx context.Context) ([]row, error) {
		atomic.AddInt32(&loads, 1)
		return []row{{Name: "Chair", Quantity: 4}}, nil
	}

	first, err := Fetch(context.Background(), cache, key, load)
	require.NoError(t, err)
	second, err := Fetch(context.Background(), cache, key, load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt32(&loads))

	cache.Invalidate(context.Background(), key)
	_, err = Fetch(context.Background(), cache, key, load)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&loads))
}

func TestFetchDoesNotCacheErrors(t *testing.T) {
	cache, store := newTestCache()
	key := Key{Name: "items", Param: "room"}

	_, err := Fetch(context.Background(), cache, key, func(ctx context.Context) (int, error) {
		return 0, errors.New("boom")
	})
	require.Error(t, err)

	_, err = store.Get(context.Background(), key.String())
	assert.ErrorIs(t, err, ErrMiss)
}

func TestInvalidateNotifiesOnlyMatchingSubscribers(t *testing.T) {
	cache, _ := newTestCache()
	roomA := Key{Name: "items", Param: "a"}
	roomB := Key{Name: "items", Param: "b"}

	var gotA, gotB, gotAll []Key
	cache.Subscribe(roomA, func(ctx context.Context, k Key) { gotA = append(gotA, k) })
	cache.Subscribe(roomB, func(ctx context.Context, k Key) { gotB = append(gotB, k) })
	cache.SubscribeAll(func(ctx context.Context, k Key) { gotAll = append(gotAll, k) })

	cache.Invalidate(context.Background(), roomA)

	assert.Equal(t, []Key{roomA}, gotA)
	assert.Empty(t, gotB)
	assert.Equal(t, []Key{roomA}, gotAll)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	cache, _ := newTestCache()
	key := Key{Name: "activity-logs", Param: "a"}
	calls := 0
	stop := cache.Subscribe(key, func(ctx context.Context, k Key) { calls++ })

	cache.Invalidate(context.Background(), key)
	stop()
	cache.Invalidate(context.Background(), key)

	assert.Equal(t, 1, calls)
}

func TestSubscriberPanicDoesNotStopOthers(t *testing.T) {
	cache, _ := newTestCache()
	key := Key{Name: "items", Param: "a"}
	called := false
	cache.Subscribe(key, func(ctx context.Context, k Key) { panic("listener failed") })
	cache.Subscribe(key, func(ctx context.Context, k Key) { called = true })

	assert.NotPanics(t, func() { cache.Invalidate(context.Background(), key) })
	assert.True(t, called)
}

func TestLoadRacingInvalidationIsNotStored(t *testing.T) {
	cache, store := newTestCache()
	key := Key{Name: "items", Param: "a"}

	value, err := Fetch(context.Background(), cache, key, func(ctx context.Context) (int, error) {
		cache.Invalidate(ctx, key)
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, value)

	_, err = store.Get(context.Background(), key.String())
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(context.Background(), "k", "v", time.Second))
	v, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	now = now.Add(2 * time.Second)
	_, err = store.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrMiss)
}

// interleavingStore runs beforeSet ahead of every write to simulate an invalidation
// landing between the generation check and the store write.
type interleavingStore struct {
	*MemoryStore
	beforeSet func()
}

func (s *interleavingStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if s.beforeSet != nil {
		s.beforeSet()
	}
	return s.MemoryStore.Set(ctx, key, value, expiration)
}

func TestFetchDropsEntryInvalidatedDuringStore(t *testing.T) {
	store := &interleavingStore{MemoryStore: NewMemoryStore()}
	cache := New(store, time.Minute, zap.NewNop())
	key := NewKey("items", uuid.New())
	store.beforeSet = func() { cache.Invalidate(context.Background(), key) }

	got, err := Fetch(context.Background(), cache, key, func(ctx context.Context) ([]row, error) {
		return []row{{Name: "Chair", Quantity: 1}}, nil
	})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = store.Get(context.Background(), key.String())
	assert.ErrorIs(t, err, ErrMiss)
}
