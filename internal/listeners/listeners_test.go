package listeners

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"room-inventory/internal/entities"
	"room-inventory/internal/events"
	"room-inventory/internal/services"
	"room-inventory/pkg/eventbus"
	"room-inventory/pkg/querycache"
)

func TestInvalidationListenerClearsBothRoomKeys(t *testing.T) {
	store := querycache.NewMemoryStore()
	cache := querycache.New(store, time.Minute, zap.NewNop())
	room, otherRoom := uuid.New(), uuid.New()

	for _, k := range append(services.RoomQueryKeys(room), services.RoomQueryKeys(otherRoom)...) {
		require.NoError(t, store.Set(context.Background(), k.String(), "[]", time.Minute))
	}

	var notified []querycache.Key
	cache.SubscribeAll(func(ctx context.Context, k querycache.Key) { notified = append(notified, k) })

	bus := eventbus.New(zap.NewNop())
	NewInvalidationListener(cache, zap.NewNop()).Register(bus)
	bus.Publish(context.Background(), events.ItemChanged{RoomID: room, Action: entities.ActionCreated})
	bus.Wait()

	assert.ElementsMatch(t, services.RoomQueryKeys(room), notified)
	for _, k := range services.RoomQueryKeys(room) {
		_, err := store.Get(context.Background(), k.String())
		assert.ErrorIs(t, err, querycache.ErrMiss)
	}
	for _, k := range services.RoomQueryKeys(otherRoom) {
		_, err := store.Get(context.Background(), k.String())
		assert.NoError(t, err)
	}
}

func TestInvalidationListenerRejectsForeignEvents(t *testing.T) {
	l := NewInvalidationListener(querycache.New(querycache.NewMemoryStore(), time.Minute, zap.NewNop()), zap.NewNop())
	assert.Error(t, l.HandleItemChanged(context.Background(), otherEvent{}))
}

type otherEvent struct{}

func (otherEvent) Name() string { return "other" }

type captureBroadcaster struct {
	mu       sync.Mutex
	payloads []events.RoomActivity
	excluded [][]uuid.UUID
}

func (c *captureBroadcaster) BroadcastRoomActivity(p events.RoomActivity, except ...uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payloads = append(c.payloads, p)
	c.excluded = append(c.excluded, except)
	return nil
}

func TestActivityListenerGroupsBurstPerRoom(t *testing.T) {
	capture := &captureBroadcaster{}
	l := NewActivityListener(capture, time.Hour, zap.NewNop())
	room := uuid.New()
	actor := uuid.New()

	for _, action := range []entities.LogAction{entities.ActionCreated, entities.ActionUpdated, entities.ActionUpdated} {
		require.NoError(t, l.HandleItemChanged(context.Background(), events.ItemChanged{
			RoomID: room, Action: action, ActorID: actor, Snapshot: entities.ItemSnapshot{Name: "Chair"},
		}))
	}
	l.Flush()

	require.Len(t, capture.payloads, 1)
	p := capture.payloads[0]
	assert.Equal(t, room, p.RoomID)
	assert.Equal(t, 3, p.Changes)
	assert.Equal(t, 2, p.Actions[entities.ActionUpdated])
	assert.Equal(t, []string{"Chair"}, p.Items)
	assert.Contains(t, capture.excluded[0], actor)
}

func TestActivityListenerListsSameNamedItemsSeparately(t *testing.T) {
	capture := &captureBroadcaster{}
	l := NewActivityListener(capture, time.Hour, zap.NewNop())
	room := uuid.New()
	first, second := uuid.New(), uuid.New()

	for _, itemID := range []uuid.UUID{first, second, first} {
		require.NoError(t, l.HandleItemChanged(context.Background(), events.ItemChanged{
			RoomID: room, ItemID: itemID, Action: entities.ActionCreated, Snapshot: entities.ItemSnapshot{Name: "Chair"},
		}))
	}
	l.Flush()

	capture.mu.Lock()
	defer capture.mu.Unlock()
	require.Len(t, capture.payloads, 1)
	assert.Equal(t, 3, capture.payloads[0].Changes)
	assert.Equal(t, []string{"Chair", "Chair"}, capture.payloads[0].Items)
}
