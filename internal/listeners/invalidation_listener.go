package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"room-inventory/internal/events"
	"room-inventory/internal/services"
	"room-inventory/pkg/eventbus"
	"room-inventory/pkg/metrics"
	"room-inventory/pkg/querycache"
)

// InvalidationListener drops the cached room queries an item mutation made stale.
type InvalidationListener struct {
	cache  *querycache.Cache
	logger *zap.Logger
}

func NewInvalidationListener(cache *querycache.Cache, logger *zap.Logger) *InvalidationListener {
	return &InvalidationListener{cache: cache, logger: logger}
}

func (l *InvalidationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.ItemChangedEvent, l.HandleItemChanged)
}

func (l *InvalidationListener) HandleItemChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.ItemChanged)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", event, events.ItemChangedEvent)
	}

	keys := services.RoomQueryKeys(e.RoomID)
	l.cache.Invalidate(ctx, keys...)
	for _, k := range keys {
		metrics.CacheInvalidations.WithLabelValues(k.Name).Inc()
	}
	l.logger.Debug("room queries invalidated", zap.String("roomID", e.RoomID.String()), zap.String("action", string(e.Action)))
	return nil
}
