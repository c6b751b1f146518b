package listeners

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"room-inventory/internal/entities"
	"room-inventory/internal/events"
	"room-inventory/pkg/eventbus"
)

const defaultActivityWindow = 2 * time.Second

// ActivityBroadcaster pushes a room activity summary to connected users.
type ActivityBroadcaster interface {
	BroadcastRoomActivity(activity events.RoomActivity, except ...uuid.UUID) error
}

type activityGroup struct {
	events []events.ItemChanged
	timer  *time.Timer
}

// ActivityListener collects item changes per room and sends one summary per window,
// so a burst of edits produces a single message. Actors do not receive their own changes.
type ActivityListener struct {
	broadcaster ActivityBroadcaster
	window      time.Duration
	logger      *zap.Logger

	groups   map[uuid.UUID]*activityGroup
	groupsMu sync.Mutex
}

func NewActivityListener(broadcaster ActivityBroadcaster, window time.Duration, logger *zap.Logger) *ActivityListener {
	if window <= 0 {
		window = defaultActivityWindow
	}
	return &ActivityListener{
		broadcaster: broadcaster,
		window:      window,
		logger:      logger,
		groups:      make(map[uuid.UUID]*activityGroup),
	}
}

func (l *ActivityListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.ItemChangedEvent, l.HandleItemChanged)
}

func (l *ActivityListener) HandleItemChanged(_ context.Context, event eventbus.Event) error {
	e, ok := event.(events.ItemChanged)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", event, events.ItemChangedEvent)
	}

	l.groupsMu.Lock()
	defer l.groupsMu.Unlock()

	group, exists := l.groups[e.RoomID]
	if !exists {
		group = &activityGroup{}
		l.groups[e.RoomID] = group
		roomID := e.RoomID
		group.timer = time.AfterFunc(l.window, func() { l.flush(roomID) })
	}
	group.events = append(group.events, e)
	return nil
}

func (l *ActivityListener) flush(roomID uuid.UUID) {
	l.groupsMu.Lock()
	group, exists := l.groups[roomID]
	delete(l.groups, roomID)
	l.groupsMu.Unlock()

	if !exists || len(group.events) == 0 {
		return
	}

	payload := events.RoomActivity{
		RoomID:  roomID,
		Changes: len(group.events),
		Actions: make(map[entities.LogAction]int),
	}
	actors := make([]uuid.UUID, 0, 1)
	seenItems := make(map[uuid.UUID]struct{})
	for _, e := range group.events {
		payload.Actions[e.Action]++
		if _, ok := seenItems[e.ItemID]; !ok {
			seenItems[e.ItemID] = struct{}{}
			payload.Items = append(payload.Items, e.Snapshot.Name)
		}
		actors = append(actors, e.ActorID)
	}

	if err := l.broadcaster.BroadcastRoomActivity(payload, actors...); err != nil {
		l.logger.Error("failed to broadcast room activity", zap.String("roomID", roomID.String()), zap.Error(err))
	}
}

// Flush sends every pending summary immediately.
func (l *ActivityListener) Flush() {
	l.groupsMu.Lock()
	rooms := make([]uuid.UUID, 0, len(l.groups))
	for roomID, group := range l.groups {
		group.timer.Stop()
		rooms = append(rooms, roomID)
	}
	l.groupsMu.Unlock()

	for _, roomID := range rooms {
		l.flush(roomID)
	}
}
