package events

import (
	"github.com/google/uuid"

	"room-inventory/internal/entities"
)

const ItemChangedEvent = "item.changed"

// ItemChanged is published after an item mutation and its log entry have been committed.
type ItemChanged struct {
	RoomID   uuid.UUID
	ItemID   uuid.UUID
	Action   entities.LogAction
	Snapshot entities.ItemSnapshot
	ActorID  uuid.UUID
}

func (e ItemChanged) Name() string {
	return ItemChangedEvent
}

// RoomActivity summarizes the item changes made in one room during a short window.
type RoomActivity struct {
	RoomID  uuid.UUID                  `json:"room_id"`
	Changes int                        `json:"changes"`
	Actions map[entities.LogAction]int `json:"actions"`
	Items   []string                   `json:"items"`
}
