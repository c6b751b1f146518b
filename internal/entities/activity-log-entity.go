package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type EntityType string

const EntityTypeItem EntityType = "item"

type LogAction string

const (
	ActionCreated LogAction = "created"
	ActionUpdated LogAction = "updated"
	ActionDeleted LogAction = "deleted"
)

// ItemSnapshot is the copy of an item's counters stored inside a log entry.
// RoomID is the only link back to the room once the item row is gone.
type ItemSnapshot struct {
	Name                string    `json:"name"`
	Quantity            int       `json:"quantity"`
	MaintenanceQuantity int       `json:"maintenance_quantity"`
	ReplacementQuantity int       `json:"replacement_quantity"`
	RoomID              uuid.UUID `json:"room_id"`
}

// LogDetails is the closed set of detail payloads, one per action.
type LogDetails interface {
	Action() LogAction
	Snapshot() ItemSnapshot
	logDetails()
}

type ItemCreatedDetails struct {
	ItemSnapshot
}

type ItemUpdatedDetails struct {
	ItemSnapshot
	Previous *ItemSnapshot `json:"previous,omitempty"`
}

type ItemDeletedDetails struct {
	ItemSnapshot
}

func (ItemCreatedDetails) Action() LogAction { return ActionCreated }
func (ItemUpdatedDetails) Action() LogAction { return ActionUpdated }
func (ItemDeletedDetails) Action() LogAction { return ActionDeleted }

func (d ItemCreatedDetails) Snapshot() ItemSnapshot { return d.ItemSnapshot }
func (d ItemUpdatedDetails) Snapshot() ItemSnapshot { return d.ItemSnapshot }
func (d ItemDeletedDetails) Snapshot() ItemSnapshot { return d.ItemSnapshot }

func (ItemCreatedDetails) logDetails() {}
func (ItemUpdatedDetails) logDetails() {}
func (ItemDeletedDetails) logDetails() {}

// DecodeLogDetails parses a stored details payload according to the log action.
func DecodeLogDetails(action LogAction, raw []byte) (LogDetails, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	switch action {
	case ActionCreated:
		var d ItemCreatedDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode %s details: %w", action, err)
		}
		return d, nil
	case ActionUpdated:
		var d ItemUpdatedDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode %s details: %w", action, err)
		}
		return d, nil
	case ActionDeleted:
		var d ItemDeletedDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode %s details: %w", action, err)
		}
		return d, nil
	}
	return nil, fmt.Errorf("unknown log action %q", action)
}

type ActivityLog struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Seq        int64      `json:"-" db:"seq"`
	EntityType EntityType `json:"entity_type" db:"entity_type"`
	EntityID   uuid.UUID  `json:"entity_id" db:"entity_id"`
	Action     LogAction  `json:"action" db:"action"`
	Details    LogDetails `json:"details" db:"details"`
	UserID     *uuid.UUID `json:"user_id,omitempty" db:"user_id"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// NewItemLog prepares an item log entry; ID, Seq and CreatedAt are assigned on insert.
func NewItemLog(itemID uuid.UUID, details LogDetails, userID *uuid.UUID) ActivityLog {
	return ActivityLog{
		EntityType: EntityTypeItem,
		EntityID:   itemID,
		Action:     details.Action(),
		Details:    details,
		UserID:     userID,
	}
}

// DetailsRoomID reports the room recorded in the log payload, if any.
func (l ActivityLog) DetailsRoomID() (uuid.UUID, bool) {
	if l.Details == nil {
		return uuid.Nil, false
	}
	id := l.Details.Snapshot().RoomID
	return id, id != uuid.Nil
}
