package entities

import (
	"github.com/google/uuid"

	"room-inventory/pkg/types"
)

type Item struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	Name                string     `json:"name" db:"name"`
	Description         *string    `json:"description,omitempty" db:"description"`
	Quantity            int        `json:"quantity" db:"quantity"`
	MaintenanceQuantity int        `json:"maintenance_quantity" db:"maintenance_quantity"`
	ReplacementQuantity int        `json:"replacement_quantity" db:"replacement_quantity"`
	RoomID              uuid.UUID  `json:"room_id" db:"room_id"`
	CreatedBy           *uuid.UUID `json:"created_by,omitempty" db:"created_by"`

	types.BaseEntity
}

// Snapshot copies the fields an activity log records about the item.
func (i Item) Snapshot() ItemSnapshot {
	return ItemSnapshot{
		Name:                i.Name,
		Quantity:            i.Quantity,
		MaintenanceQuantity: i.MaintenanceQuantity,
		ReplacementQuantity: i.ReplacementQuantity,
		RoomID:              i.RoomID,
	}
}
