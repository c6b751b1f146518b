package dto

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type CreateItemDTO struct {
	Name                string      `json:"name" validate:"required,notblank,max=255"`
	Description         null.String `json:"description"`
	Quantity            int         `json:"quantity" validate:"min=1"`
	MaintenanceQuantity null.Int    `json:"maintenance_quantity"`
	ReplacementQuantity null.Int    `json:"replacement_quantity"`
}

// UpdateItemDTO fields left out of the request keep their current value.
type UpdateItemDTO struct {
	Name                null.String `json:"name"`
	Description         null.String `json:"description"`
	Quantity            null.Int    `json:"quantity"`
	MaintenanceQuantity null.Int    `json:"maintenance_quantity"`
	ReplacementQuantity null.Int    `json:"replacement_quantity"`
}

type ItemDTO struct {
	ID                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	Description         *string    `json:"description,omitempty"`
	Quantity            int        `json:"quantity"`
	MaintenanceQuantity int        `json:"maintenance_quantity"`
	ReplacementQuantity int        `json:"replacement_quantity"`
	RoomID              uuid.UUID  `json:"room_id"`
	CreatedBy           *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
