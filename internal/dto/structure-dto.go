package dto

import (
	"time"

	"github.com/google/uuid"

	"room-inventory/internal/entities"
)

type CreateFloorDTO struct {
	Name        string `json:"name" validate:"required,notblank,max=100"`
	FloorNumber int    `json:"floor_number"`
}

type FloorDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	FloorNumber int       `json:"floor_number"`
	CreatedAt   time.Time `json:"created_at"`
	Rooms       []RoomDTO `json:"rooms"`
}

type CreateRoomDTO struct {
	RoomNumber string    `json:"room_number" validate:"required,notblank,max=50"`
	FloorID    uuid.UUID `json:"floor_id" validate:"required"`
}

type UpdateRoomStatusDTO struct {
	Status string `json:"status" validate:"required,room_status"`
}

type ShortFloorDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	FloorNumber int       `json:"floor_number"`
}

type RoomDTO struct {
	ID             uuid.UUID            `json:"id"`
	RoomNumber     string               `json:"room_number"`
	FloorID        uuid.UUID            `json:"floor_id"`
	FloorNumber    int                  `json:"floor_number"`
	Status         entities.RoomStatus  `json:"status"`
	PreviousStatus *entities.RoomStatus `json:"previous_status,omitempty"`
	Floor          *ShortFloorDTO       `json:"floor,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}
