package entities

import (
	"github.com/google/uuid"

	"room-inventory/pkg/types"
)

type RoomStatus string

const (
	RoomStatusActive      RoomStatus = "active"
	RoomStatusMaintenance RoomStatus = "maintenance"
	RoomStatusInactive    RoomStatus = "inactive"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomStatusActive, RoomStatusMaintenance, RoomStatusInactive:
		return true
	}
	return false
}

type Room struct {
	ID             uuid.UUID   `json:"id" db:"id"`
	RoomNumber     string      `json:"room_number" db:"room_number"`
	FloorID        uuid.UUID   `json:"floor_id" db:"floor_id"`
	FloorNumber    int         `json:"floor_number" db:"floor_number"`
	Status         RoomStatus  `json:"status" db:"status"`
	PreviousStatus *RoomStatus `json:"previous_status,omitempty" db:"previous_status"`

	types.BaseEntity

	Floor *Floor `json:"floor,omitempty" db:"-"`
}
