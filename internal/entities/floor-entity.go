package entities

import (
	"time"

	"github.com/google/uuid"
)

type Floor struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	FloorNumber int       `json:"floor_number" db:"floor_number"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	Rooms []Room `json:"rooms,omitempty" db:"-"`
}
