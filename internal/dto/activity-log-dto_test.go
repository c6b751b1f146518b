package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-inventory/internal/entities"
)

func TestActivityLogDTOKeepsDetailsTypeThroughJSON(t *testing.T) {
	room := uuid.New()
	previous := entities.ItemSnapshot{Name: "Chair", Quantity: 4, RoomID: room}
	in := ActivityLogDTO{
		ID:         uuid.New(),
		EntityType: entities.EntityTypeItem,
		EntityID:   uuid.New(),
		Action:     entities.ActionUpdated,
		Details: entities.ItemUpdatedDetails{
			ItemSnapshot: entities.ItemSnapshot{Name: "Chair", Quantity: 3, MaintenanceQuantity: 1, RoomID: room},
			Previous:     &previous,
		},
		Summary:   "Item: Chair, Quantity: 3, Needs Maintenance: 1, Needs Replacement: 0",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out ActivityLogDTO
	require.NoError(t, json.Unmarshal(raw, &out))

	details, ok := out.Details.(entities.ItemUpdatedDetails)
	require.True(t, ok)
	assert.Equal(t, room, details.RoomID)
	assert.Equal(t, 4, details.Previous.Quantity)
	assert.Equal(t, in.ID, out.ID)
	assert.Nil(t, out.Profile)
}
