package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"room-inventory/internal/entities"
)

type ProfileSummaryDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}

// ActivityLogDTO is one reconciled log entry. Profile is null when the actor could not be resolved.
type ActivityLogDTO struct {
	ID         uuid.UUID           `json:"id"`
	EntityType entities.EntityType `json:"entity_type"`
	EntityID   uuid.UUID           `json:"entity_id"`
	Action     entities.LogAction  `json:"action"`
	Details    entities.LogDetails `json:"details"`
	Summary    string              `json:"summary"`
	UserID     *uuid.UUID          `json:"user_id"`
	Profile    *ProfileSummaryDTO  `json:"profile"`
	CreatedAt  time.Time           `json:"created_at"`
}

// UnmarshalJSON restores the concrete Details type from Action so cached entries round-trip.
func (d *ActivityLogDTO) UnmarshalJSON(data []byte) error {
	type activityLogAlias ActivityLogDTO
	aux := struct {
		Details json.RawMessage `json:"details"`
		*activityLogAlias
	}{activityLogAlias: (*activityLogAlias)(d)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	details, err := entities.DecodeLogDetails(d.Action, aux.Details)
	if err != nil {
		return err
	}
	d.Details = details
	return nil
}
