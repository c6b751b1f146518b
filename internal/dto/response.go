package dto

import "room-inventory/pkg/notify"

// MutationResultDTO reports an item mutation's bool outcome together with its notification.
type MutationResultDTO struct {
	Success      bool                `json:"success"`
	Notification notify.Notification `json:"notification"`
}
