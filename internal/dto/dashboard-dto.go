package dto

import "room-inventory/pkg/types"

type DashboardDTO struct {
	Totals types.InventoryTotals `json:"totals"`
	Floors []types.FloorTotals   `json:"floors"`
	Alerts types.DashboardAlerts `json:"alerts"`
}
