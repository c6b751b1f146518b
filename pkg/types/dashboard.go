package types

import "github.com/google/uuid"

// InventoryTotals is the sum of item counters over some set of items.
type InventoryTotals struct {
	ItemCount           int64 `json:"item_count"`
	Quantity            int64 `json:"quantity"`
	MaintenanceQuantity int64 `json:"maintenance_quantity"`
	ReplacementQuantity int64 `json:"replacement_quantity"`
}

type FloorTotals struct {
	FloorID     uuid.UUID `json:"floor_id"`
	FloorName   string    `json:"floor_name"`
	FloorNumber int       `json:"floor_number"`
	RoomCount   int64     `json:"room_count"`
	InventoryTotals
}

type DashboardAlerts struct {
	LowStockCount         int64 `json:"low_stock_count"`
	LowStockThreshold     int   `json:"low_stock_threshold"`
	RoomsUnderMaintenance int64 `json:"rooms_under_maintenance"`
}
