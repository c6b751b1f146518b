package services

import (
	"github.com/google/uuid"

	"room-inventory/pkg/querycache"
)

const (
	ItemsQuery        = "items"
	ActivityLogsQuery = "activity-logs"
)

func ItemsKey(roomID uuid.UUID) querycache.Key {
	return querycache.NewKey(ItemsQuery, roomID)
}

func ActivityLogsKey(roomID uuid.UUID) querycache.Key {
	return querycache.NewKey(ActivityLogsQuery, roomID)
}

// RoomQueryKeys are the cached queries an item mutation in roomID makes stale.
func RoomQueryKeys(roomID uuid.UUID) []querycache.Key {
	return []querycache.Key{ItemsKey(roomID), ActivityLogsKey(roomID)}
}

const FloorsQuery = "floors"

// FloorsKey covers the floor list with its nested rooms.
func FloorsKey() querycache.Key {
	return querycache.Key{Name: FloorsQuery}
}
