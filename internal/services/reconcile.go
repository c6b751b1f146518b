package services

import (
	"cmp"
	"slices"

	"github.com/google/uuid"

	"room-inventory/internal/entities"
)

// ReconcileRoomLogs selects the item logs that belong to roomID.
//
// An item belongs to the room when it is one of the room's current items, or when a
// deletion log names the room in its snapshot. The second rule is the only link left
// for items whose rows are gone, so an empty itemIDs set still yields the room's
// deleted items. Every log of a belonging item is kept, so a deleted item keeps its
// whole history. The result is ordered newest first, ties broken by insertion order.
func ReconcileRoomLogs(roomID uuid.UUID, itemIDs []uuid.UUID, logs []entities.ActivityLog) []entities.ActivityLog {
	members := make(map[uuid.UUID]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		members[id] = struct{}{}
	}
	for _, l := range logs {
		if l.EntityType != entities.EntityTypeItem || l.Action != entities.ActionDeleted {
			continue
		}
		if logRoom, ok := l.DetailsRoomID(); ok && logRoom == roomID {
			members[l.EntityID] = struct{}{}
		}
	}

	result := make([]entities.ActivityLog, 0)
	for _, l := range logs {
		if l.EntityType != entities.EntityTypeItem {
			continue
		}
		if _, ok := members[l.EntityID]; ok {
			result = append(result, l)
		}
	}

	slices.SortStableFunc(result, func(a, b entities.ActivityLog) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.Seq, a.Seq)
	})
	return result
}
