package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"room-inventory/internal/entities"
)

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func itemLog(seq int64, at time.Duration, itemID uuid.UUID, details entities.LogDetails) entities.ActivityLog {
	l := entities.NewItemLog(itemID, details, nil)
	l.ID = uuid.New()
	l.Seq = seq
	l.CreatedAt = baseTime.Add(at)
	return l
}

func snap(name string, qty int, room uuid.UUID) entities.ItemSnapshot {
	return entities.ItemSnapshot{Name: name, Quantity: qty, RoomID: room}
}

func entityIDs(logs []entities.ActivityLog) []uuid.UUID {
	ids := make([]uuid.UUID, len(logs))
	for i, l := range logs {
		ids[i] = l.EntityID
	}
	return ids
}

func TestReconcileIncludesCurrentAndDeletedItems(t *testing.T) {
	room, otherRoom := uuid.New(), uuid.New()
	i1, i2, i3, i4 := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	logs := []entities.ActivityLog{
		itemLog(5, 5*time.Minute, i4, entities.ItemDeletedDetails{ItemSnapshot: snap("Desk", 1, otherRoom)}),
		itemLog(4, 4*time.Minute, i3, entities.ItemDeletedDetails{ItemSnapshot: snap("Lamp", 2, room)}),
		itemLog(3, 3*time.Minute, i2, entities.ItemCreatedDetails{ItemSnapshot: snap("Chair", 4, room)}),
		itemLog(2, 2*time.Minute, i1, entities.ItemCreatedDetails{ItemSnapshot: snap("Table", 1, room)}),
		itemLog(1, 1*time.Minute, i3, entities.ItemCreatedDetails{ItemSnapshot: snap("Lamp", 2, room)}),
	}

	got := ReconcileRoomLogs(room, []uuid.UUID{i1, i2}, logs)

	assert.Equal(t, []uuid.UUID{i3, i2, i1, i3}, entityIDs(got))
	for _, l := range got {
		assert.NotEqual(t, i4, l.EntityID)
	}
}

func TestReconcileEmptyRoomStillReturnsDeletions(t *testing.T) {
	room := uuid.New()
	gone := uuid.New()
	logs := []entities.ActivityLog{
		itemLog(1, 0, gone, entities.ItemDeletedDetails{ItemSnapshot: snap("Chair", 5, room)}),
	}

	got := ReconcileRoomLogs(room, nil, logs)

	if assert.Len(t, got, 1) {
		roomID, ok := got[0].DetailsRoomID()
		assert.True(t, ok)
		assert.Equal(t, room, roomID)
	}
}

func TestReconcileIgnoresDeletionWithoutDetails(t *testing.T) {
	room := uuid.New()
	l := itemLog(1, 0, uuid.New(), entities.ItemDeletedDetails{})
	l.Details = nil

	assert.Empty(t, ReconcileRoomLogs(room, nil, []entities.ActivityLog{l}))
}

func TestReconcileOrdersTiesByInsertion(t *testing.T) {
	room := uuid.New()
	item := uuid.New()
	logs := []entities.ActivityLog{
		itemLog(1, 0, item, entities.ItemCreatedDetails{ItemSnapshot: snap("A", 1, room)}),
		itemLog(3, 0, item, entities.ItemDeletedDetails{ItemSnapshot: snap("A", 1, room)}),
		itemLog(2, 0, item, entities.ItemUpdatedDetails{ItemSnapshot: snap("A", 2, room)}),
	}

	first := ReconcileRoomLogs(room, []uuid.UUID{item}, logs)
	second := ReconcileRoomLogs(room, []uuid.UUID{item}, logs)

	assert.Equal(t, first, second)
	actions := []entities.LogAction{first[0].Action, first[1].Action, first[2].Action}
	assert.Equal(t, []entities.LogAction{entities.ActionDeleted, entities.ActionUpdated, entities.ActionCreated}, actions)
}

func TestReconcileDoesNotMatchNonDeletedLogsByDetails(t *testing.T) {
	room := uuid.New()
	moved := uuid.New()
	logs := []entities.ActivityLog{
		itemLog(1, 0, moved, entities.ItemUpdatedDetails{ItemSnapshot: snap("Shelf", 1, room)}),
	}

	assert.Empty(t, ReconcileRoomLogs(room, nil, logs))
}

func TestReconcileKeepsFullHistoryOfDeletedItem(t *testing.T) {
	room, otherRoom := uuid.New(), uuid.New()
	projector, elsewhere := uuid.New(), uuid.New()

	logs := []entities.ActivityLog{
		itemLog(6, 6*time.Minute, elsewhere, entities.ItemDeletedDetails{ItemSnapshot: snap("Desk", 1, otherRoom)}),
		itemLog(5, 5*time.Minute, elsewhere, entities.ItemCreatedDetails{ItemSnapshot: snap("Desk", 1, otherRoom)}),
		itemLog(3, 3*time.Minute, projector, entities.ItemDeletedDetails{ItemSnapshot: snap("Projector", 2, room)}),
		itemLog(2, 2*time.Minute, projector, entities.ItemUpdatedDetails{ItemSnapshot: snap("Projector", 2, room)}),
		itemLog(1, 1*time.Minute, projector, entities.ItemCreatedDetails{ItemSnapshot: snap("Projector", 3, room)}),
	}

	got := ReconcileRoomLogs(room, nil, logs)

	if assert.Len(t, got, 3) {
		actions := []entities.LogAction{got[0].Action, got[1].Action, got[2].Action}
		assert.Equal(t, []entities.LogAction{entities.ActionDeleted, entities.ActionUpdated, entities.ActionCreated}, actions)
		for _, l := range got {
			assert.Equal(t, projector, l.EntityID)
			roomID, ok := l.DetailsRoomID()
			assert.True(t, ok)
			assert.Equal(t, room, roomID)
		}
	}
}
