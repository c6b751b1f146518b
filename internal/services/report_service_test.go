package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"room-inventory/internal/dto"
	"room-inventory/internal/entities"
)

func TestWriteRoomReportHasItemsAndActivity(t *testing.T) {
	f := newInventoryFixture(t)
	ctx, _ := f.ctx(entities.RolePropertyCustodian)
	require.True(t, f.service.CreateItem(ctx, f.room.ID, dto.CreateItemDTO{Name: "Whiteboard", Quantity: 2}))
	require.True(t, f.service.CreateItem(ctx, f.room.ID, dto.CreateItemDTO{Name: "Stool", Quantity: 6}))
	stool := f.db.itemsInRoom(f.room.ID)
	for _, item := range stool {
		if item.Name == "Stool" {
			require.True(t, f.service.DeleteItem(ctx, f.room.ID, item.ID))
		}
	}

	reports := NewReportService(fakeRoomRepo{f.db}, fakeItemRepo{f.db}, f.activity, zap.NewNop())
	var buf bytes.Buffer
	name, err := reports.WriteRoomReport(ctx, f.room.ID, &buf)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "room_101_"))

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	items, err := book.GetRows(itemsSheet)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Name", items[0][0])
	assert.Equal(t, "Whiteboard", items[1][0])

	activity, err := book.GetRows(activitySheet)
	require.NoError(t, err)
	require.Len(t, activity, 4)
	assert.Equal(t, "deleted", activity[1][1])
	assert.Equal(t, "Stool", activity[1][2])
}
