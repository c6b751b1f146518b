package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"room-inventory/internal/authz"
	"room-inventory/internal/dto"
	"room-inventory/internal/repositories"
	apperrors "room-inventory/pkg/errors"
	"room-inventory/pkg/types"
)

const (
	itemsSheet    = "Items"
	activitySheet = "Activity"
	reportTime    = "2006-01-02 15:04"
)

var itemHeaders = []interface{}{
	"Name", "Description", "Quantity", "Needs Maintenance", "Needs Replacement", "Added",
}

var activityHeaders = []interface{}{
	"Date", "Action", "Item", "Quantity", "Needs Maintenance", "Needs Replacement", "User",
}

type ReportServiceInterface interface {
	// WriteRoomReport writes an XLSX workbook for the room to w and returns a file name for it.
	WriteRoomReport(ctx context.Context, roomID uuid.UUID, w io.Writer) (string, error)
}

type ReportService struct {
	roomRepo repositories.RoomRepositoryInterface
	itemRepo repositories.ItemRepositoryInterface
	activity ActivityLogServiceInterface
	logger   *zap.Logger
}

func NewReportService(
	roomRepo repositories.RoomRepositoryInterface,
	itemRepo repositories.ItemRepositoryInterface,
	activity ActivityLogServiceInterface,
	logger *zap.Logger,
) ReportServiceInterface {
	return &ReportService{roomRepo: roomRepo, itemRepo: itemRepo, activity: activity, logger: logger}
}

func (s *ReportService) WriteRoomReport(ctx context.Context, roomID uuid.UUID, w io.Writer) (string, error) {
	if !authz.FromContext(ctx).Has(authz.ReportsExport) {
		return "", apperrors.ErrForbidden
	}

	room, err := s.roomRepo.FindRoom(ctx, roomID)
	if err != nil {
		return "", err
	}
	items, _, err := s.itemRepo.ListByRoom(ctx, roomID, types.Filter{})
	if err != nil {
		return "", err
	}
	logs, err := s.activity.GetRoomActivity(ctx, roomID)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", itemsSheet); err != nil {
		return "", err
	}
	rows := make([][]interface{}, 0, len(items))
	for _, item := range items {
		description := ""
		if item.Description != nil {
			description = *item.Description
		}
		rows = append(rows, []interface{}{
			item.Name, description, item.Quantity, item.MaintenanceQuantity, item.ReplacementQuantity,
			item.CreatedAt.Format(reportTime),
		})
	}
	if err := writeSheet(f, itemsSheet, itemHeaders, rows); err != nil {
		return "", err
	}
	_ = f.SetColWidth(itemsSheet, "A", "B", 30)

	if _, err := f.NewSheet(activitySheet); err != nil {
		return "", err
	}
	rows = make([][]interface{}, 0, len(logs))
	for _, log := range logs {
		rows = append(rows, activityRow(log))
	}
	if err := writeSheet(f, activitySheet, activityHeaders, rows); err != nil {
		return "", err
	}
	_ = f.SetColWidth(activitySheet, "A", "C", 22)

	if err := f.Write(w); err != nil {
		return "", fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("room report exported",
		zap.String("roomID", roomID.String()),
		zap.Int("items", len(items)),
		zap.Int("logs", len(logs)),
	)
	return fmt.Sprintf("room_%s_%s.xlsx", room.RoomNumber, time.Now().Format("2006-01-02")), nil
}

func activityRow(log dto.ActivityLogDTO) []interface{} {
	row := []interface{}{log.CreatedAt.Format(reportTime), string(log.Action), "", "", "", "", ""}
	if log.Details != nil {
		snap := log.Details.Snapshot()
		row[2], row[3], row[4], row[5] = snap.Name, snap.Quantity, snap.MaintenanceQuantity, snap.ReplacementQuantity
	}
	if log.Profile != nil {
		row[6] = log.Profile.Username
	}
	return row
}

func writeSheet(f *excelize.File, sheet string, headers []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}
