package controllers

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"room-inventory/internal/services"
	"room-inventory/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetRoomReport buffers the workbook so a failure can still be answered with a JSON error.
func (c *ReportController) GetRoomReport(ctx echo.Context) error {
	roomID, err := utils.ParseUUIDParam(ctx, "roomID")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var buf bytes.Buffer
	fileName, err := c.reportService.WriteRoomReport(ctx.Request().Context(), roomID, &buf)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	return ctx.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
