package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"room-inventory/internal/services"
	apperrors "room-inventory/pkg/errors"
	"room-inventory/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(dashboardService services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{dashboardService: dashboardService, logger: logger}
}

func (c *DashboardController) GetDashboard(ctx echo.Context) error {
	var floorID *uuid.UUID
	if raw := ctx.QueryParam("floor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("invalid floor_id"), c.logger)
		}
		floorID = &id
	}

	stats, err := c.dashboardService.GetDashboard(ctx.Request().Context(), floorID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, stats, "dashboard loaded", http.StatusOK)
}
