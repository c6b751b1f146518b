package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"room-inventory/internal/services"
	"room-inventory/pkg/utils"
)

type ActivityLogController struct {
	activityService services.ActivityLogServiceInterface
	logger          *zap.Logger
}

func NewActivityLogController(activityService services.ActivityLogServiceInterface, logger *zap.Logger) *ActivityLogController {
	return &ActivityLogController{activityService: activityService, logger: logger}
}

func (c *ActivityLogController) GetRoomActivity(ctx echo.Context) error {
	roomID, err := utils.ParseUUIDParam(ctx, "roomID")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	logs, err := c.activityService.GetRoomActivity(ctx.Request().Context(), roomID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, logs, "activity loaded", http.StatusOK)
}
