package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"room-inventory/internal/dto"
	"room-inventory/internal/services"
	apperrors "room-inventory/pkg/errors"
	"room-inventory/pkg/utils"
)

type StructureController struct {
	structureService services.StructureServiceInterface
	logger           *zap.Logger
}

func NewStructureController(structureService services.StructureServiceInterface, logger *zap.Logger) *StructureController {
	return &StructureController{structureService: structureService, logger: logger}
}

func (c *StructureController) GetFloors(ctx echo.Context) error {
	floors, err := c.structureService.ListFloors(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, floors, "floors loaded", http.StatusOK)
}

func (c *StructureController) CreateFloor(ctx echo.Context) error {
	var payload dto.CreateFloorDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("invalid floor payload"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	floor, err := c.structureService.CreateFloor(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, floor, "floor created", http.StatusCreated)
}

func (c *StructureController) CreateRoom(ctx echo.Context) error {
	var payload dto.CreateRoomDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("invalid room payload"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	room, err := c.structureService.CreateRoom(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, room, "room created", http.StatusCreated)
}

// FindRoomByNumber accepts an optional ?floor= to pick among rooms sharing a number.
func (c *StructureController) FindRoomByNumber(ctx echo.Context) error {
	var floorNumber *int
	if raw := ctx.QueryParam("floor"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("invalid floor"), c.logger)
		}
		floorNumber = &n
	}

	room, err := c.structureService.FindRoomByNumber(ctx.Request().Context(), ctx.Param("number"), floorNumber)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, room, "room found", http.StatusOK)
}

func (c *StructureController) FindRoom(ctx echo.Context) error {
	roomID, err := utils.ParseUUIDParam(ctx, "roomID")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	room, err := c.structureService.FindRoom(ctx.Request().Context(), roomID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, room, "room found", http.StatusOK)
}

func (c *StructureController) UpdateRoomStatus(ctx echo.Context) error {
	roomID, err := utils.ParseUUIDParam(ctx, "roomID")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateRoomStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("invalid status payload"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	room, err := c.structureService.UpdateRoomStatus(ctx.Request().Context(), roomID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, room, "room status updated", http.StatusOK)
}
