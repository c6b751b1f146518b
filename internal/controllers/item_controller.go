package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"room-inventory/internal/dto"
	"room-inventory/internal/services"
	apperrors "room-inventory/pkg/errors"
	"room-inventory/pkg/notify"
	"room-inventory/pkg/utils"
)

type ItemController struct {
	inventoryService services.InventoryServiceInterface
	logger           *zap.Logger
}

func NewItemController(inventoryService services.InventoryServiceInterface, logger *zap.Logger) *ItemController {
	return &ItemController{inventoryService: inventoryService, logger: logger}
}

func (c *ItemController) GetItems(ctx echo.Context) error {
	roomID, err := utils.ParseUUIDParam(ctx, "roomID")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	items, total, err := c.inventoryService.ListRoomItems(ctx.Request().Context(), roomID, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, items, "items loaded", http.StatusOK, total)
}

func (c *ItemController) FindItem(ctx echo.Context) error {
	roomID, itemID, err := roomAndItem(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	item, err := c.inventoryService.FindItem(ctx.Request().Context(), roomID, itemID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, item, "item found", http.StatusOK)
}

func (c *ItemController) CreateItem(ctx echo.Context) error {
	roomID, err := utils.ParseUUIDParam(ctx, "roomID")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateItemDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("invalid item payload"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	reqCtx, rec := notify.WithRecorder(ctx.Request().Context())
	ok := c.inventoryService.CreateItem(reqCtx, roomID, payload)
	return respondMutation(ctx, ok, rec, http.StatusCreated)
}

func (c *ItemController) UpdateItem(ctx echo.Context) error {
	roomID, itemID, err := roomAndItem(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateItemDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("invalid item payload"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	reqCtx, rec := notify.WithRecorder(ctx.Request().Context())
	ok := c.inventoryService.UpdateItem(reqCtx, roomID, itemID, payload)
	return respondMutation(ctx, ok, rec, http.StatusOK)
}

func (c *ItemController) DeleteItem(ctx echo.Context) error {
	roomID, itemID, err := roomAndItem(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	reqCtx, rec := notify.WithRecorder(ctx.Request().Context())
	ok := c.inventoryService.DeleteItem(reqCtx, roomID, itemID)
	return respondMutation(ctx, ok, rec, http.StatusOK)
}

func roomAndItem(ctx echo.Context) (uuid.UUID, uuid.UUID, error) {
	roomID, err := utils.ParseUUIDParam(ctx, "roomID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	itemID, err := utils.ParseUUIDParam(ctx, "itemID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return roomID, itemID, nil
}

// respondMutation turns a mutation's bool outcome and its notification into the HTTP reply.
func respondMutation(ctx echo.Context, ok bool, rec *notify.Recorder, successCode int) error {
	n, _ := rec.Last()
	code := successCode
	if !ok {
		code = n.StatusCode()
	}
	return ctx.JSON(code, utils.HTTPResponse{
		Status:  ok,
		Message: n.Message,
		Body:    dto.MutationResultDTO{Success: ok, Notification: n},
	})
}
