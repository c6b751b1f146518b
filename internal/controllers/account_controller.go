package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"room-inventory/internal/dto"
	"room-inventory/internal/services"
	apperrors "room-inventory/pkg/errors"
	"room-inventory/pkg/utils"
)

type AccountController struct {
	profileService services.ProfileServiceInterface
	logger         *zap.Logger
}

func NewAccountController(profileService services.ProfileServiceInterface, logger *zap.Logger) *AccountController {
	return &AccountController{profileService: profileService, logger: logger}
}

func (c *AccountController) UpdateProfile(ctx echo.Context) error {
	var payload dto.UpdateProfileDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("invalid profile payload"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	profile, err := c.profileService.UpdateProfile(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, profile, "profile updated", http.StatusOK)
}

func (c *AccountController) UpdateRole(ctx echo.Context) error {
	userID, err := utils.ParseUUIDParam(ctx, "userID")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateRoleDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("invalid role payload"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	profile, err := c.profileService.UpdateRole(ctx.Request().Context(), userID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, profile, "role updated", http.StatusOK)
}

func (c *AccountController) ChangePassword(ctx echo.Context) error {
	var payload dto.ChangePasswordDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("invalid password payload"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.profileService.ChangePassword(ctx.Request().Context(), payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "password changed", http.StatusOK)
}

func (c *AccountController) UploadAvatar(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("avatar")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("avatar file is required"), c.logger)
	}

	profile, err := c.profileService.UploadAvatar(ctx.Request().Context(), fileHeader)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, profile, "avatar updated", http.StatusOK)
}
