package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"room-inventory/internal/dto"
	"room-inventory/internal/services"
	apperrors "room-inventory/pkg/errors"
	"room-inventory/pkg/service"
	"room-inventory/pkg/utils"
)

const refreshCookie = "refreshToken"

type AuthController struct {
	authService services.AuthServiceInterface
	jwtSvc      service.JWTService
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, jwtSvc service.JWTService, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, jwtSvc: jwtSvc, logger: logger}
}

func (ctrl *AuthController) Register(c echo.Context) error {
	var payload dto.RegisterDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.NewBadRequestError("invalid registration payload"), ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	res, err := ctrl.authService.Register(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	ctrl.setRefreshCookie(c, res.RefreshToken)
	return utils.SuccessResponse(c, res, "registration successful", http.StatusCreated)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.NewBadRequestError("invalid login payload"), ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	res, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		ctrl.logger.Warn("login failed", zap.String("email", payload.Email), zap.Error(err))
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	ctrl.setRefreshCookie(c, res.RefreshToken)
	return utils.SuccessResponse(c, res, "login successful", http.StatusOK)
}

// RefreshToken takes the token from the body, falling back to the refresh cookie.
func (ctrl *AuthController) RefreshToken(c echo.Context) error {
	var payload dto.RefreshTokenDTO
	_ = c.Bind(&payload)
	if payload.RefreshToken == "" {
		cookie, err := c.Cookie(refreshCookie)
		if err != nil {
			return utils.ErrorResponse(c, apperrors.ErrUnauthorized, ctrl.logger)
		}
		payload.RefreshToken = cookie.Value
	}

	res, err := ctrl.authService.RefreshToken(c.Request().Context(), payload.RefreshToken)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	ctrl.setRefreshCookie(c, res.RefreshToken)
	return utils.SuccessResponse(c, res, "tokens refreshed", http.StatusOK)
}

func (ctrl *AuthController) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	return utils.SuccessResponse(c, nil, "logged out", http.StatusOK)
}

func (ctrl *AuthController) Me(c echo.Context) error {
	profile, err := ctrl.authService.Me(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, profile, "profile loaded", http.StatusOK)
}

func (ctrl *AuthController) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ctrl.jwtSvc.GetRefreshTokenTTL()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
