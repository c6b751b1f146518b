package middleware

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"room-inventory/internal/entities"
	apperrors "room-inventory/pkg/errors"
	"room-inventory/pkg/service"
	"room-inventory/pkg/utils"
)

// RoleResolver looks up the current role of a user.
type RoleResolver interface {
	ResolveRole(ctx context.Context, userID uuid.UUID) (entities.Role, error)
}

type AuthMiddleware struct {
	jwtService service.JWTService
	roles      RoleResolver
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, roles RoleResolver, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtSvc, roles: roles, logger: logger}
}

// Auth requires a bearer access token and puts the user id and role on the request context.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		ctx, err := m.Authenticate(c.Request().Context(), parts[1])
		if err != nil {
			m.logger.Debug("authentication failed", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// Authenticate validates an access token and returns ctx carrying its user.
func (m *AuthMiddleware) Authenticate(ctx context.Context, token string) (context.Context, error) {
	claims, err := m.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotAccess
	}

	role, err := m.roles.ResolveRole(ctx, claims.UserID)
	if err != nil {
		m.logger.Warn("could not resolve role for token", zap.String("userID", claims.UserID.String()), zap.Error(err))
		return nil, apperrors.ErrUnauthorized
	}
	return utils.WithUser(ctx, claims.UserID, role), nil
}
