package utils

import (
	"context"

	"github.com/google/uuid"

	"room-inventory/internal/entities"
	"room-inventory/pkg/contextkeys"
	apperrors "room-inventory/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetUserRoleFromCtx(ctx context.Context) (entities.Role, error) {
	role, ok := ctx.Value(contextkeys.UserRoleKey).(entities.Role)
	if !ok {
		return "", apperrors.ErrUnauthorized
	}
	return role, nil
}

// WithUser stores the authenticated user in ctx the same way the auth middleware does.
func WithUser(ctx context.Context, userID uuid.UUID, role entities.Role) context.Context {
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.UserRoleKey, role)
}
