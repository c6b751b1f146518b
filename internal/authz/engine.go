package authz

import (
	"context"

	"github.com/google/uuid"

	"room-inventory/internal/entities"
	"room-inventory/pkg/utils"
)

// Session is the authenticated caller as resolved by the auth middleware.
type Session struct {
	UserID uuid.UUID
	Role   entities.Role
}

func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != uuid.Nil
}

func (s *Session) Has(permission string) bool {
	if !s.Authenticated() {
		return false
	}
	return PermissionsFor(s.Role)[permission]
}

// CanMutateItems is the single check run before every item create, update and delete.
func CanMutateItems(s *Session) bool {
	return s.Has(ItemsCreate) && s.Has(ItemsUpdate) && s.Has(ItemsDelete)
}

func CanManageStructure(s *Session) bool {
	return s.Has(StructureCreate) && s.Has(StructureUpdate)
}

func CanAssignRoles(s *Session) bool {
	return s.Has(RolesAssign)
}

// FromContext returns the session placed on ctx by the auth middleware, or nil.
func FromContext(ctx context.Context) *Session {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil
	}
	role, _ := utils.GetUserRoleFromCtx(ctx)
	return &Session{UserID: userID, Role: role}
}
