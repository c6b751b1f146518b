package customvalidator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"room-inventory/internal/entities"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterCustomValidations adds the project's tags to v.
func RegisterCustomValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"email":          isGoodEmailFormat,
		"notblank":       isNotBlank,
		"room_status":    isRoomStatus,
		"inventory_role": isInventoryRole,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func isRoomStatus(fl validator.FieldLevel) bool {
	return entities.RoomStatus(fl.Field().String()).Valid()
}

// isInventoryRole rejects admin; that role is only granted by another admin.
func isInventoryRole(fl validator.FieldLevel) bool {
	role := entities.Role(fl.Field().String())
	return role.Valid() && role != entities.RoleAdmin
}
