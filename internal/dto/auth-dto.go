package dto

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"room-inventory/internal/entities"
)

type RegisterDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Username string `json:"username" validate:"required,notblank,min=3,max=50"`
	Role     string `json:"role" validate:"omitempty,inventory_role"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthResponseDTO struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	User         ProfileDTO `json:"user"`
}

type ProfileDTO struct {
	ID          uuid.UUID     `json:"id"`
	Email       string        `json:"email,omitempty"`
	Username    string        `json:"username"`
	AvatarURL   *string       `json:"avatar_url,omitempty"`
	Role        entities.Role `json:"role"`
	Permissions []string      `json:"permissions"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type UpdateProfileDTO struct {
	Username null.String `json:"username" validate:"omitempty"`
}

type UpdateRoleDTO struct {
	Role string `json:"role" validate:"required,oneof=admin faculty it_office property_custodian"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}
