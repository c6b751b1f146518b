package entities

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin             Role = "admin"
	RoleFaculty           Role = "faculty"
	RoleITOffice          Role = "it_office"
	RolePropertyCustodian Role = "property_custodian"
)

var Roles = []Role{RoleAdmin, RoleFaculty, RoleITOffice, RolePropertyCustodian}

func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User holds login credentials. Everything shown to other users lives in Profile.
type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

type Profile struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	AvatarURL *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	Role      Role      `json:"role" db:"role"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
