package authz

import "room-inventory/internal/entities"

const (
	ItemsView   = "items:view"
	ItemsCreate = "items:create"
	ItemsUpdate = "items:update"
	ItemsDelete = "items:delete"

	StructureView   = "structure:view"
	StructureCreate = "structure:create"
	StructureUpdate = "structure:update"

	ProfileUpdate  = "profile:update"
	PasswordUpdate = "password:update"
	RolesAssign    = "roles:assign"

	ReportsExport = "reports:export"
)

var readOnly = []string{ItemsView, StructureView, ProfileUpdate, PasswordUpdate, ReportsExport}

var itemWriter = append([]string{ItemsCreate, ItemsUpdate, ItemsDelete}, readOnly...)

// rolePermissions is the static grant table; roles are not editable at runtime.
var rolePermissions = map[entities.Role][]string{
	entities.RoleAdmin:             append([]string{StructureCreate, StructureUpdate, RolesAssign}, itemWriter...),
	entities.RolePropertyCustodian: append([]string{StructureCreate, StructureUpdate}, itemWriter...),
	entities.RoleITOffice:          itemWriter,
	entities.RoleFaculty:           readOnly,
}

func PermissionsFor(role entities.Role) map[string]bool {
	perms := make(map[string]bool, len(rolePermissions[role]))
	for _, p := range rolePermissions[role] {
		perms[p] = true
	}
	return perms
}
