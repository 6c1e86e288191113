package auth

import (
	"github.com/commerce/backend/internal/domain/identity"
)

// Permission names an action a role may perform
type Permission string

const (
	PermProductRead    Permission = "product:read"
	PermProductWrite   Permission = "product:write"
	PermInventoryRead  Permission = "inventory:read"
	PermInventoryWrite Permission = "inventory:write"
	PermCustomerRead   Permission = "customer:read"
	PermCustomerWrite  Permission = "customer:write"
	PermOrderRead      Permission = "order:read"
	PermOrderWrite     Permission = "order:write"
	PermOrderReadOwn   Permission = "order:read_own"
	PermCartUse        Permission = "cart:use"
	PermReportRead     Permission = "report:read"
	PermUserManage     Permission = "user:manage"
)

// rolePermissions is the static role-to-permission table. Permissions
// are resolved at request time from the JWT role claim; there is no
// per-user grant storage.
var rolePermissions = map[identity.Role][]Permission{
	identity.RoleAdmin: {
		PermProductRead, PermProductWrite,
		PermInventoryRead, PermInventoryWrite,
		PermCustomerRead, PermCustomerWrite,
		PermOrderRead, PermOrderWrite,
		PermCartUse,
		PermReportRead,
		PermUserManage,
	},
	identity.RoleStaff: {
		PermProductRead, PermProductWrite,
		PermInventoryRead, PermInventoryWrite,
		PermCustomerRead, PermCustomerWrite,
		PermOrderRead, PermOrderWrite,
		PermReportRead,
	},
	identity.RoleCustomer: {
		PermProductRead,
		PermOrderReadOwn,
		PermCartUse,
	},
}

// Can reports whether a role holds a permission
func Can(role identity.Role, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}

// PermissionsFor returns the full permission set of a role
func PermissionsFor(role identity.Role) []Permission {
	perms := rolePermissions[role]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}
