package auth

import (
	"sort"

	"github.com/yigit/placement/internal/app/models"
)

// Permission is a single capability a role may hold
type Permission string

const (
	PermUsersRead      Permission = "users:read"
	PermUsersUpdate    Permission = "users:update"
	PermUsersVerify    Permission = "users:verify"
	PermUsersDelete    Permission = "users:delete"
	PermUsersPlace     Permission = "users:place"
	PermUsersRole      Permission = "users:role"
	PermUsersAcademics Permission = "users:academics"

	PermCompaniesRead  Permission = "companies:read"
	PermCompaniesWrite Permission = "companies:write"
)

// RolePermissions is the capability set of every role. The server policy and
// the CLI both consult it; the CLI only uses it to decide what to show.
var RolePermissions = map[models.Role]map[Permission]bool{
	models.RoleStudent: {
		PermUsersRead:     true,
		PermCompaniesRead: true,
	},
	models.RolePlacementCoordinator: {
		PermUsersRead:      true,
		PermUsersUpdate:    true,
		PermUsersVerify:    true,
		PermUsersDelete:    true,
		PermUsersPlace:     true,
		PermUsersAcademics: true,
		PermCompaniesRead:  true,
		PermCompaniesWrite: true,
	},
	models.RoleAdmin: {
		PermUsersRead:      true,
		PermUsersUpdate:    true,
		PermUsersVerify:    true,
		PermUsersDelete:    true,
		PermUsersPlace:     true,
		PermUsersRole:      true,
		PermUsersAcademics: true,
		PermCompaniesRead:  true,
		PermCompaniesWrite: true,
	},
}

// HasPermission reports whether role holds perm. Unknown roles hold nothing.
func HasPermission(role models.Role, perm Permission) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	return perms[perm]
}

// Permissions returns the sorted capability set of role
func Permissions(role models.Role) []Permission {
	out := make([]Permission, 0, len(RolePermissions[role]))
	for p, ok := range RolePermissions[role] {
		if ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
