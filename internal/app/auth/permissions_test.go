package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yigit/placement/internal/app/models"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role models.Role
		perm Permission
		want bool
	}{
		{models.RoleStudent, PermUsersRead, true},
		{models.RoleStudent, PermCompaniesRead, true},
		{models.RoleStudent, PermUsersVerify, false},
		{models.RoleStudent, PermUsersAcademics, false},
		{models.RolePlacementCoordinator, PermUsersVerify, true},
		{models.RolePlacementCoordinator, PermCompaniesWrite, true},
		{models.RolePlacementCoordinator, PermUsersRole, false},
		{models.RoleAdmin, PermUsersRole, true},
		{models.Role(""), PermUsersRead, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.perm), func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(tt.role, tt.perm))
		})
	}
}

func TestPermissions(t *testing.T) {
	assert.Equal(t, []Permission{PermCompaniesRead, PermUsersRead}, Permissions(models.RoleStudent))
	assert.Len(t, Permissions(models.RoleAdmin), 9)
	assert.Empty(t, Permissions(models.Role("guest")))
}

func TestAdminIsSupersetOfCoordinator(t *testing.T) {
	for perm := range RolePermissions[models.RolePlacementCoordinator] {
		assert.True(t, HasPermission(models.RoleAdmin, perm), perm)
	}
}
