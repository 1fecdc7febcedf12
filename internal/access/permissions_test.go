package access_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"mscp/internal/access"
	"mscp/internal/domain"
)

func TestHasPermission_AdminSet(t *testing.T) {
	assert.True(t, access.HasPermission(domain.RoleAdmin, access.PermManageSystem))
	assert.True(t, access.HasPermission(domain.RoleAdmin, access.PermManageUsers))
	assert.True(t, access.HasPermission(domain.RoleAdmin, access.PermExportData))
	assert.True(t, access.HasPermission(domain.RoleAdmin, access.PermManageAllKpis))
	assert.True(t, access.HasPermission(domain.RoleAdmin, access.PermManageAllStakeholders))
	assert.True(t, access.HasPermission(domain.RoleAdmin, access.PermManageOrganization))

	// Not in the admin set even though other roles carry it.
	assert.False(t, access.HasPermission(domain.RoleAdmin, access.PermCreateActionPlans))
	assert.False(t, access.HasPermission(domain.RoleAdmin, access.PermUpdateProfile))
}

func TestHasPermission_FocalPersonSet(t *testing.T) {
	assert.True(t, access.HasPermission(domain.RoleFocalPerson, access.PermExportData))
	assert.True(t, access.HasPermission(domain.RoleFocalPerson, access.PermViewReports))
	assert.True(t, access.HasPermission(domain.RoleFocalPerson, access.PermManageSubClusterKpis))
	assert.True(t, access.HasPermission(domain.RoleFocalPerson, access.PermManageSubClusterUsers))
	assert.True(t, access.HasPermission(domain.RoleFocalPerson, access.PermManageSubClusterStakeholders))

	assert.False(t, access.HasPermission(domain.RoleFocalPerson, access.PermManageSystem))
	assert.False(t, access.HasPermission(domain.RoleFocalPerson, access.PermManageAllKpis))
}

func TestHasPermission_StakeholderRoles(t *testing.T) {
	assert.True(t, access.HasPermission(domain.RoleStakeholderAdmin, access.PermManageStakeholderUsers))
	assert.True(t, access.HasPermission(domain.RoleStakeholderAdmin, access.PermUpdateProfile))
	assert.True(t, access.HasPermission(domain.RoleStakeholderAdmin, access.PermViewReports))
	assert.True(t, access.HasPermission(domain.RoleStakeholderAdmin, access.PermExportData))
	assert.False(t, access.HasPermission(domain.RoleStakeholderAdmin, access.PermManageUsers))

	assert.True(t, access.HasPermission(domain.RoleStakeholderUser, access.PermCreateActionPlans))
	assert.True(t, access.HasPermission(domain.RoleStakeholderUser, access.PermViewOwnReports))
	assert.True(t, access.HasPermission(domain.RoleStakeholderUser, access.PermUpdateProfile))
	assert.False(t, access.HasPermission(domain.RoleStakeholderUser, access.PermViewReports))
	assert.False(t, access.HasPermission(domain.RoleStakeholderUser, access.PermExportData))
}

func TestHasPermission_FailsClosed(t *testing.T) {
	// Unknown role, unknown permission, empty strings: always false.
	assert.False(t, access.HasPermission("superuser", access.PermManageSystem))
	assert.False(t, access.HasPermission("", access.PermManageSystem))
	assert.False(t, access.HasPermission(domain.RoleAdmin, ""))
	assert.False(t, access.HasPermission(domain.RoleAdmin, "launch_rockets"))
	assert.False(t, access.HasPermission("", ""))
}

func TestCanManageStakeholder(t *testing.T) {
	s1 := uuid.New()
	s2 := uuid.New()

	assert.True(t, access.CanManageStakeholder(domain.RoleAdmin, uuid.Nil, s1))
	assert.True(t, access.CanManageStakeholder(domain.RoleFocalPerson, uuid.Nil, s2))

	assert.True(t, access.CanManageStakeholder(domain.RoleStakeholderAdmin, s1, s1))
	assert.False(t, access.CanManageStakeholder(domain.RoleStakeholderAdmin, s1, s2))
	assert.False(t, access.CanManageStakeholder(domain.RoleStakeholderAdmin, uuid.Nil, uuid.Nil))

	assert.False(t, access.CanManageStakeholder(domain.RoleStakeholderUser, s1, s1))
	assert.False(t, access.CanManageStakeholder("unknown", s1, s1))
}

func TestCanManageKPI(t *testing.T) {
	health := uuid.New()
	education := uuid.New()

	assert.True(t, access.CanManageKPI(domain.RoleAdmin, nil, health))

	memberships := []uuid.UUID{health}
	assert.True(t, access.CanManageKPI(domain.RoleFocalPerson, memberships, health))
	assert.False(t, access.CanManageKPI(domain.RoleFocalPerson, memberships, education))
	assert.True(t, access.CanManageKPI(domain.RoleStakeholderAdmin, memberships, health))
	assert.False(t, access.CanManageKPI(domain.RoleStakeholderAdmin, nil, health))

	assert.False(t, access.CanManageKPI(domain.RoleStakeholderUser, memberships, health))
	assert.False(t, access.CanManageKPI("", memberships, health))
}
