// Package access implements the role-scoped permission evaluator. All
// functions are pure and fail closed: an unknown role, unknown permission or
// absent viewer yields false, never an error.
package access

import (
	"github.com/google/uuid"

	"mscp/internal/domain"
)

// Permission names a gated action. The set is static per role.
type Permission string

const (
	PermManageSystem                 Permission = "manage_system"
	PermManageUsers                  Permission = "manage_users"
	PermExportData                   Permission = "export_data"
	PermManageAllKpis                Permission = "manage_all_kpis"
	PermManageAllStakeholders        Permission = "manage_all_stakeholders"
	PermManageOrganization           Permission = "manage_organization"
	PermViewReports                  Permission = "view_reports"
	PermManageSubClusterKpis         Permission = "manage_subcluster_kpis"
	PermManageSubClusterUsers        Permission = "manage_subcluster_users"
	PermManageSubClusterStakeholders Permission = "manage_subcluster_stakeholders"
	PermManageStakeholderUsers       Permission = "manage_stakeholder_users"
	PermUpdateProfile                Permission = "update_profile"
	PermCreateActionPlans            Permission = "create_action_plans"
	PermViewOwnReports               Permission = "view_own_reports"
)

// rolePermissions is the static role → permission-set table.
var rolePermissions = map[domain.UserRole]map[Permission]bool{
	domain.RoleAdmin: {
		PermManageSystem:          true,
		PermManageUsers:           true,
		PermExportData:            true,
		PermManageAllKpis:         true,
		PermManageAllStakeholders: true,
		PermManageOrganization:    true,
	},
	domain.RoleFocalPerson: {
		PermExportData:                   true,
		PermViewReports:                  true,
		PermManageSubClusterKpis:         true,
		PermManageSubClusterUsers:        true,
		PermManageSubClusterStakeholders: true,
	},
	domain.RoleStakeholderAdmin: {
		PermManageStakeholderUsers: true,
		PermUpdateProfile:          true,
		PermViewReports:            true,
		PermExportData:             true,
	},
	domain.RoleStakeholderUser: {
		PermCreateActionPlans: true,
		PermViewOwnReports:    true,
		PermUpdateProfile:     true,
	},
}

// HasPermission reports whether role carries the named permission.
func HasPermission(role domain.UserRole, p Permission) bool {
	return rolePermissions[role][p]
}

// CanManageStakeholder reports whether a viewer may manage the target
// stakeholder organization. Admins and focal persons manage any stakeholder;
// a stakeholder admin manages only its own organization.
func CanManageStakeholder(role domain.UserRole, viewerStakeholderID, targetStakeholderID uuid.UUID) bool {
	switch role {
	case domain.RoleAdmin, domain.RoleFocalPerson:
		return true
	case domain.RoleStakeholderAdmin:
		return viewerStakeholderID != uuid.Nil && viewerStakeholderID == targetStakeholderID
	default:
		return false
	}
}

// CanManageKPI reports whether a viewer may manage a KPI belonging to the
// given sub-cluster. Focal persons and stakeholder admins are limited to
// their own sub-cluster memberships.
func CanManageKPI(role domain.UserRole, viewerSubClusterIDs []uuid.UUID, kpiSubClusterID uuid.UUID) bool {
	switch role {
	case domain.RoleAdmin:
		return true
	case domain.RoleFocalPerson, domain.RoleStakeholderAdmin:
		for _, id := range viewerSubClusterIDs {
			if id == kpiSubClusterID {
				return true
			}
		}
		return false
	default:
		return false
	}
}
