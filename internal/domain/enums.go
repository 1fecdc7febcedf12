package domain

// UserRole defines the coordination-platform role hierarchy.
type UserRole string

const (
	RoleAdmin            UserRole = "admin"
	RoleFocalPerson      UserRole = "subclusterfocalperson"
	RoleStakeholderAdmin UserRole = "stakeholder_admin"
	RoleStakeholderUser  UserRole = "stakeholder_user"
)

// ValidUserRoles enumerates the roles accepted on user creation.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:            true,
	RoleFocalPerson:      true,
	RoleStakeholderAdmin: true,
	RoleStakeholderUser:  true,
}

// UserStatus represents the lifecycle state of a user account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusPending  UserStatus = "pending"
)

// StakeholderStatus represents the lifecycle state of a stakeholder organization.
// Stakeholders are never deleted; they are toggled between these states.
type StakeholderStatus string

const (
	StakeholderActive    StakeholderStatus = "Active"
	StakeholderInactive  StakeholderStatus = "Inactive"
	StakeholderSuspended StakeholderStatus = "Suspended"
)

// PlanLevel is the geographic level an action plan targets. The matching
// location id (country, province or district) is required at that level.
type PlanLevel string

const (
	PlanLevelCountry  PlanLevel = "country"
	PlanLevelProvince PlanLevel = "province"
	PlanLevelDistrict PlanLevel = "district"
)

// ValidPlanLevels enumerates the accepted action-plan levels.
var ValidPlanLevels = map[PlanLevel]bool{
	PlanLevelCountry:  true,
	PlanLevelProvince: true,
	PlanLevelDistrict: true,
}

// ActionPlanStatus tracks focal-person approval of an action plan.
type ActionPlanStatus string

const (
	ActionPlanPending  ActionPlanStatus = "pending"
	ActionPlanApproved ActionPlanStatus = "approved"
	ActionPlanRejected ActionPlanStatus = "rejected"
)

// ReportStatus is the derived state of a quarterly report. Submitted is
// terminal; the other states are computed from the quarter due date.
type ReportStatus string

const (
	ReportDraft     ReportStatus = "Draft"
	ReportDue       ReportStatus = "Due"
	ReportOverdue   ReportStatus = "Overdue"
	ReportSubmitted ReportStatus = "Submitted"
)
