package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StringList is an unordered set of tags stored as a JSONB column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshaling string list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported string list source type %T", src)
	}
}

// User represents an account on the platform. Stakeholder roles always carry
// a stakeholder id; focal persons carry one or more sub-cluster memberships
// (loaded from the join table, not a column).
type User struct {
	ID            uuid.UUID   `db:"id" json:"id"`
	Username      string      `db:"username" json:"username"`
	Email         string      `db:"email" json:"email"`
	PasswordHash  string      `db:"password_hash" json:"-"`
	FullName      string      `db:"full_name" json:"full_name"`
	Role          UserRole    `db:"role" json:"role"`
	Status        UserStatus  `db:"status" json:"status"`
	StakeholderID *uuid.UUID  `db:"stakeholder_id" json:"stakeholder_id"`
	SubClusterIDs []uuid.UUID `db:"-" json:"sub_cluster_ids"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updated_at"`
}

// Stakeholder represents an external partner organization. It belongs to one
// or more sub-clusters and owns the stakeholder_admin/stakeholder_user
// accounts that reference it.
type Stakeholder struct {
	ID            uuid.UUID         `db:"id" json:"id"`
	Name          string            `db:"name" json:"name"`
	ContactEmail  string            `db:"contact_email" json:"contact_email"`
	Status        StakeholderStatus `db:"status" json:"status"`
	SubClusterIDs []uuid.UUID       `db:"-" json:"sub_cluster_ids"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updated_at"`
}

// SubCluster is a thematic coordination group. FocalPersonID is a derived
// display convenience; the authoritative relation is the per-user sub-cluster
// membership.
type SubCluster struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	FocalPersonID *uuid.UUID `db:"focal_person_id" json:"focal_person_id"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// KpiCategory groups KPI items within exactly one sub-cluster.
type KpiCategory struct {
	ID           uuid.UUID `db:"id" json:"id"`
	SubClusterID uuid.UUID `db:"sub_cluster_id" json:"sub_cluster_id"`
	Name         string    `db:"name" json:"name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// KpiItem is a measurable indicator with a target and a running current value.
type KpiItem struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	SubClusterID   uuid.UUID  `db:"sub_cluster_id" json:"sub_cluster_id"`
	CategoryID     uuid.UUID  `db:"category_id" json:"category_id"`
	Title          string     `db:"title" json:"title"`
	Description    string     `db:"description" json:"description"`
	CurrentValue   float64    `db:"current_value" json:"current_value"`
	TargetValue    float64    `db:"target_value" json:"target_value"`
	Unit           string     `db:"unit" json:"unit"`
	Disaggregation StringList `db:"disaggregation" json:"disaggregation"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// Country, Province and District form the static geographic hierarchy.
type Country struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

type Province struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CountryID uuid.UUID `db:"country_id" json:"country_id"`
	Name      string    `db:"name" json:"name"`
}

type District struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ProvinceID uuid.UUID `db:"province_id" json:"province_id"`
	Name       string    `db:"name" json:"name"`
}

// FinancialYear is a reporting year, e.g. 2025/26.
type FinancialYear struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Quarter is one reporting window within a financial year.
type Quarter struct {
	ID            uuid.UUID `db:"id" json:"id"`
	YearID        uuid.UUID `db:"year_id" json:"year_id"`
	Number        int       `db:"number" json:"number"`
	Name          string    `db:"name" json:"name"`
	ReportDueDate time.Time `db:"report_due_date" json:"report_due_date"`
}

// ActionPlan links a stakeholder and sub-cluster to a financial year at a
// geographic level. Referenced by quarterly reports.
type ActionPlan struct {
	ID            uuid.UUID        `db:"id" json:"id"`
	Title         string           `db:"title" json:"title"`
	YearID        uuid.UUID        `db:"year_id" json:"year_id"`
	StakeholderID uuid.UUID        `db:"stakeholder_id" json:"stakeholder_id"`
	SubClusterID  uuid.UUID        `db:"sub_cluster_id" json:"sub_cluster_id"`
	PlanLevel     PlanLevel        `db:"plan_level" json:"plan_level"`
	CountryID     *uuid.UUID       `db:"country_id" json:"country_id"`
	ProvinceID    *uuid.UUID       `db:"province_id" json:"province_id"`
	DistrictID    *uuid.UUID       `db:"district_id" json:"district_id"`
	Status        ActionPlanStatus `db:"status" json:"status"`
	CreatedBy     uuid.UUID        `db:"created_by" json:"created_by"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updated_at"`
}

// KpiPlan fixes the planned value for a KPI within an action plan. Reports
// record actuals against this snapshot, not against the live KPI target.
type KpiPlan struct {
	ID           uuid.UUID `db:"id" json:"id"`
	ActionPlanID uuid.UUID `db:"action_plan_id" json:"action_plan_id"`
	KpiID        uuid.UUID `db:"kpi_id" json:"kpi_id"`
	PlannedValue float64   `db:"planned_value" json:"planned_value"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Report is a quarterly progress submission against a KPI plan. At most one
// report exists per (action plan, quarter) pair.
type Report struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	ActionPlanID    uuid.UUID  `db:"action_plan_id" json:"action_plan_id"`
	QuarterID       uuid.UUID  `db:"quarter_id" json:"quarter_id"`
	KpiPlanID       uuid.UUID  `db:"kpi_plan_id" json:"kpi_plan_id"`
	ActualValue     *float64   `db:"actual_value" json:"actual_value"`
	ProgressSummary string     `db:"progress_summary" json:"progress_summary"`
	DocumentKey     string     `db:"document_key" json:"document_key,omitempty"`
	DocumentName    string     `db:"document_name" json:"document_name,omitempty"`
	SubmittedBy     *uuid.UUID `db:"submitted_by" json:"submitted_by"`
	SubmittedAt     *time.Time `db:"submitted_at" json:"submitted_at"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// ImportSummary is the result of a bulk user import.
type ImportSummary struct {
	Created int             `json:"created"`
	Skipped int             `json:"skipped"`
	Total   int             `json:"total"`
	Errors  []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError records why a single import row was skipped.
type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}
