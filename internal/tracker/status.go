// Package tracker computes the derived state of quarterly reports: the
// Draft → Due → Overdue → Submitted machine, achievement percentages and
// due-date arithmetic. Derivations never fail on malformed input; they
// degrade to safe defaults. Only ValidateReportInput returns errors.
package tracker

import (
	"time"

	"github.com/google/uuid"

	"mscp/internal/domain"
)

// ReportStatus derives the state of a report against its quarter.
//
// Submitted is terminal and independent of the due date. An unsubmitted
// report with no recorded actual is a Draft. Otherwise the quarter due date
// decides: a due date at or after now is Due ("due today" is not overdue),
// strictly before now is Overdue.
func ReportStatus(r *domain.Report, q *domain.Quarter, now time.Time) domain.ReportStatus {
	if r != nil && r.SubmittedAt != nil {
		return domain.ReportSubmitted
	}
	if r == nil || r.ActualValue == nil {
		return domain.ReportDraft
	}
	if q == nil || q.ReportDueDate.IsZero() {
		return domain.ReportDraft
	}
	if q.ReportDueDate.Before(now) {
		return domain.ReportOverdue
	}
	return domain.ReportDue
}

// Achievement returns actual/planned as a percentage. Unlike KPI progress
// this is NOT clamped: values over 100 signal over-achievement. A zero or
// negative planned value yields 0.
func Achievement(actual, planned float64) float64 {
	if planned <= 0 {
		return 0
	}
	return actual / planned * 100
}

// DaysUntilDue returns whole calendar days between now and the due date:
// positive when the due date is ahead, zero on the due day, negative when
// past (callers render the absolute value as "days overdue").
func DaysUntilDue(due, now time.Time) int {
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(dueDay.Sub(nowDay).Hours() / 24)
}

// ReportRefs carries the foreign references a new report must resolve.
type ReportRefs struct {
	ActionPlanID uuid.UUID
	YearID       uuid.UUID
	QuarterID    uuid.UUID
	KpiPlanID    uuid.UUID
}

// RefSets is the currently-loaded reference data a report is validated
// against.
type RefSets struct {
	ActionPlans map[uuid.UUID]domain.ActionPlan
	Years       map[uuid.UUID]domain.FinancialYear
	Quarters    map[uuid.UUID]domain.Quarter
	KpiPlans    map[uuid.UUID]domain.KpiPlan
}

// ValidateReportInput checks every foreign reference is present and
// resolvable, reporting the first failing field as a ValidationError so the
// caller can highlight the specific form field.
func ValidateReportInput(refs ReportRefs, sets RefSets) error {
	checks := []struct {
		field string
		id    uuid.UUID
		ok    func(uuid.UUID) bool
	}{
		{"action_plan_id", refs.ActionPlanID, func(id uuid.UUID) bool { _, ok := sets.ActionPlans[id]; return ok }},
		{"year_id", refs.YearID, func(id uuid.UUID) bool { _, ok := sets.Years[id]; return ok }},
		{"quarter_id", refs.QuarterID, func(id uuid.UUID) bool { _, ok := sets.Quarters[id]; return ok }},
		{"kpi_plan_id", refs.KpiPlanID, func(id uuid.UUID) bool { _, ok := sets.KpiPlans[id]; return ok }},
	}
	for _, c := range checks {
		if c.id == uuid.Nil {
			return domain.NewValidationError(c.field, "is required")
		}
		if !c.ok(c.id) {
			return domain.NewValidationError(c.field, "does not resolve to a known record")
		}
	}

	// Cross-checks: the quarter must belong to the named year, the KPI plan
	// to the named action plan.
	if q := sets.Quarters[refs.QuarterID]; q.YearID != refs.YearID {
		return domain.NewValidationError("quarter_id", "quarter does not belong to the selected year")
	}
	if kp := sets.KpiPlans[refs.KpiPlanID]; kp.ActionPlanID != refs.ActionPlanID {
		return domain.NewValidationError("kpi_plan_id", "KPI plan does not belong to the selected action plan")
	}
	return nil
}
