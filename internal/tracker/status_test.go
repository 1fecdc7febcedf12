package tracker_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"mscp/internal/domain"
	"mscp/internal/tracker"
)

func f64(v float64) *float64 { return &v }

func TestReportStatus_SubmittedIsTerminal(t *testing.T) {
	now := time.Now()
	submitted := now.Add(-48 * time.Hour)
	r := &domain.Report{ActualValue: f64(80), SubmittedAt: &submitted}

	// Submitted regardless of due date, even long past it.
	q := &domain.Quarter{ReportDueDate: now.Add(-30 * 24 * time.Hour)}
	assert.Equal(t, domain.ReportSubmitted, tracker.ReportStatus(r, q, now))

	q = &domain.Quarter{ReportDueDate: now.Add(30 * 24 * time.Hour)}
	assert.Equal(t, domain.ReportSubmitted, tracker.ReportStatus(r, q, now))
}

func TestReportStatus_Draft(t *testing.T) {
	now := time.Now()
	q := &domain.Quarter{ReportDueDate: now.Add(24 * time.Hour)}

	assert.Equal(t, domain.ReportDraft, tracker.ReportStatus(&domain.Report{}, q, now))
	assert.Equal(t, domain.ReportDraft, tracker.ReportStatus(nil, q, now))

	// A recorded actual with no known quarter stays Draft rather than guessing.
	assert.Equal(t, domain.ReportDraft, tracker.ReportStatus(&domain.Report{ActualValue: f64(10)}, nil, now))
}

func TestReportStatus_DueOverdueBoundary(t *testing.T) {
	now := time.Now()
	r := &domain.Report{ActualValue: f64(10)}

	// Due date exactly now: Due, not Overdue.
	q := &domain.Quarter{ReportDueDate: now}
	assert.Equal(t, domain.ReportDue, tracker.ReportStatus(r, q, now))

	// One second past: Overdue.
	q = &domain.Quarter{ReportDueDate: now.Add(-time.Second)}
	assert.Equal(t, domain.ReportOverdue, tracker.ReportStatus(r, q, now))

	q = &domain.Quarter{ReportDueDate: now.Add(time.Second)}
	assert.Equal(t, domain.ReportDue, tracker.ReportStatus(r, q, now))
}

func TestAchievement_Unclamped(t *testing.T) {
	assert.Equal(t, 150.0, tracker.Achievement(150, 100))
	assert.Equal(t, 80.0, tracker.Achievement(80, 100))
	assert.Equal(t, 0.0, tracker.Achievement(80, 0))
	assert.Equal(t, 0.0, tracker.Achievement(0, 0))
	assert.Equal(t, 0.0, tracker.Achievement(100, -1))
}

func TestDaysUntilDue(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, 5, tracker.DaysUntilDue(now.AddDate(0, 0, 5), now))
	assert.Equal(t, -3, tracker.DaysUntilDue(now.AddDate(0, 0, -3), now))

	// Same calendar day is "due today" even when the clock time differs.
	assert.Equal(t, 0, tracker.DaysUntilDue(now, now))
	assert.Equal(t, 0, tracker.DaysUntilDue(time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC), now))
}

func validRefSets() (tracker.ReportRefs, tracker.RefSets) {
	year := domain.FinancialYear{ID: uuid.New(), Name: "2025/26"}
	plan := domain.ActionPlan{ID: uuid.New(), YearID: year.ID}
	quarter := domain.Quarter{ID: uuid.New(), YearID: year.ID, Number: 1}
	kpiPlan := domain.KpiPlan{ID: uuid.New(), ActionPlanID: plan.ID, PlannedValue: 100}

	refs := tracker.ReportRefs{
		ActionPlanID: plan.ID,
		YearID:       year.ID,
		QuarterID:    quarter.ID,
		KpiPlanID:    kpiPlan.ID,
	}
	sets := tracker.RefSets{
		ActionPlans: map[uuid.UUID]domain.ActionPlan{plan.ID: plan},
		Years:       map[uuid.UUID]domain.FinancialYear{year.ID: year},
		Quarters:    map[uuid.UUID]domain.Quarter{quarter.ID: quarter},
		KpiPlans:    map[uuid.UUID]domain.KpiPlan{kpiPlan.ID: kpiPlan},
	}
	return refs, sets
}

func TestValidateReportInput_Valid(t *testing.T) {
	refs, sets := validRefSets()
	assert.NoError(t, tracker.ValidateReportInput(refs, sets))
}

func TestValidateReportInput_FirstMissingFieldNamed(t *testing.T) {
	refs, sets := validRefSets()
	refs.ActionPlanID = uuid.Nil
	refs.QuarterID = uuid.Nil

	err := tracker.ValidateReportInput(refs, sets)
	ve, ok := domain.AsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "action_plan_id", ve.Field)
}

func TestValidateReportInput_UnresolvableReference(t *testing.T) {
	refs, sets := validRefSets()
	refs.KpiPlanID = uuid.New()

	err := tracker.ValidateReportInput(refs, sets)
	ve, ok := domain.AsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "kpi_plan_id", ve.Field)
}

func TestValidateReportInput_CrossChecks(t *testing.T) {
	refs, sets := validRefSets()

	otherYear := domain.FinancialYear{ID: uuid.New(), Name: "2026/27"}
	sets.Years[otherYear.ID] = otherYear
	refs.YearID = otherYear.ID

	err := tracker.ValidateReportInput(refs, sets)
	ve, ok := domain.AsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "quarter_id", ve.Field)
}
