package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mscp/internal/config"
	"mscp/internal/domain"
	"mscp/internal/service"
	"mscp/mocks"
)

type reportMocks struct {
	reportRepo      *mocks.MockReportRepo
	planRepo        *mocks.MockActionPlanRepo
	calendarRepo    *mocks.MockCalendarRepo
	stakeholderRepo *mocks.MockStakeholderRepo
	kpiRepo         *mocks.MockKpiRepo
	storage         *mocks.MockObjectStorage
}

func setupReports() (reportMocks, service.ReportService) {
	m := reportMocks{
		reportRepo:      new(mocks.MockReportRepo),
		planRepo:        new(mocks.MockActionPlanRepo),
		calendarRepo:    new(mocks.MockCalendarRepo),
		stakeholderRepo: new(mocks.MockStakeholderRepo),
		kpiRepo:         new(mocks.MockKpiRepo),
		storage:         new(mocks.MockObjectStorage),
	}
	cfg := &config.S3Config{MaxFileSizeMB: 25}
	svc := service.NewReportService(
		m.reportRepo, m.planRepo, m.calendarRepo, m.stakeholderRepo, m.kpiRepo,
		m.storage, cfg, logrus.New(),
	)
	return m, svc
}

type reportFixture struct {
	plan    *domain.ActionPlan
	year    *domain.FinancialYear
	quarter *domain.Quarter
	kpiPlan domain.KpiPlan
}

func newReportFixture() reportFixture {
	planID := uuid.New()
	yearID := uuid.New()
	return reportFixture{
		plan: &domain.ActionPlan{
			ID:            planID,
			Title:         "Immunization Outreach",
			YearID:        yearID,
			StakeholderID: uuid.New(),
			Status:        domain.ActionPlanApproved,
		},
		year: &domain.FinancialYear{ID: yearID, Name: "2025/26"},
		quarter: &domain.Quarter{
			ID:            uuid.New(),
			YearID:        yearID,
			Number:        1,
			Name:          "Q1",
			ReportDueDate: time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
		},
		kpiPlan: domain.KpiPlan{
			ID:           uuid.New(),
			ActionPlanID: planID,
			KpiID:        uuid.New(),
			PlannedValue: 100,
		},
	}
}

func (m reportMocks) expectRefSets(fx reportFixture) {
	m.planRepo.On("GetByID", mock.Anything, fx.plan.ID).Return(fx.plan, nil)
	m.calendarRepo.On("GetYear", mock.Anything, fx.year.ID).Return(fx.year, nil)
	m.calendarRepo.On("GetQuarter", mock.Anything, fx.quarter.ID).Return(fx.quarter, nil)
	m.planRepo.On("ListKpiPlans", mock.Anything, fx.plan.ID).Return([]domain.KpiPlan{fx.kpiPlan}, nil)
}

func adminViewer() *domain.User {
	return &domain.User{ID: uuid.New(), Role: domain.RoleAdmin, Status: domain.UserStatusActive}
}

func TestCreateReport_Success(t *testing.T) {
	m, svc := setupReports()
	fx := newReportFixture()
	m.expectRefSets(fx)
	m.reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Report")).Return(nil)

	actual := 45.0
	report, err := svc.Create(context.Background(), adminViewer(), service.CreateReportInput{
		ActionPlanID:    fx.plan.ID,
		YearID:          fx.year.ID,
		QuarterID:       fx.quarter.ID,
		KpiPlanID:       fx.kpiPlan.ID,
		ActualValue:     &actual,
		ProgressSummary: "45 sessions held",
	})

	assert.NoError(t, err)
	assert.Equal(t, fx.plan.ID, report.ActionPlanID)
	assert.Nil(t, report.SubmittedAt)
	m.reportRepo.AssertExpectations(t)
}

func TestCreateReport_DuplicateQuarter(t *testing.T) {
	m, svc := setupReports()
	fx := newReportFixture()
	m.expectRefSets(fx)
	m.reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Report")).Return(domain.ErrDuplicateReport)

	_, err := svc.Create(context.Background(), adminViewer(), service.CreateReportInput{
		ActionPlanID: fx.plan.ID,
		YearID:       fx.year.ID,
		QuarterID:    fx.quarter.ID,
		KpiPlanID:    fx.kpiPlan.ID,
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateReport)
}

func TestCreateReport_UnknownQuarter(t *testing.T) {
	m, svc := setupReports()
	fx := newReportFixture()
	unknownQuarter := uuid.New()
	m.planRepo.On("GetByID", mock.Anything, fx.plan.ID).Return(fx.plan, nil)
	m.calendarRepo.On("GetYear", mock.Anything, fx.year.ID).Return(fx.year, nil)
	m.calendarRepo.On("GetQuarter", mock.Anything, unknownQuarter).Return(nil, domain.ErrNotFound)
	m.planRepo.On("ListKpiPlans", mock.Anything, fx.plan.ID).Return([]domain.KpiPlan{fx.kpiPlan}, nil)

	_, err := svc.Create(context.Background(), adminViewer(), service.CreateReportInput{
		ActionPlanID: fx.plan.ID,
		YearID:       fx.year.ID,
		QuarterID:    unknownQuarter,
		KpiPlanID:    fx.kpiPlan.ID,
	})

	verr, ok := domain.AsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "quarter_id", verr.Field)
}

func TestCreateReport_QuarterFromOtherYear(t *testing.T) {
	m, svc := setupReports()
	fx := newReportFixture()
	fx.quarter.YearID = uuid.New()
	m.expectRefSets(fx)

	_, err := svc.Create(context.Background(), adminViewer(), service.CreateReportInput{
		ActionPlanID: fx.plan.ID,
		YearID:       fx.year.ID,
		QuarterID:    fx.quarter.ID,
		KpiPlanID:    fx.kpiPlan.ID,
	})

	verr, ok := domain.AsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "quarter_id", verr.Field)
}

func TestCreateReport_ForeignStakeholderForbidden(t *testing.T) {
	m, svc := setupReports()
	fx := newReportFixture()
	m.expectRefSets(fx)

	otherOrg := uuid.New()
	viewer := &domain.User{
		ID:            uuid.New(),
		Role:          domain.RoleStakeholderAdmin,
		Status:        domain.UserStatusActive,
		StakeholderID: &otherOrg,
	}

	_, err := svc.Create(context.Background(), viewer, service.CreateReportInput{
		ActionPlanID: fx.plan.ID,
		YearID:       fx.year.ID,
		QuarterID:    fx.quarter.ID,
		KpiPlanID:    fx.kpiPlan.ID,
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSubmitReport_RequiresActualValue(t *testing.T) {
	m, svc := setupReports()
	reportID := uuid.New()
	m.reportRepo.On("GetByID", mock.Anything, reportID).Return(&domain.Report{ID: reportID}, nil)

	_, err := svc.Submit(context.Background(), adminViewer(), reportID)

	verr, ok := domain.AsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "actual_value", verr.Field)
}

func TestSubmitReport_SetsSubmissionStamp(t *testing.T) {
	m, svc := setupReports()
	viewer := adminViewer()
	reportID := uuid.New()
	actual := 120.0
	m.reportRepo.On("GetByID", mock.Anything, reportID).Return(&domain.Report{ID: reportID, ActualValue: &actual}, nil)
	m.reportRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Report")).Return(nil)

	report, err := svc.Submit(context.Background(), viewer, reportID)

	assert.NoError(t, err)
	assert.NotNil(t, report.SubmittedAt)
	assert.Equal(t, viewer.ID, *report.SubmittedBy)
}

func TestSubmitReport_AlreadySubmitted(t *testing.T) {
	m, svc := setupReports()
	reportID := uuid.New()
	actual := 120.0
	submitted := time.Now().UTC()
	m.reportRepo.On("GetByID", mock.Anything, reportID).Return(&domain.Report{
		ID:          reportID,
		ActualValue: &actual,
		SubmittedAt: &submitted,
	}, nil)

	_, err := svc.Submit(context.Background(), adminViewer(), reportID)

	assert.ErrorIs(t, err, domain.ErrReportSubmitted)
}

func TestUpdateReport_SubmittedIsImmutable(t *testing.T) {
	m, svc := setupReports()
	reportID := uuid.New()
	submitted := time.Now().UTC()
	m.reportRepo.On("GetByID", mock.Anything, reportID).Return(&domain.Report{
		ID:          reportID,
		SubmittedAt: &submitted,
	}, nil)

	newActual := 99.0
	_, err := svc.Update(context.Background(), reportID, service.UpdateReportInput{ActualValue: &newActual})

	assert.ErrorIs(t, err, domain.ErrReportSubmitted)
}

func TestOverview_FailedPlanLoadKeepsOtherRows(t *testing.T) {
	m, svc := setupReports()

	yearID := uuid.New()
	stakeholderID := uuid.New()
	goodPlan := domain.ActionPlan{
		ID: uuid.New(), Title: "Immunization Outreach", YearID: yearID,
		StakeholderID: stakeholderID, Status: domain.ActionPlanApproved,
	}
	badPlan := domain.ActionPlan{
		ID: uuid.New(), Title: "Water Point Rehab", YearID: yearID,
		StakeholderID: stakeholderID, Status: domain.ActionPlanApproved,
	}
	quarter := domain.Quarter{
		ID: uuid.New(), YearID: yearID, Number: 1, Name: "Q1",
		ReportDueDate: time.Now().UTC().AddDate(0, 0, 30),
	}

	m.planRepo.On("List", mock.Anything).Return([]domain.ActionPlan{badPlan, goodPlan}, nil)
	m.stakeholderRepo.On("List", mock.Anything).Return([]domain.Stakeholder{
		{ID: stakeholderID, Name: "Health Partners"},
	}, nil)
	m.calendarRepo.On("ListQuartersByYear", mock.Anything, yearID).Return([]domain.Quarter{quarter}, nil)
	m.reportRepo.On("ListByActionPlan", mock.Anything, badPlan.ID).Return(nil, errors.New("connection reset"))
	m.reportRepo.On("ListByActionPlan", mock.Anything, goodPlan.ID).Return([]domain.Report{}, nil)
	m.planRepo.On("ListKpiPlans", mock.Anything, goodPlan.ID).Return([]domain.KpiPlan{}, nil)

	rows, err := svc.Overview(context.Background(), adminViewer())

	// The failing plan drops out with a warning; the rest of the grid survives.
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, goodPlan.ID, rows[0].ActionPlanID)
	assert.Equal(t, "Health Partners", rows[0].StakeholderName)
	assert.Equal(t, domain.ReportDraft, rows[0].Status)
	m.planRepo.AssertNotCalled(t, "ListKpiPlans", mock.Anything, badPlan.ID)
}

func TestDocumentURL_NoAttachment(t *testing.T) {
	m, svc := setupReports()
	reportID := uuid.New()
	m.reportRepo.On("GetByID", mock.Anything, reportID).Return(&domain.Report{ID: reportID}, nil)

	_, err := svc.DocumentURL(context.Background(), reportID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
