package service_test

import (
	"context"
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

type reminderMocks struct {
	calendarRepo *mocks.MockCalendarRepo
	planRepo     *mocks.MockActionPlanRepo
	reportRepo   *mocks.MockReportRepo
	userRepo     *mocks.MockUserRepo
	emailSender  *mocks.MockEmailSender
}

func setupReminders() (reminderMocks, service.ReminderService) {
	m := reminderMocks{
		calendarRepo: new(mocks.MockCalendarRepo),
		planRepo:     new(mocks.MockActionPlanRepo),
		reportRepo:   new(mocks.MockReportRepo),
		userRepo:     new(mocks.MockUserRepo),
		emailSender:  new(mocks.MockEmailSender),
	}
	cfg := config.ReminderConfig{Enabled: true, CronSpec: "0 8 * * *", LeadDays: 7}
	svc := service.NewReminderService(
		m.calendarRepo, m.planRepo, m.reportRepo, m.userRepo, m.emailSender, cfg, logrus.New(),
	)
	return m, svc
}

func dueQuarter(yearID uuid.UUID) domain.Quarter {
	return domain.Quarter{
		ID:            uuid.New(),
		YearID:        yearID,
		Number:        2,
		Name:          "Q2",
		ReportDueDate: time.Now().UTC().AddDate(0, 0, 3),
	}
}

func approvedPlan(yearID, stakeholderID uuid.UUID, title string) domain.ActionPlan {
	return domain.ActionPlan{
		ID:            uuid.New(),
		Title:         title,
		YearID:        yearID,
		StakeholderID: stakeholderID,
		Status:        domain.ActionPlanApproved,
	}
}

func TestReminderSweep_SkipsSubmittedReports(t *testing.T) {
	m, svc := setupReminders()
	yearID := uuid.New()
	q := dueQuarter(yearID)
	doneOrg := uuid.New()
	lateOrg := uuid.New()
	donePlan := approvedPlan(yearID, doneOrg, "Immunization Outreach")
	latePlan := approvedPlan(yearID, lateOrg, "Water Point Rehab")

	submitted := time.Now().UTC()
	actual := 80.0
	m.calendarRepo.On("ListQuartersDueBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Quarter{q}, nil)
	m.planRepo.On("List", mock.Anything).Return([]domain.ActionPlan{donePlan, latePlan}, nil)
	m.reportRepo.On("GetByPlanAndQuarter", mock.Anything, donePlan.ID, q.ID).Return(&domain.Report{
		ID:           uuid.New(),
		ActionPlanID: donePlan.ID,
		QuarterID:    q.ID,
		ActualValue:  &actual,
		SubmittedAt:  &submitted,
	}, nil)
	m.reportRepo.On("GetByPlanAndQuarter", mock.Anything, latePlan.ID, q.ID).Return(nil, domain.ErrNotFound)
	m.userRepo.On("ListByStakeholder", mock.Anything, lateOrg).Return([]domain.User{
		{ID: uuid.New(), Email: "admin@wateraid.org", FullName: "W Admin",
			Role: domain.RoleStakeholderAdmin, Status: domain.UserStatusActive},
	}, nil)
	m.emailSender.On("SendReportDueReminder",
		mock.Anything, "admin@wateraid.org", "W Admin", q.Name, q.ReportDueDate, mock.AnythingOfType("int")).
		Return(nil)

	err := svc.RunOnce(context.Background())

	assert.NoError(t, err)
	m.emailSender.AssertNumberOfCalls(t, "SendReportDueReminder", 1)
	m.userRepo.AssertNotCalled(t, "ListByStakeholder", mock.Anything, doneOrg)
	m.emailSender.AssertExpectations(t)
}

func TestReminderSweep_OnlyActiveStakeholderAdminsGetMail(t *testing.T) {
	m, svc := setupReminders()
	yearID := uuid.New()
	q := dueQuarter(yearID)
	orgID := uuid.New()
	plan := approvedPlan(yearID, orgID, "Expand ANC Coverage")

	m.calendarRepo.On("ListQuartersDueBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Quarter{q}, nil)
	m.planRepo.On("List", mock.Anything).Return([]domain.ActionPlan{plan}, nil)
	m.reportRepo.On("GetByPlanAndQuarter", mock.Anything, plan.ID, q.ID).Return(nil, domain.ErrNotFound)
	m.userRepo.On("ListByStakeholder", mock.Anything, orgID).Return([]domain.User{
		{Email: "active.admin@ngo.org", FullName: "Active Admin",
			Role: domain.RoleStakeholderAdmin, Status: domain.UserStatusActive},
		{Email: "former.admin@ngo.org", FullName: "Former Admin",
			Role: domain.RoleStakeholderAdmin, Status: domain.UserStatusInactive},
		{Email: "reporter@ngo.org", FullName: "Reporter",
			Role: domain.RoleStakeholderUser, Status: domain.UserStatusActive},
	}, nil)
	m.emailSender.On("SendReportDueReminder",
		mock.Anything, "active.admin@ngo.org", "Active Admin", q.Name, q.ReportDueDate, mock.AnythingOfType("int")).
		Return(nil)

	err := svc.RunOnce(context.Background())

	assert.NoError(t, err)
	m.emailSender.AssertNumberOfCalls(t, "SendReportDueReminder", 1)
	m.emailSender.AssertExpectations(t)
}

func TestReminderSweep_IgnoresUnapprovedAndOtherYearPlans(t *testing.T) {
	m, svc := setupReminders()
	yearID := uuid.New()
	q := dueQuarter(yearID)

	pending := approvedPlan(yearID, uuid.New(), "Still In Review")
	pending.Status = domain.ActionPlanPending
	otherYear := approvedPlan(uuid.New(), uuid.New(), "Last Year's Plan")

	m.calendarRepo.On("ListQuartersDueBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Quarter{q}, nil)
	m.planRepo.On("List", mock.Anything).Return([]domain.ActionPlan{pending, otherYear}, nil)

	err := svc.RunOnce(context.Background())

	assert.NoError(t, err)
	m.reportRepo.AssertNotCalled(t, "GetByPlanAndQuarter", mock.Anything, mock.Anything, mock.Anything)
	m.emailSender.AssertNotCalled(t, "SendReportDueReminder",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReminderSweep_NoQuartersInWindow(t *testing.T) {
	m, svc := setupReminders()

	m.calendarRepo.On("ListQuartersDueBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Quarter{}, nil)

	err := svc.RunOnce(context.Background())

	assert.NoError(t, err)
	m.planRepo.AssertNotCalled(t, "List", mock.Anything)
}
