package service

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"mscp/internal/config"
	"mscp/internal/domain"
	"mscp/internal/port"
	"mscp/internal/tracker"
)

// ReminderService emails stakeholders whose quarterly reports are coming due
// or missing. Run starts the cron schedule; RunOnce performs a single sweep
// and is what the scheduled job calls.
type ReminderService interface {
	Run() error
	RunOnce(ctx context.Context) error
	Stop()
}

type reminderService struct {
	calendarRepo port.CalendarRepository
	planRepo     port.ActionPlanRepository
	reportRepo   port.ReportRepository
	userRepo     port.UserRepository
	emailSender  port.EmailSender
	cfg          config.ReminderConfig
	log          *logrus.Logger
	cronEngine   *cron.Cron
	now          func() time.Time
}

// NewReminderService creates a new ReminderService implementation.
func NewReminderService(
	calendarRepo port.CalendarRepository,
	planRepo port.ActionPlanRepository,
	reportRepo port.ReportRepository,
	userRepo port.UserRepository,
	emailSender port.EmailSender,
	cfg config.ReminderConfig,
	log *logrus.Logger,
) ReminderService {
	return &reminderService{
		calendarRepo: calendarRepo,
		planRepo:     planRepo,
		reportRepo:   reportRepo,
		userRepo:     userRepo,
		emailSender:  emailSender,
		cfg:          cfg,
		log:          log,
		cronEngine:   cron.New(),
		now:          time.Now,
	}
}

func (s *reminderService) Run() error {
	_, err := s.cronEngine.AddFunc(s.cfg.CronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := s.RunOnce(ctx); err != nil {
			s.log.WithError(err).Error("report reminder sweep failed")
		}
	})
	if err != nil {
		return err
	}
	s.cronEngine.Start()
	s.log.WithField("cron", s.cfg.CronSpec).Info("report reminder scheduler started")
	return nil
}

// RunOnce sweeps the quarters whose due date falls within the lead window
// (including quarters already past due by up to the same window) and reminds
// every active stakeholder admin whose approved plan has no submitted report.
func (s *reminderService) RunOnce(ctx context.Context) error {
	now := s.now()
	from := now.AddDate(0, 0, -s.cfg.LeadDays)
	to := now.AddDate(0, 0, s.cfg.LeadDays)

	quarters, err := s.calendarRepo.ListQuartersDueBetween(ctx, from, to)
	if err != nil {
		return err
	}
	if len(quarters) == 0 {
		return nil
	}

	plans, err := s.planRepo.List(ctx)
	if err != nil {
		return err
	}

	sent := 0
	for _, q := range quarters {
		daysLeft := tracker.DaysUntilDue(q.ReportDueDate, now)

		for _, plan := range plans {
			if plan.YearID != q.YearID || plan.Status != domain.ActionPlanApproved {
				continue
			}

			report, err := s.reportRepo.GetByPlanAndQuarter(ctx, plan.ID, q.ID)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				s.log.WithError(err).WithField("action_plan_id", plan.ID).Warn("reminder lookup failed")
				continue
			}
			if report != nil && report.SubmittedAt != nil {
				continue
			}

			users, err := s.userRepo.ListByStakeholder(ctx, plan.StakeholderID)
			if err != nil {
				s.log.WithError(err).WithField("stakeholder_id", plan.StakeholderID).Warn("reminder recipient lookup failed")
				continue
			}
			for _, u := range users {
				if u.Status != domain.UserStatusActive || u.Role != domain.RoleStakeholderAdmin {
					continue
				}
				if err := s.emailSender.SendReportDueReminder(ctx, u.Email, u.FullName, q.Name, q.ReportDueDate, daysLeft); err != nil {
					s.log.WithError(err).WithField("email", u.Email).Warn("reminder email failed")
					continue
				}
				sent++
			}
		}
	}

	s.log.WithFields(logrus.Fields{"quarters": len(quarters), "sent": sent}).Info("report reminder sweep finished")
	return nil
}

func (s *reminderService) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
}
