package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mscp/internal/config"
	"mscp/internal/csvexport"
	"mscp/internal/domain"
	"mscp/internal/port"
	"mscp/internal/tracker"
)

// allowedDocumentExtensions lists the attachment types accepted as report
// evidence, with the content type uploaded to object storage.
var allowedDocumentExtensions = map[string]string{
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
}

// CreateReportInput is the DTO for filing a quarterly report.
type CreateReportInput struct {
	ActionPlanID    uuid.UUID `json:"action_plan_id" binding:"required"`
	YearID          uuid.UUID `json:"year_id" binding:"required"`
	QuarterID       uuid.UUID `json:"quarter_id" binding:"required"`
	KpiPlanID       uuid.UUID `json:"kpi_plan_id" binding:"required"`
	ActualValue     *float64  `json:"actual_value"`
	ProgressSummary string    `json:"progress_summary"`
}

// UpdateReportInput is the DTO for correcting an unsubmitted report.
type UpdateReportInput struct {
	ActualValue     *float64 `json:"actual_value"`
	ProgressSummary *string  `json:"progress_summary"`
}

// ReportDocumentInput is the DTO for attaching an evidence document.
type ReportDocumentInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// ReportView is a report with its derived status and achievement.
type ReportView struct {
	domain.Report
	Status       domain.ReportStatus `json:"status"`
	PlannedValue float64             `json:"planned_value"`
	Achievement  float64             `json:"achievement"`
	DaysUntilDue int                 `json:"days_until_due"`
	QuarterName  string              `json:"quarter_name"`
}

// TrackerRow is one (action plan, quarter) cell of the progress tracker.
// Report is nil when nothing has been filed yet.
type TrackerRow struct {
	ActionPlanID    uuid.UUID           `json:"action_plan_id"`
	ActionPlanTitle string              `json:"action_plan_title"`
	StakeholderName string              `json:"stakeholder_name"`
	QuarterID       uuid.UUID           `json:"quarter_id"`
	QuarterName     string              `json:"quarter_name"`
	Status          domain.ReportStatus `json:"status"`
	Achievement     float64             `json:"achievement"`
	DaysUntilDue    int                 `json:"days_until_due"`
	Report          *domain.Report      `json:"report,omitempty"`
}

// ReportService defines the quarterly report contract.
type ReportService interface {
	Create(ctx context.Context, viewer *domain.User, input CreateReportInput) (*domain.Report, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ReportView, error)
	ListByActionPlan(ctx context.Context, actionPlanID uuid.UUID) ([]ReportView, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateReportInput) (*domain.Report, error)
	Submit(ctx context.Context, viewer *domain.User, id uuid.UUID) (*domain.Report, error)
	AttachDocument(ctx context.Context, id uuid.UUID, input ReportDocumentInput) (*domain.Report, error)
	DocumentURL(ctx context.Context, id uuid.UUID) (string, error)
	Overview(ctx context.Context, viewer *domain.User) ([]TrackerRow, error)
	ExportRows(ctx context.Context, actionPlanID uuid.UUID) ([]csvexport.ReportRow, error)
}

type reportService struct {
	reportRepo      port.ReportRepository
	planRepo        port.ActionPlanRepository
	calendarRepo    port.CalendarRepository
	stakeholderRepo port.StakeholderRepository
	kpiRepo         port.KpiRepository
	storage         port.ObjectStorage
	s3cfg           *config.S3Config
	log             *logrus.Logger
	now             func() time.Time
}

// NewReportService creates a new ReportService implementation.
func NewReportService(
	reportRepo port.ReportRepository,
	planRepo port.ActionPlanRepository,
	calendarRepo port.CalendarRepository,
	stakeholderRepo port.StakeholderRepository,
	kpiRepo port.KpiRepository,
	storage port.ObjectStorage,
	s3cfg *config.S3Config,
	log *logrus.Logger,
) ReportService {
	return &reportService{
		reportRepo:      reportRepo,
		planRepo:        planRepo,
		calendarRepo:    calendarRepo,
		stakeholderRepo: stakeholderRepo,
		kpiRepo:         kpiRepo,
		storage:         storage,
		s3cfg:           s3cfg,
		log:             log,
		now:             time.Now,
	}
}

// Create validates every foreign reference, then inserts. The unique index on
// (action_plan_id, quarter_id) is the sole arbiter under concurrent
// submission; a violation surfaces as domain.ErrDuplicateReport.
func (s *reportService) Create(ctx context.Context, viewer *domain.User, input CreateReportInput) (*domain.Report, error) {
	sets, err := s.loadRefSets(ctx, input.ActionPlanID, input.YearID, input.QuarterID)
	if err != nil {
		return nil, err
	}

	refs := tracker.ReportRefs{
		ActionPlanID: input.ActionPlanID,
		YearID:       input.YearID,
		QuarterID:    input.QuarterID,
		KpiPlanID:    input.KpiPlanID,
	}
	if err := tracker.ValidateReportInput(refs, sets); err != nil {
		return nil, err
	}

	plan := sets.ActionPlans[input.ActionPlanID]
	if viewer.StakeholderID != nil && *viewer.StakeholderID != plan.StakeholderID {
		return nil, domain.ErrForbidden
	}

	report := &domain.Report{
		ActionPlanID:    input.ActionPlanID,
		QuarterID:       input.QuarterID,
		KpiPlanID:       input.KpiPlanID,
		ActualValue:     input.ActualValue,
		ProgressSummary: input.ProgressSummary,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) GetByID(ctx context.Context, id uuid.UUID) (*ReportView, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view, err := s.toView(ctx, report)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *reportService) ListByActionPlan(ctx context.Context, actionPlanID uuid.UUID) ([]ReportView, error) {
	reports, err := s.reportRepo.ListByActionPlan(ctx, actionPlanID)
	if err != nil {
		return nil, err
	}
	views := make([]ReportView, 0, len(reports))
	for i := range reports {
		view, err := s.toView(ctx, &reports[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// Update corrects an unsubmitted report. Submitted reports are immutable.
func (s *reportService) Update(ctx context.Context, id uuid.UUID, input UpdateReportInput) (*domain.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.SubmittedAt != nil {
		return nil, domain.ErrReportSubmitted
	}

	if input.ActualValue != nil {
		report.ActualValue = input.ActualValue
	}
	if input.ProgressSummary != nil {
		report.ProgressSummary = *input.ProgressSummary
	}

	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Submit finalizes a report. Submission requires a recorded actual value and
// is terminal.
func (s *reportService) Submit(ctx context.Context, viewer *domain.User, id uuid.UUID) (*domain.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.SubmittedAt != nil {
		return nil, domain.ErrReportSubmitted
	}
	if report.ActualValue == nil {
		return nil, domain.NewValidationError("actual_value", "is required before submission")
	}

	now := s.now().UTC()
	report.SubmittedBy = &viewer.ID
	report.SubmittedAt = &now
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) AttachDocument(ctx context.Context, id uuid.UUID, input ReportDocumentInput) (*domain.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.SubmittedAt != nil {
		return nil, domain.ErrReportSubmitted
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	contentType, ok := allowedDocumentExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.s3cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Magic-byte sniff to reject files whose extension lies about their type.
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading document header: %w", err)
	}
	detected := http.DetectContentType(buf[:n])
	if !contentTypeMatches(detected, contentType) {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking document: %w", err)
	}

	key := fmt.Sprintf("reports/%s/%s_%s", report.ID, uuid.New(), input.Header.Filename)
	if err := s.storage.Upload(ctx, key, input.File, contentType); err != nil {
		s.log.WithError(err).WithField("report_id", report.ID).Error("document upload failed")
		return nil, domain.ErrUploadFailed
	}

	// Replace any previous attachment; the old object is best-effort deleted.
	if report.DocumentKey != "" {
		if err := s.storage.Delete(ctx, report.DocumentKey); err != nil {
			s.log.WithError(err).WithField("key", report.DocumentKey).Warn("failed to delete replaced document")
		}
	}

	report.DocumentKey = key
	report.DocumentName = input.Header.Filename
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) DocumentURL(ctx context.Context, id uuid.UUID) (string, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if report.DocumentKey == "" {
		return "", domain.ErrNotFound
	}
	return s.storage.PresignDownload(ctx, report.DocumentKey)
}

// Overview builds the tracker grid: one row per (action plan, quarter) of the
// plan's financial year. Plans whose reports cannot be loaded are skipped
// with a warning rather than failing the whole grid.
func (s *reportService) Overview(ctx context.Context, viewer *domain.User) ([]TrackerRow, error) {
	var (
		wg           sync.WaitGroup
		plans        []domain.ActionPlan
		stakeholders []domain.Stakeholder
		plansErr     error
		stakesErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		if viewer.StakeholderID != nil {
			plans, plansErr = s.planRepo.ListByStakeholder(ctx, *viewer.StakeholderID)
		} else {
			plans, plansErr = s.planRepo.List(ctx)
		}
	}()
	go func() {
		defer wg.Done()
		stakeholders, stakesErr = s.stakeholderRepo.List(ctx)
	}()
	wg.Wait()

	if plansErr != nil {
		return nil, plansErr
	}
	if stakesErr != nil {
		return nil, stakesErr
	}

	stakeholderNames := make(map[uuid.UUID]string, len(stakeholders))
	for _, st := range stakeholders {
		stakeholderNames[st.ID] = st.Name
	}

	now := s.now()
	quartersByYear := make(map[uuid.UUID][]domain.Quarter)
	var rows []TrackerRow

	for _, plan := range plans {
		quarters, ok := quartersByYear[plan.YearID]
		if !ok {
			var err error
			quarters, err = s.calendarRepo.ListQuartersByYear(ctx, plan.YearID)
			if err != nil {
				s.log.WithError(err).WithField("year_id", plan.YearID).Warn("skipping plan year in tracker overview")
				continue
			}
			quartersByYear[plan.YearID] = quarters
		}

		reports, err := s.reportRepo.ListByActionPlan(ctx, plan.ID)
		if err != nil {
			s.log.WithError(err).WithField("action_plan_id", plan.ID).Warn("skipping plan in tracker overview")
			continue
		}
		byQuarter := make(map[uuid.UUID]*domain.Report, len(reports))
		for i := range reports {
			byQuarter[reports[i].QuarterID] = &reports[i]
		}

		kpiPlans, err := s.planRepo.ListKpiPlans(ctx, plan.ID)
		if err != nil {
			s.log.WithError(err).WithField("action_plan_id", plan.ID).Warn("skipping plan in tracker overview")
			continue
		}
		planned := make(map[uuid.UUID]float64, len(kpiPlans))
		for _, kp := range kpiPlans {
			planned[kp.ID] = kp.PlannedValue
		}

		for i := range quarters {
			q := quarters[i]
			report := byQuarter[q.ID]

			row := TrackerRow{
				ActionPlanID:    plan.ID,
				ActionPlanTitle: plan.Title,
				StakeholderName: stakeholderNames[plan.StakeholderID],
				QuarterID:       q.ID,
				QuarterName:     q.Name,
				Status:          tracker.ReportStatus(report, &q, now),
				DaysUntilDue:    tracker.DaysUntilDue(q.ReportDueDate, now),
				Report:          report,
			}
			if report != nil && report.ActualValue != nil {
				row.Achievement = tracker.Achievement(*report.ActualValue, planned[report.KpiPlanID])
			}
			rows = append(rows, row)
		}
	}

	return rows, nil
}

func (s *reportService) ExportRows(ctx context.Context, actionPlanID uuid.UUID) ([]csvexport.ReportRow, error) {
	plan, err := s.planRepo.GetByID(ctx, actionPlanID)
	if err != nil {
		return nil, err
	}
	stakeholder, err := s.stakeholderRepo.GetByID(ctx, plan.StakeholderID)
	if err != nil {
		return nil, err
	}
	quarters, err := s.calendarRepo.ListQuartersByYear(ctx, plan.YearID)
	if err != nil {
		return nil, err
	}
	kpiPlans, err := s.planRepo.ListKpiPlans(ctx, actionPlanID)
	if err != nil {
		return nil, err
	}
	reports, err := s.reportRepo.ListByActionPlan(ctx, actionPlanID)
	if err != nil {
		return nil, err
	}

	quarterNames := make(map[uuid.UUID]domain.Quarter, len(quarters))
	for _, q := range quarters {
		quarterNames[q.ID] = q
	}
	plannedByID := make(map[uuid.UUID]domain.KpiPlan, len(kpiPlans))
	for _, kp := range kpiPlans {
		plannedByID[kp.ID] = kp
	}

	now := s.now()
	rows := make([]csvexport.ReportRow, 0, len(reports))
	for i := range reports {
		r := reports[i]
		q := quarterNames[r.QuarterID]
		kp := plannedByID[r.KpiPlanID]

		kpiTitle := ""
		if item, err := s.kpiRepo.GetByID(ctx, kp.KpiID); err == nil {
			kpiTitle = item.Title
		}

		rows = append(rows, csvexport.ReportRow{
			ActionPlanTitle: plan.Title,
			StakeholderName: stakeholder.Name,
			KpiTitle:        kpiTitle,
			QuarterName:     q.Name,
			PlannedValue:    kp.PlannedValue,
			Status:          tracker.ReportStatus(&r, &q, now),
			Report:          r,
		})
	}
	return rows, nil
}

// loadRefSets fetches the reference data a new report is validated against.
// The four lookups run concurrently; a NotFound simply leaves its map empty
// so validation can name the failing field, any other error aborts.
func (s *reportService) loadRefSets(ctx context.Context, actionPlanID, yearID, quarterID uuid.UUID) (tracker.RefSets, error) {
	sets := tracker.RefSets{
		ActionPlans: map[uuid.UUID]domain.ActionPlan{},
		Years:       map[uuid.UUID]domain.FinancialYear{},
		Quarters:    map[uuid.UUID]domain.Quarter{},
		KpiPlans:    map[uuid.UUID]domain.KpiPlan{},
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	fail := func(err error) {
		if err == nil || errors.Is(err, domain.ErrNotFound) {
			return
		}
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		plan, err := s.planRepo.GetByID(ctx, actionPlanID)
		if err != nil {
			fail(err)
			return
		}
		mu.Lock()
		sets.ActionPlans[plan.ID] = *plan
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		year, err := s.calendarRepo.GetYear(ctx, yearID)
		if err != nil {
			fail(err)
			return
		}
		mu.Lock()
		sets.Years[year.ID] = *year
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		quarter, err := s.calendarRepo.GetQuarter(ctx, quarterID)
		if err != nil {
			fail(err)
			return
		}
		mu.Lock()
		sets.Quarters[quarter.ID] = *quarter
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		kpiPlans, err := s.planRepo.ListKpiPlans(ctx, actionPlanID)
		if err != nil {
			fail(err)
			return
		}
		mu.Lock()
		for _, kp := range kpiPlans {
			sets.KpiPlans[kp.ID] = kp
		}
		mu.Unlock()
	}()
	wg.Wait()

	if len(errs) > 0 {
		return sets, fmt.Errorf("reportService.loadRefSets: %w", errs[0])
	}
	return sets, nil
}

func (s *reportService) toView(ctx context.Context, report *domain.Report) (*ReportView, error) {
	quarter, err := s.calendarRepo.GetQuarter(ctx, report.QuarterID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	view := &ReportView{Report: *report}
	now := s.now()
	view.Status = tracker.ReportStatus(report, quarter, now)
	if quarter != nil {
		view.QuarterName = quarter.Name
		view.DaysUntilDue = tracker.DaysUntilDue(quarter.ReportDueDate, now)
	}

	if kp, err := s.planRepo.GetKpiPlan(ctx, report.KpiPlanID); err == nil {
		view.PlannedValue = kp.PlannedValue
		if report.ActualValue != nil {
			view.Achievement = tracker.Achievement(*report.ActualValue, kp.PlannedValue)
		}
	}
	return view, nil
}

func contentTypeMatches(detected, expected string) bool {
	if strings.HasPrefix(detected, expected) {
		return true
	}
	// Office formats and PDFs are detected as zip/octet-stream by the
	// stdlib sniffer.
	switch detected {
	case "application/zip", "application/octet-stream", "application/x-ole-storage":
		return true
	}
	return strings.HasPrefix(detected, "application/pdf") && expected == "application/pdf"
}
