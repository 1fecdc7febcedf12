package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mscp/internal/domain"
)

// ActionPlanRepository defines the contract for action plan and KPI plan
// persistence.
type ActionPlanRepository interface {
	Create(ctx context.Context, plan *domain.ActionPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ActionPlan, error)
	List(ctx context.Context) ([]domain.ActionPlan, error)
	ListByStakeholder(ctx context.Context, stakeholderID uuid.UUID) ([]domain.ActionPlan, error)
	Update(ctx context.Context, plan *domain.ActionPlan) error
	SetStatus(ctx context.Context, id uuid.UUID, status domain.ActionPlanStatus) error

	CreateKpiPlan(ctx context.Context, kp *domain.KpiPlan) error
	ListKpiPlans(ctx context.Context, actionPlanID uuid.UUID) ([]domain.KpiPlan, error)
	GetKpiPlan(ctx context.Context, id uuid.UUID) (*domain.KpiPlan, error)
}

// ReportRepository defines the contract for quarterly report persistence.
// Create must enforce the one-report-per-(action plan, quarter) invariant and
// surface violations as domain.ErrDuplicateReport.
type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	GetByPlanAndQuarter(ctx context.Context, actionPlanID, quarterID uuid.UUID) (*domain.Report, error)
	ListByActionPlan(ctx context.Context, actionPlanID uuid.UUID) ([]domain.Report, error)
	Update(ctx context.Context, r *domain.Report) error
}

// CalendarRepository provides financial years and their quarters.
type CalendarRepository interface {
	CreateYear(ctx context.Context, y *domain.FinancialYear) error
	ListYears(ctx context.Context) ([]domain.FinancialYear, error)
	GetYear(ctx context.Context, id uuid.UUID) (*domain.FinancialYear, error)
	CreateQuarter(ctx context.Context, q *domain.Quarter) error
	ListQuartersByYear(ctx context.Context, yearID uuid.UUID) ([]domain.Quarter, error)
	GetQuarter(ctx context.Context, id uuid.UUID) (*domain.Quarter, error)
	ListQuartersDueBetween(ctx context.Context, from, to time.Time) ([]domain.Quarter, error)
}
