package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"mscp/internal/domain"
	"mscp/internal/port"
)

type reportRepo struct {
	db *sqlx.DB
}

// NewReportRepo creates a new PostgreSQL-backed ReportRepository.
func NewReportRepo(db *sqlx.DB) port.ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(ctx context.Context, rep *domain.Report) error {
	rep.ID = uuid.New()
	now := time.Now().UTC()
	rep.CreatedAt = now
	rep.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reports (id, action_plan_id, quarter_id, kpi_plan_id, actual_value,
		 progress_summary, document_key, document_name, submitted_by, submitted_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rep.ID, rep.ActionPlanID, rep.QuarterID, rep.KpiPlanID, rep.ActualValue,
		rep.ProgressSummary, rep.DocumentKey, rep.DocumentName,
		rep.SubmittedBy, rep.SubmittedAt, rep.CreatedAt, rep.UpdatedAt)
	if err != nil {
		// One report per (action plan, quarter); the unique index is the
		// sole arbiter under concurrent submission.
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateReport
		}
		return fmt.Errorf("reportRepo.Create: %w", err)
	}
	return nil
}

func (r *reportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	var rep domain.Report
	err := r.db.GetContext(ctx, &rep, "SELECT * FROM reports WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reportRepo.GetByID: %w", err)
	}
	return &rep, nil
}

func (r *reportRepo) GetByPlanAndQuarter(ctx context.Context, actionPlanID, quarterID uuid.UUID) (*domain.Report, error) {
	var rep domain.Report
	err := r.db.GetContext(ctx, &rep,
		"SELECT * FROM reports WHERE action_plan_id = $1 AND quarter_id = $2",
		actionPlanID, quarterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reportRepo.GetByPlanAndQuarter: %w", err)
	}
	return &rep, nil
}

func (r *reportRepo) ListByActionPlan(ctx context.Context, actionPlanID uuid.UUID) ([]domain.Report, error) {
	var out []domain.Report
	err := r.db.SelectContext(ctx, &out,
		"SELECT * FROM reports WHERE action_plan_id = $1 ORDER BY created_at", actionPlanID)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.ListByActionPlan: %w", err)
	}
	return out, nil
}

func (r *reportRepo) Update(ctx context.Context, rep *domain.Report) error {
	rep.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE reports SET actual_value = $1, progress_summary = $2, document_key = $3,
		 document_name = $4, submitted_by = $5, submitted_at = $6, updated_at = $7
		 WHERE id = $8`,
		rep.ActualValue, rep.ProgressSummary, rep.DocumentKey, rep.DocumentName,
		rep.SubmittedBy, rep.SubmittedAt, rep.UpdatedAt, rep.ID)
	if err != nil {
		return fmt.Errorf("reportRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
