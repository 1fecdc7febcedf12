package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"mscp/internal/domain"
	"mscp/internal/port"
)

type actionPlanRepo struct {
	db *sqlx.DB
}

// NewActionPlanRepo creates a new PostgreSQL-backed ActionPlanRepository.
func NewActionPlanRepo(db *sqlx.DB) port.ActionPlanRepository {
	return &actionPlanRepo{db: db}
}

func (r *actionPlanRepo) Create(ctx context.Context, plan *domain.ActionPlan) error {
	plan.ID = uuid.New()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	if plan.Status == "" {
		plan.Status = domain.ActionPlanPending
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO action_plans (id, title, year_id, stakeholder_id, sub_cluster_id,
		 plan_level, country_id, province_id, district_id, status, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		plan.ID, plan.Title, plan.YearID, plan.StakeholderID, plan.SubClusterID,
		plan.PlanLevel, plan.CountryID, plan.ProvinceID, plan.DistrictID,
		plan.Status, plan.CreatedBy, plan.CreatedAt, plan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("actionPlanRepo.Create: %w", err)
	}
	return nil
}

func (r *actionPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ActionPlan, error) {
	var plan domain.ActionPlan
	err := r.db.GetContext(ctx, &plan, "SELECT * FROM action_plans WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("actionPlanRepo.GetByID: %w", err)
	}
	return &plan, nil
}

func (r *actionPlanRepo) List(ctx context.Context) ([]domain.ActionPlan, error) {
	var out []domain.ActionPlan
	err := r.db.SelectContext(ctx, &out, "SELECT * FROM action_plans ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("actionPlanRepo.List: %w", err)
	}
	return out, nil
}

func (r *actionPlanRepo) ListByStakeholder(ctx context.Context, stakeholderID uuid.UUID) ([]domain.ActionPlan, error) {
	var out []domain.ActionPlan
	err := r.db.SelectContext(ctx, &out,
		"SELECT * FROM action_plans WHERE stakeholder_id = $1 ORDER BY created_at DESC", stakeholderID)
	if err != nil {
		return nil, fmt.Errorf("actionPlanRepo.ListByStakeholder: %w", err)
	}
	return out, nil
}

func (r *actionPlanRepo) Update(ctx context.Context, plan *domain.ActionPlan) error {
	plan.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE action_plans SET title = $1, year_id = $2, stakeholder_id = $3,
		 sub_cluster_id = $4, plan_level = $5, country_id = $6, province_id = $7,
		 district_id = $8, status = $9, updated_at = $10 WHERE id = $11`,
		plan.Title, plan.YearID, plan.StakeholderID, plan.SubClusterID,
		plan.PlanLevel, plan.CountryID, plan.ProvinceID, plan.DistrictID,
		plan.Status, plan.UpdatedAt, plan.ID)
	if err != nil {
		return fmt.Errorf("actionPlanRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *actionPlanRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.ActionPlanStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE action_plans SET status = $1, updated_at = NOW() WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("actionPlanRepo.SetStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *actionPlanRepo) CreateKpiPlan(ctx context.Context, kp *domain.KpiPlan) error {
	kp.ID = uuid.New()
	kp.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kpi_plans (id, action_plan_id, kpi_id, planned_value, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		kp.ID, kp.ActionPlanID, kp.KpiID, kp.PlannedValue, kp.CreatedAt)
	if err != nil {
		return fmt.Errorf("actionPlanRepo.CreateKpiPlan: %w", err)
	}
	return nil
}

func (r *actionPlanRepo) ListKpiPlans(ctx context.Context, actionPlanID uuid.UUID) ([]domain.KpiPlan, error) {
	var out []domain.KpiPlan
	err := r.db.SelectContext(ctx, &out,
		"SELECT * FROM kpi_plans WHERE action_plan_id = $1 ORDER BY created_at", actionPlanID)
	if err != nil {
		return nil, fmt.Errorf("actionPlanRepo.ListKpiPlans: %w", err)
	}
	return out, nil
}

func (r *actionPlanRepo) GetKpiPlan(ctx context.Context, id uuid.UUID) (*domain.KpiPlan, error) {
	var kp domain.KpiPlan
	err := r.db.GetContext(ctx, &kp, "SELECT * FROM kpi_plans WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("actionPlanRepo.GetKpiPlan: %w", err)
	}
	return &kp, nil
}
