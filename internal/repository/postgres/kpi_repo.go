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

type kpiRepo struct {
	db *sqlx.DB
}

// NewKpiRepo creates a new PostgreSQL-backed KpiRepository.
func NewKpiRepo(db *sqlx.DB) port.KpiRepository {
	return &kpiRepo{db: db}
}

func (r *kpiRepo) Create(ctx context.Context, item *domain.KpiItem) error {
	item.ID = uuid.New()
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kpi_items (id, sub_cluster_id, category_id, title, description,
		 current_value, target_value, unit, disaggregation, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		item.ID, item.SubClusterID, item.CategoryID, item.Title, item.Description,
		item.CurrentValue, item.TargetValue, item.Unit, item.Disaggregation,
		item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("kpiRepo.Create: %w", err)
	}
	return nil
}

func (r *kpiRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.KpiItem, error) {
	var item domain.KpiItem
	err := r.db.GetContext(ctx, &item, "SELECT * FROM kpi_items WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("kpiRepo.GetByID: %w", err)
	}
	return &item, nil
}

func (r *kpiRepo) List(ctx context.Context) ([]domain.KpiItem, error) {
	var out []domain.KpiItem
	err := r.db.SelectContext(ctx, &out, "SELECT * FROM kpi_items ORDER BY title")
	if err != nil {
		return nil, fmt.Errorf("kpiRepo.List: %w", err)
	}
	return out, nil
}

func (r *kpiRepo) Update(ctx context.Context, item *domain.KpiItem) error {
	item.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE kpi_items SET sub_cluster_id = $1, category_id = $2, title = $3,
		 description = $4, current_value = $5, target_value = $6, unit = $7,
		 disaggregation = $8, updated_at = $9 WHERE id = $10`,
		item.SubClusterID, item.CategoryID, item.Title, item.Description,
		item.CurrentValue, item.TargetValue, item.Unit, item.Disaggregation,
		item.UpdatedAt, item.ID)
	if err != nil {
		return fmt.Errorf("kpiRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *kpiRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM kpi_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("kpiRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
