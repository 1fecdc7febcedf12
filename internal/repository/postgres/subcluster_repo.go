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

type subClusterRepo struct {
	db *sqlx.DB
}

// NewSubClusterRepo creates a new PostgreSQL-backed SubClusterRepository.
func NewSubClusterRepo(db *sqlx.DB) port.SubClusterRepository {
	return &subClusterRepo{db: db}
}

func (r *subClusterRepo) Create(ctx context.Context, sc *domain.SubCluster) error {
	sc.ID = uuid.New()
	now := time.Now().UTC()
	sc.CreatedAt = now
	sc.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sub_clusters (id, name, focal_person_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		sc.ID, sc.Name, sc.FocalPersonID, sc.CreatedAt, sc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("subClusterRepo.Create: %w", err)
	}
	return nil
}

func (r *subClusterRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SubCluster, error) {
	var sc domain.SubCluster
	err := r.db.GetContext(ctx, &sc, "SELECT * FROM sub_clusters WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("subClusterRepo.GetByID: %w", err)
	}
	return &sc, nil
}

func (r *subClusterRepo) List(ctx context.Context) ([]domain.SubCluster, error) {
	var out []domain.SubCluster
	err := r.db.SelectContext(ctx, &out, "SELECT * FROM sub_clusters ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("subClusterRepo.List: %w", err)
	}
	return out, nil
}

func (r *subClusterRepo) Update(ctx context.Context, sc *domain.SubCluster) error {
	sc.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE sub_clusters SET name = $1, focal_person_id = $2, updated_at = $3 WHERE id = $4`,
		sc.Name, sc.FocalPersonID, sc.UpdatedAt, sc.ID)
	if err != nil {
		return fmt.Errorf("subClusterRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *subClusterRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sub_clusters WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("subClusterRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *subClusterRepo) CreateCategory(ctx context.Context, cat *domain.KpiCategory) error {
	cat.ID = uuid.New()
	now := time.Now().UTC()
	cat.CreatedAt = now
	cat.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kpi_categories (id, sub_cluster_id, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		cat.ID, cat.SubClusterID, cat.Name, cat.CreatedAt, cat.UpdatedAt)
	if err != nil {
		return fmt.Errorf("subClusterRepo.CreateCategory: %w", err)
	}
	return nil
}

func (r *subClusterRepo) ListCategories(ctx context.Context) ([]domain.KpiCategory, error) {
	var out []domain.KpiCategory
	err := r.db.SelectContext(ctx, &out, "SELECT * FROM kpi_categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("subClusterRepo.ListCategories: %w", err)
	}
	return out, nil
}

func (r *subClusterRepo) UpdateCategory(ctx context.Context, cat *domain.KpiCategory) error {
	cat.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE kpi_categories SET sub_cluster_id = $1, name = $2, updated_at = $3 WHERE id = $4`,
		cat.SubClusterID, cat.Name, cat.UpdatedAt, cat.ID)
	if err != nil {
		return fmt.Errorf("subClusterRepo.UpdateCategory: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *subClusterRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM kpi_categories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("subClusterRepo.DeleteCategory: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
