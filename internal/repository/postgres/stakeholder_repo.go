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

type stakeholderRepo struct {
	db *sqlx.DB
}

// NewStakeholderRepo creates a new PostgreSQL-backed StakeholderRepository.
func NewStakeholderRepo(db *sqlx.DB) port.StakeholderRepository {
	return &stakeholderRepo{db: db}
}

func (r *stakeholderRepo) Create(ctx context.Context, s *domain.Stakeholder) error {
	s.ID = uuid.New()
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.Status == "" {
		s.Status = domain.StakeholderActive
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO stakeholders (id, name, contact_email, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Name, s.ContactEmail, s.Status, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("stakeholderRepo.Create: %w", err)
	}

	if len(s.SubClusterIDs) > 0 {
		return r.SetSubClusters(ctx, s.ID, s.SubClusterIDs)
	}
	return nil
}

func (r *stakeholderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Stakeholder, error) {
	var s domain.Stakeholder
	err := r.db.GetContext(ctx, &s, "SELECT * FROM stakeholders WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("stakeholderRepo.GetByID: %w", err)
	}
	if err := r.loadSubClusters(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stakeholderRepo) List(ctx context.Context) ([]domain.Stakeholder, error) {
	var out []domain.Stakeholder
	err := r.db.SelectContext(ctx, &out, "SELECT * FROM stakeholders ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("stakeholderRepo.List: %w", err)
	}

	var rows []struct {
		StakeholderID uuid.UUID `db:"stakeholder_id"`
		SubClusterID  uuid.UUID `db:"sub_cluster_id"`
	}
	err = r.db.SelectContext(ctx, &rows,
		"SELECT stakeholder_id, sub_cluster_id FROM stakeholder_sub_clusters ORDER BY sub_cluster_id")
	if err != nil {
		return nil, fmt.Errorf("stakeholderRepo.List memberships: %w", err)
	}
	bySH := make(map[uuid.UUID][]uuid.UUID)
	for _, row := range rows {
		bySH[row.StakeholderID] = append(bySH[row.StakeholderID], row.SubClusterID)
	}
	for i := range out {
		out[i].SubClusterIDs = bySH[out[i].ID]
	}
	return out, nil
}

func (r *stakeholderRepo) Update(ctx context.Context, s *domain.Stakeholder) error {
	s.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE stakeholders SET name = $1, contact_email = $2, status = $3, updated_at = $4
		 WHERE id = $5`,
		s.Name, s.ContactEmail, s.Status, s.UpdatedAt, s.ID)
	if err != nil {
		return fmt.Errorf("stakeholderRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *stakeholderRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.StakeholderStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE stakeholders SET status = $1, updated_at = NOW() WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("stakeholderRepo.SetStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *stakeholderRepo) SetSubClusters(ctx context.Context, id uuid.UUID, subClusterIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("stakeholderRepo.SetSubClusters begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM stakeholder_sub_clusters WHERE stakeholder_id = $1", id); err != nil {
		return fmt.Errorf("stakeholderRepo.SetSubClusters clear: %w", err)
	}
	for _, scID := range subClusterIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO stakeholder_sub_clusters (stakeholder_id, sub_cluster_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			id, scID); err != nil {
			return fmt.Errorf("stakeholderRepo.SetSubClusters insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("stakeholderRepo.SetSubClusters commit: %w", err)
	}
	return nil
}

func (r *stakeholderRepo) loadSubClusters(ctx context.Context, s *domain.Stakeholder) error {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids,
		"SELECT sub_cluster_id FROM stakeholder_sub_clusters WHERE stakeholder_id = $1 ORDER BY sub_cluster_id",
		s.ID)
	if err != nil {
		return fmt.Errorf("stakeholderRepo.loadSubClusters: %w", err)
	}
	s.SubClusterIDs = ids
	return nil
}
