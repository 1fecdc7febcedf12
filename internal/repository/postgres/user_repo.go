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

type userRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new PostgreSQL-backed UserRepository.
func NewUserRepo(db *sqlx.DB) port.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = uuid.New()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `INSERT INTO users (id, username, email, password_hash, full_name, role, status,
		stakeholder_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.FullName,
		user.Role, user.Status, user.StakeholderID, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return domain.ErrDuplicateEmail
		}
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateUsername
		}
		return fmt.Errorf("userRepo.Create: %w", err)
	}

	if len(user.SubClusterIDs) > 0 {
		return r.SetSubClusters(ctx, user.ID, user.SubClusterIDs)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}
	if err := r.loadSubClusters(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE email = $1", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByEmail: %w", err)
	}
	if err := r.loadSubClusters(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.SelectContext(ctx, &users, "SELECT * FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("userRepo.List: %w", err)
	}
	if err := r.loadAllSubClusters(ctx, users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) ListByStakeholder(ctx context.Context, stakeholderID uuid.UUID) ([]domain.User, error) {
	var users []domain.User
	err := r.db.SelectContext(ctx, &users,
		"SELECT * FROM users WHERE stakeholder_id = $1 ORDER BY created_at DESC", stakeholderID)
	if err != nil {
		return nil, fmt.Errorf("userRepo.ListByStakeholder: %w", err)
	}
	return users, nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	query := `UPDATE users SET username = $1, email = $2, full_name = $3, role = $4,
		status = $5, stakeholder_id = $6, password_hash = $7, updated_at = $8
		WHERE id = $9`
	result, err := r.db.ExecContext(ctx, query,
		user.Username, user.Email, user.FullName, user.Role,
		user.Status, user.StakeholderID, user.PasswordHash, user.UpdatedAt, user.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("userRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", userID)
	if err != nil {
		return fmt.Errorf("userRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) SetSubClusters(ctx context.Context, userID uuid.UUID, subClusterIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("userRepo.SetSubClusters begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM user_sub_clusters WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("userRepo.SetSubClusters clear: %w", err)
	}
	for _, scID := range subClusterIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO user_sub_clusters (user_id, sub_cluster_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			userID, scID); err != nil {
			return fmt.Errorf("userRepo.SetSubClusters insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("userRepo.SetSubClusters commit: %w", err)
	}
	return nil
}

func (r *userRepo) loadSubClusters(ctx context.Context, user *domain.User) error {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids,
		"SELECT sub_cluster_id FROM user_sub_clusters WHERE user_id = $1 ORDER BY sub_cluster_id",
		user.ID)
	if err != nil {
		return fmt.Errorf("userRepo.loadSubClusters: %w", err)
	}
	user.SubClusterIDs = ids
	return nil
}

type userSubClusterRow struct {
	UserID       uuid.UUID `db:"user_id"`
	SubClusterID uuid.UUID `db:"sub_cluster_id"`
}

func (r *userRepo) loadAllSubClusters(ctx context.Context, users []domain.User) error {
	if len(users) == 0 {
		return nil
	}
	var rows []userSubClusterRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT user_id, sub_cluster_id FROM user_sub_clusters ORDER BY sub_cluster_id")
	if err != nil {
		return fmt.Errorf("userRepo.loadAllSubClusters: %w", err)
	}
	byUser := make(map[uuid.UUID][]uuid.UUID, len(users))
	for _, row := range rows {
		byUser[row.UserID] = append(byUser[row.UserID], row.SubClusterID)
	}
	for i := range users {
		users[i].SubClusterIDs = byUser[users[i].ID]
	}
	return nil
}
