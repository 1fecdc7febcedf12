package port

import (
	"context"

	"github.com/google/uuid"

	"mscp/internal/domain"
)

// UserRepository defines the contract for user persistence. Sub-cluster
// memberships live in a join table and are loaded with every user.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, userID uuid.UUID) error
	SetSubClusters(ctx context.Context, userID uuid.UUID, subClusterIDs []uuid.UUID) error
	ListByStakeholder(ctx context.Context, stakeholderID uuid.UUID) ([]domain.User, error)
}

// StakeholderRepository defines the contract for stakeholder persistence.
// Stakeholders are never deleted; status is toggled instead.
type StakeholderRepository interface {
	Create(ctx context.Context, s *domain.Stakeholder) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Stakeholder, error)
	List(ctx context.Context) ([]domain.Stakeholder, error)
	Update(ctx context.Context, s *domain.Stakeholder) error
	SetStatus(ctx context.Context, id uuid.UUID, status domain.StakeholderStatus) error
	SetSubClusters(ctx context.Context, id uuid.UUID, subClusterIDs []uuid.UUID) error
}

// SubClusterRepository defines the contract for sub-cluster and KPI category
// reference data.
type SubClusterRepository interface {
	Create(ctx context.Context, sc *domain.SubCluster) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SubCluster, error)
	List(ctx context.Context) ([]domain.SubCluster, error)
	Update(ctx context.Context, sc *domain.SubCluster) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateCategory(ctx context.Context, cat *domain.KpiCategory) error
	ListCategories(ctx context.Context) ([]domain.KpiCategory, error)
	UpdateCategory(ctx context.Context, cat *domain.KpiCategory) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// LocationRepository provides the static geographic hierarchy.
type LocationRepository interface {
	ListCountries(ctx context.Context) ([]domain.Country, error)
	ListProvinces(ctx context.Context) ([]domain.Province, error)
	ListDistricts(ctx context.Context) ([]domain.District, error)
}
