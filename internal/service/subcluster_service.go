package service

import (
	"context"

	"github.com/google/uuid"

	"mscp/internal/domain"
	"mscp/internal/port"
	"mscp/internal/scope"
)

// CreateSubClusterInput is the DTO for creating a sub-cluster.
type CreateSubClusterInput struct {
	Name          string     `json:"name" binding:"required"`
	FocalPersonID *uuid.UUID `json:"focal_person_id"`
}

// UpdateSubClusterInput is the DTO for updating a sub-cluster.
type UpdateSubClusterInput struct {
	Name          *string    `json:"name"`
	FocalPersonID *uuid.UUID `json:"focal_person_id"`
}

// CategoryInput is the DTO for creating or renaming a KPI category.
type CategoryInput struct {
	SubClusterID uuid.UUID `json:"sub_cluster_id" binding:"required"`
	Name         string    `json:"name" binding:"required"`
}

// SubClusterService defines the sub-cluster and KPI category contract.
type SubClusterService interface {
	Create(ctx context.Context, input CreateSubClusterInput) (*domain.SubCluster, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SubCluster, error)
	ListVisible(ctx context.Context, viewer *domain.User) ([]domain.SubCluster, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateSubClusterInput) (*domain.SubCluster, error)
	Delete(ctx context.Context, id uuid.UUID) error

	CreateCategory(ctx context.Context, input CategoryInput) (*domain.KpiCategory, error)
	ListCategories(ctx context.Context, subClusterID uuid.UUID) ([]domain.KpiCategory, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*domain.KpiCategory, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type subClusterService struct {
	repo     port.SubClusterRepository
	userRepo port.UserRepository
}

// NewSubClusterService creates a new SubClusterService implementation.
func NewSubClusterService(repo port.SubClusterRepository, userRepo port.UserRepository) SubClusterService {
	return &subClusterService{repo: repo, userRepo: userRepo}
}

func (s *subClusterService) Create(ctx context.Context, input CreateSubClusterInput) (*domain.SubCluster, error) {
	sc := &domain.SubCluster{
		Name:          input.Name,
		FocalPersonID: input.FocalPersonID,
	}
	if err := s.repo.Create(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *subClusterService) GetByID(ctx context.Context, id uuid.UUID) (*domain.SubCluster, error) {
	return s.repo.GetByID(ctx, id)
}

// ListVisible returns the sub-clusters the viewer may see, with the
// "All Sub-Clusters" sentinel prepended for admins and focal persons who can
// see more than one.
func (s *subClusterService) ListVisible(ctx context.Context, viewer *domain.User) ([]domain.SubCluster, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	member := make(map[uuid.UUID]bool, len(viewer.SubClusterIDs))
	for _, id := range viewer.SubClusterIDs {
		member[id] = true
	}
	memberships := make([]domain.SubCluster, 0, len(viewer.SubClusterIDs))
	for _, sc := range all {
		if member[sc.ID] {
			memberships = append(memberships, sc)
		}
	}

	return scope.SubClustersVisibleTo(viewer.Role, memberships, all), nil
}

func (s *subClusterService) Update(ctx context.Context, id uuid.UUID, input UpdateSubClusterInput) (*domain.SubCluster, error) {
	sc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		sc.Name = *input.Name
	}
	if input.FocalPersonID != nil {
		if _, err := s.userRepo.GetByID(ctx, *input.FocalPersonID); err != nil {
			return nil, err
		}
		sc.FocalPersonID = input.FocalPersonID
	}

	if err := s.repo.Update(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *subClusterService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *subClusterService) CreateCategory(ctx context.Context, input CategoryInput) (*domain.KpiCategory, error) {
	if _, err := s.repo.GetByID(ctx, input.SubClusterID); err != nil {
		return nil, err
	}
	cat := &domain.KpiCategory{
		SubClusterID: input.SubClusterID,
		Name:         input.Name,
	}
	if err := s.repo.CreateCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// ListCategories returns the categories of one sub-cluster, or every category
// when subClusterID is uuid.Nil.
func (s *subClusterService) ListCategories(ctx context.Context, subClusterID uuid.UUID) ([]domain.KpiCategory, error) {
	all, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if subClusterID == uuid.Nil {
		return all, nil
	}
	out := make([]domain.KpiCategory, 0, len(all))
	for _, cat := range all {
		if cat.SubClusterID == subClusterID {
			out = append(out, cat)
		}
	}
	return out, nil
}

func (s *subClusterService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*domain.KpiCategory, error) {
	all, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, cat := range all {
		if cat.ID == id {
			cat.Name = name
			if err := s.repo.UpdateCategory(ctx, &cat); err != nil {
				return nil, err
			}
			return &cat, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *subClusterService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCategory(ctx, id)
}
