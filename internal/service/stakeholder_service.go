package service

import (
	"context"

	"github.com/google/uuid"

	"mscp/internal/access"
	"mscp/internal/domain"
	"mscp/internal/port"
)

// CreateStakeholderInput is the DTO for registering a partner organization.
type CreateStakeholderInput struct {
	Name          string      `json:"name" binding:"required"`
	ContactEmail  string      `json:"contact_email" binding:"omitempty,email"`
	SubClusterIDs []uuid.UUID `json:"sub_cluster_ids" binding:"required,min=1"`
}

// UpdateStakeholderInput is the DTO for updating a partner organization.
type UpdateStakeholderInput struct {
	Name          *string                   `json:"name"`
	ContactEmail  *string                   `json:"contact_email"`
	Status        *domain.StakeholderStatus `json:"status"`
	SubClusterIDs *[]uuid.UUID              `json:"sub_cluster_ids"`
}

// StakeholderService defines the stakeholder management contract.
// Stakeholders are never deleted; deactivation preserves reporting history.
type StakeholderService interface {
	Create(ctx context.Context, input CreateStakeholderInput) (*domain.Stakeholder, error)
	GetByID(ctx context.Context, viewer *domain.User, id uuid.UUID) (*domain.Stakeholder, error)
	List(ctx context.Context, viewer *domain.User) ([]domain.Stakeholder, error)
	Update(ctx context.Context, viewer *domain.User, id uuid.UUID, input UpdateStakeholderInput) (*domain.Stakeholder, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.StakeholderStatus) error
}

type stakeholderService struct {
	repo port.StakeholderRepository
}

// NewStakeholderService creates a new StakeholderService implementation.
func NewStakeholderService(repo port.StakeholderRepository) StakeholderService {
	return &stakeholderService{repo: repo}
}

func (s *stakeholderService) Create(ctx context.Context, input CreateStakeholderInput) (*domain.Stakeholder, error) {
	stakeholder := &domain.Stakeholder{
		Name:          input.Name,
		ContactEmail:  input.ContactEmail,
		Status:        domain.StakeholderActive,
		SubClusterIDs: input.SubClusterIDs,
	}
	if err := s.repo.Create(ctx, stakeholder); err != nil {
		return nil, err
	}
	if err := s.repo.SetSubClusters(ctx, stakeholder.ID, input.SubClusterIDs); err != nil {
		return nil, err
	}
	return stakeholder, nil
}

func (s *stakeholderService) GetByID(ctx context.Context, viewer *domain.User, id uuid.UUID) (*domain.Stakeholder, error) {
	if !access.CanManageStakeholder(viewer.Role, derefID(viewer.StakeholderID), id) {
		return nil, domain.ErrForbidden
	}
	return s.repo.GetByID(ctx, id)
}

// List scopes the directory by role: admins see every organization, focal
// persons see organizations sharing a sub-cluster with them, stakeholder
// accounts see only their own.
func (s *stakeholderService) List(ctx context.Context, viewer *domain.User) ([]domain.Stakeholder, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	switch viewer.Role {
	case domain.RoleAdmin:
		return all, nil
	case domain.RoleFocalPerson:
		member := make(map[uuid.UUID]bool, len(viewer.SubClusterIDs))
		for _, id := range viewer.SubClusterIDs {
			member[id] = true
		}
		out := make([]domain.Stakeholder, 0, len(all))
		for _, st := range all {
			for _, scID := range st.SubClusterIDs {
				if member[scID] {
					out = append(out, st)
					break
				}
			}
		}
		return out, nil
	default:
		if viewer.StakeholderID == nil {
			return []domain.Stakeholder{}, nil
		}
		for _, st := range all {
			if st.ID == *viewer.StakeholderID {
				return []domain.Stakeholder{st}, nil
			}
		}
		return []domain.Stakeholder{}, nil
	}
}

func (s *stakeholderService) Update(ctx context.Context, viewer *domain.User, id uuid.UUID, input UpdateStakeholderInput) (*domain.Stakeholder, error) {
	if !access.CanManageStakeholder(viewer.Role, derefID(viewer.StakeholderID), id) {
		return nil, domain.ErrForbidden
	}

	stakeholder, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		stakeholder.Name = *input.Name
	}
	if input.ContactEmail != nil {
		stakeholder.ContactEmail = *input.ContactEmail
	}
	if input.Status != nil {
		stakeholder.Status = *input.Status
	}

	if err := s.repo.Update(ctx, stakeholder); err != nil {
		return nil, err
	}
	if input.SubClusterIDs != nil {
		if err := s.repo.SetSubClusters(ctx, id, *input.SubClusterIDs); err != nil {
			return nil, err
		}
		stakeholder.SubClusterIDs = *input.SubClusterIDs
	}
	return stakeholder, nil
}

func (s *stakeholderService) SetStatus(ctx context.Context, id uuid.UUID, status domain.StakeholderStatus) error {
	return s.repo.SetStatus(ctx, id, status)
}

func derefID(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
