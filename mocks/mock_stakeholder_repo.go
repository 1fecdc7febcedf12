package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"mscp/internal/domain"
)

// MockStakeholderRepo is a mock implementation of port.StakeholderRepository.
type MockStakeholderRepo struct {
	mock.Mock
}

func (m *MockStakeholderRepo) Create(ctx context.Context, s *domain.Stakeholder) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStakeholderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Stakeholder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stakeholder), args.Error(1)
}

func (m *MockStakeholderRepo) List(ctx context.Context) ([]domain.Stakeholder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Stakeholder), args.Error(1)
}

func (m *MockStakeholderRepo) Update(ctx context.Context, s *domain.Stakeholder) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStakeholderRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.StakeholderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockStakeholderRepo) SetSubClusters(ctx context.Context, id uuid.UUID, subClusterIDs []uuid.UUID) error {
	args := m.Called(ctx, id, subClusterIDs)
	return args.Error(0)
}
