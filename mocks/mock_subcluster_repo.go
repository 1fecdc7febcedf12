package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"mscp/internal/domain"
)

// MockSubClusterRepo is a mock implementation of port.SubClusterRepository.
type MockSubClusterRepo struct {
	mock.Mock
}

func (m *MockSubClusterRepo) Create(ctx context.Context, sc *domain.SubCluster) error {
	args := m.Called(ctx, sc)
	return args.Error(0)
}

func (m *MockSubClusterRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SubCluster, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubCluster), args.Error(1)
}

func (m *MockSubClusterRepo) List(ctx context.Context) ([]domain.SubCluster, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubCluster), args.Error(1)
}

func (m *MockSubClusterRepo) Update(ctx context.Context, sc *domain.SubCluster) error {
	args := m.Called(ctx, sc)
	return args.Error(0)
}

func (m *MockSubClusterRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubClusterRepo) CreateCategory(ctx context.Context, cat *domain.KpiCategory) error {
	args := m.Called(ctx, cat)
	return args.Error(0)
}

func (m *MockSubClusterRepo) ListCategories(ctx context.Context) ([]domain.KpiCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KpiCategory), args.Error(1)
}

func (m *MockSubClusterRepo) UpdateCategory(ctx context.Context, cat *domain.KpiCategory) error {
	args := m.Called(ctx, cat)
	return args.Error(0)
}

func (m *MockSubClusterRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
