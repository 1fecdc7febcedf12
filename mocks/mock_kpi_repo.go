package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"mscp/internal/domain"
)

// MockKpiRepo is a mock implementation of port.KpiRepository.
type MockKpiRepo struct {
	mock.Mock
}

func (m *MockKpiRepo) Create(ctx context.Context, item *domain.KpiItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockKpiRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.KpiItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KpiItem), args.Error(1)
}

func (m *MockKpiRepo) List(ctx context.Context) ([]domain.KpiItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KpiItem), args.Error(1)
}

func (m *MockKpiRepo) Update(ctx context.Context, item *domain.KpiItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockKpiRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
