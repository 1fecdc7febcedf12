package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"mscp/internal/domain"
)

// MockActionPlanRepo is a mock implementation of port.ActionPlanRepository.
type MockActionPlanRepo struct {
	mock.Mock
}

func (m *MockActionPlanRepo) Create(ctx context.Context, plan *domain.ActionPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockActionPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ActionPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActionPlan), args.Error(1)
}

func (m *MockActionPlanRepo) List(ctx context.Context) ([]domain.ActionPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActionPlan), args.Error(1)
}

func (m *MockActionPlanRepo) ListByStakeholder(ctx context.Context, stakeholderID uuid.UUID) ([]domain.ActionPlan, error) {
	args := m.Called(ctx, stakeholderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActionPlan), args.Error(1)
}

func (m *MockActionPlanRepo) Update(ctx context.Context, plan *domain.ActionPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockActionPlanRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.ActionPlanStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockActionPlanRepo) CreateKpiPlan(ctx context.Context, kp *domain.KpiPlan) error {
	args := m.Called(ctx, kp)
	return args.Error(0)
}

func (m *MockActionPlanRepo) ListKpiPlans(ctx context.Context, actionPlanID uuid.UUID) ([]domain.KpiPlan, error) {
	args := m.Called(ctx, actionPlanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KpiPlan), args.Error(1)
}

func (m *MockActionPlanRepo) GetKpiPlan(ctx context.Context, id uuid.UUID) (*domain.KpiPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KpiPlan), args.Error(1)
}
