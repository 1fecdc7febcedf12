package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"mscp/internal/domain"
)

// MockCalendarRepo is a mock implementation of port.CalendarRepository.
type MockCalendarRepo struct {
	mock.Mock
}

func (m *MockCalendarRepo) CreateYear(ctx context.Context, y *domain.FinancialYear) error {
	args := m.Called(ctx, y)
	return args.Error(0)
}

func (m *MockCalendarRepo) ListYears(ctx context.Context) ([]domain.FinancialYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialYear), args.Error(1)
}

func (m *MockCalendarRepo) GetYear(ctx context.Context, id uuid.UUID) (*domain.FinancialYear, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockCalendarRepo) CreateQuarter(ctx context.Context, q *domain.Quarter) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockCalendarRepo) ListQuartersByYear(ctx context.Context, yearID uuid.UUID) ([]domain.Quarter, error) {
	args := m.Called(ctx, yearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quarter), args.Error(1)
}

func (m *MockCalendarRepo) GetQuarter(ctx context.Context, id uuid.UUID) (*domain.Quarter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quarter), args.Error(1)
}

func (m *MockCalendarRepo) ListQuartersDueBetween(ctx context.Context, from, to time.Time) ([]domain.Quarter, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quarter), args.Error(1)
}
