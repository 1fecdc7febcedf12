package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mscp/internal/domain"
)

// MockLocationRepo is a mock implementation of port.LocationRepository.
type MockLocationRepo struct {
	mock.Mock
}

func (m *MockLocationRepo) ListCountries(ctx context.Context) ([]domain.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Country), args.Error(1)
}

func (m *MockLocationRepo) ListProvinces(ctx context.Context) ([]domain.Province, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Province), args.Error(1)
}

func (m *MockLocationRepo) ListDistricts(ctx context.Context) ([]domain.District, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.District), args.Error(1)
}
