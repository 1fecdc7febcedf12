package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"mscp/internal/domain"
	"mscp/internal/port"
)

type locationRepo struct {
	db *sqlx.DB
}

// NewLocationRepo creates a new PostgreSQL-backed LocationRepository.
func NewLocationRepo(db *sqlx.DB) port.LocationRepository {
	return &locationRepo{db: db}
}

func (r *locationRepo) ListCountries(ctx context.Context) ([]domain.Country, error) {
	var out []domain.Country
	err := r.db.SelectContext(ctx, &out, "SELECT * FROM countries ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("locationRepo.ListCountries: %w", err)
	}
	return out, nil
}

func (r *locationRepo) ListProvinces(ctx context.Context) ([]domain.Province, error) {
	var out []domain.Province
	err := r.db.SelectContext(ctx, &out, "SELECT * FROM provinces ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("locationRepo.ListProvinces: %w", err)
	}
	return out, nil
}

func (r *locationRepo) ListDistricts(ctx context.Context) ([]domain.District, error) {
	var out []domain.District
	err := r.db.SelectContext(ctx, &out, "SELECT * FROM districts ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("locationRepo.ListDistricts: %w", err)
	}
	return out, nil
}
