package port

import (
	"context"

	"github.com/google/uuid"

	"mscp/internal/domain"
)

// KpiRepository defines the contract for KPI item persistence.
type KpiRepository interface {
	Create(ctx context.Context, item *domain.KpiItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.KpiItem, error)
	List(ctx context.Context) ([]domain.KpiItem, error)
	Update(ctx context.Context, item *domain.KpiItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}
