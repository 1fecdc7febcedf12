package service

import (
	"context"

	"github.com/google/uuid"

	"mscp/internal/access"
	"mscp/internal/csvexport"
	"mscp/internal/domain"
	"mscp/internal/kpi"
	"mscp/internal/port"
	"mscp/internal/scope"
)

// CreateKpiInput is the DTO for creating a KPI item.
type CreateKpiInput struct {
	SubClusterID   uuid.UUID `json:"sub_cluster_id" binding:"required"`
	CategoryID     uuid.UUID `json:"category_id" binding:"required"`
	Title          string    `json:"title" binding:"required"`
	Description    string    `json:"description"`
	CurrentValue   float64   `json:"current_value"`
	TargetValue    float64   `json:"target_value"`
	Unit           string    `json:"unit"`
	Disaggregation []string  `json:"disaggregation"`
}

// UpdateKpiInput is the DTO for updating a KPI item.
type UpdateKpiInput struct {
	CategoryID     *uuid.UUID `json:"category_id"`
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	CurrentValue   *float64   `json:"current_value"`
	TargetValue    *float64   `json:"target_value"`
	Unit           *string    `json:"unit"`
	Disaggregation *[]string  `json:"disaggregation"`
}

// KpiFilterInput holds the optional catalog query parameters.
type KpiFilterInput struct {
	SubClusterName string `form:"sub_cluster"`
	CategoryID     string `form:"category_id"`
	Search         string `form:"search"`
}

// KpiView is a catalog item with resolved names and computed progress.
type KpiView struct {
	domain.KpiItem
	SubClusterName string  `json:"sub_cluster_name"`
	CategoryName   string  `json:"category_name"`
	Progress       float64 `json:"progress"`
}

// KpiService defines the KPI catalog contract.
type KpiService interface {
	Create(ctx context.Context, viewer *domain.User, input CreateKpiInput) (*domain.KpiItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*KpiView, error)
	List(ctx context.Context, filter KpiFilterInput) ([]KpiView, error)
	Update(ctx context.Context, viewer *domain.User, id uuid.UUID, input UpdateKpiInput) (*domain.KpiItem, error)
	Delete(ctx context.Context, viewer *domain.User, id uuid.UUID) error
	ExportRows(ctx context.Context, filter KpiFilterInput) ([]csvexport.KpiRow, error)
}

type kpiService struct {
	kpiRepo        port.KpiRepository
	subClusterRepo port.SubClusterRepository
}

// NewKpiService creates a new KpiService implementation.
func NewKpiService(kpiRepo port.KpiRepository, subClusterRepo port.SubClusterRepository) KpiService {
	return &kpiService{kpiRepo: kpiRepo, subClusterRepo: subClusterRepo}
}

func (s *kpiService) Create(ctx context.Context, viewer *domain.User, input CreateKpiInput) (*domain.KpiItem, error) {
	if !access.CanManageKPI(viewer.Role, viewer.SubClusterIDs, input.SubClusterID) {
		return nil, domain.ErrForbidden
	}
	if _, err := s.subClusterRepo.GetByID(ctx, input.SubClusterID); err != nil {
		return nil, err
	}

	item := &domain.KpiItem{
		SubClusterID:   input.SubClusterID,
		CategoryID:     input.CategoryID,
		Title:          input.Title,
		Description:    input.Description,
		CurrentValue:   input.CurrentValue,
		TargetValue:    input.TargetValue,
		Unit:           input.Unit,
		Disaggregation: input.Disaggregation,
	}
	if err := s.kpiRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *kpiService) GetByID(ctx context.Context, id uuid.UUID) (*KpiView, error) {
	item, err := s.kpiRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resolver, err := s.resolver(ctx)
	if err != nil {
		return nil, err
	}
	view := toView(*item, resolver)
	return &view, nil
}

func (s *kpiService) List(ctx context.Context, filter KpiFilterInput) ([]KpiView, error) {
	items, resolver, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	views := make([]KpiView, 0, len(items))
	for _, item := range items {
		views = append(views, toView(item, resolver))
	}
	return views, nil
}

func (s *kpiService) Update(ctx context.Context, viewer *domain.User, id uuid.UUID, input UpdateKpiInput) (*domain.KpiItem, error) {
	item, err := s.kpiRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanManageKPI(viewer.Role, viewer.SubClusterIDs, item.SubClusterID) {
		return nil, domain.ErrForbidden
	}

	if input.CategoryID != nil {
		item.CategoryID = *input.CategoryID
	}
	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.CurrentValue != nil {
		item.CurrentValue = *input.CurrentValue
	}
	if input.TargetValue != nil {
		item.TargetValue = *input.TargetValue
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.Disaggregation != nil {
		item.Disaggregation = *input.Disaggregation
	}

	if err := s.kpiRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *kpiService) Delete(ctx context.Context, viewer *domain.User, id uuid.UUID) error {
	item, err := s.kpiRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanManageKPI(viewer.Role, viewer.SubClusterIDs, item.SubClusterID) {
		return domain.ErrForbidden
	}
	return s.kpiRepo.Delete(ctx, id)
}

func (s *kpiService) ExportRows(ctx context.Context, filter KpiFilterInput) ([]csvexport.KpiRow, error) {
	items, resolver, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	rows := make([]csvexport.KpiRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, csvexport.KpiRow{
			SubClusterName: resolver.SubClusterName(item.SubClusterID),
			CategoryName:   resolver.CategoryName(item.CategoryID),
			Item:           item,
		})
	}
	return rows, nil
}

func (s *kpiService) filtered(ctx context.Context, filter KpiFilterInput) ([]domain.KpiItem, *scope.Resolver, error) {
	items, err := s.kpiRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	resolver, err := s.resolver(ctx)
	if err != nil {
		return nil, nil, err
	}

	f := kpi.Filter{
		SubClusterName: filter.SubClusterName,
		SearchText:     filter.Search,
	}
	if filter.CategoryID != "" {
		catID, err := uuid.Parse(filter.CategoryID)
		if err != nil {
			return nil, nil, domain.NewValidationError("category_id", "is not a valid id")
		}
		f.CategoryID = catID
	}

	return kpi.FilterItems(items, f, resolver), resolver, nil
}

func (s *kpiService) resolver(ctx context.Context) (*scope.Resolver, error) {
	subClusters, err := s.subClusterRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.subClusterRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return scope.NewResolver(subClusters, categories), nil
}

func toView(item domain.KpiItem, r *scope.Resolver) KpiView {
	return KpiView{
		KpiItem:        item,
		SubClusterName: r.SubClusterName(item.SubClusterID),
		CategoryName:   r.CategoryName(item.CategoryID),
		Progress:       kpi.Progress(item.CurrentValue, item.TargetValue),
	}
}
