package service

import (
	"context"

	"github.com/google/uuid"

	"mscp/internal/domain"
	"mscp/internal/port"
	"mscp/internal/scope"
)

// KpiPlanInput fixes the planned value for one KPI inside an action plan.
type KpiPlanInput struct {
	KpiID        uuid.UUID `json:"kpi_id" binding:"required"`
	PlannedValue float64   `json:"planned_value" binding:"required"`
}

// CreateActionPlanInput is the DTO for creating an action plan.
type CreateActionPlanInput struct {
	Title         string           `json:"title" binding:"required"`
	YearID        uuid.UUID        `json:"year_id" binding:"required"`
	StakeholderID uuid.UUID        `json:"stakeholder_id" binding:"required"`
	SubClusterID  uuid.UUID        `json:"sub_cluster_id" binding:"required"`
	PlanLevel     domain.PlanLevel `json:"plan_level" binding:"required"`
	CountryID     *uuid.UUID       `json:"country_id"`
	ProvinceID    *uuid.UUID       `json:"province_id"`
	DistrictID    *uuid.UUID       `json:"district_id"`
	KpiPlans      []KpiPlanInput   `json:"kpi_plans" binding:"required,min=1,dive"`
}

// UpdateActionPlanInput is the DTO for updating an action plan.
type UpdateActionPlanInput struct {
	Title      *string           `json:"title"`
	PlanLevel  *domain.PlanLevel `json:"plan_level"`
	CountryID  *uuid.UUID        `json:"country_id"`
	ProvinceID *uuid.UUID        `json:"province_id"`
	DistrictID *uuid.UUID        `json:"district_id"`
}

// ActionPlanView is an action plan with its KPI plan lines.
type ActionPlanView struct {
	domain.ActionPlan
	KpiPlans []domain.KpiPlan `json:"kpi_plans"`
}

// ActionPlanService defines the action plan contract.
type ActionPlanService interface {
	Create(ctx context.Context, viewer *domain.User, input CreateActionPlanInput) (*ActionPlanView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ActionPlanView, error)
	List(ctx context.Context, viewer *domain.User) ([]domain.ActionPlan, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateActionPlanInput) (*domain.ActionPlan, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.ActionPlanStatus) error
}

type actionPlanService struct {
	planRepo        port.ActionPlanRepository
	stakeholderRepo port.StakeholderRepository
	calendarRepo    port.CalendarRepository
	locationRepo    port.LocationRepository
	kpiRepo         port.KpiRepository
}

// NewActionPlanService creates a new ActionPlanService implementation.
func NewActionPlanService(
	planRepo port.ActionPlanRepository,
	stakeholderRepo port.StakeholderRepository,
	calendarRepo port.CalendarRepository,
	locationRepo port.LocationRepository,
	kpiRepo port.KpiRepository,
) ActionPlanService {
	return &actionPlanService{
		planRepo:        planRepo,
		stakeholderRepo: stakeholderRepo,
		calendarRepo:    calendarRepo,
		locationRepo:    locationRepo,
		kpiRepo:         kpiRepo,
	}
}

func (s *actionPlanService) Create(ctx context.Context, viewer *domain.User, input CreateActionPlanInput) (*ActionPlanView, error) {
	if !domain.ValidPlanLevels[input.PlanLevel] {
		return nil, domain.ErrInvalidPlanLevel
	}

	// Stakeholder accounts may only plan on behalf of their own organization.
	if viewer.StakeholderID != nil && *viewer.StakeholderID != input.StakeholderID {
		return nil, domain.ErrForbidden
	}

	stakeholder, err := s.stakeholderRepo.GetByID(ctx, input.StakeholderID)
	if err != nil {
		return nil, err
	}
	if stakeholder.Status != domain.StakeholderActive {
		return nil, domain.ErrStakeholderInactive
	}
	if _, err := s.calendarRepo.GetYear(ctx, input.YearID); err != nil {
		return nil, err
	}

	if err := s.validateLocation(ctx, input.PlanLevel, input.CountryID, input.ProvinceID, input.DistrictID); err != nil {
		return nil, err
	}

	for _, kp := range input.KpiPlans {
		item, err := s.kpiRepo.GetByID(ctx, kp.KpiID)
		if err != nil {
			return nil, err
		}
		if item.SubClusterID != input.SubClusterID {
			return nil, domain.NewValidationError("kpi_plans", "KPI belongs to a different sub-cluster")
		}
	}

	plan := &domain.ActionPlan{
		Title:         input.Title,
		YearID:        input.YearID,
		StakeholderID: input.StakeholderID,
		SubClusterID:  input.SubClusterID,
		PlanLevel:     input.PlanLevel,
		CountryID:     input.CountryID,
		ProvinceID:    input.ProvinceID,
		DistrictID:    input.DistrictID,
		Status:        domain.ActionPlanPending,
		CreatedBy:     viewer.ID,
	}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}

	kpiPlans := make([]domain.KpiPlan, 0, len(input.KpiPlans))
	for _, kp := range input.KpiPlans {
		line := &domain.KpiPlan{
			ActionPlanID: plan.ID,
			KpiID:        kp.KpiID,
			PlannedValue: kp.PlannedValue,
		}
		if err := s.planRepo.CreateKpiPlan(ctx, line); err != nil {
			return nil, err
		}
		kpiPlans = append(kpiPlans, *line)
	}

	return &ActionPlanView{ActionPlan: *plan, KpiPlans: kpiPlans}, nil
}

func (s *actionPlanService) GetByID(ctx context.Context, id uuid.UUID) (*ActionPlanView, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	kpiPlans, err := s.planRepo.ListKpiPlans(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ActionPlanView{ActionPlan: *plan, KpiPlans: kpiPlans}, nil
}

// List scopes plans by role: stakeholder accounts see their own
// organization's plans, everyone else sees all of them.
func (s *actionPlanService) List(ctx context.Context, viewer *domain.User) ([]domain.ActionPlan, error) {
	if viewer.StakeholderID != nil {
		return s.planRepo.ListByStakeholder(ctx, *viewer.StakeholderID)
	}
	return s.planRepo.List(ctx)
}

func (s *actionPlanService) Update(ctx context.Context, id uuid.UUID, input UpdateActionPlanInput) (*domain.ActionPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		plan.Title = *input.Title
	}
	if input.PlanLevel != nil {
		if !domain.ValidPlanLevels[*input.PlanLevel] {
			return nil, domain.ErrInvalidPlanLevel
		}
		plan.PlanLevel = *input.PlanLevel
	}
	if input.CountryID != nil {
		plan.CountryID = input.CountryID
	}
	if input.ProvinceID != nil {
		plan.ProvinceID = input.ProvinceID
	}
	if input.DistrictID != nil {
		plan.DistrictID = input.DistrictID
	}

	if err := s.validateLocation(ctx, plan.PlanLevel, plan.CountryID, plan.ProvinceID, plan.DistrictID); err != nil {
		return nil, err
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *actionPlanService) SetStatus(ctx context.Context, id uuid.UUID, status domain.ActionPlanStatus) error {
	if _, err := s.planRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.planRepo.SetStatus(ctx, id, status)
}

// validateLocation checks the location id matching the plan level is present
// and resolves against the geographic reference data.
func (s *actionPlanService) validateLocation(ctx context.Context, level domain.PlanLevel, countryID, provinceID, districtID *uuid.UUID) error {
	locations, err := s.locations(ctx)
	if err != nil {
		return err
	}

	switch level {
	case domain.PlanLevelCountry:
		if countryID == nil || !locations.HasCountry(*countryID) {
			return domain.NewValidationError("country_id", "is required for country-level plans")
		}
	case domain.PlanLevelProvince:
		if provinceID == nil || !locations.HasProvince(*provinceID) {
			return domain.NewValidationError("province_id", "is required for province-level plans")
		}
	case domain.PlanLevelDistrict:
		if districtID == nil || !locations.HasDistrict(*districtID) {
			return domain.NewValidationError("district_id", "is required for district-level plans")
		}
	}
	return nil
}

func (s *actionPlanService) locations(ctx context.Context) (*scope.Locations, error) {
	countries, err := s.locationRepo.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	provinces, err := s.locationRepo.ListProvinces(ctx)
	if err != nil {
		return nil, err
	}
	districts, err := s.locationRepo.ListDistricts(ctx)
	if err != nil {
		return nil, err
	}
	return scope.NewLocations(countries, provinces, districts), nil
}
