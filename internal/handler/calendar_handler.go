package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mscp/internal/domain"
	"mscp/internal/port"
)

// CalendarHandler handles financial year, quarter and location reference
// endpoints. These are thin reads over reference data, so the handler talks
// to the repositories directly.
type CalendarHandler struct {
	calendarRepo port.CalendarRepository
	locationRepo port.LocationRepository
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(calendarRepo port.CalendarRepository, locationRepo port.LocationRepository) *CalendarHandler {
	return &CalendarHandler{calendarRepo: calendarRepo, locationRepo: locationRepo}
}

// CreateYear handles POST /api/v1/years
func (h *CalendarHandler) CreateYear(c *gin.Context) {
	var input struct {
		Name      string    `json:"name" binding:"required"`
		StartDate time.Time `json:"start_date" binding:"required"`
		EndDate   time.Time `json:"end_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if !input.EndDate.After(input.StartDate) {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "end_date must be after start_date")
		return
	}

	year := &domain.FinancialYear{
		Name:      input.Name,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := h.calendarRepo.CreateYear(c.Request.Context(), year); err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, year)
}

// ListYears handles GET /api/v1/years
func (h *CalendarHandler) ListYears(c *gin.Context) {
	years, err := h.calendarRepo.ListYears(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, years)
}

// CreateQuarter handles POST /api/v1/years/:id/quarters
func (h *CalendarHandler) CreateQuarter(c *gin.Context) {
	yearID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid year ID")
		return
	}
	if _, err := h.calendarRepo.GetYear(c.Request.Context(), yearID); err != nil {
		HandleError(c, err)
		return
	}

	var input struct {
		Number        int       `json:"number" binding:"required,min=1,max=4"`
		Name          string    `json:"name" binding:"required"`
		ReportDueDate time.Time `json:"report_due_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	quarter := &domain.Quarter{
		YearID:        yearID,
		Number:        input.Number,
		Name:          input.Name,
		ReportDueDate: input.ReportDueDate,
	}
	if err := h.calendarRepo.CreateQuarter(c.Request.Context(), quarter); err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, quarter)
}

// ListQuarters handles GET /api/v1/years/:id/quarters
func (h *CalendarHandler) ListQuarters(c *gin.Context) {
	yearID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid year ID")
		return
	}

	quarters, err := h.calendarRepo.ListQuartersByYear(c.Request.Context(), yearID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, quarters)
}

// ListCountries handles GET /api/v1/locations/countries
func (h *CalendarHandler) ListCountries(c *gin.Context) {
	countries, err := h.locationRepo.ListCountries(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, countries)
}

// ListProvinces handles GET /api/v1/locations/provinces
func (h *CalendarHandler) ListProvinces(c *gin.Context) {
	provinces, err := h.locationRepo.ListProvinces(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, provinces)
}

// ListDistricts handles GET /api/v1/locations/districts
func (h *CalendarHandler) ListDistricts(c *gin.Context) {
	districts, err := h.locationRepo.ListDistricts(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, districts)
}
