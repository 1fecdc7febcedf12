package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mscp/internal/domain"
	"mscp/internal/middleware"
	"mscp/internal/service"
)

// StakeholderHandler handles stakeholder organization endpoints.
type StakeholderHandler struct {
	stakeholderService service.StakeholderService
}

// NewStakeholderHandler creates a new StakeholderHandler.
func NewStakeholderHandler(stakeholderService service.StakeholderService) *StakeholderHandler {
	return &StakeholderHandler{stakeholderService: stakeholderService}
}

// Create handles POST /api/v1/stakeholders
func (h *StakeholderHandler) Create(c *gin.Context) {
	var input service.CreateStakeholderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	stakeholder, err := h.stakeholderService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, stakeholder)
}

// List handles GET /api/v1/stakeholders
func (h *StakeholderHandler) List(c *gin.Context) {
	viewer, err := middleware.CurrentUser(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	stakeholders, err := h.stakeholderService.List(c.Request.Context(), viewer)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stakeholders)
}

// GetByID handles GET /api/v1/stakeholders/:id
func (h *StakeholderHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid stakeholder ID")
		return
	}

	viewer, err := middleware.CurrentUser(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	stakeholder, err := h.stakeholderService.GetByID(c.Request.Context(), viewer, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stakeholder)
}

// Update handles PUT /api/v1/stakeholders/:id
func (h *StakeholderHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid stakeholder ID")
		return
	}

	viewer, err := middleware.CurrentUser(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	var input service.UpdateStakeholderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	stakeholder, err := h.stakeholderService.Update(c.Request.Context(), viewer, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stakeholder)
}

// SetStatus handles PATCH /api/v1/stakeholders/:id/status
// Stakeholders are never deleted; status toggles preserve reporting history.
func (h *StakeholderHandler) SetStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid stakeholder ID")
		return
	}

	var input struct {
		Status domain.StakeholderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	switch input.Status {
	case domain.StakeholderActive, domain.StakeholderInactive, domain.StakeholderSuspended:
	default:
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "status must be Active, Inactive or Suspended")
		return
	}

	if err := h.stakeholderService.SetStatus(c.Request.Context(), id, input.Status); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "status updated"})
}
