package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mscp/internal/domain"
	"mscp/internal/middleware"
	"mscp/internal/service"
)

// ActionPlanHandler handles action plan endpoints.
type ActionPlanHandler struct {
	planService service.ActionPlanService
}

// NewActionPlanHandler creates a new ActionPlanHandler.
func NewActionPlanHandler(planService service.ActionPlanService) *ActionPlanHandler {
	return &ActionPlanHandler{planService: planService}
}

// Create handles POST /api/v1/action-plans
func (h *ActionPlanHandler) Create(c *gin.Context) {
	viewer, err := middleware.CurrentUser(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	var input service.CreateActionPlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), viewer, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, plan)
}

// List handles GET /api/v1/action-plans
func (h *ActionPlanHandler) List(c *gin.Context) {
	viewer, err := middleware.CurrentUser(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	plans, err := h.planService.List(c.Request.Context(), viewer)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, plans)
}

// GetByID handles GET /api/v1/action-plans/:id
func (h *ActionPlanHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid action plan ID")
		return
	}

	plan, err := h.planService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, plan)
}

// Update handles PUT /api/v1/action-plans/:id
func (h *ActionPlanHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid action plan ID")
		return
	}

	var input service.UpdateActionPlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	plan, err := h.planService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, plan)
}

// SetStatus handles PATCH /api/v1/action-plans/:id/status
// Focal persons and admins approve or reject pending plans.
func (h *ActionPlanHandler) SetStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid action plan ID")
		return
	}

	var input struct {
		Status domain.ActionPlanStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	switch input.Status {
	case domain.ActionPlanPending, domain.ActionPlanApproved, domain.ActionPlanRejected:
	default:
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "status must be pending, approved or rejected")
		return
	}

	if err := h.planService.SetStatus(c.Request.Context(), id, input.Status); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "status updated"})
}
