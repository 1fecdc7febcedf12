package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mscp/internal/middleware"
	"mscp/internal/service"
)

// SubClusterHandler handles sub-cluster and KPI category endpoints.
type SubClusterHandler struct {
	subClusterService service.SubClusterService
}

// NewSubClusterHandler creates a new SubClusterHandler.
func NewSubClusterHandler(subClusterService service.SubClusterService) *SubClusterHandler {
	return &SubClusterHandler{subClusterService: subClusterService}
}

// Create handles POST /api/v1/sub-clusters
func (h *SubClusterHandler) Create(c *gin.Context) {
	var input service.CreateSubClusterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	sc, err := h.subClusterService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, sc)
}

// List handles GET /api/v1/sub-clusters
// Returns the caller's visible clusters, with the "All Sub-Clusters" sentinel
// prepended for roles that can see more than one.
func (h *SubClusterHandler) List(c *gin.Context) {
	viewer, err := middleware.CurrentUser(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	subClusters, err := h.subClusterService.ListVisible(c.Request.Context(), viewer)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, subClusters)
}

// GetByID handles GET /api/v1/sub-clusters/:id
func (h *SubClusterHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid sub-cluster ID")
		return
	}

	sc, err := h.subClusterService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sc)
}

// Update handles PUT /api/v1/sub-clusters/:id
func (h *SubClusterHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid sub-cluster ID")
		return
	}

	var input service.UpdateSubClusterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	sc, err := h.subClusterService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sc)
}

// Delete handles DELETE /api/v1/sub-clusters/:id
func (h *SubClusterHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid sub-cluster ID")
		return
	}

	if err := h.subClusterService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "sub-cluster deleted"})
}

// CreateCategory handles POST /api/v1/kpi-categories
func (h *SubClusterHandler) CreateCategory(c *gin.Context) {
	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	cat, err := h.subClusterService.CreateCategory(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, cat)
}

// ListCategories handles GET /api/v1/kpi-categories?sub_cluster_id=
func (h *SubClusterHandler) ListCategories(c *gin.Context) {
	subClusterID := uuid.Nil
	if raw := c.Query("sub_cluster_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid sub-cluster ID")
			return
		}
		subClusterID = id
	}

	cats, err := h.subClusterService.ListCategories(c.Request.Context(), subClusterID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, cats)
}

// UpdateCategory handles PUT /api/v1/kpi-categories/:id
func (h *SubClusterHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid category ID")
		return
	}

	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	cat, err := h.subClusterService.UpdateCategory(c.Request.Context(), id, input.Name)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, cat)
}

// DeleteCategory handles DELETE /api/v1/kpi-categories/:id
func (h *SubClusterHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid category ID")
		return
	}

	if err := h.subClusterService.DeleteCategory(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "category deleted"})
}
