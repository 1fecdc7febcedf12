package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mscp/internal/csvexport"
	"mscp/internal/middleware"
	"mscp/internal/service"
)

// KpiHandler handles KPI catalog endpoints.
type KpiHandler struct {
	kpiService service.KpiService
}

// NewKpiHandler creates a new KpiHandler.
func NewKpiHandler(kpiService service.KpiService) *KpiHandler {
	return &KpiHandler{kpiService: kpiService}
}

// Create handles POST /api/v1/kpis
func (h *KpiHandler) Create(c *gin.Context) {
	viewer, err := middleware.CurrentUser(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	var input service.CreateKpiInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.kpiService.Create(c.Request.Context(), viewer, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, item)
}

// List handles GET /api/v1/kpis?sub_cluster=&category_id=&search=
func (h *KpiHandler) List(c *gin.Context) {
	var filter service.KpiFilterInput
	if err := c.ShouldBindQuery(&filter); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	items, err := h.kpiService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, items)
}

// GetByID handles GET /api/v1/kpis/:id
func (h *KpiHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid KPI ID")
		return
	}

	item, err := h.kpiService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// Update handles PUT /api/v1/kpis/:id
func (h *KpiHandler) Update(c *gin.Context) {
	viewer, err := middleware.CurrentUser(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid KPI ID")
		return
	}

	var input service.UpdateKpiInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.kpiService.Update(c.Request.Context(), viewer, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// Delete handles DELETE /api/v1/kpis/:id
func (h *KpiHandler) Delete(c *gin.Context) {
	viewer, err := middleware.CurrentUser(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid KPI ID")
		return
	}

	if err := h.kpiService.Delete(c.Request.Context(), viewer, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "KPI deleted"})
}

// Export handles GET /api/v1/kpis/export
// Streams the filtered catalog as CSV with a UTF-8 BOM for Excel.
func (h *KpiHandler) Export(c *gin.Context) {
	var filter service.KpiFilterInput
	if err := c.ShouldBindQuery(&filter); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	rows, err := h.kpiService.ExportRows(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	name := filter.SubClusterName
	if name == "" {
		name = "KPI Catalog"
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+csvexport.BuildFilename(name)+`"`)
	c.Status(http.StatusOK)

	_, _ = c.Writer.Write(csvexport.BOM)
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteKpiHeader(); err != nil {
		return
	}
	if err := w.WriteKpiRows(rows); err != nil {
		return
	}
	w.Flush()
}
