package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mscp/internal/csvexport"
	"mscp/internal/middleware"
	"mscp/internal/service"
)

// ReportHandler handles quarterly report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Create handles POST /api/v1/reports
func (h *ReportHandler) Create(c *gin.Context) {
	viewer, err := middleware.CurrentUser(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	var input service.CreateReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	report, err := h.reportService.Create(c.Request.Context(), viewer, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, report)
}

// GetByID handles GET /api/v1/reports/:id
func (h *ReportHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid report ID")
		return
	}

	report, err := h.reportService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// ListByActionPlan handles GET /api/v1/action-plans/:id/reports
func (h *ReportHandler) ListByActionPlan(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid action plan ID")
		return
	}

	reports, err := h.reportService.ListByActionPlan(c.Request.Context(), planID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, reports)
}

// Update handles PUT /api/v1/reports/:id
// Corrections are allowed until submission; submitted reports are immutable.
func (h *ReportHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid report ID")
		return
	}

	var input service.UpdateReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	report, err := h.reportService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// Submit handles POST /api/v1/reports/:id/submit
func (h *ReportHandler) Submit(c *gin.Context) {
	viewer, err := middleware.CurrentUser(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid report ID")
		return
	}

	report, err := h.reportService.Submit(c.Request.Context(), viewer, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// AttachDocument handles POST /api/v1/reports/:id/document
func (h *ReportHandler) AttachDocument(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid report ID")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "missing file upload")
		return
	}
	defer func() { _ = file.Close() }()

	report, err := h.reportService.AttachDocument(c.Request.Context(), id, service.ReportDocumentInput{
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// DocumentURL handles GET /api/v1/reports/:id/document
// Returns a time-limited download URL for the attached evidence.
func (h *ReportHandler) DocumentURL(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid report ID")
		return
	}

	url, err := h.reportService.DocumentURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}

// Overview handles GET /api/v1/tracker
func (h *ReportHandler) Overview(c *gin.Context) {
	viewer, err := middleware.CurrentUser(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	rows, err := h.reportService.Overview(c.Request.Context(), viewer)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rows)
}

// Export handles GET /api/v1/action-plans/:id/reports/export
func (h *ReportHandler) Export(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid action plan ID")
		return
	}

	rows, err := h.reportService.ExportRows(c.Request.Context(), planID)
	if err != nil {
		HandleError(c, err)
		return
	}

	name := "Progress Reports"
	if len(rows) > 0 {
		name = rows[0].ActionPlanTitle + " Reports"
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+csvexport.BuildFilename(name)+`"`)
	c.Status(http.StatusOK)

	_, _ = c.Writer.Write(csvexport.BOM)
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteReportHeader(); err != nil {
		return
	}
	if err := w.WriteReportRows(rows); err != nil {
		return
	}
	w.Flush()
}
