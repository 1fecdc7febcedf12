package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"mscp/internal/access"
	"mscp/internal/domain"
	"mscp/internal/handler"
	"mscp/internal/middleware"
	"mscp/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	userH *handler.UserHandler,
	stakeholderH *handler.StakeholderHandler,
	subClusterH *handler.SubClusterHandler,
	kpiH *handler.KpiHandler,
	planH *handler.ActionPlanHandler,
	reportH *handler.ReportHandler,
	calendarH *handler.CalendarHandler,
	healthH *handler.HealthHandler,
	log *logrus.Logger,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.Refresh)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/auth/me", authH.Me)
	protected.POST("/auth/change-password", authH.ChangePassword)

	// User management; creation and import are gated per role scope
	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin, domain.RoleFocalPerson, domain.RoleStakeholderAdmin), userH.Create)
	users.POST("/import", middleware.RequireRole(domain.RoleAdmin, domain.RoleFocalPerson), userH.BulkImport)
	users.GET("", userH.List)
	users.GET("/:id", userH.GetByID)
	users.PUT("/:id", userH.Update)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Delete)

	// Stakeholder organizations; never deleted, status toggles instead
	stakeholders := protected.Group("/stakeholders")
	stakeholders.POST("", middleware.RequireRole(domain.RoleAdmin, domain.RoleFocalPerson), stakeholderH.Create)
	stakeholders.GET("", stakeholderH.List)
	stakeholders.GET("/:id", stakeholderH.GetByID)
	stakeholders.PUT("/:id", stakeholderH.Update)
	stakeholders.PATCH("/:id/status", middleware.RequireRole(domain.RoleAdmin, domain.RoleFocalPerson), stakeholderH.SetStatus)

	// Sub-clusters and KPI categories
	subClusters := protected.Group("/sub-clusters")
	subClusters.POST("", middleware.RequirePermission(access.PermManageSystem), subClusterH.Create)
	subClusters.GET("", subClusterH.List)
	subClusters.GET("/:id", subClusterH.GetByID)
	subClusters.PUT("/:id", middleware.RequirePermission(access.PermManageSystem), subClusterH.Update)
	subClusters.DELETE("/:id", middleware.RequirePermission(access.PermManageSystem), subClusterH.Delete)

	categories := protected.Group("/kpi-categories")
	categories.POST("", middleware.RequireRole(domain.RoleAdmin, domain.RoleFocalPerson), subClusterH.CreateCategory)
	categories.GET("", subClusterH.ListCategories)
	categories.PUT("/:id", middleware.RequireRole(domain.RoleAdmin, domain.RoleFocalPerson), subClusterH.UpdateCategory)
	categories.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin, domain.RoleFocalPerson), subClusterH.DeleteCategory)

	// KPI catalog
	kpis := protected.Group("/kpis")
	kpis.POST("", middleware.RequireRole(domain.RoleAdmin, domain.RoleFocalPerson), kpiH.Create)
	kpis.GET("", kpiH.List)
	kpis.GET("/export", middleware.RequirePermission(access.PermExportData), kpiH.Export)
	kpis.GET("/:id", kpiH.GetByID)
	kpis.PUT("/:id", middleware.RequireRole(domain.RoleAdmin, domain.RoleFocalPerson), kpiH.Update)
	kpis.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin, domain.RoleFocalPerson), kpiH.Delete)

	// Action plans and their quarterly reports
	plans := protected.Group("/action-plans")
	plans.POST("", planH.Create)
	plans.GET("", planH.List)
	plans.GET("/:id", planH.GetByID)
	plans.PUT("/:id", planH.Update)
	plans.PATCH("/:id/status", middleware.RequireRole(domain.RoleAdmin, domain.RoleFocalPerson), planH.SetStatus)
	plans.GET("/:id/reports", reportH.ListByActionPlan)
	plans.GET("/:id/reports/export", middleware.RequirePermission(access.PermExportData), reportH.Export)

	reports := protected.Group("/reports")
	reports.POST("", reportH.Create)
	reports.GET("/:id", reportH.GetByID)
	reports.PUT("/:id", reportH.Update)
	reports.POST("/:id/submit", reportH.Submit)
	reports.POST("/:id/document", reportH.AttachDocument)
	reports.GET("/:id/document", reportH.DocumentURL)

	protected.GET("/tracker", reportH.Overview)

	// Reporting calendar and geography
	years := protected.Group("/years")
	years.POST("", middleware.RequirePermission(access.PermManageSystem), calendarH.CreateYear)
	years.GET("", calendarH.ListYears)
	years.POST("/:id/quarters", middleware.RequirePermission(access.PermManageSystem), calendarH.CreateQuarter)
	years.GET("/:id/quarters", calendarH.ListQuarters)

	locations := protected.Group("/locations")
	locations.GET("/countries", calendarH.ListCountries)
	locations.GET("/provinces", calendarH.ListProvinces)
	locations.GET("/districts", calendarH.ListDistricts)

	return r
}
