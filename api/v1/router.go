package v1

import (
	"github.com/anprojects-core/middleware"
	"github.com/anprojects-core/services"
	"github.com/gin-gonic/gin"
)

// Dependencies are the services the v1 API is built on
type Dependencies struct {
	Auth       *services.AuthService
	Query      *services.QueryService
	Projects   *services.ProjectService
	Budget     *services.BudgetService
	Structure  *services.BudgetStructureService
	Payments   *services.PaymentService
	Milestones *services.MilestoneService
	Export     *services.ExportService
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, deps Dependencies) {
	router.GET("/health", HealthCheck)

	// Browser-facing endpoints carry their own CORS headers and need no token
	endpoints := router.Group("", middleware.EndpointHeaders())
	NewAuthController(deps.Auth).RegisterRoutes(endpoints)
	NewQueryController(deps.Query).RegisterRoutes(endpoints)

	// Data API - protected by AuthMiddleware
	authRouter := router.Group("")
	authRouter.Use(middleware.AuthMiddleware(deps.Auth))

	NewProjectController(deps.Projects).RegisterRoutes(authRouter)
	NewBudgetController(deps.Budget, deps.Export).RegisterRoutes(authRouter)
	NewPaymentController(deps.Payments, deps.Budget).RegisterRoutes(authRouter)
	NewStructureController(deps.Structure, deps.Budget).RegisterRoutes(authRouter)
	NewMilestoneController(deps.Milestones).RegisterRoutes(authRouter)
}
