package routes

import (
	v1 "github.com/anprojects-core/api/v1"
	"github.com/anprojects-core/controllers"
	"github.com/anprojects-core/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes mounts every API route on router
func SetupRoutes(router *gin.Engine, deps v1.Dependencies, health *controllers.HealthController) {
	router.HandleMethodNotAllowed = true
	router.NoMethod(middleware.MethodNotAllowed)

	router.Use(cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:              []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:             []string{"Content-Disposition"},
		OptionsResponseStatusCode: 200,
	}))

	// Public routes
	router.GET("/", health.HealthCheck)

	api := router.Group("/api")
	v1.RegisterRoutes(api, deps)
}
