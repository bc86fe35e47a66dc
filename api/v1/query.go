package v1

import (
	"errors"
	"net/http"

	"github.com/anprojects-core/database"
	"github.com/anprojects-core/dto"
	"github.com/anprojects-core/middleware"
	"github.com/anprojects-core/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// QueryController proxies screened SQL to Postgres
type QueryController struct {
	queryService *services.QueryService
}

// NewQueryController creates a new query controller
func NewQueryController(queryService *services.QueryService) *QueryController {
	return &QueryController{queryService: queryService}
}

// RegisterRoutes registers the query route
func (qc *QueryController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/query", qc.Query)
	router.OPTIONS("/query", middleware.Preflight)
}

// Query runs a parameterized statement and returns its rows
func (qc *QueryController) Query(c *gin.Context) {
	var req dto.QueryRequest
	_ = c.ShouldBindJSON(&req)
	query, ok := req.Query.(string)
	if !ok || query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query"})
		return
	}

	rows, err := qc.queryService.Execute(c.Request.Context(), query, req.Params)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.QueryResponse{Data: rows})
	case errors.Is(err, services.ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query"})
	case errors.Is(err, services.ErrOperationNotAllowed):
		c.JSON(http.StatusForbidden, gin.H{"error": "Operation not allowed"})
	case errors.Is(err, database.ErrNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database not configured"})
	default:
		// driver detail stays in the log
		zap.L().Error("query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
	}
}
