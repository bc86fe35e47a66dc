package controllers

import (
	"net/http"
	"time"

	"github.com/anprojects-core/database"
	"github.com/anprojects-core/lib/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthController reports whether the backing stores are reachable
type HealthController struct {
	store    storage.Store
	provider *database.Provider
}

// NewHealthController creates a new health controller
func NewHealthController(store storage.Store, provider *database.Provider) *HealthController {
	return &HealthController{store: store, provider: provider}
}

// HealthCheck returns the API status. A failing collection store yields 503;
// a missing database URL does not, since only auth and query depend on it.
func (hc *HealthController) HealthCheck(c *gin.Context) {
	status, result := http.StatusOK, "success"
	storeStatus := "ok"
	if _, _, err := hc.store.Get(c.Request.Context(), storage.KeyProjects); err != nil {
		zap.L().Warn("collection store health check failed", zap.Error(err))
		status, result = http.StatusServiceUnavailable, "error"
		storeStatus = "error"
	}

	databaseStatus := "not configured"
	if hc.provider.Configured() {
		databaseStatus = "configured"
	}

	c.JSON(status, gin.H{
		"status":    result,
		"service":   "anprojects-core",
		"version":   "1.0.0",
		"store":     storeStatus,
		"database":  databaseStatus,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
