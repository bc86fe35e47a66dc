package v1

import (
	"errors"
	"net/http"
	"slices"

	"github.com/anprojects-core/lib/storage"
	"github.com/anprojects-core/models"
	"github.com/anprojects-core/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"status": "success",
		"data":   data,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"status":  "error",
		"message": message,
	})
}

// respondServiceError maps service sentinels to status codes
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrInvalidFields):
		respondError(c, http.StatusBadRequest, "Invalid field value")
	default:
		zap.L().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

func isAdmin(c *gin.Context) bool {
	role, _ := c.Get("role")
	roleStr, _ := role.(string)
	return roleStr == string(models.RoleAdmin)
}

func assignedProjects(c *gin.Context) []string {
	value, _ := c.Get("projects")
	projects, _ := value.([]string)
	return projects
}

// requireProject writes 403 and returns false unless the caller may use projectID
func requireProject(c *gin.Context, projectID string) bool {
	if isAdmin(c) || slices.Contains(assignedProjects(c), projectID) {
		return true
	}
	respondError(c, http.StatusForbidden, "Project access denied")
	return false
}

// bindFields reads a partial update body
func bindFields(c *gin.Context) (map[string]any, bool) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil || fields == nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return fields, true
}
