package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// EndpointHeaders sets the headers the browser client expects on the auth
// and query endpoints and answers preflight requests directly.
func EndpointHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		setEndpointHeaders(c)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

func setEndpointHeaders(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
}

// isEndpointPath matches the auth and query endpoints under /api
func isEndpointPath(path string) bool {
	return strings.HasPrefix(path, "/api/auth/") || path == "/api/query"
}

// MethodNotAllowed is the body for any unsupported method. It runs outside
// the endpoint group, so the endpoint headers are set here as well.
func MethodNotAllowed(c *gin.Context) {
	if isEndpointPath(c.Request.URL.Path) {
		setEndpointHeaders(c)
	}
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
}

// Preflight gives OPTIONS routes a handler; EndpointHeaders has already answered
func Preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}
