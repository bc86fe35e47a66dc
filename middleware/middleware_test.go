package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anprojects-core/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeValidator struct {
	enabled bool
}

func (f fakeValidator) TokensEnabled() bool { return f.enabled }

func (f fakeValidator) ValidateToken(token string) (*dto.TokenClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return &dto.TokenClaims{UserID: "u1", Role: "accountant", Projects: []string{"p1"}}, nil
}

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		role, _ := c.Get("role")
		userID, _ := c.Get("userId")
		c.JSON(http.StatusOK, gin.H{"role": role, "userId": userID})
	})
	router.GET("/", handlers...)
	return router
}

func serve(router *gin.Engine, method, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	router := newTestRouter(AuthMiddleware(fakeValidator{enabled: true}))

	w := serve(router, http.MethodGet, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(router, http.MethodGet, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(router, http.MethodGet, "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")

	w = serve(router, http.MethodGet, "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"role":"accountant","userId":"u1"}`, w.Body.String())
}

func TestAuthMiddleware_Disabled(t *testing.T) {
	router := newTestRouter(AuthMiddleware(fakeValidator{}), AdminMiddleware())

	w := serve(router, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"role":"admin","userId":null}`, w.Body.String())
}

func TestAdminMiddleware(t *testing.T) {
	router := newTestRouter(AuthMiddleware(fakeValidator{enabled: true}), AdminMiddleware())
	w := serve(router, http.MethodGet, "Bearer good")
	assert.Equal(t, http.StatusForbidden, w.Code)

	bare := newTestRouter(AdminMiddleware())
	w = serve(bare, http.MethodGet, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEndpointHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(MethodNotAllowed)
	group := router.Group("/api/query", EndpointHeaders())
	group.POST("", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	group.OPTIONS("", Preflight)

	req := httptest.NewRequest(http.MethodOptions, "/api/query", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))

	req = httptest.NewRequest(http.MethodPost, "/api/query", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/query", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}

func TestMethodNotAllowed_DataRoutesKeepPlainHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(MethodNotAllowed)
	router.GET("/api/projects", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPatch, "/api/projects", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Methods"))
}
