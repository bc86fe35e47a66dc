package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anprojects-core/database"
	"github.com/anprojects-core/lib/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct {
	*storage.MemoryStore
}

func (brokenStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk gone")
}

func check(t *testing.T, hc *HealthController) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", hc.HealthCheck)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHealthCheck(t *testing.T) {
	code, body := check(t, NewHealthController(storage.NewMemoryStore(), database.NewProvider("")))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "ok", body["store"])
	assert.Equal(t, "not configured", body["database"])

	code, body = check(t, NewHealthController(brokenStore{storage.NewMemoryStore()}, database.NewProvider("postgres://x")))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "error", body["store"])
	assert.Equal(t, "configured", body["database"])
}
