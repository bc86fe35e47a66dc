package v1

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anprojects-core/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataOf(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "missing data object in %v", body)
	return data
}

func TestBudgetItemLifecycle(t *testing.T) {
	s := newTestServer(t, "")

	w := s.do(http.MethodPost, "/api/projects", `{"name":"Harbor"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	projectID := dataOf(t, decode(t, w))["id"].(string)

	w = s.do(http.MethodPost, "/api/projects/"+projectID+"/budget-items", `{"chapter_id":"c1","description":"Concrete","quantity":10,"unit_price":1000}`, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := dataOf(t, decode(t, w))
	assert.Equal(t, 10000.0, item["total_price"])
	assert.Equal(t, 1700.0, item["vat_amount"])
	assert.Equal(t, 11700.0, item["total_with_vat"])
	assert.Equal(t, 1.0, item["order"])
	assert.Equal(t, "pending", item["status"])
	itemID := item["id"].(string)

	w = s.do(http.MethodPost, "/api/projects/"+projectID+"/budget-items", `{"chapter_id":"c1","description":"Rebar","quantity":0.5,"unit_price":200}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	second := dataOf(t, decode(t, w))
	assert.Equal(t, 2.0, second["order"])
	assert.Equal(t, 117.0, second["total_with_vat"])

	w = s.do(http.MethodPost, "/api/projects/"+projectID+"/budget-items", `{"description":"No chapter"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/budget-items/"+itemID, `{"status":"shipped"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/budget-items/"+itemID, `{"quantity":20}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 23400.0, dataOf(t, decode(t, w))["total_with_vat"])

	w = s.do(http.MethodPost, "/api/budget-items/"+itemID+"/payments", `{"invoice_date":"2025-03-01","amount":1000,"status":"paid"}`, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	payment := dataOf(t, decode(t, w))
	assert.Equal(t, 1170.0, payment["total_amount"])

	w = s.do(http.MethodGet, "/api/budget-items/"+itemID+"/payments/summary", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	summary := dataOf(t, decode(t, w))
	assert.Equal(t, 1170.0, summary["totalPaid"])
	assert.Equal(t, 1.0, summary["paymentCount"])

	w = s.do(http.MethodGet, "/api/payments?year=2025&month=3", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 1)

	w = s.do(http.MethodGet, "/api/payments?month=13", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/projects/"+projectID+"/budget/summary", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	projectSummary := dataOf(t, decode(t, w))
	assert.Equal(t, 2.0, projectSummary["itemCount"])
	assert.Equal(t, 23517.0, projectSummary["totalWithVat"])

	w = s.do(http.MethodGet, "/api/projects/"+projectID+"/budget/export", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.NotZero(t, w.Body.Len())

	w = s.do(http.MethodDelete, "/api/budget-items/"+itemID, "", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/budget-items/"+itemID, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(http.MethodGet, "/api/payments?year=2025&month=3", "", "")
	assert.Len(t, decode(t, w)["data"], 0)
}

func TestProjectAccess(t *testing.T) {
	s := newTestServer(t, "signing-key")

	admin, _, err := s.deps.Auth.GenerateToken(&models.UserProfile{ID: "a1", Role: models.RoleAdmin}, nil)
	require.NoError(t, err)
	manager, _, err := s.deps.Auth.GenerateToken(&models.UserProfile{ID: "u1", Role: models.RoleProjectManager}, []string{"p-mine"})
	require.NoError(t, err)

	w := s.do(http.MethodGet, "/api/projects", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/projects", `{"name":"Harbor"}`, manager)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/api/projects", `{"name":"Harbor"}`, admin)
	require.Equal(t, http.StatusCreated, w.Code)
	projectID := dataOf(t, decode(t, w))["id"].(string)

	w = s.do(http.MethodGet, "/api/projects/"+projectID, "", manager)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/projects", "", manager)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, dataOf(t, decode(t, w))["totalCount"])

	w = s.do(http.MethodGet, "/api/projects", "", admin)
	assert.Equal(t, 1.0, dataOf(t, decode(t, w))["totalCount"])

	w = s.do(http.MethodGet, "/api/budget/global", "", manager)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodGet, "/api/budget/global", "", admin)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/projects/p-mine/milestones/stats", "", manager)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodDelete, "/api/projects/"+projectID, "", manager)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStructureAndMilestones(t *testing.T) {
	s := newTestServer(t, "")

	w := s.do(http.MethodPost, "/api/projects/p1/categories", `{"name":"Contractors","type":"contractors"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	categoryID := dataOf(t, decode(t, w))["id"].(string)

	w = s.do(http.MethodPost, "/api/projects/p1/categories", `{"name":"X","type":"bankers"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/projects/p1/chapters", `{"category_id":"`+categoryID+`","name":"Skeleton","budget_amount":5000}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	chapterID := dataOf(t, decode(t, w))["id"].(string)

	w = s.do(http.MethodGet, "/api/projects/p1/categories/"+categoryID+"/summary", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5000.0, dataOf(t, decode(t, w))["budget"])

	w = s.do(http.MethodPut, "/api/chapters/"+chapterID, `{"name":"Frame"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Frame", dataOf(t, decode(t, w))["name"])

	w = s.do(http.MethodGet, "/api/projects/p1/chapters?category_id="+categoryID, "", "")
	assert.Len(t, decode(t, w)["data"], 1)

	w = s.do(http.MethodDelete, "/api/categories/"+categoryID, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodDelete, "/api/categories/"+categoryID, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/projects/p1/units", `{"name":"A1"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "apartment", dataOf(t, decode(t, w))["type"])

	w = s.do(http.MethodPost, "/api/projects/p1/milestones", `{"name":"Dig","status":"completed"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	milestoneID := dataOf(t, decode(t, w))["id"].(string)

	w = s.do(http.MethodGet, "/api/projects/p1/milestones/stats", "", "")
	stats := dataOf(t, decode(t, w))
	assert.Equal(t, 1.0, stats["total"])
	assert.Equal(t, 1.0, stats["completed"])

	w = s.do(http.MethodPut, "/api/milestones/"+milestoneID, `not json`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, "/api/milestones/"+milestoneID, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBudgetItemUpdate_StaysInAssignedProject(t *testing.T) {
	s := newTestServer(t, "signing-key")

	manager, _, err := s.deps.Auth.GenerateToken(&models.UserProfile{ID: "u1", Role: models.RoleProjectManager}, []string{"p1"})
	require.NoError(t, err)
	admin, _, err := s.deps.Auth.GenerateToken(&models.UserProfile{ID: "a1", Role: models.RoleAdmin}, nil)
	require.NoError(t, err)

	w := s.do(http.MethodPost, "/api/projects/p1/budget-items", `{"chapter_id":"c1","description":"Tiles","quantity":3,"unit_price":100}`, manager)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	itemID := dataOf(t, decode(t, w))["id"].(string)

	w = s.do(http.MethodPut, "/api/budget-items/"+itemID, `{"project_id":"p-not-mine","notes":"moved"}`, manager)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := dataOf(t, decode(t, w))
	assert.Equal(t, "p1", updated["project_id"])
	assert.Equal(t, "moved", updated["notes"])

	w = s.do(http.MethodGet, "/api/budget-items/"+itemID, "", manager)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/projects/p-not-mine/chapters", `{"category_id":"k9","name":"Roof"}`, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	foreignChapter := dataOf(t, decode(t, w))["id"].(string)

	w = s.do(http.MethodPut, "/api/budget-items/"+itemID, `{"chapter_id":"`+foreignChapter+`"}`, manager)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/budget-items/"+itemID, `{"quantity":"abc"}`, manager)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"Invalid field value"}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/budget-items/"+itemID, "", manager)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3.0, dataOf(t, decode(t, w))["quantity"])

	w = s.do(http.MethodPost, "/api/budget-items/"+itemID+"/payments", `{"invoice_date":"someday","amount":10}`, manager)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type failingExporter struct{}

func (failingExporter) WriteProjectBudget(_ context.Context, _ string, w io.Writer) error {
	_, _ = w.Write([]byte("PK partial"))
	return errors.New("disk full")
}

func TestExport_FailureIsNotAnAttachment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := newTestServer(t, "")

	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("role", string(models.RoleAdmin)) })
	NewBudgetController(s.deps.Budget, failingExporter{}).RegisterRoutes(router.Group("/api"))

	req := httptest.NewRequest(http.MethodGet, "/api/projects/p1/budget/export", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"Export failed"}`, w.Body.String())
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}
