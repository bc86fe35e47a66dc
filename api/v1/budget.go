package v1

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/anprojects-core/dto"
	"github.com/anprojects-core/middleware"
	"github.com/anprojects-core/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BudgetExporter renders a project budget as a workbook
type BudgetExporter interface {
	WriteProjectBudget(ctx context.Context, projectID string, w io.Writer) error
}

// BudgetController serves budget items and their rollups
type BudgetController struct {
	budgetService *services.BudgetService
	exportService BudgetExporter
}

// NewBudgetController creates a new budget controller
func NewBudgetController(budgetService *services.BudgetService, exportService BudgetExporter) *BudgetController {
	return &BudgetController{budgetService: budgetService, exportService: exportService}
}

// RegisterRoutes registers budget routes
func (bc *BudgetController) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects/:id")
	{
		projects.GET("/budget-items", bc.ListItems)
		projects.POST("/budget-items", bc.CreateItem)
		projects.GET("/chapters/:chapterId/budget-items", bc.ListChapterItems)
		projects.GET("/chapters/:chapterId/summary", bc.ChapterSummary)
		projects.GET("/categories/:categoryId/summary", bc.CategoryBudget)
		projects.GET("/budget/summary", bc.ProjectSummary)
		projects.GET("/budget/variance", bc.ProjectVariance)
		projects.GET("/budget/export", bc.Export)
	}

	items := router.Group("/budget-items")
	{
		items.GET("/:id", bc.GetItem)
		items.PUT("/:id", bc.UpdateItem)
		items.DELETE("/:id", bc.DeleteItem)
		items.GET("/:id/variance", bc.ItemVariance)
	}

	// cross-project rollups
	admin := router.Group("/budget", middleware.AdminMiddleware())
	{
		admin.GET("/global", bc.GlobalSummary)
		admin.GET("/categories", bc.CategorySummary)
	}
}

func (bc *BudgetController) ListItems(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProject(c, projectID) {
		return
	}
	respondData(c, http.StatusOK, bc.budgetService.ListItems(c.Request.Context(), projectID, ""))
}

func (bc *BudgetController) ListChapterItems(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProject(c, projectID) {
		return
	}
	respondData(c, http.StatusOK, bc.budgetService.ListItems(c.Request.Context(), projectID, c.Param("chapterId")))
}

// CreateItem adds a budget line; totals and order are computed here, not by the client
func (bc *BudgetController) CreateItem(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProject(c, projectID) {
		return
	}

	var req dto.CreateBudgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request data: "+err.Error())
		return
	}

	item, err := bc.budgetService.CreateBudgetItem(c.Request.Context(), projectID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, item)
}

func (bc *BudgetController) ChapterSummary(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProject(c, projectID) {
		return
	}
	respondData(c, http.StatusOK, bc.budgetService.ChapterSummary(c.Request.Context(), projectID, c.Param("chapterId")))
}

func (bc *BudgetController) CategoryBudget(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProject(c, projectID) {
		return
	}
	respondData(c, http.StatusOK, bc.budgetService.CategoryBudget(c.Request.Context(), projectID, c.Param("categoryId")))
}

func (bc *BudgetController) ProjectSummary(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProject(c, projectID) {
		return
	}
	respondData(c, http.StatusOK, bc.budgetService.ProjectSummary(c.Request.Context(), projectID))
}

func (bc *BudgetController) ProjectVariance(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProject(c, projectID) {
		return
	}
	respondData(c, http.StatusOK, bc.budgetService.ProjectVariance(c.Request.Context(), projectID))
}

// Export sends the project budget as an xlsx workbook. The workbook is
// built in memory first so a failure still gets a JSON error.
func (bc *BudgetController) Export(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProject(c, projectID) {
		return
	}

	var buf bytes.Buffer
	if err := bc.exportService.WriteProjectBudget(c.Request.Context(), projectID, &buf); err != nil {
		zap.L().Error("budget export failed", zap.String("projectId", projectID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Export failed")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="budget-%s.xlsx"`, projectID))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// loadItem fetches an item and checks the caller may see its project
func (bc *BudgetController) loadItem(c *gin.Context) (string, bool) {
	item, err := bc.budgetService.GetBudgetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return "", false
	}
	if !requireProject(c, item.ProjectID) {
		return "", false
	}
	return item.ID, true
}

func (bc *BudgetController) GetItem(c *gin.Context) {
	item, err := bc.budgetService.GetBudgetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !requireProject(c, item.ProjectID) {
		return
	}
	respondData(c, http.StatusOK, item)
}

func (bc *BudgetController) UpdateItem(c *gin.Context) {
	id, ok := bc.loadItem(c)
	if !ok {
		return
	}
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	item, err := bc.budgetService.UpdateBudgetItem(c.Request.Context(), id, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, item)
}

// DeleteItem removes the item and all of its payments
func (bc *BudgetController) DeleteItem(c *gin.Context) {
	id, ok := bc.loadItem(c)
	if !ok {
		return
	}
	if err := bc.budgetService.DeleteBudgetItem(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Budget item deleted successfully",
	})
}

func (bc *BudgetController) ItemVariance(c *gin.Context) {
	id, ok := bc.loadItem(c)
	if !ok {
		return
	}
	variance, err := bc.budgetService.CalculateVariance(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, variance)
}

func (bc *BudgetController) GlobalSummary(c *gin.Context) {
	respondData(c, http.StatusOK, bc.budgetService.GlobalSummary(c.Request.Context()))
}

func (bc *BudgetController) CategorySummary(c *gin.Context) {
	respondData(c, http.StatusOK, bc.budgetService.CategorySummary(c.Request.Context()))
}
