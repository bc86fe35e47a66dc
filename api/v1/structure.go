package v1

import (
	"net/http"

	"github.com/anprojects-core/dto"
	"github.com/anprojects-core/services"
	"github.com/gin-gonic/gin"
)

// StructureController manages the category and chapter levels of a budget
type StructureController struct {
	structureService *services.BudgetStructureService
	budgetService    *services.BudgetService
}

// NewStructureController creates a new structure controller
func NewStructureController(structureService *services.BudgetStructureService, budgetService *services.BudgetService) *StructureController {
	return &StructureController{structureService: structureService, budgetService: budgetService}
}

// RegisterRoutes registers category and chapter routes
func (sc *StructureController) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects/:id")
	{
		projects.GET("/categories", sc.ListCategories)
		projects.POST("/categories", sc.CreateCategory)
		projects.GET("/chapters", sc.ListChapters)
		projects.POST("/chapters", sc.CreateChapter)
	}

	router.PUT("/categories/:id", sc.UpdateCategory)
	router.DELETE("/categories/:id", sc.DeleteCategory)
	router.PUT("/chapters/:id", sc.UpdateChapter)
	router.DELETE("/chapters/:id", sc.DeleteChapter)
}

func (sc *StructureController) ListCategories(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProject(c, projectID) {
		return
	}
	respondData(c, http.StatusOK, sc.structureService.ListCategories(c.Request.Context(), projectID))
}

// ListChapters lists a project's chapters, filtered by ?category_id= when given
func (sc *StructureController) ListChapters(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProject(c, projectID) {
		return
	}
	respondData(c, http.StatusOK, sc.structureService.ListChapters(c.Request.Context(), projectID, c.Query("category_id")))
}

func (sc *StructureController) CreateCategory(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProject(c, projectID) {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request data: "+err.Error())
		return
	}

	category, err := sc.structureService.CreateCategory(c.Request.Context(), projectID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, category)
}

func (sc *StructureController) CreateChapter(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProject(c, projectID) {
		return
	}

	var req dto.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request data: "+err.Error())
		return
	}

	chapter, err := sc.structureService.CreateChapter(c.Request.Context(), projectID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, chapter)
}

func (sc *StructureController) UpdateCategory(c *gin.Context) {
	category, err := sc.structureService.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !requireProject(c, category.ProjectID) {
		return
	}
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	category, err = sc.structureService.UpdateCategory(c.Request.Context(), category.ID, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, category)
}

// DeleteCategory removes the category; its chapters are left in place
func (sc *StructureController) DeleteCategory(c *gin.Context) {
	category, err := sc.structureService.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !requireProject(c, category.ProjectID) {
		return
	}
	if err := sc.structureService.DeleteCategory(c.Request.Context(), category.ID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Category deleted successfully",
	})
}

func (sc *StructureController) UpdateChapter(c *gin.Context) {
	chapter, err := sc.structureService.GetChapter(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !requireProject(c, chapter.ProjectID) {
		return
	}
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	chapter, err = sc.structureService.UpdateChapter(c.Request.Context(), chapter.ID, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, chapter)
}

func (sc *StructureController) DeleteChapter(c *gin.Context) {
	chapter, err := sc.structureService.GetChapter(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !requireProject(c, chapter.ProjectID) {
		return
	}
	if err := sc.structureService.DeleteChapter(c.Request.Context(), chapter.ID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Chapter deleted successfully",
	})
}
