package v1

import (
	"net/http"
	"strconv"

	"github.com/anprojects-core/dto"
	"github.com/anprojects-core/middleware"
	"github.com/anprojects-core/services"
	"github.com/gin-gonic/gin"
)

// ProjectController handles project endpoints
type ProjectController struct {
	projectService *services.ProjectService
}

// NewProjectController creates a new project controller
func NewProjectController(projectService *services.ProjectService) *ProjectController {
	return &ProjectController{projectService: projectService}
}

// RegisterRoutes registers project routes
func (pc *ProjectController) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects")
	{
		projects.GET("", pc.ListProjects)
		projects.POST("", middleware.AdminMiddleware(), pc.CreateProject)
		projects.GET("/:id", pc.GetProject)
		projects.GET("/:id/overview", pc.GetProjectOverview)
		projects.PUT("/:id", pc.UpdateProject)
		projects.DELETE("/:id", middleware.AdminMiddleware(), pc.DeleteProject)
	}
}

// ListProjects godoc
// @Summary List projects with pagination and filtering
// @Description Get all projects for admin, or only assigned projects for other roles
// @Tags projects
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Param search query string false "Search term for project name/description"
// @Success 200 {object} dto.ProjectListResponse
// @Router /projects [get]
func (pc *ProjectController) ListProjects(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 {
		pageSize = 10
	}

	filter := dto.ProjectFilter{
		Search:     c.Query("search"),
		Page:       page,
		PageSize:   pageSize,
		IsAdmin:    isAdmin(c),
		ProjectIDs: assignedProjects(c),
	}

	respondData(c, http.StatusOK, pc.projectService.ListProjects(c.Request.Context(), filter))
}

// GetProject godoc
// @Summary Get a project by ID
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.Project
// @Router /projects/{id} [get]
func (pc *ProjectController) GetProject(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProject(c, projectID) {
		return
	}

	project, err := pc.projectService.GetProject(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, project)
}

// GetProjectOverview returns the project with its budget and milestone rollups
func (pc *ProjectController) GetProjectOverview(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProject(c, projectID) {
		return
	}

	overview, err := pc.projectService.GetProjectOverview(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, overview)
}

// CreateProject godoc
// @Summary Create a new project
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.CreateProjectRequest true "Project Data"
// @Success 201 {object} models.Project
// @Router /projects [post]
func (pc *ProjectController) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request data: "+err.Error())
		return
	}

	project := pc.projectService.CreateProject(c.Request.Context(), req)
	respondData(c, http.StatusCreated, project)
}

func (pc *ProjectController) UpdateProject(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProject(c, projectID) {
		return
	}
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	project, err := pc.projectService.UpdateProject(c.Request.Context(), projectID, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, project)
}

func (pc *ProjectController) DeleteProject(c *gin.Context) {
	if err := pc.projectService.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Project deleted successfully",
	})
}
