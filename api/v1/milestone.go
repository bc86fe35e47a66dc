package v1

import (
	"net/http"

	"github.com/anprojects-core/dto"
	"github.com/anprojects-core/services"
	"github.com/gin-gonic/gin"
)

// MilestoneController handles milestones and units of a project
type MilestoneController struct {
	milestoneService *services.MilestoneService
}

// NewMilestoneController creates a new milestone controller
func NewMilestoneController(milestoneService *services.MilestoneService) *MilestoneController {
	return &MilestoneController{milestoneService: milestoneService}
}

// RegisterRoutes registers milestone and unit routes
func (mc *MilestoneController) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects/:id")
	{
		projects.GET("/milestones", mc.ListMilestones)
		projects.POST("/milestones", mc.CreateMilestone)
		projects.GET("/milestones/stats", mc.MilestoneStats)
		projects.GET("/units", mc.ListUnits)
		projects.POST("/units", mc.CreateUnit)
	}

	router.PUT("/milestones/:id", mc.UpdateMilestone)
	router.DELETE("/milestones/:id", mc.DeleteMilestone)
	router.PUT("/units/:id", mc.UpdateUnit)
	router.DELETE("/units/:id", mc.DeleteUnit)
}

// ListMilestones lists a project's milestones, filtered by ?unit_id= when given
func (mc *MilestoneController) ListMilestones(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProject(c, projectID) {
		return
	}
	respondData(c, http.StatusOK, mc.milestoneService.ListMilestones(c.Request.Context(), projectID, c.Query("unit_id")))
}

func (mc *MilestoneController) MilestoneStats(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProject(c, projectID) {
		return
	}
	respondData(c, http.StatusOK, mc.milestoneService.Stats(c.Request.Context(), projectID))
}

func (mc *MilestoneController) CreateMilestone(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProject(c, projectID) {
		return
	}

	var req dto.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request data: "+err.Error())
		return
	}

	milestone, err := mc.milestoneService.CreateMilestone(c.Request.Context(), projectID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, milestone)
}

func (mc *MilestoneController) UpdateMilestone(c *gin.Context) {
	milestone, err := mc.milestoneService.GetMilestone(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !requireProject(c, milestone.ProjectID) {
		return
	}
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	milestone, err = mc.milestoneService.UpdateMilestone(c.Request.Context(), milestone.ID, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, milestone)
}

func (mc *MilestoneController) DeleteMilestone(c *gin.Context) {
	milestone, err := mc.milestoneService.GetMilestone(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !requireProject(c, milestone.ProjectID) {
		return
	}
	if err := mc.milestoneService.DeleteMilestone(c.Request.Context(), milestone.ID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Milestone deleted successfully",
	})
}

func (mc *MilestoneController) ListUnits(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProject(c, projectID) {
		return
	}
	respondData(c, http.StatusOK, mc.milestoneService.ListUnits(c.Request.Context(), projectID))
}

func (mc *MilestoneController) CreateUnit(c *gin.Context) {
	projectID := c.Param("id")
	if !requireProject(c, projectID) {
		return
	}

	var req dto.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request data: "+err.Error())
		return
	}

	unit, err := mc.milestoneService.CreateUnit(c.Request.Context(), projectID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusCreated, unit)
}

func (mc *MilestoneController) UpdateUnit(c *gin.Context) {
	unit, err := mc.milestoneService.GetUnit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !requireProject(c, unit.ProjectID) {
		return
	}
	fields, ok := bindFields(c)
	if !ok {
		return
	}

	unit, err = mc.milestoneService.UpdateUnit(c.Request.Context(), unit.ID, fields)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondData(c, http.StatusOK, unit)
}

func (mc *MilestoneController) DeleteUnit(c *gin.Context) {
	unit, err := mc.milestoneService.GetUnit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !requireProject(c, unit.ProjectID) {
		return
	}
	if err := mc.milestoneService.DeleteUnit(c.Request.Context(), unit.ID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Unit deleted successfully",
	})
}
