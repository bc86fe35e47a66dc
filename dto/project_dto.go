package dto

import (
	"github.com/anprojects-core/models"
)

// ProjectFilter represents filter criteria for projects
type ProjectFilter struct {
	Search   string
	Page     int
	PageSize int
	IsAdmin  bool
	// ProjectIDs restricts non-admin callers to their assignments
	ProjectIDs []string
}

// ProjectListResponse represents paginated project list response
type ProjectListResponse struct {
	Projects   []models.Project `json:"projects"`
	TotalCount int              `json:"totalCount"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}

// CreateProjectRequest represents data needed to create a new project
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Status      string `json:"status"`
}

// ProjectOverview is the dashboard view of one project
type ProjectOverview struct {
	Project    models.Project `json:"project"`
	Budget     ProjectSummary `json:"budget"`
	Milestones MilestoneStats `json:"milestones"`
	Units      int            `json:"units"`
}
