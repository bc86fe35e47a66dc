package services

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/anprojects-core/dto"
	"github.com/anprojects-core/models"
	"github.com/anprojects-core/repositories"
	"github.com/google/uuid"
)

// ProjectService handles business logic for projects
type ProjectService struct {
	projectRepo *repositories.ProjectRepository
	budget      *BudgetService
	milestones  *MilestoneService
	now         func() time.Time
	newID       func() string
}

// NewProjectService creates a new project service instance
func NewProjectService(projectRepo *repositories.ProjectRepository, budget *BudgetService, milestones *MilestoneService) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		budget:      budget,
		milestones:  milestones,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// ListProjects retrieves projects with pagination and search.
// Admin can see all projects, other users only their assignments.
func (s *ProjectService) ListProjects(ctx context.Context, filter dto.ProjectFilter) dto.ProjectListResponse {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}

	projects := s.projectRepo.Search(ctx, filter.Search)
	if !filter.IsAdmin {
		projects = slices.DeleteFunc(projects, func(p models.Project) bool {
			return !slices.Contains(filter.ProjectIDs, p.ID)
		})
	}
	slices.SortStableFunc(projects, func(a, b models.Project) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	total := len(projects)
	start := min((filter.Page-1)*filter.PageSize, total)
	end := min(start+filter.PageSize, total)

	return dto.ProjectListResponse{
		Projects:   projects[start:end],
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: (total + filter.PageSize - 1) / filter.PageSize,
	}
}

// GetProject returns a project by id
func (s *ProjectService) GetProject(ctx context.Context, id string) (models.Project, error) {
	project, ok := s.projectRepo.FindByID(ctx, id)
	if !ok {
		return models.Project{}, ErrNotFound
	}
	return project, nil
}

// GetProjectOverview bundles a project with its budget and milestone rollups
func (s *ProjectService) GetProjectOverview(ctx context.Context, id string) (dto.ProjectOverview, error) {
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return dto.ProjectOverview{}, err
	}
	return dto.ProjectOverview{
		Project:    project,
		Budget:     s.budget.ProjectSummary(ctx, id),
		Milestones: s.milestones.Stats(ctx, id),
		Units:      len(s.milestones.ListUnits(ctx, id)),
	}, nil
}

// CreateProject creates a new project
func (s *ProjectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest) models.Project {
	now := s.now().UTC()
	project := models.Project{
		ID:          s.newID(),
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Status:      req.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.projectRepo.Create(ctx, project)
}

// UpdateProject merges fields into a project
func (s *ProjectService) UpdateProject(ctx context.Context, id string, fields map[string]any) (models.Project, error) {
	delete(fields, "id")
	project, ok, err := s.projectRepo.Update(ctx, id, fields)
	if err != nil {
		return models.Project{}, err
	}
	if !ok {
		return models.Project{}, ErrNotFound
	}
	return project, nil
}

// DeleteProject deletes a project record. Budget data is kept.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	if !s.projectRepo.Exists(ctx, id) {
		return ErrNotFound
	}
	s.projectRepo.Delete(ctx, id)
	return nil
}
