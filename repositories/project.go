package repositories

import (
	"context"
	"strings"

	"github.com/anprojects-core/lib/storage"
	"github.com/anprojects-core/models"
)

// ProjectRepository handles persistence of projects
type ProjectRepository struct {
	projects *storage.Collection[models.Project]
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(store storage.Store) *ProjectRepository {
	return &ProjectRepository{
		projects: storage.NewCollection[models.Project](store, storage.KeyProjects),
	}
}

// FindAll retrieves all projects
func (r *ProjectRepository) FindAll(ctx context.Context) []models.Project {
	return r.projects.All(ctx)
}

// FindByID retrieves a project by its ID
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (models.Project, bool) {
	return r.projects.FindByID(ctx, id)
}

// FindByIDs retrieves the projects whose id is in ids, in stored order
func (r *ProjectRepository) FindByIDs(ctx context.Context, ids []string) []models.Project {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	return r.projects.Filter(ctx, func(p models.Project) bool {
		_, ok := wanted[p.ID]
		return ok
	})
}

// Search retrieves projects whose name or description contains term, case-insensitively
func (r *ProjectRepository) Search(ctx context.Context, term string) []models.Project {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return r.FindAll(ctx)
	}
	return r.projects.Filter(ctx, func(p models.Project) bool {
		return strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term)
	})
}

// Create inserts a new project
func (r *ProjectRepository) Create(ctx context.Context, project models.Project) models.Project {
	r.projects.Add(ctx, project)
	return project
}

// Update modifies an existing project
func (r *ProjectRepository) Update(ctx context.Context, id string, fields map[string]any) (models.Project, bool, error) {
	return r.projects.Update(ctx, id, fields)
}

// Delete removes a project. Budget data keyed by the project is not touched.
func (r *ProjectRepository) Delete(ctx context.Context, id string) {
	r.projects.Delete(ctx, id)
}

// Exists checks if a project exists
func (r *ProjectRepository) Exists(ctx context.Context, id string) bool {
	_, ok := r.projects.FindByID(ctx, id)
	return ok
}
