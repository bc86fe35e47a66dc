package repositories

import (
	"context"

	"github.com/anprojects-core/lib/storage"
	"github.com/anprojects-core/models"
)

// MilestoneRepository handles persistence of project milestones
type MilestoneRepository struct {
	milestones *storage.Collection[models.ProjectMilestone]
}

// NewMilestoneRepository creates a new milestone repository instance
func NewMilestoneRepository(store storage.Store) *MilestoneRepository {
	return &MilestoneRepository{
		milestones: storage.NewCollection[models.ProjectMilestone](store, storage.KeyMilestones),
	}
}

func (r *MilestoneRepository) FindAll(ctx context.Context) []models.ProjectMilestone {
	return r.milestones.All(ctx)
}

// FindByProjectID retrieves the milestones of a project sorted by order
func (r *MilestoneRepository) FindByProjectID(ctx context.Context, projectID string) []models.ProjectMilestone {
	milestones := r.milestones.Filter(ctx, func(m models.ProjectMilestone) bool {
		return m.ProjectID == projectID
	})
	return storage.SortByOrder(milestones)
}

// FindByUnit retrieves the milestones of one unit sorted by order
func (r *MilestoneRepository) FindByUnit(ctx context.Context, projectID, unitID string) []models.ProjectMilestone {
	milestones := r.milestones.Filter(ctx, func(m models.ProjectMilestone) bool {
		return m.ProjectID == projectID && m.UnitID == unitID
	})
	return storage.SortByOrder(milestones)
}

func (r *MilestoneRepository) FindByID(ctx context.Context, id string) (models.ProjectMilestone, bool) {
	return r.milestones.FindByID(ctx, id)
}

func (r *MilestoneRepository) Create(ctx context.Context, milestone models.ProjectMilestone) models.ProjectMilestone {
	r.milestones.Add(ctx, milestone)
	return milestone
}

func (r *MilestoneRepository) Update(ctx context.Context, id string, fields map[string]any) (models.ProjectMilestone, bool, error) {
	return r.milestones.Update(ctx, id, fields)
}

func (r *MilestoneRepository) Delete(ctx context.Context, id string) {
	r.milestones.Delete(ctx, id)
}

// NextOrder numbers milestones across the whole project, not per unit
func (r *MilestoneRepository) NextOrder(ctx context.Context, projectID string) int {
	return storage.NextOrder(r.FindByProjectID(ctx, projectID))
}
