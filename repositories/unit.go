package repositories

import (
	"context"

	"github.com/anprojects-core/lib/storage"
	"github.com/anprojects-core/models"
)

// UnitRepository handles persistence of apartments, common areas and buildings
type UnitRepository struct {
	units *storage.Collection[models.ProjectUnit]
}

// NewUnitRepository creates a new unit repository instance
func NewUnitRepository(store storage.Store) *UnitRepository {
	return &UnitRepository{
		units: storage.NewCollection[models.ProjectUnit](store, storage.KeyUnits),
	}
}

func (r *UnitRepository) FindAll(ctx context.Context) []models.ProjectUnit {
	return r.units.All(ctx)
}

// FindByProjectID retrieves the units of a project sorted by order
func (r *UnitRepository) FindByProjectID(ctx context.Context, projectID string) []models.ProjectUnit {
	units := r.units.Filter(ctx, func(u models.ProjectUnit) bool {
		return u.ProjectID == projectID
	})
	return storage.SortByOrder(units)
}

func (r *UnitRepository) FindByID(ctx context.Context, id string) (models.ProjectUnit, bool) {
	return r.units.FindByID(ctx, id)
}

func (r *UnitRepository) Create(ctx context.Context, unit models.ProjectUnit) models.ProjectUnit {
	r.units.Add(ctx, unit)
	return unit
}

func (r *UnitRepository) Update(ctx context.Context, id string, fields map[string]any) (models.ProjectUnit, bool, error) {
	return r.units.Update(ctx, id, fields)
}

// Delete removes a unit. Milestones pointing at it are left in place.
func (r *UnitRepository) Delete(ctx context.Context, id string) {
	r.units.Delete(ctx, id)
}

func (r *UnitRepository) NextOrder(ctx context.Context, projectID string) int {
	return storage.NextOrder(r.FindByProjectID(ctx, projectID))
}
