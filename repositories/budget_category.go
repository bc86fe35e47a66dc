package repositories

import (
	"context"

	"github.com/anprojects-core/lib/storage"
	"github.com/anprojects-core/models"
)

// BudgetCategoryRepository handles persistence of budget categories
type BudgetCategoryRepository struct {
	categories *storage.Collection[models.BudgetCategory]
}

// NewBudgetCategoryRepository creates a new budget category repository instance
func NewBudgetCategoryRepository(store storage.Store) *BudgetCategoryRepository {
	return &BudgetCategoryRepository{
		categories: storage.NewCollection[models.BudgetCategory](store, storage.KeyBudgetCategories),
	}
}

func (r *BudgetCategoryRepository) FindAll(ctx context.Context) []models.BudgetCategory {
	return r.categories.All(ctx)
}

// FindByProjectID retrieves the categories of a project sorted by order
func (r *BudgetCategoryRepository) FindByProjectID(ctx context.Context, projectID string) []models.BudgetCategory {
	categories := r.categories.Filter(ctx, func(c models.BudgetCategory) bool {
		return c.ProjectID == projectID
	})
	return storage.SortByOrder(categories)
}

func (r *BudgetCategoryRepository) FindByID(ctx context.Context, id string) (models.BudgetCategory, bool) {
	return r.categories.FindByID(ctx, id)
}

func (r *BudgetCategoryRepository) Create(ctx context.Context, category models.BudgetCategory) models.BudgetCategory {
	r.categories.Add(ctx, category)
	return category
}

func (r *BudgetCategoryRepository) Update(ctx context.Context, id string, fields map[string]any) (models.BudgetCategory, bool, error) {
	return r.categories.Update(ctx, id, fields)
}

// Delete removes a category. Its chapters are left in place.
func (r *BudgetCategoryRepository) Delete(ctx context.Context, id string) {
	r.categories.Delete(ctx, id)
}

// NextOrder returns the order for a new category in a project
func (r *BudgetCategoryRepository) NextOrder(ctx context.Context, projectID string) int {
	return storage.NextOrder(r.FindByProjectID(ctx, projectID))
}
