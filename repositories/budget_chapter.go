package repositories

import (
	"context"

	"github.com/anprojects-core/lib/storage"
	"github.com/anprojects-core/models"
)

// BudgetChapterRepository handles persistence of budget chapters
type BudgetChapterRepository struct {
	chapters *storage.Collection[models.BudgetChapter]
}

// NewBudgetChapterRepository creates a new budget chapter repository instance
func NewBudgetChapterRepository(store storage.Store) *BudgetChapterRepository {
	return &BudgetChapterRepository{
		chapters: storage.NewCollection[models.BudgetChapter](store, storage.KeyBudgetChapters),
	}
}

// FindAll retrieves every chapter in stored order
func (r *BudgetChapterRepository) FindAll(ctx context.Context) []models.BudgetChapter {
	return r.chapters.All(ctx)
}

// FindByProjectID retrieves the chapters of a project sorted by order
func (r *BudgetChapterRepository) FindByProjectID(ctx context.Context, projectID string) []models.BudgetChapter {
	chapters := r.chapters.Filter(ctx, func(c models.BudgetChapter) bool {
		return c.ProjectID == projectID
	})
	return storage.SortByOrder(chapters)
}

// FindByCategory retrieves the chapters of one category sorted by order
func (r *BudgetChapterRepository) FindByCategory(ctx context.Context, projectID, categoryID string) []models.BudgetChapter {
	chapters := r.chapters.Filter(ctx, func(c models.BudgetChapter) bool {
		return c.ProjectID == projectID && c.CategoryID == categoryID
	})
	return storage.SortByOrder(chapters)
}

// FindByID retrieves a chapter by its ID
func (r *BudgetChapterRepository) FindByID(ctx context.Context, id string) (models.BudgetChapter, bool) {
	return r.chapters.FindByID(ctx, id)
}

// Create appends a chapter
func (r *BudgetChapterRepository) Create(ctx context.Context, chapter models.BudgetChapter) models.BudgetChapter {
	r.chapters.Add(ctx, chapter)
	return chapter
}

// Update merges fields into an existing chapter; unknown ids are ignored
func (r *BudgetChapterRepository) Update(ctx context.Context, id string, fields map[string]any) (models.BudgetChapter, bool, error) {
	return r.chapters.Update(ctx, id, fields)
}

// Delete removes a chapter. Its items are left in place.
func (r *BudgetChapterRepository) Delete(ctx context.Context, id string) {
	r.chapters.Delete(ctx, id)
}

// NextOrder returns the order for a new chapter appended to a category
func (r *BudgetChapterRepository) NextOrder(ctx context.Context, projectID, categoryID string) int {
	return storage.NextOrder(r.FindByCategory(ctx, projectID, categoryID))
}
