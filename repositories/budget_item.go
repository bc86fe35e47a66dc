package repositories

import (
	"context"

	"github.com/anprojects-core/lib/storage"
	"github.com/anprojects-core/models"
)

// BudgetItemRepository handles persistence of budget lines
type BudgetItemRepository struct {
	items    *storage.Collection[models.BudgetItem]
	payments *BudgetPaymentRepository
}

// NewBudgetItemRepository creates a new budget item repository instance.
// Deleting an item also deletes its payments through payments.
func NewBudgetItemRepository(store storage.Store, payments *BudgetPaymentRepository) *BudgetItemRepository {
	return &BudgetItemRepository{
		items:    storage.NewCollection[models.BudgetItem](store, storage.KeyBudgetItems),
		payments: payments,
	}
}

// FindAll retrieves every budget item in stored order
func (r *BudgetItemRepository) FindAll(ctx context.Context) []models.BudgetItem {
	return r.items.All(ctx)
}

// FindByProjectID retrieves the items of a project sorted by order
func (r *BudgetItemRepository) FindByProjectID(ctx context.Context, projectID string) []models.BudgetItem {
	items := r.items.Filter(ctx, func(i models.BudgetItem) bool {
		return i.ProjectID == projectID
	})
	return storage.SortByOrder(items)
}

// FindByChapter retrieves the items of one chapter sorted by order
func (r *BudgetItemRepository) FindByChapter(ctx context.Context, projectID, chapterID string) []models.BudgetItem {
	items := r.items.Filter(ctx, func(i models.BudgetItem) bool {
		return i.ProjectID == projectID && i.ChapterID == chapterID
	})
	return storage.SortByOrder(items)
}

// FindByID retrieves a budget item by its ID
func (r *BudgetItemRepository) FindByID(ctx context.Context, id string) (models.BudgetItem, bool) {
	return r.items.FindByID(ctx, id)
}

// Create appends a budget item
func (r *BudgetItemRepository) Create(ctx context.Context, item models.BudgetItem) models.BudgetItem {
	r.items.Add(ctx, item)
	return item
}

// Update merges fields into an existing item; unknown ids are ignored
func (r *BudgetItemRepository) Update(ctx context.Context, id string, fields map[string]any) (models.BudgetItem, bool, error) {
	return r.items.Update(ctx, id, fields)
}

// Delete removes the item's payments and then the item itself
func (r *BudgetItemRepository) Delete(ctx context.Context, id string) {
	r.payments.DeleteByBudgetItemID(ctx, id)
	r.items.Delete(ctx, id)
}

// NextOrder returns the order for a new item appended to a chapter
func (r *BudgetItemRepository) NextOrder(ctx context.Context, projectID, chapterID string) int {
	return storage.NextOrder(r.FindByChapter(ctx, projectID, chapterID))
}
