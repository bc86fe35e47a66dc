package services

import (
	"context"
	"fmt"
	"time"

	"github.com/anprojects-core/dto"
	"github.com/anprojects-core/models"
	"github.com/anprojects-core/repositories"
	"github.com/google/uuid"
)

// BudgetStructureService manages the category and chapter tree of a project budget
type BudgetStructureService struct {
	chapters   *repositories.BudgetChapterRepository
	categories *repositories.BudgetCategoryRepository
	now        func() time.Time
	newID      func() string
}

// NewBudgetStructureService creates a new budget structure service instance
func NewBudgetStructureService(chapters *repositories.BudgetChapterRepository, categories *repositories.BudgetCategoryRepository) *BudgetStructureService {
	return &BudgetStructureService{
		chapters:   chapters,
		categories: categories,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

func (s *BudgetStructureService) ListCategories(ctx context.Context, projectID string) []models.BudgetCategory {
	return s.categories.FindByProjectID(ctx, projectID)
}

func (s *BudgetStructureService) ListChapters(ctx context.Context, projectID, categoryID string) []models.BudgetChapter {
	if categoryID != "" {
		return s.chapters.FindByCategory(ctx, projectID, categoryID)
	}
	return s.chapters.FindByProjectID(ctx, projectID)
}

func (s *BudgetStructureService) GetCategory(ctx context.Context, id string) (models.BudgetCategory, error) {
	category, ok := s.categories.FindByID(ctx, id)
	if !ok {
		return models.BudgetCategory{}, ErrNotFound
	}
	return category, nil
}

func (s *BudgetStructureService) GetChapter(ctx context.Context, id string) (models.BudgetChapter, error) {
	chapter, ok := s.chapters.FindByID(ctx, id)
	if !ok {
		return models.BudgetChapter{}, ErrNotFound
	}
	return chapter, nil
}

// CreateCategory appends a category to the project
func (s *BudgetStructureService) CreateCategory(ctx context.Context, projectID string, req dto.CreateCategoryRequest) (models.BudgetCategory, error) {
	categoryType := models.BudgetCategoryType(req.Type)
	if !categoryType.Valid() {
		return models.BudgetCategory{}, fmt.Errorf("%w: category type %q", ErrInvalidStatus, req.Type)
	}

	now := s.now().UTC()
	category := models.BudgetCategory{
		ID:        s.newID(),
		ProjectID: projectID,
		Name:      req.Name,
		Type:      categoryType,
		Icon:      req.Icon,
		Color:     req.Color,
		Order:     s.categories.NextOrder(ctx, projectID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.categories.Create(ctx, category), nil
}

// CreateChapter appends a chapter to a category
func (s *BudgetStructureService) CreateChapter(ctx context.Context, projectID string, req dto.CreateChapterRequest) (models.BudgetChapter, error) {
	now := s.now().UTC()
	chapter := models.BudgetChapter{
		ID:             s.newID(),
		ProjectID:      projectID,
		CategoryID:     req.CategoryID,
		Code:           req.Code,
		Name:           req.Name,
		BudgetAmount:   req.BudgetAmount,
		ContractAmount: req.ContractAmount,
		Order:          s.chapters.NextOrder(ctx, projectID, req.CategoryID),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return s.chapters.Create(ctx, chapter), nil
}

func (s *BudgetStructureService) UpdateCategory(ctx context.Context, id string, fields map[string]any) (models.BudgetCategory, error) {
	if raw, ok := fields["type"]; ok {
		value, _ := raw.(string)
		if !models.BudgetCategoryType(value).Valid() {
			return models.BudgetCategory{}, fmt.Errorf("%w: category type %v", ErrInvalidStatus, raw)
		}
	}
	delete(fields, "id")
	delete(fields, "project_id")
	category, ok, err := s.categories.Update(ctx, id, fields)
	if err != nil {
		return models.BudgetCategory{}, err
	}
	if !ok {
		return models.BudgetCategory{}, ErrNotFound
	}
	return category, nil
}

func (s *BudgetStructureService) UpdateChapter(ctx context.Context, id string, fields map[string]any) (models.BudgetChapter, error) {
	delete(fields, "id")
	delete(fields, "project_id")

	current, ok := s.chapters.FindByID(ctx, id)
	if !ok {
		return models.BudgetChapter{}, ErrNotFound
	}
	if raw, ok := fields["category_id"]; ok {
		categoryID, _ := raw.(string)
		category, found := s.categories.FindByID(ctx, categoryID)
		if !found || category.ProjectID != current.ProjectID {
			return models.BudgetChapter{}, fmt.Errorf("%w: category %v is not part of the project", ErrInvalidInput, raw)
		}
	}

	chapter, ok, err := s.chapters.Update(ctx, id, fields)
	if err != nil {
		return models.BudgetChapter{}, err
	}
	if !ok {
		return models.BudgetChapter{}, ErrNotFound
	}
	return chapter, nil
}

// DeleteCategory removes a category only; chapters are not cascaded
func (s *BudgetStructureService) DeleteCategory(ctx context.Context, id string) error {
	if _, ok := s.categories.FindByID(ctx, id); !ok {
		return ErrNotFound
	}
	s.categories.Delete(ctx, id)
	return nil
}

// DeleteChapter removes a chapter only; items are not cascaded
func (s *BudgetStructureService) DeleteChapter(ctx context.Context, id string) error {
	if _, ok := s.chapters.FindByID(ctx, id); !ok {
		return ErrNotFound
	}
	s.chapters.Delete(ctx, id)
	return nil
}
