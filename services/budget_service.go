package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anprojects-core/dto"
	"github.com/anprojects-core/models"
	"github.com/anprojects-core/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when the addressed record does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidStatus is returned for a status outside the entity's enum
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidInput is returned for malformed dates and for references that
	// point outside the record's project
	ErrInvalidInput = errors.New("invalid input")
)

var hundred = decimal.NewFromInt(100)

// BudgetService aggregates budget items and keeps their derived fields current
type BudgetService struct {
	items    *repositories.BudgetItemRepository
	chapters *repositories.BudgetChapterRepository
	now      func() time.Time
	newID    func() string
}

// NewBudgetService creates a new budget service instance
func NewBudgetService(items *repositories.BudgetItemRepository, chapters *repositories.BudgetChapterRepository) *BudgetService {
	return &BudgetService{
		items:    items,
		chapters: chapters,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// ComputeTotals derives the money fields of an item. Missing quantity or unit
// price count as zero; a missing VAT rate means the default rate, while an
// explicit zero rate is honored.
func ComputeTotals(in dto.TotalsInput) dto.BudgetTotals {
	quantity := decimal.Zero
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	unitPrice := decimal.Zero
	if in.UnitPrice != nil {
		unitPrice = *in.UnitPrice
	}
	rate := models.DefaultVATRate
	if in.VATRate != nil {
		rate = *in.VATRate
	}

	total := quantity.Mul(unitPrice)
	vat := total.Mul(rate)
	return dto.BudgetTotals{
		TotalPrice:   total,
		VATAmount:    vat,
		TotalWithVAT: total.Add(vat),
	}
}

// ChapterSummary sums the items of one chapter
func (s *BudgetService) ChapterSummary(ctx context.Context, projectID, chapterID string) dto.ChapterSummary {
	summary := dto.ChapterSummary{}
	for _, item := range s.items.FindByChapter(ctx, projectID, chapterID) {
		summary.TotalPrice = summary.TotalPrice.Add(item.TotalPrice)
		summary.TotalWithVAT = summary.TotalWithVAT.Add(item.TotalWithVAT)
		summary.PaidAmount = summary.PaidAmount.Add(item.PaidAmount)
	}
	summary.RemainingAmount = summary.TotalWithVAT.Sub(summary.PaidAmount)
	return summary
}

// ProjectSummary sums the items of one project. Remaining goes negative when
// more was paid than budgeted.
func (s *BudgetService) ProjectSummary(ctx context.Context, projectID string) dto.ProjectSummary {
	items := s.items.FindByProjectID(ctx, projectID)
	summary := dto.ProjectSummary{ItemCount: len(items)}
	for _, item := range items {
		summary.TotalBudget = summary.TotalBudget.Add(item.TotalPrice)
		summary.TotalWithVAT = summary.TotalWithVAT.Add(item.TotalWithVAT)
		summary.PaidAmount = summary.PaidAmount.Add(item.PaidAmount)
	}
	summary.RemainingAmount = summary.TotalWithVAT.Sub(summary.PaidAmount)
	return summary
}

// GlobalSummary sums every item across all projects
func (s *BudgetService) GlobalSummary(ctx context.Context) dto.GlobalSummary {
	summary := dto.GlobalSummary{ProjectIDs: []string{}}
	seen := make(map[string]struct{})

	for _, item := range s.items.FindAll(ctx) {
		summary.TotalBudget = summary.TotalBudget.Add(item.TotalWithVAT)
		summary.TotalSpent = summary.TotalSpent.Add(item.PaidAmount)
		if _, ok := seen[item.ProjectID]; !ok {
			seen[item.ProjectID] = struct{}{}
			summary.ProjectIDs = append(summary.ProjectIDs, item.ProjectID)
		}
	}
	summary.TotalRemaining = summary.TotalBudget.Sub(summary.TotalSpent)
	summary.ProjectCount = len(summary.ProjectIDs)
	return summary
}

// CategorySummary groups every item by chapter id, in order of first appearance
func (s *BudgetService) CategorySummary(ctx context.Context) []dto.CategorySummaryRow {
	rows := make([]dto.CategorySummaryRow, 0)
	index := make(map[string]int)

	for _, item := range s.items.FindAll(ctx) {
		i, ok := index[item.ChapterID]
		if !ok {
			i = len(rows)
			index[item.ChapterID] = i
			rows = append(rows, dto.CategorySummaryRow{CategoryType: item.ChapterID})
		}
		rows[i].Budget = rows[i].Budget.Add(item.TotalWithVAT)
		rows[i].Spent = rows[i].Spent.Add(item.PaidAmount)
	}
	return rows
}

// ListItems returns a project's items in order, optionally only one chapter's
func (s *BudgetService) ListItems(ctx context.Context, projectID, chapterID string) []models.BudgetItem {
	if chapterID != "" {
		return s.items.FindByChapter(ctx, projectID, chapterID)
	}
	return s.items.FindByProjectID(ctx, projectID)
}

// GetBudgetItem returns an item by id
func (s *BudgetService) GetBudgetItem(ctx context.Context, id string) (models.BudgetItem, error) {
	item, ok := s.items.FindByID(ctx, id)
	if !ok {
		return models.BudgetItem{}, ErrNotFound
	}
	return item, nil
}

// CreateBudgetItem adds an item at the end of its chapter with computed totals
func (s *BudgetService) CreateBudgetItem(ctx context.Context, projectID string, req dto.CreateBudgetItemRequest) (models.BudgetItem, error) {
	status := models.BudgetItemStatus(req.Status)
	if status == "" {
		status = models.BudgetItemStatusPending
	}
	if !status.Valid() {
		return models.BudgetItem{}, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	vatRate := models.DefaultVATRate
	if req.VATRate != nil {
		vatRate = *req.VATRate
	}
	totals := ComputeTotals(dto.TotalsInput{Quantity: req.Quantity, UnitPrice: req.UnitPrice, VATRate: &vatRate})

	now := s.now().UTC()
	item := models.BudgetItem{
		ID:                  s.newID(),
		ProjectID:           projectID,
		ChapterID:           req.ChapterID,
		Code:                req.Code,
		Description:         req.Description,
		Unit:                req.Unit,
		Quantity:            req.Quantity,
		UnitPrice:           req.UnitPrice,
		TotalPrice:          totals.TotalPrice,
		VATRate:             vatRate,
		VATAmount:           totals.VATAmount,
		TotalWithVAT:        totals.TotalWithVAT,
		Status:              status,
		SupplierID:          req.SupplierID,
		SupplierName:        req.SupplierName,
		TenderID:            req.TenderID,
		ExpectedPaymentDate: req.ExpectedPaymentDate,
		Order:               s.items.NextOrder(ctx, projectID, req.ChapterID),
		Notes:               req.Notes,
		EstimateItemID:      req.EstimateItemID,
		EstimateAmount:      req.EstimateAmount,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if item.EstimateAmount != nil {
		v := itemVariance(item)
		item.VarianceAmount = &v.VarianceAmount
		item.VariancePercent = &v.VariancePercent
	}

	return s.items.Create(ctx, item), nil
}

// UpdateBudgetItem merges fields into an item. When quantity, unit price or
// VAT rate change the totals are recomputed; when totals or the estimate
// change the stored variance follows.
func (s *BudgetService) UpdateBudgetItem(ctx context.Context, id string, fields map[string]any) (models.BudgetItem, error) {
	if raw, ok := fields["status"]; ok {
		status, _ := raw.(string)
		if !models.BudgetItemStatus(status).Valid() {
			return models.BudgetItem{}, fmt.Errorf("%w: %v", ErrInvalidStatus, raw)
		}
	}
	delete(fields, "id")
	delete(fields, "project_id")

	current, ok := s.items.FindByID(ctx, id)
	if !ok {
		return models.BudgetItem{}, ErrNotFound
	}
	if raw, ok := fields["chapter_id"]; ok {
		chapterID, _ := raw.(string)
		chapter, found := s.chapters.FindByID(ctx, chapterID)
		if !found || chapter.ProjectID != current.ProjectID {
			return models.BudgetItem{}, fmt.Errorf("%w: chapter %v is not part of the project", ErrInvalidInput, raw)
		}
	}

	item, ok, err := s.items.Update(ctx, id, fields)
	if err != nil {
		return models.BudgetItem{}, err
	}
	if !ok {
		return models.BudgetItem{}, ErrNotFound
	}

	derived := make(map[string]any)
	if hasAny(fields, "quantity", "unit_price", "vat_rate") {
		totals := ComputeTotals(dto.TotalsInput{Quantity: item.Quantity, UnitPrice: item.UnitPrice, VATRate: &item.VATRate})
		item.TotalPrice, item.VATAmount, item.TotalWithVAT = totals.TotalPrice, totals.VATAmount, totals.TotalWithVAT
		derived["total_price"] = totals.TotalPrice
		derived["vat_amount"] = totals.VATAmount
		derived["total_with_vat"] = totals.TotalWithVAT
	}
	if len(derived) > 0 || hasAny(fields, "estimate_amount", "total_with_vat") {
		if item.EstimateAmount != nil {
			v := itemVariance(item)
			derived["variance_amount"] = v.VarianceAmount
			derived["variance_percent"] = v.VariancePercent
		} else {
			derived["variance_amount"] = nil
			derived["variance_percent"] = nil
		}
	}
	if len(derived) == 0 {
		return item, nil
	}

	item, _, err = s.items.Update(ctx, id, derived)
	return item, err
}

// DeleteBudgetItem removes an item together with its payments
func (s *BudgetService) DeleteBudgetItem(ctx context.Context, id string) error {
	if _, ok := s.items.FindByID(ctx, id); !ok {
		return ErrNotFound
	}
	s.items.Delete(ctx, id)
	return nil
}

// CategoryBudget sums the planned and contracted amounts of a category's chapters
func (s *BudgetService) CategoryBudget(ctx context.Context, projectID, categoryID string) dto.CategoryBudget {
	result := dto.CategoryBudget{}
	for _, chapter := range s.chapters.FindByCategory(ctx, projectID, categoryID) {
		result.Budget = result.Budget.Add(chapter.BudgetAmount)
		if chapter.ContractAmount != nil {
			result.Contract = result.Contract.Add(*chapter.ContractAmount)
		}
	}
	return result
}

// CalculateVariance compares an item's total with VAT against its estimate
func (s *BudgetService) CalculateVariance(ctx context.Context, itemID string) (dto.Variance, error) {
	item, ok := s.items.FindByID(ctx, itemID)
	if !ok {
		return dto.Variance{}, ErrNotFound
	}
	return itemVariance(item), nil
}

// ProjectVariance totals the variance of every item in a project. Items
// without an estimate count toward the budget only.
func (s *BudgetService) ProjectVariance(ctx context.Context, projectID string) dto.ProjectVariance {
	result := dto.ProjectVariance{}
	for _, item := range s.items.FindByProjectID(ctx, projectID) {
		result.TotalBudget = result.TotalBudget.Add(item.TotalWithVAT)
		if item.EstimateAmount != nil {
			result.TotalEstimate = result.TotalEstimate.Add(*item.EstimateAmount)
			result.ItemsWithVariance++
		}
	}

	variance := result.TotalBudget.Sub(result.TotalEstimate)
	result.TotalVariance = variance.Round(2)
	result.VariancePercent = percentOf(variance, result.TotalEstimate)
	result.Color = varianceColor(variance)
	result.TotalBudget = result.TotalBudget.Round(2)
	result.TotalEstimate = result.TotalEstimate.Round(2)
	return result
}

func itemVariance(item models.BudgetItem) dto.Variance {
	budget := item.TotalWithVAT
	if item.EstimateAmount == nil {
		return dto.Variance{BudgetAmount: budget, Color: "gray"}
	}

	estimate := *item.EstimateAmount
	variance := budget.Sub(estimate)
	return dto.Variance{
		EstimateAmount:  estimate,
		BudgetAmount:    budget,
		VarianceAmount:  variance.Round(2),
		VariancePercent: percentOf(variance, estimate),
		Color:           varianceColor(variance),
	}
}

// percentOf returns part/whole*100 rounded to 2 places, or 0 for a zero whole
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

// under budget is green, over is red
func varianceColor(variance decimal.Decimal) string {
	switch variance.Sign() {
	case -1:
		return "green"
	case 1:
		return "red"
	}
	return "gray"
}

func hasAny(fields map[string]any, keys ...string) bool {
	for _, key := range keys {
		if _, ok := fields[key]; ok {
			return true
		}
	}
	return false
}

func validDate(value string) bool {
	_, ok := repositories.ParseDate(value)
	return ok
}

// checkDateField validates fields[key] when present. Optional dates may be
// cleared with an empty string or null.
func checkDateField(fields map[string]any, key string, required bool) error {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	value, isString := raw.(string)
	if !required && (raw == nil || value == "") {
		return nil
	}
	if !isString || !validDate(value) {
		return fmt.Errorf("%w: %s %v", ErrInvalidInput, key, raw)
	}
	return nil
}
