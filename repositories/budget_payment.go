package repositories

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/anprojects-core/lib/storage"
	"github.com/anprojects-core/models"
)

// BudgetPaymentRepository handles persistence of invoices paid against budget items
type BudgetPaymentRepository struct {
	payments *storage.Collection[models.BudgetPayment]
}

// NewBudgetPaymentRepository creates a new budget payment repository instance
func NewBudgetPaymentRepository(store storage.Store) *BudgetPaymentRepository {
	return &BudgetPaymentRepository{
		payments: storage.NewCollection[models.BudgetPayment](store, storage.KeyBudgetPayments),
	}
}

// FindAll retrieves every payment, newest invoice first
func (r *BudgetPaymentRepository) FindAll(ctx context.Context) []models.BudgetPayment {
	return sortByInvoiceDateDesc(r.payments.All(ctx))
}

// FindByBudgetItemID retrieves the payments of one item, newest invoice first
func (r *BudgetPaymentRepository) FindByBudgetItemID(ctx context.Context, budgetItemID string) []models.BudgetPayment {
	payments := r.payments.Filter(ctx, func(p models.BudgetPayment) bool {
		return p.BudgetItemID == budgetItemID
	})
	return sortByInvoiceDateDesc(payments)
}

// FindByMonth retrieves payments whose invoice falls in the given calendar month
func (r *BudgetPaymentRepository) FindByMonth(ctx context.Context, year int, month time.Month) []models.BudgetPayment {
	return r.payments.Filter(ctx, func(p models.BudgetPayment) bool {
		date, ok := ParseDate(p.InvoiceDate)
		return ok && date.Year() == year && date.Month() == month
	})
}

// FindByID retrieves a payment by its ID
func (r *BudgetPaymentRepository) FindByID(ctx context.Context, id string) (models.BudgetPayment, bool) {
	return r.payments.FindByID(ctx, id)
}

// Create appends a payment
func (r *BudgetPaymentRepository) Create(ctx context.Context, payment models.BudgetPayment) models.BudgetPayment {
	r.payments.Add(ctx, payment)
	return payment
}

// Update merges fields into an existing payment; unknown ids are ignored
func (r *BudgetPaymentRepository) Update(ctx context.Context, id string, fields map[string]any) (models.BudgetPayment, bool, error) {
	return r.payments.Update(ctx, id, fields)
}

// Delete removes a payment
func (r *BudgetPaymentRepository) Delete(ctx context.Context, id string) {
	r.payments.Delete(ctx, id)
}

// DeleteByBudgetItemID removes every payment of an item and reports how many went
func (r *BudgetPaymentRepository) DeleteByBudgetItemID(ctx context.Context, budgetItemID string) int {
	return r.payments.DeleteWhere(ctx, func(p models.BudgetPayment) bool {
		return p.BudgetItemID == budgetItemID
	})
}

// sortByInvoiceDateDesc orders payments newest first. Payments with an
// unreadable date sink to the end.
func sortByInvoiceDateDesc(payments []models.BudgetPayment) []models.BudgetPayment {
	slices.SortStableFunc(payments, func(a, b models.BudgetPayment) int {
		da, okA := ParseDate(a.InvoiceDate)
		db, okB := ParseDate(b.InvoiceDate)
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		return db.Compare(da)
	})
	return payments
}

// ParseDate reads a calendar date stored either as YYYY-MM-DD or as a full
// RFC3339 timestamp.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, true
	}
	if len(value) >= len(time.DateOnly) {
		if t, err := time.Parse(time.DateOnly, value[:len(time.DateOnly)]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
