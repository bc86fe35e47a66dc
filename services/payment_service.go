package services

import (
	"context"
	"fmt"
	"time"

	"github.com/anprojects-core/dto"
	"github.com/anprojects-core/models"
	"github.com/anprojects-core/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentService records invoices against budget items
type PaymentService struct {
	payments *repositories.BudgetPaymentRepository
	items    *repositories.BudgetItemRepository
	now      func() time.Time
	newID    func() string
}

// NewPaymentService creates a new payment service instance
func NewPaymentService(payments *repositories.BudgetPaymentRepository, items *repositories.BudgetItemRepository) *PaymentService {
	return &PaymentService{
		payments: payments,
		items:    items,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// PaymentTotals derives VAT and total for an invoice. A missing or zero VAT
// amount is replaced by the default rate applied to amount.
func PaymentTotals(amount decimal.Decimal, vatAmount *decimal.Decimal) dto.PaymentTotals {
	vat := amount.Mul(models.DefaultVATRate)
	if vatAmount != nil && !vatAmount.IsZero() {
		vat = *vatAmount
	}
	return dto.PaymentTotals{VATAmount: vat, TotalAmount: amount.Add(vat)}
}

// ListByItem returns an item's payments, newest invoice first
func (s *PaymentService) ListByItem(ctx context.Context, itemID string) []models.BudgetPayment {
	return s.payments.FindByBudgetItemID(ctx, itemID)
}

func (s *PaymentService) GetPayment(ctx context.Context, id string) (models.BudgetPayment, error) {
	payment, ok := s.payments.FindByID(ctx, id)
	if !ok {
		return models.BudgetPayment{}, ErrNotFound
	}
	return payment, nil
}

// ItemPaymentSummary splits an item's payment totals into paid and everything else
func (s *PaymentService) ItemPaymentSummary(ctx context.Context, itemID string) dto.ItemPaymentSummary {
	payments := s.payments.FindByBudgetItemID(ctx, itemID)
	summary := dto.ItemPaymentSummary{PaymentCount: len(payments)}
	for _, p := range payments {
		if p.Status == models.BudgetPaymentStatusPaid {
			summary.TotalPaid = summary.TotalPaid.Add(p.TotalAmount)
		} else {
			summary.PendingAmount = summary.PendingAmount.Add(p.TotalAmount)
		}
	}
	return summary
}

// ByMonth returns the payments invoiced in a calendar month
func (s *PaymentService) ByMonth(ctx context.Context, year int, month time.Month) []models.BudgetPayment {
	return s.payments.FindByMonth(ctx, year, month)
}

// CreatePayment records an invoice against an existing item
func (s *PaymentService) CreatePayment(ctx context.Context, itemID string, req dto.CreatePaymentRequest) (models.BudgetPayment, error) {
	if _, ok := s.items.FindByID(ctx, itemID); !ok {
		return models.BudgetPayment{}, ErrNotFound
	}

	if !validDate(req.InvoiceDate) {
		return models.BudgetPayment{}, fmt.Errorf("%w: invoice_date %q", ErrInvalidInput, req.InvoiceDate)
	}
	if req.PaymentDate != "" && !validDate(req.PaymentDate) {
		return models.BudgetPayment{}, fmt.Errorf("%w: payment_date %q", ErrInvalidInput, req.PaymentDate)
	}

	status := models.BudgetPaymentStatus(req.Status)
	if status == "" {
		status = models.BudgetPaymentStatusPending
	}
	if !status.Valid() {
		return models.BudgetPayment{}, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	totals := PaymentTotals(req.Amount, req.VATAmount)
	now := s.now().UTC()
	payment := models.BudgetPayment{
		ID:            s.newID(),
		BudgetItemID:  itemID,
		InvoiceNumber: req.InvoiceNumber,
		InvoiceDate:   req.InvoiceDate,
		Amount:        req.Amount,
		VATAmount:     totals.VATAmount,
		TotalAmount:   totals.TotalAmount,
		Status:        status,
		PaymentDate:   req.PaymentDate,
		MilestoneID:   req.MilestoneID,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return s.payments.Create(ctx, payment), nil
}

// UpdatePayment merges fields into a payment, recomputing totals when the
// amount or VAT changes.
func (s *PaymentService) UpdatePayment(ctx context.Context, id string, fields map[string]any) (models.BudgetPayment, error) {
	if raw, ok := fields["status"]; ok {
		status, _ := raw.(string)
		if !models.BudgetPaymentStatus(status).Valid() {
			return models.BudgetPayment{}, fmt.Errorf("%w: %v", ErrInvalidStatus, raw)
		}
	}
	if err := checkDateField(fields, "invoice_date", true); err != nil {
		return models.BudgetPayment{}, err
	}
	if err := checkDateField(fields, "payment_date", false); err != nil {
		return models.BudgetPayment{}, err
	}
	delete(fields, "id")
	delete(fields, "budget_item_id")

	payment, ok, err := s.payments.Update(ctx, id, fields)
	if err != nil {
		return models.BudgetPayment{}, err
	}
	if !ok {
		return models.BudgetPayment{}, ErrNotFound
	}
	if !hasAny(fields, "amount", "vat_amount") {
		return payment, nil
	}

	vat := payment.VATAmount
	if _, ok := fields["vat_amount"]; !ok {
		// amount changed alone: VAT follows the default rate again
		vat = decimal.Zero
	}
	totals := PaymentTotals(payment.Amount, &vat)
	payment, _, err = s.payments.Update(ctx, id, map[string]any{
		"vat_amount":   totals.VATAmount,
		"total_amount": totals.TotalAmount,
	})
	return payment, err
}

// DeletePayment removes a payment
func (s *PaymentService) DeletePayment(ctx context.Context, id string) error {
	if _, ok := s.payments.FindByID(ctx, id); !ok {
		return ErrNotFound
	}
	s.payments.Delete(ctx, id)
	return nil
}
