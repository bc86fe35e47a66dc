package services

import (
	"context"
	"testing"
	"time"

	"github.com/anprojects-core/dto"
	"github.com/anprojects-core/lib/storage"
	"github.com/anprojects-core/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentTotals(t *testing.T) {
	totals := PaymentTotals(dec("1000"), nil)
	assertDecimal(t, "170", totals.VATAmount)
	assertDecimal(t, "1170", totals.TotalAmount)

	totals = PaymentTotals(dec("1000"), decPtr("0"))
	assertDecimal(t, "170", totals.VATAmount)

	totals = PaymentTotals(dec("1000"), decPtr("50"))
	assertDecimal(t, "50", totals.VATAmount)
	assertDecimal(t, "1050", totals.TotalAmount)
}

func TestPaymentService_CreateRequiresItem(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	_, err := env.payment.CreatePayment(ctx, "missing", dto.CreatePaymentRequest{InvoiceDate: "2025-01-01", Amount: dec("1")})
	assert.ErrorIs(t, err, ErrNotFound)

	env.items.Create(ctx, models.BudgetItem{ID: "i1", ProjectID: "p1"})
	payment, err := env.payment.CreatePayment(ctx, "i1", dto.CreatePaymentRequest{InvoiceNumber: "INV-7", InvoiceDate: "2025-01-01", Amount: dec("200")})
	require.NoError(t, err)
	assert.Equal(t, "pay-1", payment.ID)
	assert.Equal(t, models.BudgetPaymentStatusPending, payment.Status)
	assertDecimal(t, "34", payment.VATAmount)
	assertDecimal(t, "234", payment.TotalAmount)

	_, err = env.payment.CreatePayment(ctx, "i1", dto.CreatePaymentRequest{InvoiceDate: "2025-01-01", Status: "refunded"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = env.payment.CreatePayment(ctx, "i1", dto.CreatePaymentRequest{InvoiceDate: "last tuesday", Amount: dec("1")})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = env.payment.CreatePayment(ctx, "i1", dto.CreatePaymentRequest{InvoiceDate: "2025-01-01", PaymentDate: "soon", Amount: dec("1")})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Len(t, env.payment.ListByItem(ctx, "i1"), 1)
}

func TestPaymentService_SummaryAndMonth(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.items.Create(ctx, models.BudgetItem{ID: "i1", ProjectID: "p1"})

	for _, req := range []dto.CreatePaymentRequest{
		{InvoiceDate: "2025-03-02", Amount: dec("100"), Status: "paid"},
		{InvoiceDate: "2025-03-28", Amount: dec("100"), VATAmount: decPtr("0.5"), Status: "approved"},
		{InvoiceDate: "2025-04-01", Amount: dec("10")},
	} {
		_, err := env.payment.CreatePayment(ctx, "i1", req)
		require.NoError(t, err)
	}

	summary := env.payment.ItemPaymentSummary(ctx, "i1")
	assert.Equal(t, 3, summary.PaymentCount)
	assertDecimal(t, "117", summary.TotalPaid)
	assertDecimal(t, "112.2", summary.PendingAmount)

	march := env.payment.ByMonth(ctx, 2025, time.March)
	assert.Len(t, march, 2)
	assert.Empty(t, env.payment.ByMonth(ctx, 2024, time.March))

	listed := env.payment.ListByItem(ctx, "i1")
	require.Len(t, listed, 3)
	assert.Equal(t, "2025-04-01", listed[0].InvoiceDate)

	empty := env.payment.ItemPaymentSummary(ctx, "none")
	assert.Equal(t, 0, empty.PaymentCount)
	assert.True(t, empty.TotalPaid.IsZero())
}

func TestPaymentService_UpdateRecomputes(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.items.Create(ctx, models.BudgetItem{ID: "i1", ProjectID: "p1"})
	payment, err := env.payment.CreatePayment(ctx, "i1", dto.CreatePaymentRequest{InvoiceDate: "2025-01-01", Amount: dec("100"), VATAmount: decPtr("5")})
	require.NoError(t, err)

	updated, err := env.payment.UpdatePayment(ctx, payment.ID, map[string]any{"vat_amount": 20})
	require.NoError(t, err)
	assertDecimal(t, "20", updated.VATAmount)
	assertDecimal(t, "120", updated.TotalAmount)

	// amount alone falls back to the default rate
	updated, err = env.payment.UpdatePayment(ctx, payment.ID, map[string]any{"amount": 1000})
	require.NoError(t, err)
	assertDecimal(t, "170", updated.VATAmount)
	assertDecimal(t, "1170", updated.TotalAmount)

	updated, err = env.payment.UpdatePayment(ctx, payment.ID, map[string]any{"status": "paid", "budget_item_id": "other"})
	require.NoError(t, err)
	assert.Equal(t, models.BudgetPaymentStatusPaid, updated.Status)
	assert.Equal(t, "i1", updated.BudgetItemID)
	assertDecimal(t, "1170", updated.TotalAmount)

	_, err = env.payment.UpdatePayment(ctx, payment.ID, map[string]any{"status": "void"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = env.payment.UpdatePayment(ctx, payment.ID, map[string]any{"invoice_date": ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = env.payment.UpdatePayment(ctx, payment.ID, map[string]any{"amount": "lots"})
	assert.ErrorIs(t, err, storage.ErrInvalidFields)

	cleared, err := env.payment.UpdatePayment(ctx, payment.ID, map[string]any{"payment_date": ""})
	require.NoError(t, err)
	assert.Empty(t, cleared.PaymentDate)
	_, err = env.payment.UpdatePayment(ctx, "missing", map[string]any{"notes": "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, env.payment.DeletePayment(ctx, payment.ID))
	assert.ErrorIs(t, env.payment.DeletePayment(ctx, payment.ID), ErrNotFound)
}
