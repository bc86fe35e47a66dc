package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/anprojects-core/lib/storage"
	"github.com/anprojects-core/models"
	"github.com/stretchr/testify/assert"
)

func paymentIDs(payments []models.BudgetPayment) []string {
	ids := make([]string, 0, len(payments))
	for _, p := range payments {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestBudgetPaymentRepository_SortedNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetPaymentRepository(storage.NewMemoryStore())

	repo.Create(ctx, models.BudgetPayment{ID: "old", BudgetItemID: "i1", InvoiceDate: "2024-05-01"})
	repo.Create(ctx, models.BudgetPayment{ID: "bad", BudgetItemID: "i1", InvoiceDate: "someday"})
	repo.Create(ctx, models.BudgetPayment{ID: "new", BudgetItemID: "i1", InvoiceDate: "2025-01-15T08:00:00Z"})
	repo.Create(ctx, models.BudgetPayment{ID: "mid", BudgetItemID: "i2", InvoiceDate: "2024-11-30"})

	assert.Equal(t, []string{"new", "mid", "old", "bad"}, paymentIDs(repo.FindAll(ctx)))
	assert.Equal(t, []string{"new", "old", "bad"}, paymentIDs(repo.FindByBudgetItemID(ctx, "i1")))
}

func TestBudgetPaymentRepository_FindByMonth(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetPaymentRepository(storage.NewMemoryStore())

	repo.Create(ctx, models.BudgetPayment{ID: "a", InvoiceDate: "2025-03-01"})
	repo.Create(ctx, models.BudgetPayment{ID: "b", InvoiceDate: "2025-03-31"})
	repo.Create(ctx, models.BudgetPayment{ID: "c", InvoiceDate: "2025-04-01"})
	repo.Create(ctx, models.BudgetPayment{ID: "d", InvoiceDate: "2024-03-15"})

	assert.ElementsMatch(t, []string{"a", "b"}, paymentIDs(repo.FindByMonth(ctx, 2025, time.March)))
	assert.Empty(t, repo.FindByMonth(ctx, 2025, time.May))
}

func TestBudgetPaymentRepository_DeleteByBudgetItemID(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetPaymentRepository(storage.NewMemoryStore())

	repo.Create(ctx, models.BudgetPayment{ID: "a", BudgetItemID: "i1"})
	repo.Create(ctx, models.BudgetPayment{ID: "b", BudgetItemID: "i2"})
	repo.Create(ctx, models.BudgetPayment{ID: "c", BudgetItemID: "i1"})

	assert.Equal(t, 2, repo.DeleteByBudgetItemID(ctx, "i1"))
	assert.Equal(t, 0, repo.DeleteByBudgetItemID(ctx, "i1"))
	assert.Equal(t, []string{"b"}, paymentIDs(repo.FindAll(ctx)))
}

func TestParseDate(t *testing.T) {
	date, ok := ParseDate("2025-06-07")
	assert.True(t, ok)
	assert.Equal(t, time.June, date.Month())

	date, ok = ParseDate("2025-06-07T23:00:00.000Z")
	assert.True(t, ok)
	assert.Equal(t, 7, date.Day())

	_, ok = ParseDate("")
	assert.False(t, ok)
	_, ok = ParseDate("07/06/2025")
	assert.False(t, ok)
}
