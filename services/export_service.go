package services

import (
	"context"
	"fmt"
	"io"

	"github.com/anprojects-core/models"
	"github.com/anprojects-core/repositories"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	budgetSheet   = "Budget"
	paymentsSheet = "Payments"
)

var budgetHeaders = []string{
	"Chapter", "Code", "Description", "Unit", "Quantity", "Unit price",
	"Total", "VAT", "Total with VAT", "Paid", "Remaining", "Status",
}

var paymentHeaders = []string{
	"Item", "Invoice", "Invoice date", "Amount", "VAT", "Total", "Status", "Payment date",
}

// ExportService renders a project budget as an xlsx workbook
type ExportService struct {
	items    *repositories.BudgetItemRepository
	chapters *repositories.BudgetChapterRepository
	payments *repositories.BudgetPaymentRepository
	budget   *BudgetService
}

// NewExportService creates a new export service instance
func NewExportService(
	items *repositories.BudgetItemRepository,
	chapters *repositories.BudgetChapterRepository,
	payments *repositories.BudgetPaymentRepository,
	budget *BudgetService,
) *ExportService {
	return &ExportService{items: items, chapters: chapters, payments: payments, budget: budget}
}

// WriteProjectBudget writes the budget and payment sheets of a project to w
func (s *ExportService) WriteProjectBudget(ctx context.Context, projectID string, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	// the default sheet becomes the budget sheet
	if err := f.SetSheetName("Sheet1", budgetSheet); err != nil {
		return err
	}
	writeHeader(f, budgetSheet, budgetHeaders)

	chapterNames := make(map[string]string)
	for _, chapter := range s.chapters.FindByProjectID(ctx, projectID) {
		chapterNames[chapter.ID] = chapter.Name
	}

	items := s.items.FindByProjectID(ctx, projectID)
	descriptions := make(map[string]string, len(items))
	row := 2
	for _, item := range items {
		descriptions[item.ID] = item.Description
		chapter := chapterNames[item.ChapterID]
		if chapter == "" {
			chapter = item.ChapterID
		}
		setRow(f, budgetSheet, row, []any{
			chapter,
			item.Code,
			item.Description,
			item.Unit,
			optionalNumber(item.Quantity),
			optionalNumber(item.UnitPrice),
			item.TotalPrice.InexactFloat64(),
			item.VATAmount.InexactFloat64(),
			item.TotalWithVAT.InexactFloat64(),
			item.PaidAmount.InexactFloat64(),
			item.TotalWithVAT.Sub(item.PaidAmount).InexactFloat64(),
			string(item.Status),
		})
		row++
	}

	summary := s.budget.ProjectSummary(ctx, projectID)
	setRow(f, budgetSheet, row+1, []any{
		"Total", "", fmt.Sprintf("%d items", summary.ItemCount), "", "", "",
		summary.TotalBudget.InexactFloat64(),
		summary.TotalWithVAT.Sub(summary.TotalBudget).InexactFloat64(),
		summary.TotalWithVAT.InexactFloat64(),
		summary.PaidAmount.InexactFloat64(),
		summary.RemainingAmount.InexactFloat64(),
		"",
	})

	if _, err := f.NewSheet(paymentsSheet); err != nil {
		return err
	}
	writeHeader(f, paymentsSheet, paymentHeaders)
	row = 2
	for _, payment := range s.payments.FindAll(ctx) {
		description, ok := descriptions[payment.BudgetItemID]
		if !ok {
			continue
		}
		setRow(f, paymentsSheet, row, paymentRow(description, payment))
		row++
	}

	_, err := f.WriteTo(w)
	return err
}

func paymentRow(description string, p models.BudgetPayment) []any {
	return []any{
		description,
		p.InvoiceNumber,
		p.InvoiceDate,
		p.Amount.InexactFloat64(),
		p.VATAmount.InexactFloat64(),
		p.TotalAmount.InexactFloat64(),
		string(p.Status),
		p.PaymentDate,
	}
}

func writeHeader(f *excelize.File, sheet string, headers []string) {
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
}

func setRow(f *excelize.File, sheet string, row int, values []any) {
	cell, _ := excelize.CoordinatesToCellName(1, row)
	f.SetSheetRow(sheet, cell, &values)
}

func optionalNumber(d *decimal.Decimal) any {
	if d == nil {
		return ""
	}
	return d.InexactFloat64()
}
