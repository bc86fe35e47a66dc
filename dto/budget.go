package dto

import (
	"github.com/shopspring/decimal"
)

// ChapterSummary rolls up the items of one chapter
type ChapterSummary struct {
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	TotalWithVAT    decimal.Decimal `json:"totalWithVat"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
}

// ProjectSummary rolls up the items of one project
type ProjectSummary struct {
	TotalBudget     decimal.Decimal `json:"totalBudget"`
	TotalWithVAT    decimal.Decimal `json:"totalWithVat"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	ItemCount       int             `json:"itemCount"`
}

// GlobalSummary rolls up every item across projects
type GlobalSummary struct {
	TotalBudget    decimal.Decimal `json:"totalBudget"`
	TotalSpent     decimal.Decimal `json:"totalSpent"`
	TotalRemaining decimal.Decimal `json:"totalRemaining"`
	ProjectCount   int             `json:"projectCount"`
	ProjectIDs     []string        `json:"projectIds"`
}

// CategorySummaryRow is one group of the category summary. CategoryType
// holds the chapter id the items were grouped by.
type CategorySummaryRow struct {
	CategoryType string          `json:"categoryType"`
	Budget       decimal.Decimal `json:"budget"`
	Spent        decimal.Decimal `json:"spent"`
}

// BudgetTotals are the derived money fields of a budget item
type BudgetTotals struct {
	TotalPrice   decimal.Decimal `json:"total_price"`
	VATAmount    decimal.Decimal `json:"vat_amount"`
	TotalWithVAT decimal.Decimal `json:"total_with_vat"`
}

// TotalsInput carries the optional inputs of a totals computation
type TotalsInput struct {
	Quantity  *decimal.Decimal `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	VATRate   *decimal.Decimal `json:"vat_rate"`
}

// CategoryBudget sums the chapters of one category
type CategoryBudget struct {
	Budget   decimal.Decimal `json:"budget"`
	Contract decimal.Decimal `json:"contract"`
}

// Variance compares an item's budget with its estimate
type Variance struct {
	EstimateAmount  decimal.Decimal `json:"estimate_amount"`
	BudgetAmount    decimal.Decimal `json:"budget_amount"`
	VarianceAmount  decimal.Decimal `json:"variance_amount"`
	VariancePercent decimal.Decimal `json:"variance_percent"`
	Color           string          `json:"color"`
}

// ProjectVariance compares a project's budget with its estimates
type ProjectVariance struct {
	TotalEstimate     decimal.Decimal `json:"totalEstimate"`
	TotalBudget       decimal.Decimal `json:"totalBudget"`
	TotalVariance     decimal.Decimal `json:"totalVariance"`
	VariancePercent   decimal.Decimal `json:"variancePercent"`
	ItemsWithVariance int             `json:"itemsWithVariance"`
	Color             string          `json:"color"`
}

// PaymentTotals are the derived money fields of a payment
type PaymentTotals struct {
	VATAmount   decimal.Decimal `json:"vat_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// ItemPaymentSummary splits an item's payments into paid and outstanding
type ItemPaymentSummary struct {
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	PendingAmount decimal.Decimal `json:"pendingAmount"`
	PaymentCount  int             `json:"paymentCount"`
}

// MilestoneStats counts a project's milestones by status
type MilestoneStats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
}

// CreateBudgetItemRequest is the body for adding a budget line to a project.
// Totals and order are computed server-side.
type CreateBudgetItemRequest struct {
	ChapterID           string           `json:"chapter_id" binding:"required"`
	Code                string           `json:"code"`
	Description         string           `json:"description" binding:"required"`
	Unit                string           `json:"unit"`
	Quantity            *decimal.Decimal `json:"quantity"`
	UnitPrice           *decimal.Decimal `json:"unit_price"`
	VATRate             *decimal.Decimal `json:"vat_rate"`
	Status              string           `json:"status"`
	SupplierID          string           `json:"supplier_id"`
	SupplierName        string           `json:"supplier_name"`
	TenderID            string           `json:"tender_id"`
	ExpectedPaymentDate string           `json:"expected_payment_date"`
	Notes               string           `json:"notes"`
	EstimateItemID      string           `json:"estimate_item_id"`
	EstimateAmount      *decimal.Decimal `json:"estimate_amount"`
}

// CreatePaymentRequest is the body for recording an invoice against an item
type CreatePaymentRequest struct {
	InvoiceNumber string           `json:"invoice_number"`
	InvoiceDate   string           `json:"invoice_date" binding:"required"`
	Amount        decimal.Decimal  `json:"amount"`
	VATAmount     *decimal.Decimal `json:"vat_amount"`
	Status        string           `json:"status"`
	PaymentDate   string           `json:"payment_date"`
	MilestoneID   string           `json:"milestone_id"`
	Notes         string           `json:"notes"`
}

// CreateChapterRequest adds a chapter to a category
type CreateChapterRequest struct {
	CategoryID     string           `json:"category_id" binding:"required"`
	Code           string           `json:"code"`
	Name           string           `json:"name" binding:"required"`
	BudgetAmount   decimal.Decimal  `json:"budget_amount"`
	ContractAmount *decimal.Decimal `json:"contract_amount"`
}

// CreateCategoryRequest adds a category to a project
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Type  string `json:"type" binding:"required"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}
