package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultVATRate is applied when a budget line or payment does not carry its own rate
var DefaultVATRate = decimal.RequireFromString("0.17")

func init() {
	// Amounts travel as JSON numbers, the same shape the browser client stores
	decimal.MarshalJSONWithoutQuotes = true
}

// BudgetItemStatus tracks where a budget line is in the procurement cycle
type BudgetItemStatus string

const (
	BudgetItemStatusPending    BudgetItemStatus = "pending"
	BudgetItemStatusTender     BudgetItemStatus = "tender"
	BudgetItemStatusContracted BudgetItemStatus = "contracted"
	BudgetItemStatusInProgress BudgetItemStatus = "in-progress"
	BudgetItemStatusCompleted  BudgetItemStatus = "completed"
)

// Valid reports whether s is one of the known budget item statuses
func (s BudgetItemStatus) Valid() bool {
	switch s {
	case BudgetItemStatusPending, BudgetItemStatusTender, BudgetItemStatusContracted,
		BudgetItemStatusInProgress, BudgetItemStatusCompleted:
		return true
	}
	return false
}

// BudgetPaymentStatus is the approval state of an invoice
type BudgetPaymentStatus string

const (
	BudgetPaymentStatusPending  BudgetPaymentStatus = "pending"
	BudgetPaymentStatusApproved BudgetPaymentStatus = "approved"
	BudgetPaymentStatusPaid     BudgetPaymentStatus = "paid"
)

// Valid reports whether s is a known payment status
func (s BudgetPaymentStatus) Valid() bool {
	return s == BudgetPaymentStatusPending || s == BudgetPaymentStatusApproved || s == BudgetPaymentStatusPaid
}

// BudgetCategoryType classifies a category of chapters
type BudgetCategoryType string

const (
	BudgetCategoryConsultants BudgetCategoryType = "consultants"
	BudgetCategorySuppliers   BudgetCategoryType = "suppliers"
	BudgetCategoryContractors BudgetCategoryType = "contractors"
)

func (t BudgetCategoryType) Valid() bool {
	return t == BudgetCategoryConsultants || t == BudgetCategorySuppliers || t == BudgetCategoryContractors
}

// BudgetCategory is the top level of the budget tree (category -> chapter -> item)
type BudgetCategory struct {
	ID        string             `json:"id" gorm:"primaryKey;type:text"`
	ProjectID string             `json:"project_id" gorm:"type:text;not null;index"`
	Name      string             `json:"name" gorm:"not null"`
	Type      BudgetCategoryType `json:"type" gorm:"type:varchar(20);not null"`
	Icon      string             `json:"icon"`
	Color     string             `json:"color"`
	Order     int                `json:"order" gorm:"not null;default:0"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// BudgetChapter groups budget items under a category
type BudgetChapter struct {
	ID             string           `json:"id" gorm:"primaryKey;type:text"`
	ProjectID      string           `json:"project_id" gorm:"type:text;not null;index"`
	CategoryID     string           `json:"category_id" gorm:"type:text;not null;index"`
	Code           string           `json:"code,omitempty"`
	Name           string           `json:"name" gorm:"not null"`
	BudgetAmount   decimal.Decimal  `json:"budget_amount" gorm:"type:numeric(15,2);not null;default:0"`
	ContractAmount *decimal.Decimal `json:"contract_amount,omitempty" gorm:"type:numeric(15,2)"`
	Order          int              `json:"order" gorm:"not null;default:0"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// BudgetItem is a single costed line inside a chapter.
// TotalPrice = Quantity * UnitPrice and TotalWithVAT = TotalPrice * (1 + VATRate).
type BudgetItem struct {
	ID                  string           `json:"id" gorm:"primaryKey;type:text"`
	ProjectID           string           `json:"project_id" gorm:"type:text;not null;index"`
	ChapterID           string           `json:"chapter_id" gorm:"type:text;not null;index"`
	Code                string           `json:"code,omitempty"`
	Description         string           `json:"description" gorm:"not null"`
	Unit                string           `json:"unit,omitempty"`
	Quantity            *decimal.Decimal `json:"quantity,omitempty" gorm:"type:numeric(15,4)"`
	UnitPrice           *decimal.Decimal `json:"unit_price,omitempty" gorm:"type:numeric(15,2)"`
	TotalPrice          decimal.Decimal  `json:"total_price" gorm:"type:numeric(15,2);not null;default:0"`
	VATRate             decimal.Decimal  `json:"vat_rate" gorm:"type:numeric(5,4);not null;default:0.17"`
	VATAmount           decimal.Decimal  `json:"vat_amount" gorm:"type:numeric(15,2);not null;default:0"`
	TotalWithVAT        decimal.Decimal  `json:"total_with_vat" gorm:"type:numeric(15,2);not null;default:0"`
	Status              BudgetItemStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	SupplierID          string           `json:"supplier_id,omitempty"`
	SupplierName        string           `json:"supplier_name,omitempty"`
	TenderID            string           `json:"tender_id,omitempty"`
	PaidAmount          decimal.Decimal  `json:"paid_amount" gorm:"type:numeric(15,2);not null;default:0"`
	ExpectedPaymentDate string           `json:"expected_payment_date,omitempty" gorm:"type:date;default:null"`
	Order               int              `json:"order" gorm:"not null;default:0"`
	Notes               string           `json:"notes,omitempty"`
	EstimateItemID      string           `json:"estimate_item_id,omitempty" gorm:"type:text;default:null"`
	EstimateAmount      *decimal.Decimal `json:"estimate_amount,omitempty" gorm:"type:numeric(15,2)"`
	VarianceAmount      *decimal.Decimal `json:"variance_amount,omitempty" gorm:"type:numeric(15,2)"`
	VariancePercent     *decimal.Decimal `json:"variance_percent,omitempty" gorm:"type:numeric(7,2)"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// BudgetPayment is an invoice paid against exactly one budget item
type BudgetPayment struct {
	ID            string              `json:"id" gorm:"primaryKey;type:text"`
	BudgetItemID  string              `json:"budget_item_id" gorm:"type:text;not null;index"`
	InvoiceNumber string              `json:"invoice_number"`
	InvoiceDate   string              `json:"invoice_date" gorm:"type:date;default:null"`
	Amount        decimal.Decimal     `json:"amount" gorm:"type:numeric(15,2);not null;default:0"`
	VATAmount     decimal.Decimal     `json:"vat_amount" gorm:"type:numeric(15,2);not null;default:0"`
	TotalAmount   decimal.Decimal     `json:"total_amount" gorm:"type:numeric(15,2);not null;default:0"`
	Status        BudgetPaymentStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentDate   string              `json:"payment_date,omitempty" gorm:"type:date;default:null"`
	MilestoneID   string              `json:"milestone_id,omitempty" gorm:"type:text;default:null"`
	Notes         string              `json:"notes,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// Record accessors used by the collection store

func (c BudgetCategory) GetID() string { return c.ID }
func (c BudgetCategory) GetOrder() int { return c.Order }
func (c BudgetChapter) GetID() string  { return c.ID }
func (c BudgetChapter) GetOrder() int  { return c.Order }
func (i BudgetItem) GetID() string     { return i.ID }
func (i BudgetItem) GetOrder() int     { return i.Order }
func (p BudgetPayment) GetID() string  { return p.ID }
