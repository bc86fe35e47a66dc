package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/anprojects-core/dto"
	"github.com/anprojects-core/services"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Services are the write paths the seeder goes through, so seeded items get
// the same totals and ordering as API-created ones.
type Services struct {
	Projects   *services.ProjectService
	Structure  *services.BudgetStructureService
	Budget     *services.BudgetService
	Payments   *services.PaymentService
	Milestones *services.MilestoneService
}

// Result counts what Run created
type Result struct {
	Projects   int
	Categories int
	Chapters   int
	Items      int
	Payments   int
	Units      int
	Milestones int
}

type itemSeed struct {
	code        string
	description string
	unit        string
	quantity    string
	unitPrice   string
	estimate    string
	status      string
	// payments as invoice age in days and amount; paid when older than 30 days
	payments []paymentSeed
}

type paymentSeed struct {
	daysAgo int
	amount  string
}

type chapterSeed struct {
	code     string
	name     string
	budget   string
	contract string
	items    []itemSeed
}

type categorySeed struct {
	name     string
	kind     string
	icon     string
	color    string
	chapters []chapterSeed
}

type projectSeed struct {
	name        string
	description string
	address     string
	status      string
	categories  []categorySeed
	units       []dto.CreateUnitRequest
	milestones  []milestoneSeed
}

type milestoneSeed struct {
	name    string
	days    int
	status  string
	phase   string
	unitIdx int // index into units, -1 for project-wide
}

var demoProjects = []projectSeed{
	{
		name:        "Residential Building, 25 Herzl St",
		description: "Eight storey residential building with underground parking",
		address:     "25 Herzl St, Tel Aviv",
		status:      "construction",
		categories: []categorySeed{
			{
				name: "Consultants", kind: "consultants", icon: "briefcase", color: "#6366f1",
				chapters: []chapterSeed{
					{code: "01", name: "Architecture", budget: "180000", contract: "172000", items: []itemSeed{
						{code: "01.001", description: "Permit drawings", unit: "lump", quantity: "1", unitPrice: "95000", estimate: "100000", status: "completed",
							payments: []paymentSeed{{120, "45000"}, {60, "50000"}}},
						{code: "01.002", description: "Site supervision", unit: "month", quantity: "18", unitPrice: "4200", estimate: "80000", status: "in-progress",
							payments: []paymentSeed{{45, "4200"}, {15, "4200"}}},
					}},
					{code: "02", name: "Structural engineering", budget: "90000", items: []itemSeed{
						{code: "02.001", description: "Structural design", unit: "lump", quantity: "1", unitPrice: "68000", estimate: "60000", status: "contracted",
							payments: []paymentSeed{{90, "20000"}}},
					}},
				},
			},
			{
				name: "Contractors", kind: "contractors", icon: "hammer", color: "#f59e0b",
				chapters: []chapterSeed{
					{code: "03", name: "Earthworks", budget: "350000", contract: "338000", items: []itemSeed{
						{code: "03.001", description: "Excavation", unit: "m3", quantity: "4200", unitPrice: "38", estimate: "170000", status: "completed",
							payments: []paymentSeed{{150, "80000"}, {110, "79600"}}},
						{code: "03.002", description: "Shoring piles", unit: "unit", quantity: "64", unitPrice: "2500", status: "completed",
							payments: []paymentSeed{{100, "160000"}}},
					}},
					{code: "04", name: "Skeleton", budget: "2400000", items: []itemSeed{
						{code: "04.001", description: "Reinforced concrete", unit: "m3", quantity: "2850", unitPrice: "640", estimate: "1900000", status: "in-progress",
							payments: []paymentSeed{{40, "420000"}, {10, "380000"}}},
						{code: "04.002", description: "Masonry", unit: "m2", quantity: "5200", unitPrice: "95", status: "tender"},
					}},
				},
			},
			{
				name: "Suppliers", kind: "suppliers", icon: "truck", color: "#10b981",
				chapters: []chapterSeed{
					{code: "05", name: "Aluminium", budget: "420000", items: []itemSeed{
						{code: "05.001", description: "Windows and sliding doors", unit: "unit", quantity: "112", unitPrice: "3100", estimate: "360000", status: "tender"},
					}},
					{code: "06", name: "Elevators", budget: "310000", items: []itemSeed{
						{code: "06.001", description: "Passenger elevators", unit: "unit", quantity: "2", unitPrice: "145000", status: "pending"},
					}},
				},
			},
		},
		units: []dto.CreateUnitRequest{
			{Name: "Apartment 1", Type: "apartment", Color: "#3b82f6"},
			{Name: "Apartment 2", Type: "apartment", Color: "#3b82f6"},
			{Name: "Penthouse", Type: "apartment", Color: "#8b5cf6"},
			{Name: "Lobby", Type: "common", Color: "#64748b"},
			{Name: "Building A", Type: "building", Color: "#0f172a"},
		},
		milestones: []milestoneSeed{
			{name: "Building permit", days: -200, status: "completed", phase: "planning", unitIdx: -1},
			{name: "Excavation complete", days: -110, status: "completed", phase: "earthworks", unitIdx: 4},
			{name: "Ground floor slab", days: -30, status: "completed", phase: "skeleton", unitIdx: 4},
			{name: "Skeleton topped out", days: 60, status: "in-progress", phase: "skeleton", unitIdx: 4},
			{name: "Lobby finishes", days: 240, status: "pending", phase: "finishes", unitIdx: 3},
			{name: "Penthouse handover", days: 330, status: "pending", phase: "handover", unitIdx: 2},
		},
	},
	{
		name:        "Office Renovation, 12 Rothschild Blvd",
		description: "Interior renovation of two office floors",
		address:     "12 Rothschild Blvd, Tel Aviv",
		status:      "planning",
		categories: []categorySeed{
			{
				name: "Contractors", kind: "contractors", icon: "hammer", color: "#f59e0b",
				chapters: []chapterSeed{
					{code: "01", name: "Demolition", budget: "60000", items: []itemSeed{
						{code: "01.001", description: "Strip out existing partitions", unit: "m2", quantity: "850", unitPrice: "45", estimate: "40000", status: "contracted",
							payments: []paymentSeed{{5, "19125"}}},
					}},
					{code: "02", name: "Drywall and ceilings", budget: "210000", items: []itemSeed{
						{code: "02.001", description: "Gypsum partitions", unit: "m2", quantity: "1200", unitPrice: "120", status: "pending"},
						// quantity not yet measured
						{code: "02.002", description: "Acoustic ceilings", unit: "m2", unitPrice: "140", status: "pending"},
					}},
				},
			},
		},
		units: []dto.CreateUnitRequest{
			{Name: "Floor 3", Type: "building"},
			{Name: "Floor 4", Type: "building"},
		},
		milestones: []milestoneSeed{
			{name: "Design approval", days: 14, status: "in-progress", phase: "planning", unitIdx: -1},
			{name: "Floor 3 handover", days: 120, status: "pending", phase: "handover", unitIdx: 0},
		},
	},
}

// Run writes the demo portfolio through svc. Dates are relative to now.
func Run(ctx context.Context, svc Services, now time.Time) (Result, error) {
	var result Result
	for _, p := range demoProjects {
		if err := seedProject(ctx, svc, p, now, &result); err != nil {
			return result, fmt.Errorf("failed to seed project %q: %w", p.name, err)
		}
	}
	zap.L().Info("seeded demo data",
		zap.Int("projects", result.Projects),
		zap.Int("items", result.Items),
		zap.Int("payments", result.Payments))
	return result, nil
}

func seedProject(ctx context.Context, svc Services, p projectSeed, now time.Time, result *Result) error {
	project := svc.Projects.CreateProject(ctx, dto.CreateProjectRequest{
		Name:        p.name,
		Description: p.description,
		Address:     p.address,
		Status:      p.status,
	})
	result.Projects++

	for _, cat := range p.categories {
		category, err := svc.Structure.CreateCategory(ctx, project.ID, dto.CreateCategoryRequest{
			Name:  cat.name,
			Type:  cat.kind,
			Icon:  cat.icon,
			Color: cat.color,
		})
		if err != nil {
			return err
		}
		result.Categories++

		for _, ch := range cat.chapters {
			chapter, err := svc.Structure.CreateChapter(ctx, project.ID, dto.CreateChapterRequest{
				CategoryID:     category.ID,
				Code:           ch.code,
				Name:           ch.name,
				BudgetAmount:   decimal.RequireFromString(ch.budget),
				ContractAmount: optional(ch.contract),
			})
			if err != nil {
				return err
			}
			result.Chapters++

			for _, it := range ch.items {
				if err := seedItem(ctx, svc, project.ID, chapter.ID, it, now, result); err != nil {
					return err
				}
			}
		}
	}

	unitIDs := make([]string, 0, len(p.units))
	for _, req := range p.units {
		unit, err := svc.Milestones.CreateUnit(ctx, project.ID, req)
		if err != nil {
			return err
		}
		unitIDs = append(unitIDs, unit.ID)
		result.Units++
	}

	for _, m := range p.milestones {
		req := dto.CreateMilestoneRequest{
			Name:   m.name,
			Date:   now.AddDate(0, 0, m.days).Format(time.DateOnly),
			Status: m.status,
			Phase:  m.phase,
		}
		if m.unitIdx >= 0 {
			req.UnitID = unitIDs[m.unitIdx]
		}
		if _, err := svc.Milestones.CreateMilestone(ctx, project.ID, req); err != nil {
			return err
		}
		result.Milestones++
	}
	return nil
}

func seedItem(ctx context.Context, svc Services, projectID, chapterID string, def itemSeed, now time.Time, result *Result) error {
	item, err := svc.Budget.CreateBudgetItem(ctx, projectID, dto.CreateBudgetItemRequest{
		ChapterID:      chapterID,
		Code:           def.code,
		Description:    def.description,
		Unit:           def.unit,
		Quantity:       optional(def.quantity),
		UnitPrice:      optional(def.unitPrice),
		Status:         def.status,
		EstimateAmount: optional(def.estimate),
	})
	if err != nil {
		return err
	}
	result.Items++

	paid := decimal.Zero
	for i, p := range def.payments {
		status := "approved"
		if p.daysAgo > 30 {
			status = "paid"
		}
		payment, err := svc.Payments.CreatePayment(ctx, item.ID, dto.CreatePaymentRequest{
			InvoiceNumber: fmt.Sprintf("INV-%s-%d", def.code, i+1),
			InvoiceDate:   now.AddDate(0, 0, -p.daysAgo).Format(time.DateOnly),
			Amount:        decimal.RequireFromString(p.amount),
			Status:        status,
		})
		if err != nil {
			return err
		}
		if payment.Status == "paid" {
			paid = paid.Add(payment.TotalAmount)
		}
		result.Payments++
	}

	// paid_amount is not derived from payments, the seeder sets it explicitly
	if !paid.IsZero() {
		if _, err := svc.Budget.UpdateBudgetItem(ctx, item.ID, map[string]any{"paid_amount": paid}); err != nil {
			return err
		}
	}
	return nil
}

func optional(value string) *decimal.Decimal {
	if value == "" {
		return nil
	}
	d := decimal.RequireFromString(value)
	return &d
}
