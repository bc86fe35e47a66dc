package services

import (
	"fmt"
	"time"

	"github.com/anprojects-core/lib/storage"
	"github.com/anprojects-core/repositories"
	"github.com/shopspring/decimal"
)

type testEnv struct {
	items      *repositories.BudgetItemRepository
	payments   *repositories.BudgetPaymentRepository
	chapters   *repositories.BudgetChapterRepository
	categories *repositories.BudgetCategoryRepository
	milestones *repositories.MilestoneRepository
	units      *repositories.UnitRepository
	projects   *repositories.ProjectRepository

	budget    *BudgetService
	structure *BudgetStructureService
	payment   *PaymentService
	milestone *MilestoneService
	project   *ProjectService
}

var fixedNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newTestEnv() *testEnv {
	store := storage.NewMemoryStore()
	env := &testEnv{
		payments:   repositories.NewBudgetPaymentRepository(store),
		chapters:   repositories.NewBudgetChapterRepository(store),
		categories: repositories.NewBudgetCategoryRepository(store),
		milestones: repositories.NewMilestoneRepository(store),
		units:      repositories.NewUnitRepository(store),
		projects:   repositories.NewProjectRepository(store),
	}
	env.items = repositories.NewBudgetItemRepository(store, env.payments)

	env.budget = NewBudgetService(env.items, env.chapters)
	env.budget.now = func() time.Time { return fixedNow }
	env.budget.newID = sequentialIDs("item")

	env.structure = NewBudgetStructureService(env.chapters, env.categories)
	env.structure.now = env.budget.now
	env.structure.newID = sequentialIDs("node")

	env.payment = NewPaymentService(env.payments, env.items)
	env.payment.now = env.budget.now
	env.payment.newID = sequentialIDs("pay")

	env.milestone = NewMilestoneService(env.milestones, env.units)
	env.milestone.now = env.budget.now
	env.milestone.newID = sequentialIDs("ms")

	env.project = NewProjectService(env.projects, env.budget, env.milestone)
	env.project.now = env.budget.now
	env.project.newID = sequentialIDs("proj")
	return env
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
