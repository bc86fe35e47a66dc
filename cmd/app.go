package cmd

import (
	"context"
	"errors"

	v1 "github.com/anprojects-core/api/v1"
	"github.com/anprojects-core/config"
	"github.com/anprojects-core/database"
	"github.com/anprojects-core/lib/storage"
	"github.com/anprojects-core/repositories"
	"github.com/anprojects-core/seed"
	"github.com/anprojects-core/services"
)

// application holds the wired stores, repositories and services
type application struct {
	store    storage.Store
	provider *database.Provider

	projects   *repositories.ProjectRepository
	items      *repositories.BudgetItemRepository
	payments   *repositories.BudgetPaymentRepository
	chapters   *repositories.BudgetChapterRepository
	categories *repositories.BudgetCategoryRepository
	milestones *repositories.MilestoneRepository
	units      *repositories.UnitRepository
	users      *repositories.UserRepository

	deps v1.Dependencies
}

func newApplication(ctx context.Context, cfg config.Config) (*application, error) {
	store, err := storage.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, err
	}
	provider := database.NewProvider(cfg.DatabaseURL)

	app := &application{
		store:      store,
		provider:   provider,
		projects:   repositories.NewProjectRepository(store),
		payments:   repositories.NewBudgetPaymentRepository(store),
		chapters:   repositories.NewBudgetChapterRepository(store),
		categories: repositories.NewBudgetCategoryRepository(store),
		milestones: repositories.NewMilestoneRepository(store),
		units:      repositories.NewUnitRepository(store),
		users:      repositories.NewUserRepository(provider),
	}
	app.items = repositories.NewBudgetItemRepository(store, app.payments)

	budget := services.NewBudgetService(app.items, app.chapters)
	milestones := services.NewMilestoneService(app.milestones, app.units)
	app.deps = v1.Dependencies{
		Auth:       services.NewAuthService(app.users, cfg.JWTSecret),
		Query:      services.NewQueryService(repositories.NewQueryRepository(provider)),
		Projects:   services.NewProjectService(app.projects, budget, milestones),
		Budget:     budget,
		Structure:  services.NewBudgetStructureService(app.chapters, app.categories),
		Payments:   services.NewPaymentService(app.payments, app.items),
		Milestones: milestones,
		Export:     services.NewExportService(app.items, app.chapters, app.payments, budget),
	}
	return app, nil
}

func (a *application) seedServices() seed.Services {
	return seed.Services{
		Projects:   a.deps.Projects,
		Structure:  a.deps.Structure,
		Budget:     a.deps.Budget,
		Payments:   a.deps.Payments,
		Milestones: a.deps.Milestones,
	}
}

func (a *application) Close() error {
	return errors.Join(a.provider.Close(), a.store.Close())
}
