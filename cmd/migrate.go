package cmd

import (
	"fmt"

	"github.com/anprojects-core/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importCollections bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the Postgres schema",
	Long: `Runs gorm AutoMigrate for every model against DATABASE_URL.
With --import the records of the collection store are copied into the
matching tables; rows whose id already exists are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApplication(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		conn, err := app.provider.Get()
		if err != nil {
			return fmt.Errorf("cannot migrate: %w", err)
		}
		if err := conn.Migrate(); err != nil {
			return err
		}
		if !importCollections {
			return nil
		}
		return app.importCollections(cmd, conn)
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&importCollections, "import", false, "copy collection store records into Postgres")
}

func (a *application) importCollections(cmd *cobra.Command, conn *database.DBConnection) error {
	ctx := cmd.Context()
	steps := []struct {
		table string
		run   func() (int64, error)
	}{
		{"projects", func() (int64, error) { return database.Import(conn, "projects", a.projects.FindAll(ctx)) }},
		{"project_units", func() (int64, error) { return database.Import(conn, "project_units", a.units.FindAll(ctx)) }},
		{"project_milestones", func() (int64, error) { return database.Import(conn, "project_milestones", a.milestones.FindAll(ctx)) }},
		{"budget_categories", func() (int64, error) { return database.Import(conn, "budget_categories", a.categories.FindAll(ctx)) }},
		{"budget_chapters", func() (int64, error) { return database.Import(conn, "budget_chapters", a.chapters.FindAll(ctx)) }},
		{"budget_items", func() (int64, error) { return database.Import(conn, "budget_items", a.items.FindAll(ctx)) }},
		{"budget_payments", func() (int64, error) { return database.Import(conn, "budget_payments", a.payments.FindAll(ctx)) }},
	}

	for _, step := range steps {
		count, err := step.run()
		if err != nil {
			return fmt.Errorf("import into %s failed: %w", step.table, err)
		}
		zap.L().Info("imported collection", zap.String("table", step.table), zap.Int64("rows", count))
		cmd.Printf("%-20s %d rows\n", step.table, count)
	}
	return nil
}
