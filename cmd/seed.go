package cmd

import (
	"fmt"
	"time"

	"github.com/anprojects-core/dto"
	"github.com/anprojects-core/models"
	"github.com/anprojects-core/seed"
	"github.com/anprojects-core/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var adminEmail string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo projects into the collection store",
	Long: `Writes two demo projects with categories, chapters, budget items,
payments, units and milestones. With --admin-email an active admin account
is also created in Postgres and its generated password is printed once.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := newApplication(ctx, cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		result, err := seed.Run(ctx, app.seedServices(), time.Now())
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Seeded %d projects, %d items, %d payments, %d milestones",
			result.Projects, result.Items, result.Payments, result.Milestones)

		if adminEmail == "" {
			return nil
		}
		return seedAdmin(cmd, app)
	},
}

func init() {
	seedCmd.Flags().StringVar(&adminEmail, "admin-email", "", "also create an admin account with this email")
}

func seedAdmin(cmd *cobra.Command, app *application) error {
	if err := requireSchema(app); err != nil {
		return err
	}

	password, err := utils.GenerateSecurePassword(16)
	if err != nil {
		return err
	}
	user, err := app.deps.Auth.Register(cmd.Context(), dtoAdmin(adminEmail, password))
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	pterm.Success.Printfln("Admin %s created (id %s)", user.Email, user.ID)
	pterm.Warning.Printfln("Password: %s  (shown once)", password)
	return nil
}

func requireSchema(app *application) error {
	conn, err := app.provider.Get()
	if err != nil {
		return fmt.Errorf("cannot create admin: %w", err)
	}
	return conn.Migrate()
}

func dtoAdmin(email, password string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    email,
		Password: password,
		FullName: "Administrator",
		Role:     models.RoleAdmin,
	}
}
