package cmd

import (
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print budget totals per project and overall",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := newApplication(ctx, cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		data := pterm.TableData{{"Project", "Items", "Budget", "With VAT", "Paid", "Remaining"}}
		for _, project := range app.projects.FindAll(ctx) {
			summary := app.deps.Budget.ProjectSummary(ctx, project.ID)
			data = append(data, []string{
				project.Name,
				strconv.Itoa(summary.ItemCount),
				summary.TotalBudget.StringFixed(2),
				summary.TotalWithVAT.StringFixed(2),
				summary.PaidAmount.StringFixed(2),
				summary.RemainingAmount.StringFixed(2),
			})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render(); err != nil {
			return err
		}

		global := app.deps.Budget.GlobalSummary(ctx)
		pterm.Println()
		return pterm.DefaultTable.WithBoxed().WithData(pterm.TableData{
			{"Projects with items", strconv.Itoa(global.ProjectCount)},
			{"Total budget", global.TotalBudget.StringFixed(2)},
			{"Total spent", global.TotalSpent.StringFixed(2)},
			{"Total remaining", global.TotalRemaining.StringFixed(2)},
		}).Render()
	},
}
