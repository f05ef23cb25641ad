package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apperrors "forex-journal/internal/errors"
	"forex-journal/internal/models"
)

// addPlanCommands adds subscription tier management. The plan only gates
// how much the store will hold; analytics never consults it.
func addPlanCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Subscription plan management",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
			defer cancel()

			plan, err := app.Store.GetPlan(ctx, app.Config.Journal.UserID)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]string{"plan": string(plan)})
			}
			output.Printf("Current plan: %s\n", plan)
			if plan == models.PlanFree {
				count, err := app.Store.CountTrades(ctx, app.Config.Journal.UserID)
				if err == nil {
					output.Dim("%d of %d free trades used", count, models.FreeTradeLimit)
				}
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <free|pro|ultimate>",
		Short: "Change the plan tier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
			defer cancel()

			plan := models.Plan(args[0])
			if !plan.Valid() {
				return fmt.Errorf("%w: %q", apperrors.ErrInvalidPlan, args[0])
			}
			if err := app.Store.SetPlan(ctx, app.Config.Journal.UserID, plan); err != nil {
				return err
			}
			app.Logger.Info().Str("plan", string(plan)).Msg("Plan changed")
			output.Success("Plan set to %s", plan)
			return nil
		},
	})

	rootCmd.AddCommand(cmd)
}
