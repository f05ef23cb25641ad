package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"forex-journal/internal/analytics"
	"forex-journal/pkg/utils"
)

// addRiskCommands adds the drawdown and risk commands.
func addRiskCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Drawdown and risk statistics",
		Long:  "Walk the journal chronologically to compute running, current and maximum drawdown, plus realized risk statistics.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
			defer cancel()

			trades, err := app.Store.GetTrades(ctx, filterFromFlags(cmd, app.Config.Journal.UserID))
			if err != nil {
				return err
			}

			risk := analytics.GetRiskStats(trades)
			dd := analytics.GetDrawdownStats(trades)

			if output.IsJSON() {
				return output.JSON(struct {
					analytics.RiskStats
					EquityCurve []analytics.DrawdownPoint `json:"equityCurve"`
				}{risk, dd.EquityCurve})
			}

			output.Bold("Risk")
			output.Printf("  Average risk:     %s\n", utils.FormatUSD(risk.AvgRisk))
			output.Printf("  Maximum risk:     %s\n", utils.FormatUSD(risk.MaxRisk))
			output.Printf("  Risk consistency: %d/100\n", risk.RiskConsistency)
			output.Println()

			output.Bold("Drawdown")
			output.Printf("  Current: %s\n", utils.FormatUSD(risk.CurrentDrawdown))
			output.Printf("  Maximum: %s\n", utils.FormatUSD(risk.MaxDrawdown))

			if risk.MaxDrawdown > 0 && risk.CurrentDrawdown >= risk.MaxDrawdown {
				output.Println()
				output.Warning("You are at your maximum historical drawdown.")
			}
			return nil
		},
	}
	addFilterFlags(cmd)
	rootCmd.AddCommand(cmd)
}
