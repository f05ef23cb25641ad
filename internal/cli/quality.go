package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"forex-journal/internal/analytics"
	"forex-journal/pkg/utils"
)

// addQualityCommands adds the trade-quality and pattern-detection commands.
func addQualityCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newQualityCmd(app))
	rootCmd.AddCommand(newPatternsCmd(app))
}

func newQualityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "quality <trade-id>",
		Short: "Grade a trade's execution quality",
		Long:  "Score a single trade's process (rules, risk:reward plan, emotional state, confidence, mistakes) on a 0-100 scale with an A-F grade.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
			defer cancel()

			trade, err := app.Store.GetTrade(ctx, args[0])
			if err != nil {
				return err
			}

			quality := analytics.GetTradeQuality(*trade)
			if output.IsJSON() {
				return output.JSON(quality)
			}

			output.Bold("%s %s on %s %s", trade.Pair, trade.Direction, trade.Date, trade.Time)
			output.Printf("  P&L:   %s\n", output.PnL(utils.FormatPnL(trade.ProfitLoss), trade.ProfitLoss))
			output.Printf("  Score: %d/100\n", quality.Score)
			switch quality.Grade {
			case "A", "B":
				output.Success("  Grade: %s", quality.Grade)
			case "C", "D":
				output.Warning("  Grade: %s", quality.Grade)
			default:
				output.Error("  Grade: %s", quality.Grade)
			}
			if len(quality.Issues) > 0 {
				output.Println()
				output.Bold("Issues")
				for _, issue := range quality.Issues {
					output.Printf("  - %s\n", issue)
				}
			}
			return nil
		},
	}
}

func newPatternsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Detect recurring losing patterns",
		Long:  "Scan the journal for behavioral loss patterns: losing streaks (tilt) and low-confidence losses (hesitation).",
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

			patterns := analytics.DetectLosingPatterns(trades)
			if output.IsJSON() {
				return output.JSON(patterns)
			}
			if len(patterns) == 0 {
				output.Success("No losing patterns detected.")
				return nil
			}

			for _, p := range patterns {
				output.Warning("%s (x%d)", p.Name, p.Count)
				output.Printf("  %s\n", p.Description)
				if p.Impact < 0 {
					output.Printf("  Impact: %s\n", output.PnL(utils.FormatPnL(p.Impact), p.Impact))
				}
				output.Println()
			}
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}
