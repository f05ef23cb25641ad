package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"forex-journal/internal/analytics"
	apperrors "forex-journal/internal/errors"
	"forex-journal/pkg/utils"
)

// addStatsCommands adds the aggregate analytics commands.
func addStatsCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newStatsCmd(app))
	rootCmd.AddCommand(newExpectancyCmd(app))
}

func newStatsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Aggregate performance metrics",
		Long:  "Compute win rate, net profit, profit factor, edge and discipline scores, best pair/strategy, worst session and the best trading window over the (optionally filtered) journal.",
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

			window := analytics.BestTradingWindow(trades)
			summary := struct {
				Trades          int                       `json:"trades"`
				WinRate         int                       `json:"winRate"`
				NetProfit       float64                   `json:"netProfit"`
				ProfitFactor    float64                   `json:"profitFactor"`
				AverageRR       float64                   `json:"averageRR"`
				EdgeScore       int                       `json:"edgeScore"`
				DisciplineScore int                       `json:"disciplineScore"`
				BestPair        string                    `json:"bestPair"`
				BestStrategy    string                    `json:"bestStrategy"`
				WorstSession    string                    `json:"worstSession"`
				BestHour        string                    `json:"bestHour"`
				BestDay         string                    `json:"bestDay"`
				Strategies      []analytics.StrategyStats `json:"strategies"`
				EquityCurve     []analytics.EquityPoint   `json:"equityCurve"`
			}{
				Trades:          len(trades),
				WinRate:         analytics.WinRate(trades),
				NetProfit:       analytics.NetProfit(trades),
				ProfitFactor:    analytics.ProfitFactor(trades),
				AverageRR:       analytics.AverageRR(trades),
				EdgeScore:       analytics.EdgeScore(trades),
				DisciplineScore: analytics.DisciplineScore(trades),
				BestPair:        analytics.BestPair(trades),
				BestStrategy:    analytics.BestStrategy(trades),
				WorstSession:    analytics.WorstSession(trades),
				BestHour:        window.BestHour,
				BestDay:         window.BestDay,
				Strategies:      analytics.StrategyPerformance(trades),
				EquityCurve:     analytics.EquityCurve(trades),
			}

			if output.IsJSON() {
				return output.JSON(summary)
			}

			output.Bold("Performance")
			output.Printf("  Trades:           %d\n", summary.Trades)
			output.Printf("  Win rate:         %d%%\n", summary.WinRate)
			output.Printf("  Net profit:       %s\n", output.PnL(utils.FormatPnL(summary.NetProfit), summary.NetProfit))
			output.Printf("  Profit factor:    %.2f\n", summary.ProfitFactor)
			output.Printf("  Average R:R:      %.2f\n", summary.AverageRR)
			output.Printf("  Edge score:       %d/100\n", summary.EdgeScore)
			output.Printf("  Discipline score: %d/100\n", summary.DisciplineScore)
			output.Println()

			output.Bold("Groupings")
			output.Printf("  Best pair:     %s\n", summary.BestPair)
			output.Printf("  Best strategy: %s\n", summary.BestStrategy)
			output.Printf("  Worst session: %s\n", summary.WorstSession)
			output.Printf("  Best hour:     %s\n", summary.BestHour)
			output.Printf("  Best day:      %s\n", summary.BestDay)

			if len(summary.Strategies) > 0 {
				output.Println()
				output.Bold("Strategies")
				table := NewTable(output, "Strategy", "Profit", "Trades", "Win rate")
				for _, s := range summary.Strategies {
					table.AddRow(
						s.Strategy,
						output.PnL(utils.FormatPnL(s.Profit), s.Profit),
						strconv.Itoa(s.Trades),
						fmt.Sprintf("%d%%", s.WinRate),
					)
				}
				table.Render()
			}

			tail := app.Config.Display.CurveTail
			if tail > 0 && len(summary.EquityCurve) > 0 {
				curve := summary.EquityCurve
				if len(curve) > tail {
					curve = curve[len(curve)-tail:]
				}
				output.Println()
				output.Bold("Equity (last %d trades)", len(curve))
				for _, p := range curve {
					output.Printf("  %s  %s\n", p.Date, utils.FormatUSD(p.Equity))
				}
			}
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}

func newExpectancyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expectancy",
		Short: "Expectancy grouped by a dimension",
		Long:  "Bucket trades by pair, strategy, session, direction, emotion, hour or day and rank the buckets by expectancy.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
			defer cancel()

			by, _ := cmd.Flags().GetString("by")
			key, ok := analytics.ParseGroupKey(by)
			if !ok {
				return fmt.Errorf("%w: unknown group key %q (one of %v)",
					apperrors.ErrValidation, by, analytics.GroupKeys)
			}

			trades, err := app.Store.GetTrades(ctx, filterFromFlags(cmd, app.Config.Journal.UserID))
			if err != nil {
				return err
			}

			results := analytics.ExpectancyBy(trades, key)
			if output.IsJSON() {
				return output.JSON(results)
			}
			if len(results) == 0 {
				output.Info("No trades recorded.")
				return nil
			}

			table := NewTable(output, by, "Win rate", "Profit", "Trades", "Expectancy")
			for _, r := range results {
				table.AddRow(
					r.Group,
					fmt.Sprintf("%d%%", r.WinRate),
					output.PnL(utils.FormatPnL(r.Profit), r.Profit),
					strconv.Itoa(r.Count),
					fmt.Sprintf("%.2f", r.Expectancy),
				)
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().String("by", "hour", "grouping dimension: pair, strategy, session, direction, emotion, hour, day")
	addFilterFlags(cmd)
	return cmd
}
