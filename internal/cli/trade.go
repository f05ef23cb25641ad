package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	apperrors "forex-journal/internal/errors"
	"forex-journal/internal/logging"
	"forex-journal/internal/models"
	"forex-journal/pkg/utils"
)

const storeTimeout = 30 * time.Second

// addTradeCommands adds the trade lifecycle commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Trade lifecycle",
		Long:  "Add, list, edit and delete journaled trades.",
	}

	cmd.AddCommand(newTradeAddCmd(app))
	cmd.AddCommand(newTradeListCmd(app))
	cmd.AddCommand(newTradeEditCmd(app))
	cmd.AddCommand(newTradeDeleteCmd(app))

	rootCmd.AddCommand(cmd)
}

func addTradeFieldFlags(cmd *cobra.Command) {
	cmd.Flags().String("pair", "", "instrument symbol, e.g. EUR/USD")
	cmd.Flags().String("direction", "", "BUY or SELL")
	cmd.Flags().Float64("entry", 0, "entry price")
	cmd.Flags().Float64("exit", 0, "exit price")
	cmd.Flags().Float64("sl", 0, "stop loss price (0 = not set)")
	cmd.Flags().Float64("tp", 0, "take profit price (0 = not set)")
	cmd.Flags().Float64("lots", 0, "lot size")
	cmd.Flags().String("date", "", "trade date (YYYY-MM-DD, default today)")
	cmd.Flags().String("time", "", "trade time (HH:MM, default now)")
	cmd.Flags().String("strategy", "", "strategy label")
	cmd.Flags().Bool("rules", true, "trading rules were followed")
	cmd.Flags().String("notes", "", "free-form notes")
	cmd.Flags().String("emotion-before", "", "emotional state before the trade")
	cmd.Flags().String("emotion-after", "", "emotional state after the trade")
	cmd.Flags().Int("confidence", 0, "confidence 1-5 (0 = unset)")
	cmd.Flags().StringSlice("mistakes", nil, "mistake tags")
}

func parseDirection(s string) (models.Direction, error) {
	switch models.Direction(s) {
	case models.Buy, models.Sell:
		return models.Direction(s), nil
	}
	return "", fmt.Errorf("%w: direction must be BUY or SELL", apperrors.ErrValidation)
}

func newTradeAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a trade to the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
			defer cancel()

			pair, _ := cmd.Flags().GetString("pair")
			dirStr, _ := cmd.Flags().GetString("direction")
			entry, _ := cmd.Flags().GetFloat64("entry")
			exit, _ := cmd.Flags().GetFloat64("exit")
			sl, _ := cmd.Flags().GetFloat64("sl")
			tp, _ := cmd.Flags().GetFloat64("tp")
			lots, _ := cmd.Flags().GetFloat64("lots")
			date, _ := cmd.Flags().GetString("date")
			tradeTime, _ := cmd.Flags().GetString("time")
			strategy, _ := cmd.Flags().GetString("strategy")
			rules, _ := cmd.Flags().GetBool("rules")
			notes, _ := cmd.Flags().GetString("notes")
			emotionBefore, _ := cmd.Flags().GetString("emotion-before")
			emotionAfter, _ := cmd.Flags().GetString("emotion-after")
			confidence, _ := cmd.Flags().GetInt("confidence")
			mistakes, _ := cmd.Flags().GetStringSlice("mistakes")

			if pair == "" {
				return fmt.Errorf("%w: --pair is required", apperrors.ErrValidation)
			}
			direction, err := parseDirection(dirStr)
			if err != nil {
				return err
			}
			if entry <= 0 || exit <= 0 {
				return fmt.Errorf("%w: --entry and --exit must be positive", apperrors.ErrValidation)
			}
			if lots <= 0 {
				lots = app.Config.Journal.DefaultLotSize
			}
			if confidence < 0 || confidence > 5 {
				return fmt.Errorf("%w: --confidence must be 1-5", apperrors.ErrValidation)
			}
			now := time.Now()
			if date == "" {
				date = now.Format("2006-01-02")
			}
			if tradeTime == "" {
				tradeTime = now.Format("15:04")
			}

			trade := &models.Trade{
				UserID:        app.Config.Journal.UserID,
				Pair:          pair,
				Direction:     direction,
				EntryPrice:    entry,
				ExitPrice:     exit,
				StopLoss:      sl,
				TakeProfit:    tp,
				LotSize:       lots,
				Date:          date,
				Time:          tradeTime,
				Strategy:      strategy,
				RulesFollowed: rules,
				Notes:         notes,
				EmotionBefore: emotionBefore,
				EmotionAfter:  emotionAfter,
				Confidence:    confidence,
				Mistakes:      mistakes,
			}

			if err := app.Store.CreateTrade(ctx, trade); err != nil {
				if errors.Is(err, apperrors.ErrTradeLimit) {
					output.Warning("Free plan limit of %d trades reached. Upgrade with 'fxjournal plan set pro'.", models.FreeTradeLimit)
				}
				return err
			}

			tradeLogger := logging.WithTrade(app.Logger, trade.ID)
			tradeLogger.Info().
				Str("pair", trade.Pair).
				Float64("pips", trade.Pips).
				Float64("pl", trade.ProfitLoss).
				Msg("Trade recorded")

			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("Trade %s recorded: %s %s, %s pips, %s",
				trade.ID, trade.Pair, trade.Direction,
				utils.FormatPips(trade.Pips),
				output.PnL(utils.FormatPnL(trade.ProfitLoss), trade.ProfitLoss))
			return nil
		},
	}
	addTradeFieldFlags(cmd)
	return cmd
}

func newTradeListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journaled trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
			defer cancel()

			filter := filterFromFlags(cmd, app.Config.Journal.UserID)
			limit, _ := cmd.Flags().GetInt("limit")
			filter.Limit = limit

			trades, err := app.Store.GetTrades(ctx, filter)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}
			if len(trades) == 0 {
				output.Info("No trades recorded.")
				return nil
			}

			table := NewTable(output, "ID", "Date", "Time", "Pair", "Dir", "Lots", "Pips", "P&L", "Session", "Strategy")
			for _, t := range trades {
				table.AddRow(
					t.ID,
					t.Date,
					t.Time,
					t.Pair,
					string(t.Direction),
					strconv.FormatFloat(t.LotSize, 'f', 2, 64),
					utils.FormatPips(t.Pips),
					output.PnL(utils.FormatPnL(t.ProfitLoss), t.ProfitLoss),
					string(t.Session),
					utils.TruncateString(t.Strategy, 15),
				)
			}
			table.Render()
			output.Println()
			output.Printf("%d trades\n", len(trades))
			return nil
		},
	}
	addFilterFlags(cmd)
	cmd.Flags().Int("limit", 0, "maximum trades to list (0 = all)")
	return cmd
}

func newTradeEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <trade-id>",
		Short: "Edit a journaled trade",
		Long:  "Edit fields of a stored trade. Only flags that are set are changed; pips, P&L and session are recomputed.",
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

			if cmd.Flags().Changed("pair") {
				trade.Pair, _ = cmd.Flags().GetString("pair")
			}
			if cmd.Flags().Changed("direction") {
				dirStr, _ := cmd.Flags().GetString("direction")
				trade.Direction, err = parseDirection(dirStr)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("entry") {
				trade.EntryPrice, _ = cmd.Flags().GetFloat64("entry")
			}
			if cmd.Flags().Changed("exit") {
				trade.ExitPrice, _ = cmd.Flags().GetFloat64("exit")
			}
			if cmd.Flags().Changed("sl") {
				trade.StopLoss, _ = cmd.Flags().GetFloat64("sl")
			}
			if cmd.Flags().Changed("tp") {
				trade.TakeProfit, _ = cmd.Flags().GetFloat64("tp")
			}
			if cmd.Flags().Changed("lots") {
				trade.LotSize, _ = cmd.Flags().GetFloat64("lots")
			}
			if cmd.Flags().Changed("date") {
				trade.Date, _ = cmd.Flags().GetString("date")
			}
			if cmd.Flags().Changed("time") {
				trade.Time, _ = cmd.Flags().GetString("time")
			}
			if cmd.Flags().Changed("strategy") {
				trade.Strategy, _ = cmd.Flags().GetString("strategy")
			}
			if cmd.Flags().Changed("rules") {
				trade.RulesFollowed, _ = cmd.Flags().GetBool("rules")
			}
			if cmd.Flags().Changed("notes") {
				trade.Notes, _ = cmd.Flags().GetString("notes")
			}
			if cmd.Flags().Changed("emotion-before") {
				trade.EmotionBefore, _ = cmd.Flags().GetString("emotion-before")
			}
			if cmd.Flags().Changed("emotion-after") {
				trade.EmotionAfter, _ = cmd.Flags().GetString("emotion-after")
			}
			if cmd.Flags().Changed("confidence") {
				trade.Confidence, _ = cmd.Flags().GetInt("confidence")
			}
			if cmd.Flags().Changed("mistakes") {
				trade.Mistakes, _ = cmd.Flags().GetStringSlice("mistakes")
			}

			if err := app.Store.UpdateTrade(ctx, trade); err != nil {
				return err
			}

			tradeLogger := logging.WithTrade(app.Logger, trade.ID)
			tradeLogger.Info().Msg("Trade updated")

			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("Trade %s updated: %s pips, %s", trade.ID,
				utils.FormatPips(trade.Pips),
				output.PnL(utils.FormatPnL(trade.ProfitLoss), trade.ProfitLoss))
			return nil
		},
	}
	addTradeFieldFlags(cmd)
	return cmd
}

func newTradeDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trade-id>",
		Short: "Delete a journaled trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
			defer cancel()

			if err := app.Store.DeleteTrade(ctx, args[0]); err != nil {
				return err
			}
			tradeLogger := logging.WithTrade(app.Logger, args[0])
			tradeLogger.Info().Msg("Trade deleted")
			output.Success("Trade %s deleted", args[0])
			return nil
		},
	}
}
