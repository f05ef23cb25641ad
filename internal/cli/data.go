package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "forex-journal/internal/errors"
	"forex-journal/internal/store"
)

// addDataCommands adds CSV import and export.
func addDataCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newExportCmd(app))
	rootCmd.AddCommand(newImportCmd(app))
}

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Export trades to a CSV file",
		Args:  cobra.ExactArgs(1),
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

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[0], err)
			}
			defer f.Close()

			if err := store.ExportCSV(f, trades); err != nil {
				return err
			}
			app.Logger.Info().Int("trades", len(trades)).Str("file", args[0]).Msg("Journal exported")
			output.Success("Exported %d trades to %s", len(trades), args[0])
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import trades from a CSV file",
		Long:  "Import trades from CSV. Pips, P&L and session are recomputed for every row, so exported files from other tools only need raw prices.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
			defer cancel()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			trades, err := store.ImportCSV(f)
			if err != nil {
				return err
			}

			imported := 0
			for i := range trades {
				trades[i].UserID = app.Config.Journal.UserID
				if err := app.Store.CreateTrade(ctx, &trades[i]); err != nil {
					if errors.Is(err, apperrors.ErrTradeLimit) {
						output.Warning("Free plan limit reached after %d trades; remaining rows skipped.", imported)
						break
					}
					return err
				}
				imported++
			}

			app.Logger.Info().Int("trades", imported).Str("file", args[0]).Msg("Journal imported")
			output.Success("Imported %d of %d trades from %s", imported, len(trades), args[0])
			return nil
		},
	}
}
