package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"forex-journal/internal/config"
	"forex-journal/internal/logging"
	"forex-journal/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.TradeStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	dataStore, err := store.NewSQLiteStore(cfg.Journal.DBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, trade commands will be unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Str("db", cfg.Journal.DBPath).Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "fxjournal",
		Short: "Forex trading journal and performance analytics",
		Long: `fxjournal is a trading journal for forex, metals, indices and crypto.

Log trades, then review computed performance analytics: win rate,
expectancy by hour/day/pair/strategy, drawdown, risk statistics, trade
quality grades and losing-pattern detection.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/forex-journal)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addTradeCommands(rootCmd, app)
	addStatsCommands(rootCmd, app)
	addRiskCommands(rootCmd, app)
	addQualityCommands(rootCmd, app)
	addDataCommands(rootCmd, app)
	addPlanCommands(rootCmd, app)
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
				return
			}
			output.Printf("fxjournal v%s\n", Version)
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(app.Config)
				return
			}
			output.Bold("Journal")
			output.Printf("  db_path:          %s\n", app.Config.Journal.DBPath)
			output.Printf("  user_id:          %s\n", app.Config.Journal.UserID)
			output.Printf("  account_currency: %s\n", app.Config.Journal.AccountCurrency)
			output.Printf("  default_lot_size: %.2f\n", app.Config.Journal.DefaultLotSize)
			output.Bold("Logging")
			output.Printf("  level: %s\n", app.Config.Logging.Level)
		},
	})
	return cmd
}

// addFilterFlags registers the shared trade-filter flags used by the
// analytics commands. Filtering re-queries the store and recomputes from
// scratch; nothing is cached between invocations.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("pair", "", "filter by instrument symbol")
	cmd.Flags().String("strategy", "", "filter by strategy")
	cmd.Flags().String("session", "", "filter by session (Asian, London, New York)")
	cmd.Flags().String("from", "", "filter from date (YYYY-MM-DD, inclusive)")
	cmd.Flags().String("to", "", "filter to date (YYYY-MM-DD, inclusive)")
}

func filterFromFlags(cmd *cobra.Command, userID string) store.TradeFilter {
	pair, _ := cmd.Flags().GetString("pair")
	strategy, _ := cmd.Flags().GetString("strategy")
	session, _ := cmd.Flags().GetString("session")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	return store.TradeFilter{
		UserID:    userID,
		Pair:      pair,
		Strategy:  strategy,
		Session:   session,
		StartDate: from,
		EndDate:   to,
	}
}
