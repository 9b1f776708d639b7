// Package cli provides the command-line interface for the trade journal.
package cli

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"trade-master/internal/config"
	"trade-master/internal/logging"
	"trade-master/internal/models"
	"trade-master/internal/snapshot"
	"trade-master/internal/store"
)

// Version information
const (
	Version   = "2.0.0"
	BuildDate = "2026-09-01"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  *store.Store
}

// formatter builds a Formatter from the currently persisted settings.
// Built per command so that a settings change in the same process is
// picked up immediately.
func (a *App) formatter() *Formatter {
	return NewFormatter(a.Store.Config())
}

// Close releases the snapshot backend.
func (a *App) Close() {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close store")
		}
	}
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "trademaster",
		Short: "TradeMaster - prop-firm trade journal and goal tracker",
		Long: `TradeMaster is a trade journal for prop-firm forex traders.

It records closed trades against funded accounts, derives net results
after each firm's profit split, and tracks pacing against weekly goals.

Use 'trademaster help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return openStore(app)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.Close()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/trademaster)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "answer yes to confirmation prompts")

	addCoreCommands(rootCmd, app)
	addAccountCommands(rootCmd, app)
	addTradeCommands(rootCmd, app)
	addDashboardCommands(rootCmd, app)
	addPlanCommands(rootCmd, app)
	addSettingsCommands(rootCmd, app)
	addDataCommands(rootCmd, app)

	return rootCmd
}

// openStore wires the configured snapshot backend into the app. Opening
// never fails on bad snapshot data, only on an unusable data directory.
func openStore(app *App) error {
	if app.Store != nil {
		return nil
	}

	var backend snapshot.Backend
	var err error
	switch app.Config.Storage.Backend {
	case "sqlite":
		backend, err = snapshot.NewSQLiteBackend(app.Config.Storage.DataDir, app.Logger)
	default:
		backend, err = snapshot.NewFileBackend(app.Config.Storage.DataDir, app.Logger)
	}
	if err != nil {
		return fmt.Errorf("opening %s storage: %w", app.Config.Storage.Backend, err)
	}

	app.Store, err = store.Open(backend, app.Logger)
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}
	app.Logger.Debug().
		Str("backend", app.Config.Storage.Backend).
		Str("data_dir", app.Config.Storage.DataDir).
		Msg("Store opened")
	return nil
}

// resolveAccount finds an account by full id, unique id prefix, or exact
// name (case-insensitive).
func resolveAccount(app *App, ref string) (models.Account, error) {
	if acc, ok := app.Store.Account(ref); ok {
		return acc, nil
	}

	var matches []models.Account
	lower := strings.ToLower(ref)
	for _, a := range app.Store.Accounts() {
		if strings.ToLower(a.Name) == lower {
			return a, nil
		}
		if strings.HasPrefix(strings.ToLower(a.ID), lower) {
			matches = append(matches, a)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Account{}, fmt.Errorf("no account matches %q", ref)
	default:
		return models.Account{}, fmt.Errorf("account reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// resolveTrade finds a trade by full id or unique id prefix.
func resolveTrade(app *App, ref string) (models.Trade, error) {
	var matches []models.Trade
	lower := strings.ToLower(ref)
	for _, t := range app.Store.Trades() {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(strings.ToLower(t.ID), lower) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Trade{}, fmt.Errorf("no trade matches %q", ref)
	default:
		return models.Trade{}, fmt.Errorf("trade reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("TradeMaster v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Process configuration",
		Long:  "View the process configuration (storage backend, data directory, logging).",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current process configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			output.Bold("Storage")
			output.Printf("  Backend:   %s\n", app.Config.Storage.Backend)
			output.Printf("  Data dir:  %s\n", app.Config.Storage.DataDir)
			output.Println()
			output.Bold("Logs")
			output.Printf("  Level:     %s\n", app.Config.Logs.Level)
			output.Printf("  Console:   %v\n", app.Config.Logs.Console)
			output.Printf("  File:      %v\n", app.Config.Logs.File)
			output.Println()
			output.Bold("UI")
			output.Printf("  Color:     %v\n", app.Config.UI.ColorEnabled)
			output.Printf("  History:   %d weeks\n", app.Config.UI.HistoryWeeks)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	return cmd
}
