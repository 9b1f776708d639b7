// Package cli provides the command-line interface for the trade journal.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"trade-master/internal/backup"
	apperrors "trade-master/internal/errors"
)

// addDataCommands adds bulk import/export and reset commands.
func addDataCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Backup, restore and reset",
		Long: `Export the full state as a JSON backup, restore from one, or wipe
everything.

A restore replaces accounts, trades, plans and settings wholesale; the
backup format is the same document the app persists, so backups written
by the original web journal import unchanged.`,
	}

	cmd.AddCommand(newDataExportCmd(app))
	cmd.AddCommand(newDataImportCmd(app))
	cmd.AddCommand(newDataResetCmd(app))

	rootCmd.AddCommand(cmd)
}

func newDataExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a dated JSON backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				dir = "."
			}

			path, err := backup.Export(app.Store.State(), dir, time.Now())
			if err != nil {
				output.Error("Export failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{"path": path})
			}
			output.Success("Backup written to %s", path)
			return nil
		},
	}

	cmd.Flags().String("dir", "", "output directory (default: current directory)")

	return cmd
}

func newDataImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Restore from a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			state, err := backup.Import(args[0])
			if err != nil {
				output.Error("Import failed: %v", err)
				return err
			}

			prompt := fmt.Sprintf(
				"Replace ALL current data with %s (%d accounts, %d trades, %d plans)?",
				args[0], len(state.Accounts), len(state.Trades), len(state.WeeklyPlans),
			)
			if !Confirm(cmd, prompt) {
				output.Dim("Aborted. Nothing changed.")
				return apperrors.ErrNotConfirmed
			}

			app.Store.ReplaceAll(state)
			output.Success("Imported %d account(s), %d trade(s), %d plan(s)",
				len(state.Accounts), len(state.Trades), len(state.WeeklyPlans))
			return nil
		},
	}
}

func newDataResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete all data and restore defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			if !Confirm(cmd, "Delete ALL accounts, trades, plans and settings? This cannot be undone") {
				output.Dim("Aborted. Nothing changed.")
				return apperrors.ErrNotConfirmed
			}

			app.Store.Reset()
			output.Success("All data cleared")
			return nil
		},
	}
}
