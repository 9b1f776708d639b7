// Package cli provides the command-line interface for the trade journal.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// addSettingsCommands adds commands for the persisted application
// settings. These live inside the state snapshot, not in config.toml, and
// travel with backups.
func addSettingsCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Application settings",
		Long: `View and change the persisted settings: the USD to BRL conversion
rate, the date format, and notification rules.`,
	}

	cmd.AddCommand(newSettingsShowCmd(app))
	cmd.AddCommand(newSettingsSetCmd(app))

	rootCmd.AddCommand(cmd)
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			cfg := app.Store.Config()

			if output.IsJSON() {
				return output.JSON(cfg)
			}

			output.Bold("Settings")
			output.Printf("  USD to BRL rate:  %.2f\n", cfg.USDToBRLRate)
			output.Printf("  Date format:      %s\n", cfg.DateFormat)
			output.Println()
			output.Bold("Notifications")
			output.Printf("  Goal reached:        %v\n", cfg.Notifications.GoalReached)
			if cfg.Notifications.LossStreak > 0 {
				output.Printf("  Loss streak:         after %d losses\n", cfg.Notifications.LossStreak)
			} else {
				output.Printf("  Loss streak:         disabled\n")
			}
			output.Printf("  Max trades exceeded: %v\n", cfg.Notifications.MaxTradesExceeded)
			return nil
		},
	}
}

func newSettingsSetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		Example: `  trademaster settings set --rate 5.80
  trademaster settings set --date-format MM/DD/YYYY
  trademaster settings set --loss-streak 5 --goal-notice=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			cfg := app.Store.Config()

			if cmd.Flags().Changed("rate") {
				rate, _ := cmd.Flags().GetFloat64("rate")
				if rate <= 0 {
					err := fmt.Errorf("rate must be positive, got %v", rate)
					output.Error("%v", err)
					return err
				}
				cfg.USDToBRLRate = rate
			}
			if cmd.Flags().Changed("date-format") {
				format, _ := cmd.Flags().GetString("date-format")
				switch format {
				case "DD/MM/YYYY", "MM/DD/YYYY", "YYYY-MM-DD":
					cfg.DateFormat = format
				default:
					err := fmt.Errorf("unsupported date format %q", format)
					output.Error("%v", err)
					return err
				}
			}
			if cmd.Flags().Changed("goal-notice") {
				cfg.Notifications.GoalReached, _ = cmd.Flags().GetBool("goal-notice")
			}
			if cmd.Flags().Changed("loss-streak") {
				cfg.Notifications.LossStreak, _ = cmd.Flags().GetInt("loss-streak")
			}
			if cmd.Flags().Changed("max-trades-notice") {
				cfg.Notifications.MaxTradesExceeded, _ = cmd.Flags().GetBool("max-trades-notice")
			}

			app.Store.UpdateConfig(cfg)

			if output.IsJSON() {
				return output.JSON(cfg)
			}
			output.Success("Settings updated")
			return nil
		},
	}

	cmd.Flags().Float64("rate", 0, "USD to BRL conversion rate")
	cmd.Flags().String("date-format", "", "date format: DD/MM/YYYY, MM/DD/YYYY or YYYY-MM-DD")
	cmd.Flags().Bool("goal-notice", true, "notify when the weekly goal is reached")
	cmd.Flags().Int("loss-streak", 0, "consecutive-loss threshold, 0 disables")
	cmd.Flags().Bool("max-trades-notice", true, "notify when the daily trade limit is exceeded")

	return cmd
}
