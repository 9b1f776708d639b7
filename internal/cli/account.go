// Package cli provides the command-line interface for the trade journal.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	apperrors "trade-master/internal/errors"
	"trade-master/internal/ledger"
	"trade-master/internal/models"
)

// addAccountCommands adds funded-account management commands.
func addAccountCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage funded accounts",
		Long:  "Create, list, update and delete prop-firm funded accounts.",
	}

	cmd.AddCommand(newAccountAddCmd(app))
	cmd.AddCommand(newAccountListCmd(app))
	cmd.AddCommand(newAccountShowCmd(app))
	cmd.AddCommand(newAccountUpdateCmd(app))
	cmd.AddCommand(newAccountDeleteCmd(app))

	rootCmd.AddCommand(cmd)
}

func newAccountAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a funded account",
		Example: `  trademaster account add --name "FTMO 100k" --firm FTMO --size 100000 --split 20
  trademaster account add --name "Apex 50k" --firm Apex --size 50000 --split 10 --start 2026-01-05`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			name, _ := cmd.Flags().GetString("name")
			firm, _ := cmd.Flags().GetString("firm")
			size, _ := cmd.Flags().GetFloat64("size")
			split, _ := cmd.Flags().GetFloat64("split")
			start, _ := cmd.Flags().GetString("start")
			notes, _ := cmd.Flags().GetString("notes")

			if start == "" {
				start = time.Now().Format("2006-01-02")
			}

			acc, err := app.Store.AddAccount(models.Account{
				Name:         name,
				PropFirm:     firm,
				Size:         size,
				SplitPercent: split,
				StartDate:    start,
				Notes:        notes,
			})
			if err != nil {
				output.Error("Failed to add account: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(acc)
			}
			output.Success("Account %q registered (%s)", acc.Name, ShortID(acc.ID))
			return nil
		},
	}

	cmd.Flags().String("name", "", "account display name (required)")
	cmd.Flags().String("firm", "", "prop firm name")
	cmd.Flags().Float64("size", 0, "account size in USD")
	cmd.Flags().Float64("split", 0, "firm profit split percentage (0-100)")
	cmd.Flags().String("start", "", "start date YYYY-MM-DD (default: today)")
	cmd.Flags().String("notes", "", "free-form notes")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newAccountListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List funded accounts with per-account results",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			accounts := app.Store.Accounts()

			if output.IsJSON() {
				return output.JSON(accounts)
			}
			if len(accounts) == 0 {
				output.Dim("No accounts yet. Add one with 'trademaster account add'.")
				return nil
			}

			f := app.formatter()
			trades := app.Store.Trades()

			table := NewTable(output, "ID", "NAME", "FIRM", "SIZE", "SPLIT", "STATUS", "TRADES", "NET P&L", "WIN RATE")
			for _, acc := range accounts {
				stats := ledger.StatsForAccount(trades, acc)
				status := output.Green(string(acc.Status))
				if !acc.IsActive() {
					status = output.DimText(string(acc.Status))
				}
				table.AddRow(
					output.DimText(ShortID(acc.ID)),
					acc.Name,
					acc.PropFirm,
					f.USD(acc.Size),
					FormatPercent(acc.SplitPercent),
					status,
					fmt.Sprintf("%d", stats.Count),
					output.Signed(stats.NetUSD, f.USD(stats.NetUSD)),
					FormatPercent(stats.WinRate),
				)
			}
			table.Render()
			return nil
		},
	}
}

func newAccountShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <account>",
		Short: "Show one account with its derived stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			acc, err := resolveAccount(app, args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}

			trades := app.Store.Trades()
			stats := ledger.StatsForAccount(trades, acc)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"account": acc,
					"stats":   stats,
				})
			}

			f := app.formatter()
			output.Bold("%s", acc.Name)
			output.Printf("  ID:         %s\n", acc.ID)
			output.Printf("  Firm:       %s\n", acc.PropFirm)
			output.Printf("  Size:       %s\n", f.USD(acc.Size))
			output.Printf("  Split:      %.1f%%\n", acc.SplitPercent)
			output.Printf("  Started:    %s\n", f.DateString(acc.StartDate))
			output.Printf("  Status:     %s\n", acc.Status)
			if acc.Notes != "" {
				output.Printf("  Notes:      %s\n", acc.Notes)
			}
			output.Println()
			output.Bold("Results")
			output.Printf("  Trades:     %d\n", stats.Count)
			output.Printf("  Gross:      %s\n", output.Signed(stats.GrossUSD, f.USD(stats.GrossUSD)))
			output.Printf("  Net:        %s\n", output.Signed(stats.NetUSD, f.USD(stats.NetUSD)))
			output.Printf("  Win rate:   %.1f%%\n", stats.WinRate)
			return nil
		},
	}
}

func newAccountUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "update <account>",
		Aliases: []string{"edit"},
		Short:   "Update account fields",
		Long:    "Update an account in place. Only the provided flags change; everything else is kept.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			acc, err := resolveAccount(app, args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}

			if cmd.Flags().Changed("name") {
				acc.Name, _ = cmd.Flags().GetString("name")
			}
			if cmd.Flags().Changed("firm") {
				acc.PropFirm, _ = cmd.Flags().GetString("firm")
			}
			if cmd.Flags().Changed("size") {
				acc.Size, _ = cmd.Flags().GetFloat64("size")
			}
			if cmd.Flags().Changed("split") {
				acc.SplitPercent, _ = cmd.Flags().GetFloat64("split")
			}
			if cmd.Flags().Changed("start") {
				acc.StartDate, _ = cmd.Flags().GetString("start")
			}
			if cmd.Flags().Changed("notes") {
				acc.Notes, _ = cmd.Flags().GetString("notes")
			}
			if cmd.Flags().Changed("status") {
				active, _ := cmd.Flags().GetBool("status")
				if active {
					acc.Status = models.StatusActive
				} else {
					acc.Status = models.StatusInactive
				}
			}

			if err := app.Store.UpdateAccount(acc); err != nil {
				output.Error("Failed to update account: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(acc)
			}
			output.Success("Account %q updated", acc.Name)
			return nil
		},
	}

	cmd.Flags().String("name", "", "account display name")
	cmd.Flags().String("firm", "", "prop firm name")
	cmd.Flags().Float64("size", 0, "account size in USD")
	cmd.Flags().Float64("split", 0, "firm profit split percentage (0-100)")
	cmd.Flags().String("start", "", "start date YYYY-MM-DD")
	cmd.Flags().String("notes", "", "free-form notes")
	cmd.Flags().Bool("status", true, "true for active, false for inactive")

	return cmd
}

func newAccountDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <account>",
		Short: "Delete an account and everything it owns",
		Long:  "Delete an account. All trades and weekly plans belonging to it are removed in the same step.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			acc, err := resolveAccount(app, args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}

			owned := len(ledger.AccountTrades(app.Store.Trades(), acc.ID))
			prompt := fmt.Sprintf("Delete account %q and its %d trade(s)? This cannot be undone", acc.Name, owned)
			if !Confirm(cmd, prompt) {
				output.Dim("Aborted.")
				return apperrors.ErrNotConfirmed
			}

			if err := app.Store.DeleteAccount(acc.ID); err != nil {
				output.Error("Failed to delete account: %v", err)
				return err
			}
			output.Success("Account %q and %d trade(s) deleted", acc.Name, owned)
			return nil
		},
	}
}
