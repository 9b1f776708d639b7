// Package cli provides the command-line interface for the trade journal.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"trade-master/internal/alerts"
	"trade-master/internal/backup"
	apperrors "trade-master/internal/errors"
	"trade-master/internal/ledger"
	"trade-master/internal/models"
	"trade-master/internal/planner"
)

// addTradeCommands adds trade journal commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Record and review closed trades",
		Long: `Record closed trades against a funded account.

Profit is derived once at entry time (points x value per point) and never
recomputed. A wrong entry is deleted and re-added, not edited.`,
	}

	cmd.AddCommand(newTradeAddCmd(app))
	cmd.AddCommand(newTradeListCmd(app))
	cmd.AddCommand(newTradeDeleteCmd(app))
	cmd.AddCommand(newTradeExportCmd(app))

	rootCmd.AddCommand(cmd)
}

func newTradeAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a closed trade",
		Example: `  trademaster trade add --account "FTMO 100k" --asset EURUSD --type BUY --points 50 --value-per-point 10
  trademaster trade add --account apex --asset XAUUSD --type SELL --points -12.5 --value-per-point 8 --lots 0.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			accountRef, _ := cmd.Flags().GetString("account")
			acc, err := resolveAccount(app, accountRef)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			date, _ := cmd.Flags().GetString("date")
			if date == "" {
				date = time.Now().Format("2006-01-02T15:04")
			}
			asset, _ := cmd.Flags().GetString("asset")
			tradeType, _ := cmd.Flags().GetString("type")
			points, _ := cmd.Flags().GetFloat64("points")
			perPoint, _ := cmd.Flags().GetFloat64("value-per-point")
			lots, _ := cmd.Flags().GetFloat64("lots")
			notes, _ := cmd.Flags().GetString("notes")

			trade, err := app.Store.AddTrade(models.Trade{
				AccountID:     acc.ID,
				Date:          date,
				Asset:         strings.ToUpper(asset),
				Type:          models.TradeType(strings.ToUpper(tradeType)),
				Points:        points,
				ValuePerPoint: perPoint,
				Lots:          lots,
				Notes:         notes,
			})
			if err != nil {
				output.Error("Failed to record trade: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(trade)
			}

			f := app.formatter()
			net := ledger.NetOfSplit(trade.ProfitUSD, acc.SplitPercent)
			output.Success("Trade recorded (%s)", ShortID(trade.ID))
			output.Printf("  Gross: %s   Net: %s   BRL: %s\n",
				output.Signed(trade.ProfitUSD, f.USD(trade.ProfitUSD)),
				output.Signed(net, f.USD(net)),
				f.BRL(net),
			)

			printTradeAlerts(output, app, acc, trade)
			return nil
		},
	}

	cmd.Flags().String("account", "", "owning account id or name (required)")
	cmd.Flags().String("date", "", "close timestamp, ISO format (default: now)")
	cmd.Flags().String("asset", "", "traded asset, e.g. EURUSD (required)")
	cmd.Flags().String("type", "BUY", "direction tag: BUY or SELL")
	cmd.Flags().Float64("points", 0, "signed points result (required)")
	cmd.Flags().Float64("value-per-point", 0, "dollar value per point (required)")
	cmd.Flags().Float64("lots", 0, "position size in lots")
	cmd.Flags().String("notes", "", "free-form notes")
	cmd.MarkFlagRequired("account")
	cmd.MarkFlagRequired("asset")
	cmd.MarkFlagRequired("points")
	cmd.MarkFlagRequired("value-per-point")

	return cmd
}

// printTradeAlerts evaluates the notification rules right after a trade
// lands and prints whichever ones fire.
func printTradeAlerts(output *Output, app *App, acc models.Account, trade models.Trade) {
	cfg := app.Store.Config().Notifications
	trades := app.Store.Trades()

	if streak, fired := alerts.LossStreakTriggered(ledger.AccountTrades(trades, acc.ID), cfg); fired {
		output.Warning("⚠ %d consecutive losses on %s. Consider stepping away.", streak, acc.Name)
	}

	ts, err := trade.Time()
	if err != nil {
		return
	}
	plan, ok := planner.FindPlan(app.Store.WeeklyPlans(), acc.ID, planner.StartOfWeek(ts))
	if !ok {
		return
	}
	stats := planner.Stats(trades, plan, time.Now())
	if alerts.GoalReached(stats, cfg) {
		f := app.formatter()
		output.Success("✓ Weekly goal reached: %s of %s", f.USD(stats.RealizedUSD), f.USD(plan.GoalUSD))
	}
	day := ts.Format("2006-01-02")
	if count, fired := alerts.MaxTradesExceeded(trades, plan, day, cfg); fired {
		output.Warning("⚠ %d trades today, plan allows %d per day.", count, plan.MaxTradesPerDay)
	}
}

func newTradeListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trades, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades := app.Store.Trades()
			accountRef, _ := cmd.Flags().GetString("account")
			if accountRef != "" {
				acc, err := resolveAccount(app, accountRef)
				if err != nil {
					output.Error("%v", err)
					return err
				}
				trades = ledger.AccountTrades(trades, acc.ID)
			}
			if month, _ := cmd.Flags().GetString("month"); month != "" {
				ts, err := time.Parse("2006-01", month)
				if err != nil {
					output.Error("Invalid month %q, expected YYYY-MM", month)
					return err
				}
				trades = ledger.MonthTrades(trades, ts.Year(), ts.Month())
			}
			if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && len(trades) > limit {
				trades = trades[:limit]
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}
			if len(trades) == 0 {
				output.Dim("No trades match.")
				return nil
			}

			f := app.formatter()
			accounts := app.Store.Accounts()
			names := make(map[string]string, len(accounts))
			splits := make(map[string]float64, len(accounts))
			for _, a := range accounts {
				names[a.ID] = a.Name
				splits[a.ID] = a.SplitPercent
			}

			table := NewTable(output, "ID", "DATE", "ACCOUNT", "ASSET", "TYPE", "POINTS", "GROSS", "NET")
			for _, t := range trades {
				name := names[t.AccountID]
				if name == "" {
					name = output.DimText("unknown")
				}
				net := ledger.NetOfSplit(t.ProfitUSD, splits[t.AccountID])
				table.AddRow(
					output.DimText(ShortID(t.ID)),
					f.DateString(t.Date),
					name,
					t.Asset,
					string(t.Type),
					FormatPoints(t.Points),
					output.Signed(t.ProfitUSD, f.USD(t.ProfitUSD)),
					output.Signed(net, f.USD(net)),
				)
			}
			table.Render()

			summary := ledger.Summarize(trades, accounts)
			output.Println()
			output.Printf("Total: %d trade(s)   Gross %s   Net %s (%s)   Win rate %.1f%%\n",
				summary.Count,
				output.Signed(summary.GrossUSD, f.USD(summary.GrossUSD)),
				output.Signed(summary.NetUSD, f.USD(summary.NetUSD)),
				f.BRL(summary.NetUSD),
				ledger.WinRate(trades),
			)
			return nil
		},
	}

	cmd.Flags().String("account", "", "filter by account id or name")
	cmd.Flags().String("month", "", "filter by calendar month YYYY-MM")
	cmd.Flags().Int("limit", 0, "show at most N trades")

	return cmd
}

func newTradeDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trade-id>",
		Short: "Delete a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			trade, err := resolveTrade(app, args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}

			f := app.formatter()
			prompt := fmt.Sprintf("Delete %s %s trade of %s?", trade.Asset, trade.Type, f.USD(trade.ProfitUSD))
			if !Confirm(cmd, prompt) {
				output.Dim("Aborted.")
				return apperrors.ErrNotConfirmed
			}

			if err := app.Store.DeleteTrade(trade.ID); err != nil {
				output.Error("Failed to delete trade: %v", err)
				return err
			}
			output.Success("Trade %s deleted", ShortID(trade.ID))
			return nil
		},
	}
}

func newTradeExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export trades as CSV",
		Example: `  trademaster trade export --out trades.csv
  trademaster trade export --account "FTMO 100k" --out ftmo.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			trades := app.Store.Trades()
			if accountRef, _ := cmd.Flags().GetString("account"); accountRef != "" {
				acc, err := resolveAccount(app, accountRef)
				if err != nil {
					output.Error("%v", err)
					return err
				}
				trades = ledger.AccountTrades(trades, acc.ID)
			}

			out, _ := cmd.Flags().GetString("out")
			file, err := os.Create(out)
			if err != nil {
				output.Error("Failed to create %s: %v", out, err)
				return err
			}
			defer file.Close()

			if err := backup.ExportTradesCSV(trades, app.Store.Accounts(), file); err != nil {
				output.Error("Failed to write CSV: %v", err)
				return err
			}
			output.Success("Wrote %d trade(s) to %s", len(trades), out)
			return nil
		},
	}

	cmd.Flags().String("account", "", "filter by account id or name")
	cmd.Flags().String("out", "trades.csv", "output file path")

	return cmd
}
