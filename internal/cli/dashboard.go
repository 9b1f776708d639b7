// Package cli provides the command-line interface for the trade journal.
package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"trade-master/internal/ledger"
	"trade-master/internal/models"
)

// addDashboardCommands adds the monthly overview command.
func addDashboardCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newDashboardCmd(app))
}

func newDashboardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Monthly results overview",
		Long: `Show the month's results: gross, the firms' cut, net in USD and BRL,
daily totals, and a per-account breakdown.`,
		Example: `  trademaster dashboard
  trademaster dashboard --month 2026-08
  trademaster dashboard --account "FTMO 100k"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			now := time.Now()
			year, month := now.Year(), now.Month()
			if m, _ := cmd.Flags().GetString("month"); m != "" {
				ts, err := time.Parse("2006-01", m)
				if err != nil {
					output.Error("Invalid month %q, expected YYYY-MM", m)
					return err
				}
				year, month = ts.Year(), ts.Month()
			}

			accounts := app.Store.Accounts()
			trades := app.Store.Trades()
			if accountRef, _ := cmd.Flags().GetString("account"); accountRef != "" {
				acc, err := resolveAccount(app, accountRef)
				if err != nil {
					output.Error("%v", err)
					return err
				}
				trades = ledger.AccountTrades(trades, acc.ID)
			}

			monthTrades := ledger.MonthTrades(trades, year, month)
			summary := ledger.Summarize(monthTrades, accounts)
			cfg := app.Store.Config()

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"month":   time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
					"summary": summary,
					"netBRL":  ledger.Convert(summary.NetUSD, cfg.USDToBRLRate),
					"winRate": ledger.WinRate(monthTrades),
					"byDay":   ledger.AggregateByPeriod(monthTrades, accounts, ledger.DayKey),
				})
			}

			f := app.formatter()
			monthLabel := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")

			output.Bold("Dashboard - %s", monthLabel)
			output.Println()
			output.Printf("  Gross:     %s\n", output.Signed(summary.GrossUSD, f.USD(summary.GrossUSD)))
			output.Printf("  Firm cut:  %s\n", f.USD(summary.TaxUSD))
			output.Printf("  Net:       %s   (%s)\n",
				output.Signed(summary.NetUSD, f.USD(summary.NetUSD)),
				f.BRL(summary.NetUSD),
			)
			output.Printf("  Trades:    %d   Win rate: %.1f%%\n", summary.Count, ledger.WinRate(monthTrades))
			output.Println()

			printDailyTotals(output, f, monthTrades, accounts)
			printAccountCards(output, f, monthTrades, accounts)
			printRecentTrades(output, f, trades, accounts)
			return nil
		},
	}

	cmd.Flags().String("month", "", "calendar month YYYY-MM (default: current)")
	cmd.Flags().String("account", "", "filter by account id or name")

	return cmd
}

func printDailyTotals(output *Output, f *Formatter, trades []models.Trade, accounts []models.Account) {
	byDay := ledger.AggregateByPeriod(trades, accounts, ledger.DayKey)
	if len(byDay) == 0 {
		return
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	output.Bold("Daily totals")
	table := NewTable(output, "DAY", "TRADES", "GROSS", "NET")
	for _, day := range days {
		p := byDay[day]
		ts, _ := models.ParseDate(day)
		table.AddRow(
			f.Date(ts),
			fmt.Sprintf("%d", p.Count),
			output.Signed(p.GrossUSD, f.USD(p.GrossUSD)),
			output.Signed(p.NetUSD, f.USD(p.NetUSD)),
		)
	}
	table.Render()
	output.Println()
}

func printAccountCards(output *Output, f *Formatter, trades []models.Trade, accounts []models.Account) {
	if len(accounts) == 0 {
		return
	}

	output.Bold("By account")
	table := NewTable(output, "ACCOUNT", "TRADES", "GROSS", "NET", "WIN RATE")
	for _, acc := range accounts {
		stats := ledger.StatsForAccount(trades, acc)
		if stats.Count == 0 {
			continue
		}
		table.AddRow(
			acc.Name,
			fmt.Sprintf("%d", stats.Count),
			output.Signed(stats.GrossUSD, f.USD(stats.GrossUSD)),
			output.Signed(stats.NetUSD, f.USD(stats.NetUSD)),
			FormatPercent(stats.WinRate),
		)
	}
	table.Render()
	output.Println()
}

func printRecentTrades(output *Output, f *Formatter, trades []models.Trade, accounts []models.Account) {
	if len(trades) == 0 {
		return
	}
	limit := 5
	if len(trades) < limit {
		limit = len(trades)
	}

	names := make(map[string]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}

	output.Bold("Recent trades")
	table := NewTable(output, "DATE", "ACCOUNT", "ASSET", "POINTS", "GROSS")
	for _, t := range trades[:limit] {
		name := names[t.AccountID]
		if name == "" {
			name = output.DimText("unknown")
		}
		table.AddRow(
			f.DateString(t.Date),
			name,
			t.Asset,
			FormatPoints(t.Points),
			output.Signed(t.ProfitUSD, f.USD(t.ProfitUSD)),
		)
	}
	table.Render()
}
