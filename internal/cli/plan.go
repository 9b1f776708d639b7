// Package cli provides the command-line interface for the trade journal.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"trade-master/internal/models"
	"trade-master/internal/planner"
)

// addPlanCommands adds weekly goal commands.
func addPlanCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Weekly goals and pacing",
		Long: `Set a weekly goal per account and track pacing against it.

Weeks run Monday through Friday; the week key is the Monday date. Saving
a plan for a week that already has one overwrites it.`,
	}

	cmd.AddCommand(newPlanSetCmd(app))
	cmd.AddCommand(newPlanShowCmd(app))
	cmd.AddCommand(newPlanHistoryCmd(app))

	rootCmd.AddCommand(cmd)
}

func newPlanSetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or overwrite the weekly plan for an account",
		Example: `  trademaster plan set --account "FTMO 100k" --goal 1500
  trademaster plan set --account apex --week 2026-08-31 --goal 800 --max-trades 2 --days mon,tue,thu`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			accountRef, _ := cmd.Flags().GetString("account")
			acc, err := resolveAccount(app, accountRef)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			week, err := weekFlag(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			plan := planner.DefaultPlan(acc.ID, week)
			if existing, ok := planner.FindPlan(app.Store.WeeklyPlans(), acc.ID, week); ok {
				plan = existing
			}

			if cmd.Flags().Changed("goal") {
				plan.GoalUSD, _ = cmd.Flags().GetFloat64("goal")
			}
			if cmd.Flags().Changed("goal-points") {
				plan.GoalPoints, _ = cmd.Flags().GetFloat64("goal-points")
			}
			if cmd.Flags().Changed("days") {
				days, _ := cmd.Flags().GetString("days")
				plan.ScheduledDays = splitDays(days)
			}
			if cmd.Flags().Changed("max-trades") {
				plan.MaxTradesPerDay, _ = cmd.Flags().GetInt("max-trades")
			}
			if cmd.Flags().Changed("strategy") {
				plan.Strategy, _ = cmd.Flags().GetString("strategy")
			}
			if cmd.Flags().Changed("start-time") {
				plan.StartTime, _ = cmd.Flags().GetString("start-time")
			}
			if cmd.Flags().Changed("end-time") {
				plan.EndTime, _ = cmd.Flags().GetString("end-time")
			}

			saved, err := app.Store.UpsertWeeklyPlan(plan)
			if err != nil {
				output.Error("Failed to save plan: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(saved)
			}
			f := app.formatter()
			output.Success("Plan saved for %s, week of %s (goal %s)", acc.Name, saved.WeekStart, f.USD(saved.GoalUSD))
			return nil
		},
	}

	cmd.Flags().String("account", "", "account id or name (required)")
	cmd.Flags().String("week", "", "any date in the target week YYYY-MM-DD (default: current week)")
	cmd.Flags().Float64("goal", 0, "weekly goal in USD")
	cmd.Flags().Float64("goal-points", 0, "weekly goal in points")
	cmd.Flags().String("days", "", "scheduled trading days, comma separated (mon,tue,...)")
	cmd.Flags().Int("max-trades", 0, "maximum trades per day")
	cmd.Flags().String("strategy", "", "strategy note for the week")
	cmd.Flags().String("start-time", "", "session start HH:MM")
	cmd.Flags().String("end-time", "", "session end HH:MM")
	cmd.MarkFlagRequired("account")

	return cmd
}

// weekFlag resolves the --week flag to its Monday key, so any mid-week
// date addresses the week containing it. An empty flag means the current
// week.
func weekFlag(cmd *cobra.Command) (string, error) {
	week, _ := cmd.Flags().GetString("week")
	if week == "" {
		return planner.StartOfWeek(time.Now()), nil
	}
	ts, err := models.ParseDate(week)
	if err != nil {
		return "", fmt.Errorf("invalid week %q, expected YYYY-MM-DD", week)
	}
	return planner.StartOfWeek(ts), nil
}

func splitDays(s string) []string {
	var out []string
	for _, d := range strings.Split(s, ",") {
		d = strings.TrimSpace(strings.ToLower(d))
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

func newPlanShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current week's plan and pacing",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			accountRef, _ := cmd.Flags().GetString("account")
			acc, err := resolveAccount(app, accountRef)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			week, err := weekFlag(cmd)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			plan, hasPlan := planner.FindPlan(app.Store.WeeklyPlans(), acc.ID, week)
			if !hasPlan {
				plan = planner.DefaultPlan(acc.ID, week)
			}
			stats := planner.Stats(app.Store.Trades(), plan, time.Now())

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"plan":    plan,
					"hasPlan": hasPlan,
					"stats":   stats,
				})
			}

			f := app.formatter()
			output.Bold("%s, week of %s", acc.Name, week)
			if !hasPlan {
				output.Dim("No plan saved for this week. Showing realized results only.")
			} else {
				output.Printf("  Goal:          %s", f.USD(plan.GoalUSD))
				if plan.GoalPoints != 0 {
					output.Printf("  (%s pts)", FormatPoints(plan.GoalPoints))
				}
				output.Println()
				if len(plan.ScheduledDays) > 0 {
					output.Printf("  Days:          %s\n", strings.Join(plan.ScheduledDays, ", "))
				}
				output.Printf("  Max trades:    %d per day\n", plan.MaxTradesPerDay)
				if plan.Strategy != "" {
					output.Printf("  Strategy:      %s\n", plan.Strategy)
				}
				output.Printf("  Session:       %s - %s\n", plan.StartTime, plan.EndTime)
			}
			output.Println()

			output.Printf("  Realized:      %s (%s pts, %d trades)\n",
				output.Signed(stats.RealizedUSD, f.USD(stats.RealizedUSD)),
				FormatPoints(stats.RealizedPoints),
				stats.TradeCount,
			)
			if hasPlan && plan.GoalUSD > 0 {
				output.Printf("  Progress:      %.1f%%\n", stats.ProgressPct)
				if stats.GoalReached {
					output.Success("  ✓ Goal reached")
				} else {
					output.Printf("  Remaining:     %s\n", f.USD(stats.Remaining))
					if stats.DaysLeft > 0 {
						if stats.DailyNeeded > 0 {
							output.Printf("  Daily needed:  %s over %d day(s)\n", f.USD(stats.DailyNeeded), stats.DaysLeft)
						} else {
							output.Printf("  Surplus:       %s ahead of pace\n", f.USD(-stats.DailyNeeded))
						}
					} else {
						output.Dim("  Trading week is over.")
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().String("account", "", "account id or name (required)")
	cmd.Flags().String("week", "", "any date in the target week YYYY-MM-DD (default: current week)")
	cmd.MarkFlagRequired("account")

	return cmd
}

func newPlanHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show goal results for recent weeks",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			accountRef, _ := cmd.Flags().GetString("account")
			acc, err := resolveAccount(app, accountRef)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			weeks, _ := cmd.Flags().GetInt("weeks")
			if weeks <= 0 {
				weeks = app.Config.UI.HistoryWeeks
			}

			results := planner.History(app.Store.Trades(), app.Store.WeeklyPlans(), acc.ID, time.Now(), weeks)

			if output.IsJSON() {
				return output.JSON(results)
			}

			f := app.formatter()
			table := NewTable(output, "WEEK OF", "GOAL", "REALIZED", "ACHIEVED", "RESULT")
			for _, r := range results {
				goal := output.DimText("-")
				achieved := output.DimText("-")
				result := output.DimText("no plan")
				if r.HasPlan {
					goal = f.USD(r.GoalUSD)
					if r.GoalUSD > 0 {
						achieved = FormatPercent(r.AchievedPct)
						if r.Achieved {
							result = output.Green("✓ reached")
						} else {
							result = output.Red("✗ missed")
						}
					} else {
						result = output.DimText("no goal")
					}
				}
				table.AddRow(
					r.WeekStart,
					goal,
					output.Signed(r.RealizedUSD, f.USD(r.RealizedUSD)),
					achieved,
					result,
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().String("account", "", "account id or name (required)")
	cmd.Flags().Int("weeks", 0, "number of weeks to show (default from config)")
	cmd.MarkFlagRequired("account")

	return cmd
}
