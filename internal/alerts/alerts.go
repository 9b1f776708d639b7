// Package alerts evaluates the stored notification rules against the
// current state. Evaluation is pure; the CLI decides how (and whether) to
// surface a triggered rule.
package alerts

import (
	"trade-master/internal/models"
	"trade-master/internal/planner"
)

// LossStreak returns the length of the consecutive-loss run counting from
// the newest trade backwards. Break-even trades end the run.
func LossStreak(trades []models.Trade) int {
	streak := 0
	for _, t := range trades { // trades are kept newest first
		if t.ProfitUSD < 0 {
			streak++
			continue
		}
		break
	}
	return streak
}

// LossStreakTriggered reports whether the streak alert should fire. A
// threshold of 0 disables the rule.
func LossStreakTriggered(trades []models.Trade, cfg models.NotificationConfig) (int, bool) {
	streak := LossStreak(trades)
	if cfg.LossStreak <= 0 {
		return streak, false
	}
	return streak, streak >= cfg.LossStreak
}

// GoalReached reports whether the goal-reached notice should fire for the
// given week stats.
func GoalReached(stats planner.WeekStats, cfg models.NotificationConfig) bool {
	return cfg.GoalReached && stats.GoalReached
}

// MaxTradesExceeded reports whether more trades were taken on the given
// calendar day (YYYY-MM-DD) than the plan allows.
func MaxTradesExceeded(trades []models.Trade, plan models.WeeklyPlan, day string, cfg models.NotificationConfig) (int, bool) {
	if !cfg.MaxTradesExceeded || plan.MaxTradesPerDay <= 0 {
		return 0, false
	}
	count := 0
	for _, t := range trades {
		if t.AccountID != plan.AccountID {
			continue
		}
		ts, err := t.Time()
		if err != nil {
			continue
		}
		if ts.Format("2006-01-02") == day {
			count++
		}
	}
	return count, count > plan.MaxTradesPerDay
}
