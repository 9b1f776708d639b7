// Package planner computes an account's pacing against its weekly goal.
// Like the ledger, everything here is a pure function of its inputs; weekly
// state is derived on every call, never persisted.
package planner

import (
	"time"

	"trade-master/internal/models"
)

// StartOfWeek returns the Monday date key (YYYY-MM-DD) of the trading week
// containing t. A Sunday maps to the previous Monday.
func StartOfWeek(t time.Time) string {
	day := int(t.Weekday()) // 0=Sunday .. 6=Saturday
	diff := 1 - day
	if day == 0 {
		diff = -6
	}
	monday := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, diff)
	return monday.Format("2006-01-02")
}

// WeekHistory returns the last n week-start keys, newest first, starting
// with the week containing from.
func WeekHistory(from time.Time, n int) []string {
	keys := make([]string, 0, n)
	current := from
	for i := 0; i < n; i++ {
		keys = append(keys, StartOfWeek(current))
		current = current.AddDate(0, 0, -7)
	}
	return keys
}

// DefaultPlan synthesizes the zero-goal plan used when an account has no
// saved plan for a week. Progress against it is always 0% and it can never
// report the goal as reached.
func DefaultPlan(accountID, weekStart string) models.WeeklyPlan {
	return models.WeeklyPlan{
		AccountID:       accountID,
		WeekStart:       weekStart,
		GoalUSD:         0,
		GoalPoints:      0,
		ScheduledDays:   []string{},
		MaxTradesPerDay: 3,
		StartTime:       "09:00",
		EndTime:         "17:00",
	}
}

// WeekStats holds an account's realized totals and pacing for one week.
type WeekStats struct {
	RealizedUSD    float64
	RealizedPoints float64
	TradeCount     int
	ProgressPct    float64
	Remaining      float64
	DaysLeft       int
	DailyNeeded    float64 // raw signed value; <= 0 means no further requirement
	GoalReached    bool
}

// WeekTrades filters the trades belonging to the plan's account whose week
// key matches the plan's week start.
func WeekTrades(trades []models.Trade, plan models.WeeklyPlan) []models.Trade {
	var out []models.Trade
	for _, t := range trades {
		if t.AccountID != plan.AccountID {
			continue
		}
		ts, err := t.Time()
		if err != nil {
			continue
		}
		if StartOfWeek(ts) == plan.WeekStart {
			out = append(out, t)
		}
	}
	return out
}

// DaysLeft returns the remaining business days (Mon-Fri) in the week as of
// now. Saturday and Sunday both collapse to 0: the trading week is over.
func DaysLeft(now time.Time) int {
	day := int(now.Weekday())
	if day == 0 {
		day = 5
	}
	left := 5 - day
	if left < 0 {
		left = 0
	}
	return left
}

// Stats computes the realized totals and pacing metrics for a plan.
func Stats(trades []models.Trade, plan models.WeeklyPlan, now time.Time) WeekStats {
	var s WeekStats
	for _, t := range WeekTrades(trades, plan) {
		s.RealizedUSD += t.ProfitUSD
		s.RealizedPoints += t.Points
		s.TradeCount++
	}

	if plan.GoalUSD > 0 {
		s.ProgressPct = s.RealizedUSD / plan.GoalUSD * 100
		s.GoalReached = s.RealizedUSD >= plan.GoalUSD
	}
	s.Remaining = plan.GoalUSD - s.RealizedUSD
	s.DaysLeft = DaysLeft(now)
	if s.DaysLeft > 0 {
		// Intentionally unclamped: a surplus yields a negative daily
		// requirement and the presentation layer decides the label.
		s.DailyNeeded = s.Remaining / float64(s.DaysLeft)
	}
	return s
}

// WeekResult is one row of the goals history view.
type WeekResult struct {
	WeekStart   string
	HasPlan     bool
	GoalUSD     float64
	RealizedUSD float64
	AchievedPct float64 // meaningful only when HasPlan and GoalUSD > 0
	Achieved    bool
}

// FindPlan looks up the plan for an exact (account, week-start) pair.
func FindPlan(plans []models.WeeklyPlan, accountID, weekStart string) (models.WeeklyPlan, bool) {
	for _, p := range plans {
		if p.AccountID == accountID && p.WeekStart == weekStart {
			return p, true
		}
	}
	return models.WeeklyPlan{}, false
}

// History recomputes realized totals for each of the last n weeks and
// compares them to whatever plan was saved for that week. Weeks with no
// saved plan carry no achievement percentage and are never marked achieved.
func History(trades []models.Trade, plans []models.WeeklyPlan, accountID string, now time.Time, n int) []WeekResult {
	results := make([]WeekResult, 0, n)
	for _, weekStart := range WeekHistory(now, n) {
		r := WeekResult{WeekStart: weekStart}
		plan, ok := FindPlan(plans, accountID, weekStart)
		if !ok {
			plan = models.WeeklyPlan{AccountID: accountID, WeekStart: weekStart}
		} else {
			r.HasPlan = true
			r.GoalUSD = plan.GoalUSD
		}
		for _, t := range WeekTrades(trades, plan) {
			r.RealizedUSD += t.ProfitUSD
		}
		if r.HasPlan && r.GoalUSD > 0 {
			r.AchievedPct = r.RealizedUSD / r.GoalUSD * 100
			r.Achieved = r.AchievedPct >= 100
		}
		results = append(results, r)
	}
	return results
}
