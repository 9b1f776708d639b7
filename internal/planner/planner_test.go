package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trade-master/internal/models"
)

func day(value string) time.Time {
	ts, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return ts
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{"monday maps to itself", "2026-08-31", "2026-08-31"},
		{"wednesday maps back to monday", "2026-09-02", "2026-08-31"},
		{"saturday stays in its week", "2026-09-05", "2026-08-31"},
		{"sunday maps to the previous monday", "2026-09-06", "2026-08-31"},
		{"next monday starts a new week", "2026-09-07", "2026-09-07"},
		{"crosses a month boundary", "2026-09-01", "2026-08-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StartOfWeek(day(tt.date)))
		})
	}
}

func TestWeekHistory(t *testing.T) {
	keys := WeekHistory(day("2026-09-02"), 3)
	assert.Equal(t, []string{"2026-08-31", "2026-08-24", "2026-08-17"}, keys)
}

func TestDaysLeft(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2026-08-31", 4}, // Monday
		{"2026-09-02", 2}, // Wednesday
		{"2026-09-04", 0}, // Friday
		{"2026-09-05", 0}, // Saturday
		{"2026-09-06", 0}, // Sunday
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysLeft(day(tt.date)), "days left on %s", tt.date)
	}
}

func weekTrade(accountID, date string, profit, points float64) models.Trade {
	return models.Trade{AccountID: accountID, Date: date, ProfitUSD: profit, Points: points}
}

func TestStatsProgress(t *testing.T) {
	plan := models.WeeklyPlan{AccountID: "a", WeekStart: "2026-08-31", GoalUSD: 1000}
	trades := []models.Trade{
		weekTrade("a", "2026-08-31T10:00", 400, 40),
		weekTrade("a", "2026-09-01T11:30", 200, 20),
		weekTrade("a", "2026-08-24T09:00", 999, 99), // previous week
		weekTrade("b", "2026-09-01T12:00", 999, 99), // other account
	}

	stats := Stats(trades, plan, day("2026-09-02"))
	assert.InDelta(t, 600.0, stats.RealizedUSD, 1e-9)
	assert.InDelta(t, 60.0, stats.ProgressPct, 1e-9)
	assert.InDelta(t, 400.0, stats.Remaining, 1e-9)
	assert.Equal(t, 2, stats.TradeCount)
	assert.False(t, stats.GoalReached)
	assert.Equal(t, 2, stats.DaysLeft)
	assert.InDelta(t, 200.0, stats.DailyNeeded, 1e-9)
}

func TestStatsGoalReachedAtExactGoal(t *testing.T) {
	plan := models.WeeklyPlan{AccountID: "a", WeekStart: "2026-08-31", GoalUSD: 500}
	trades := []models.Trade{weekTrade("a", "2026-08-31T10:00", 500, 50)}

	stats := Stats(trades, plan, day("2026-09-02"))
	assert.True(t, stats.GoalReached)
	assert.InDelta(t, 100.0, stats.ProgressPct, 1e-9)
}

func TestStatsSurplusYieldsNegativeDailyNeeded(t *testing.T) {
	plan := models.WeeklyPlan{AccountID: "a", WeekStart: "2026-08-31", GoalUSD: 100}
	trades := []models.Trade{weekTrade("a", "2026-08-31T10:00", 500, 50)}

	stats := Stats(trades, plan, day("2026-09-02"))
	assert.True(t, stats.DailyNeeded < 0, "a surplus keeps the raw signed value")
}

func TestStatsZeroGoalNeverReaches(t *testing.T) {
	plan := models.WeeklyPlan{AccountID: "a", WeekStart: "2026-08-31"}
	trades := []models.Trade{weekTrade("a", "2026-08-31T10:00", 500, 50)}

	stats := Stats(trades, plan, day("2026-09-02"))
	assert.False(t, stats.GoalReached)
	assert.Equal(t, 0.0, stats.ProgressPct)
}

func TestDefaultPlan(t *testing.T) {
	plan := DefaultPlan("a", "2026-08-31")
	assert.Equal(t, 0.0, plan.GoalUSD)
	assert.Equal(t, 3, plan.MaxTradesPerDay)
	assert.Equal(t, "09:00", plan.StartTime)
	assert.Equal(t, "17:00", plan.EndTime)
	assert.NotNil(t, plan.ScheduledDays)
}

func TestFindPlan(t *testing.T) {
	plans := []models.WeeklyPlan{
		{ID: "p1", AccountID: "a", WeekStart: "2026-08-31"},
		{ID: "p2", AccountID: "a", WeekStart: "2026-08-24"},
	}

	p, ok := FindPlan(plans, "a", "2026-08-24")
	assert.True(t, ok)
	assert.Equal(t, "p2", p.ID)

	_, ok = FindPlan(plans, "b", "2026-08-31")
	assert.False(t, ok)
}

func TestHistory(t *testing.T) {
	plans := []models.WeeklyPlan{
		{ID: "p1", AccountID: "a", WeekStart: "2026-08-31", GoalUSD: 500},
	}
	trades := []models.Trade{
		weekTrade("a", "2026-08-31T10:00", 600, 60),
		weekTrade("a", "2026-08-25T10:00", 100, 10),
	}

	results := History(trades, plans, "a", day("2026-09-02"), 2)
	assert.Len(t, results, 2)

	this := results[0]
	assert.Equal(t, "2026-08-31", this.WeekStart)
	assert.True(t, this.HasPlan)
	assert.True(t, this.Achieved)
	assert.InDelta(t, 120.0, this.AchievedPct, 1e-9)

	prev := results[1]
	assert.Equal(t, "2026-08-24", prev.WeekStart)
	assert.False(t, prev.HasPlan, "weeks without a saved plan carry realized totals only")
	assert.InDelta(t, 100.0, prev.RealizedUSD, 1e-9)
	assert.False(t, prev.Achieved)
}
