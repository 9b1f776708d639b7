// Package models provides domain models for the trade journal.
package models

import (
	"fmt"
	"time"
)

// TradeType represents the direction tag of a trade. It is informational
// only: the sign of the result is carried by the points value.
type TradeType string

const (
	TradeBuy  TradeType = "BUY"
	TradeSell TradeType = "SELL"
)

// AccountStatus represents the lifecycle state of a funded account.
// The wire values match the v2 backup format of the original journal, so
// existing backups import unchanged.
type AccountStatus string

const (
	StatusActive   AccountStatus = "Ativa"
	StatusInactive AccountStatus = "Inativa"
)

// Account is a funded prop-firm trading account ("desk").
type Account struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	PropFirm     string        `json:"propFirm"`
	Size         float64       `json:"size"`
	SplitPercent float64       `json:"splitPercent"` // the firm's cut of profitable trades, 0-100
	StartDate    string        `json:"startDate"`    // YYYY-MM-DD
	Status       AccountStatus `json:"status"`
	Notes        string        `json:"notes,omitempty"`
}

// IsActive reports whether the account is currently active.
func (a Account) IsActive() bool {
	return a.Status == StatusActive
}

// Trade is one fully closed position, entered retrospectively.
// ProfitUSD is derived once at creation and never mutated afterwards;
// edits are delete-and-recreate.
type Trade struct {
	ID            string    `json:"id"`
	AccountID     string    `json:"accountId"`
	Date          string    `json:"date"` // ISO timestamp, kept verbatim for round trips
	Asset         string    `json:"asset"`
	Type          TradeType `json:"type"`
	Points        float64   `json:"points"` // signed; direction does not flip the sign
	ValuePerPoint float64   `json:"valuePerPoint"`
	Lots          float64   `json:"lots"`
	Notes         string    `json:"notes,omitempty"`
	ProfitUSD     float64   `json:"profitUSD"`
}

// tradeDateLayouts covers the timestamp shapes the original app wrote:
// datetime-local inputs ("2006-01-02T15:04") as well as full ISO strings.
var tradeDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Time parses the trade's date string.
func (t Trade) Time() (time.Time, error) {
	return ParseDate(t.Date)
}

// ParseDate parses an ISO-ish date string in any of the accepted layouts.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range tradeDateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// WeeklyPlan is the goal configuration for one account and one calendar
// week. WeekStart is the Monday date (YYYY-MM-DD) and, together with
// AccountID, forms the plan's natural key: at most one plan may exist per
// (account, week) pair.
type WeeklyPlan struct {
	ID              string   `json:"id"`
	AccountID       string   `json:"accountId"`
	WeekStart       string   `json:"weekStart"`
	GoalUSD         float64  `json:"goalUSD"`
	GoalPoints      float64  `json:"goalPoints"`
	ScheduledDays   []string `json:"scheduledDays"`
	MaxTradesPerDay int      `json:"maxTradesPerDay"`
	Strategy        string   `json:"strategy"`
	StartTime       string   `json:"startTime"` // HH:MM
	EndTime         string   `json:"endTime"`   // HH:MM
}

// NotificationConfig holds the stored notification toggles. Only the data
// shape is owned here; rule evaluation lives in the alerts package.
type NotificationConfig struct {
	GoalReached       bool `json:"goalReached"`
	LossStreak        int  `json:"lossStreak"` // consecutive-loss threshold, 0 disables
	MaxTradesExceeded bool `json:"maxTradesExceeded"`
}

// Config holds the persisted application settings.
type Config struct {
	USDToBRLRate  float64            `json:"usdToBrlRate"`
	DateFormat    string             `json:"dateFormat"` // "DD/MM/YYYY" or "MM/DD/YYYY"
	Notifications NotificationConfig `json:"notifications"`
}

// DefaultConfig returns the settings a fresh install starts with.
func DefaultConfig() Config {
	return Config{
		USDToBRLRate: 5.50,
		DateFormat:   "DD/MM/YYYY",
		Notifications: NotificationConfig{
			GoalReached:       true,
			LossStreak:        3,
			MaxTradesExceeded: true,
		},
	}
}

// AppState is the aggregate of all four collections: the unit that gets
// serialized to and from the snapshot backend and backup files.
type AppState struct {
	Accounts    []Account    `json:"accounts"`
	Trades      []Trade      `json:"trades"`
	WeeklyPlans []WeeklyPlan `json:"weeklyPlans"`
	Config      Config       `json:"config"`
}

// EmptyState returns a state with empty collections and default config.
func EmptyState() *AppState {
	return &AppState{
		Accounts:    []Account{},
		Trades:      []Trade{},
		WeeklyPlans: []WeeklyPlan{},
		Config:      DefaultConfig(),
	}
}

// Normalize replaces nil collections with empty slices and a zero config
// with the defaults. Snapshots written by older versions may omit fields;
// the original app applied the same fallback on load.
func (s *AppState) Normalize() {
	if s.Accounts == nil {
		s.Accounts = []Account{}
	}
	if s.Trades == nil {
		s.Trades = []Trade{}
	}
	if s.WeeklyPlans == nil {
		s.WeeklyPlans = []WeeklyPlan{}
	}
	if s.Config == (Config{}) {
		s.Config = DefaultConfig()
	}
}
