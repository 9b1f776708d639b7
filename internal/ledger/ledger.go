// Package ledger derives financial figures from raw trades without
// mutating them. All functions are pure.
package ledger

import (
	"time"

	"trade-master/internal/models"
)

// TradeProfit computes the gross profit of a trade. No rounding happens
// here; currency formatting rounds at display time only.
func TradeProfit(points, valuePerPoint float64) float64 {
	return points * valuePerPoint
}

// NetOfSplit applies the prop firm's split to a gross amount. The split is
// a profit share: positive amounts are reduced by splitPercent, losses pass
// through unchanged.
func NetOfSplit(gross, splitPercent float64) float64 {
	if gross > 0 {
		return gross * (1 - splitPercent/100)
	}
	return gross
}

// Convert converts a USD amount into the secondary currency at the given
// rate. The rate is whatever the config currently holds; past figures are
// re-priced retroactively on a rate change.
func Convert(amountUSD, rate float64) float64 {
	return amountUSD * rate
}

// WinRate returns the percentage of profitable trades in the subset, or 0
// for an empty subset.
func WinRate(trades []models.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	wins := 0
	for _, t := range trades {
		if t.ProfitUSD > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(trades)) * 100
}

// Summary holds the derived totals of a trade subset.
type Summary struct {
	GrossUSD float64
	NetUSD   float64
	TaxUSD   float64 // gross - net, the firm's cut
	Count    int
}

// Summarize totals a trade subset, applying each trade's own account split
// per trade. Mixing accounts with different splits in one view makes
// summing gross first and splitting once incorrect, so the split is never
// applied to an aggregated sum. Trades referencing an unknown account are
// treated as split 0.
func Summarize(trades []models.Trade, accounts []models.Account) Summary {
	splits := splitsByAccount(accounts)
	var s Summary
	for _, t := range trades {
		s.GrossUSD += t.ProfitUSD
		s.NetUSD += NetOfSplit(t.ProfitUSD, splits[t.AccountID])
		s.Count++
	}
	s.TaxUSD = s.GrossUSD - s.NetUSD
	return s
}

func splitsByAccount(accounts []models.Account) map[string]float64 {
	m := make(map[string]float64, len(accounts))
	for _, a := range accounts {
		m[a.ID] = a.SplitPercent
	}
	return m
}

// PeriodKeyFunc maps a trade to a grouping key. Trades whose date fails to
// parse are skipped by the aggregator when the key func returns "".
type PeriodKeyFunc func(t models.Trade) string

// DayKey groups by calendar day (YYYY-MM-DD).
func DayKey(t models.Trade) string {
	ts, err := t.Time()
	if err != nil {
		return ""
	}
	return ts.Format("2006-01-02")
}

// MonthKey groups by calendar month (YYYY-MM).
func MonthKey(t models.Trade) string {
	ts, err := t.Time()
	if err != nil {
		return ""
	}
	return ts.Format("2006-01")
}

// AccountKey groups by owning account.
func AccountKey(t models.Trade) string {
	return t.AccountID
}

// PeriodTotals holds per-period aggregates.
type PeriodTotals struct {
	GrossUSD float64
	NetUSD   float64
	Count    int
}

// AggregateByPeriod groups trades by the given key function and totals each
// bucket, splitting per trade.
func AggregateByPeriod(trades []models.Trade, accounts []models.Account, keyFn PeriodKeyFunc) map[string]PeriodTotals {
	splits := splitsByAccount(accounts)
	out := make(map[string]PeriodTotals)
	for _, t := range trades {
		key := keyFn(t)
		if key == "" {
			continue
		}
		p := out[key]
		p.GrossUSD += t.ProfitUSD
		p.NetUSD += NetOfSplit(t.ProfitUSD, splits[t.AccountID])
		p.Count++
		out[key] = p
	}
	return out
}

// MonthTrades filters trades falling in the given calendar month.
func MonthTrades(trades []models.Trade, year int, month time.Month) []models.Trade {
	var out []models.Trade
	for _, t := range trades {
		ts, err := t.Time()
		if err != nil {
			continue
		}
		if ts.Year() == year && ts.Month() == month {
			out = append(out, t)
		}
	}
	return out
}

// AccountTrades filters trades owned by the given account.
func AccountTrades(trades []models.Trade, accountID string) []models.Trade {
	var out []models.Trade
	for _, t := range trades {
		if t.AccountID == accountID {
			out = append(out, t)
		}
	}
	return out
}

// AccountStats holds the per-account card figures shown in the accounts
// view.
type AccountStats struct {
	GrossUSD float64
	NetUSD   float64
	WinRate  float64
	Count    int
}

// StatsForAccount computes the card stats for one account over a trade
// subset.
func StatsForAccount(trades []models.Trade, acc models.Account) AccountStats {
	own := AccountTrades(trades, acc.ID)
	var gross float64
	for _, t := range own {
		gross += t.ProfitUSD
	}
	return AccountStats{
		GrossUSD: gross,
		NetUSD:   NetOfSplit(gross, acc.SplitPercent),
		WinRate:  WinRate(own),
		Count:    len(own),
	}
}
