// Package cli provides the command-line interface for the trade journal.
package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Rhymond/go-money"

	"trade-master/internal/models"
)

// Formatter renders amounts and dates according to the persisted
// application settings. Rounding to cents happens here, at display time
// only; the figures underneath stay unrounded.
type Formatter struct {
	cfg models.Config
}

// NewFormatter creates a formatter bound to the given settings.
func NewFormatter(cfg models.Config) *Formatter {
	return &Formatter{cfg: cfg}
}

// USD formats a dollar amount with symbol and thousands grouping.
func (f *Formatter) USD(amount float64) string {
	return money.New(toCents(amount), money.USD).Display()
}

// BRL converts a dollar amount at the configured rate and formats it in
// Brazilian real.
func (f *Formatter) BRL(amountUSD float64) string {
	converted := amountUSD * f.cfg.USDToBRLRate
	return money.New(toCents(converted), money.BRL).Display()
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Date renders a timestamp in the configured date format.
func (f *Formatter) Date(t time.Time) string {
	return t.Format(dateLayout(f.cfg.DateFormat))
}

// DateString renders a stored ISO date string in the configured format.
// Unparseable strings pass through verbatim rather than erroring a whole
// listing.
func (f *Formatter) DateString(s string) string {
	ts, err := models.ParseDate(s)
	if err != nil {
		return s
	}
	return f.Date(ts)
}

func dateLayout(format string) string {
	switch format {
	case "MM/DD/YYYY":
		return "01/02/2006"
	case "YYYY-MM-DD":
		return "2006-01-02"
	default:
		return "02/01/2006"
	}
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatPoints formats a signed points figure.
func FormatPoints(points float64) string {
	if points > 0 {
		return fmt.Sprintf("+%.1f", points)
	}
	return fmt.Sprintf("%.1f", points)
}

// TruncateString truncates a string to max length with ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// ShortID returns the displayable prefix of a ULID.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return strings.ToUpper(id[:8])
}
