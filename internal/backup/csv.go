package backup

import (
	"io"

	"github.com/gocarina/gocsv"

	"trade-master/internal/models"
)

// tradeRow is the flattened CSV shape of a trade, with the owning
// account resolved to its display name where possible.
type tradeRow struct {
	Date      string  `csv:"date"`
	Account   string  `csv:"account"`
	Asset     string  `csv:"asset"`
	Type      string  `csv:"type"`
	Points    float64 `csv:"points"`
	PerPoint  float64 `csv:"value_per_point"`
	Lots      float64 `csv:"lots"`
	ProfitUSD float64 `csv:"profit_usd"`
	Notes     string  `csv:"notes"`
}

// ExportTradesCSV writes trades as CSV. The JSON backup remains the
// canonical interchange format; CSV is a convenience for spreadsheets.
func ExportTradesCSV(trades []models.Trade, accounts []models.Account, w io.Writer) error {
	names := make(map[string]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}

	rows := make([]tradeRow, 0, len(trades))
	for _, t := range trades {
		name := names[t.AccountID]
		if name == "" {
			name = "unknown"
		}
		rows = append(rows, tradeRow{
			Date:      t.Date,
			Account:   name,
			Asset:     t.Asset,
			Type:      string(t.Type),
			Points:    t.Points,
			PerPoint:  t.ValuePerPoint,
			Lots:      t.Lots,
			ProfitUSD: t.ProfitUSD,
			Notes:     t.Notes,
		})
	}
	return gocsv.Marshal(rows, w)
}
