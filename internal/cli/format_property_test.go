package cli

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"trade-master/internal/models"
)

// Currency formatting rounds to cents but must preserve the value at that
// precision, carry the right sign, and always show two decimal places.
func TestUSDFormattingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	f := NewFormatter(models.DefaultConfig())

	properties.Property("formatted value parses back to the cent", prop.ForAll(
		func(amount float64) bool {
			formatted := f.USD(amount)

			numeric := strings.TrimPrefix(formatted, "-")
			numeric = strings.TrimPrefix(numeric, "$")
			numeric = strings.ReplaceAll(numeric, ",", "")
			parsed, err := strconv.ParseFloat(numeric, 64)
			if err != nil {
				t.Logf("unparseable output for %f: %s", amount, formatted)
				return false
			}
			if strings.HasPrefix(formatted, "-") {
				parsed = -parsed
			}

			want := math.Round(amount*100) / 100
			return math.Abs(parsed-want) < 0.005
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.Property("always two decimal places", prop.ForAll(
		func(amount float64) bool {
			formatted := f.USD(amount)
			parts := strings.Split(formatted, ".")
			return len(parts) == 2 && len(parts[1]) == 2
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.Property("sign matches the rounded amount", prop.ForAll(
		func(amount float64) bool {
			rounded := math.Round(amount*100) / 100
			negative := strings.HasPrefix(f.USD(amount), "-")
			if rounded < 0 {
				return negative
			}
			return !negative
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.TestingRun(t)
}

// BRL conversion commutes with formatting: converting then formatting
// equals formatting the converted amount.
func TestBRLConversionProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("rate scales the formatted value", prop.ForAll(
		func(amount, rate float64) bool {
			cfg := models.DefaultConfig()
			cfg.USDToBRLRate = rate
			f := NewFormatter(cfg)

			formatted := f.BRL(amount)
			numeric := strings.TrimPrefix(formatted, "-")
			numeric = strings.TrimPrefix(numeric, "R$")
			// BRL uses dot for thousands and comma for decimals.
			numeric = strings.ReplaceAll(numeric, ".", "")
			numeric = strings.ReplaceAll(numeric, ",", ".")
			parsed, err := strconv.ParseFloat(numeric, 64)
			if err != nil {
				return false
			}
			if strings.HasPrefix(formatted, "-") {
				parsed = -parsed
			}

			want := math.Round(amount*rate*100) / 100
			return math.Abs(parsed-want) < 0.005
		},
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(0.01, 100),
	))

	properties.TestingRun(t)
}
