package ledger

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/mmynk/pocketledger/internal/models"
)

// FormatAmount renders amount in the given currency, e.g. "$85.97" or "¥86".
// The number of decimals follows the currency's standard minor unit.
func FormatAmount(amount decimal.Decimal, c models.Currency) string {
	return c.Symbol() + amount.StringFixed(int32(minorUnits(c)))
}

func minorUnits(c models.Currency) int {
	unit, err := currency.ParseISO(string(c))
	if err != nil {
		return 2
	}
	scale, _ := currency.Standard.Rounding(unit)
	return scale
}
