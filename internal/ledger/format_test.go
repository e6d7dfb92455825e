package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/pocketledger/internal/models"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   string
		currency models.Currency
		want     string
	}{
		{"85.97", models.CurrencyUSD, "$85.97"},
		{"32", models.CurrencyUSD, "$32.00"},
		{"120.5", models.CurrencyEUR, "€120.50"},
		{"10", models.CurrencyGBP, "£10.00"},
		{"85.97", models.CurrencyJPY, "¥86"},
	}
	for _, tt := range tests {
		t.Run(string(tt.currency)+" "+tt.amount, func(t *testing.T) {
			got := FormatAmount(decimal.RequireFromString(tt.amount), tt.currency)
			if got != tt.want {
				t.Errorf("FormatAmount(%s, %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
			}
		})
	}
}
