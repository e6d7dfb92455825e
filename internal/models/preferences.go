package models

import "fmt"

// Currency is an ISO 4217 code the user may pick for display.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
)

var currencySymbols = map[Currency]string{
	CurrencyUSD: "$",
	CurrencyEUR: "€",
	CurrencyGBP: "£",
	CurrencyJPY: "¥",
}

// Currencies returns the selectable currencies in menu order.
func Currencies() []Currency {
	return []Currency{CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyJPY}
}

// Valid reports whether c is a selectable currency.
func (c Currency) Valid() bool {
	_, ok := currencySymbols[c]
	return ok
}

// Symbol returns the display symbol, falling back to the code itself.
func (c Currency) Symbol() string {
	if s, ok := currencySymbols[c]; ok {
		return s
	}
	return string(c)
}

// ParseCurrency converts a string into a selectable Currency.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(s)
	if !c.Valid() {
		return "", fmt.Errorf("unsupported currency %q", s)
	}
	return c, nil
}

// Preferences holds one identity's settings.
type Preferences struct {
	Currency           Currency `json:"currency"`
	DarkMode           bool     `json:"darkMode"`
	EmailNotifications bool     `json:"emailNotifications"`
}

// DefaultPreferences returns the settings used when nothing is stored.
func DefaultPreferences() Preferences {
	return Preferences{
		Currency:           CurrencyUSD,
		DarkMode:           false,
		EmailNotifications: true,
	}
}

// PreferencesPatch is a partial update. Nil fields are left untouched.
type PreferencesPatch struct {
	Currency           *Currency
	DarkMode           *bool
	EmailNotifications *bool
}

// Apply merges the patch over p and returns the result.
func (p Preferences) Apply(patch PreferencesPatch) Preferences {
	if patch.Currency != nil {
		p.Currency = *patch.Currency
	}
	if patch.DarkMode != nil {
		p.DarkMode = *patch.DarkMode
	}
	if patch.EmailNotifications != nil {
		p.EmailNotifications = *patch.EmailNotifications
	}
	return p
}
