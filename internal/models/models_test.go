package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func fieldNames(err error) []string {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	var names []string
	for _, fe := range ve.Errors {
		names = append(names, fe.Field)
	}
	return names
}

func TestParseExpenseFields(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		amount     string
		date       string
		category   string
		wantFields []string
	}{
		{"valid", "Lunch", "12.50", "2025-04-03", "food", nil},
		{"trims title", "  Lunch  ", "12.50", "2025-04-03", "food", nil},
		{"short title", "ab", "12.50", "2025-04-03", "food", []string{"title"}},
		{"zero amount", "Lunch", "0", "2025-04-03", "food", []string{"amount"}},
		{"smallest amount", "Lunch", "0.01", "2025-04-03", "food", nil},
		{"amount not a number", "Lunch", "twelve", "2025-04-03", "food", []string{"amount"}},
		{"bad date", "Lunch", "12.50", "04/03/2025", "food", []string{"date"}},
		{"unknown category", "Lunch", "12.50", "2025-04-03", "groceries", []string{"category"}},
		{"everything wrong", "x", "-1", "2025-04-03", "", []string{"title", "amount", "category"}},
		{"unparseable fields reported first", "x", "abc", "", "", []string{"amount", "date"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := ParseExpenseFields(tt.title, tt.amount, tt.date, tt.category)
			if tt.wantFields == nil {
				if err != nil {
					t.Fatalf("ParseExpenseFields() error = %v", err)
				}
				if fields.Title != "Lunch" {
					t.Errorf("Title = %q, want Lunch", fields.Title)
				}
				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("error = %v, want ErrValidation", err)
			}
			got := fieldNames(err)
			if len(got) != len(tt.wantFields) {
				t.Fatalf("fields = %v, want %v", got, tt.wantFields)
			}
			for i := range got {
				if got[i] != tt.wantFields[i] {
					t.Errorf("fields = %v, want %v", got, tt.wantFields)
				}
			}
		})
	}
}

func TestProfileFieldsValidate(t *testing.T) {
	tests := []struct {
		name    string
		fields  ProfileFields
		wantErr bool
	}{
		{"valid", ProfileFields{Name: "Al", Email: "al@example.com"}, false},
		{"short name", ProfileFields{Name: "A", Email: "al@example.com"}, true},
		{"no at", ProfileFields{Name: "Al", Email: "example.com"}, true},
		{"two ats", ProfileFields{Name: "Al", Email: "a@b@example.com"}, true},
		{"no dot in domain", ProfileFields{Name: "Al", Email: "al@localhost"}, true},
		{"trailing dot", ProfileFields{Name: "Al", Email: "al@example."}, true},
		{"whitespace", ProfileFields{Name: "Al", Email: "al @example.com"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fields.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpenseJSON(t *testing.T) {
	e := Expense{
		ID:       "1",
		Title:    "Grocery shopping",
		Amount:   decimal.RequireFromString("85.97"),
		Date:     MustParseDate("2025-04-02"),
		Category: CategoryFood,
		OwnerID:  "u1",
	}
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":"1","title":"Grocery shopping","amount":"85.97","date":"2025-04-02","category":"food","userId":"u1"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	// Numeric amounts are accepted on read.
	var got Expense
	if err := json.Unmarshal([]byte(`{"id":"2","title":"Gas","amount":45.75,"date":"2025-03-27","category":"transportation"}`), &got); err != nil {
		t.Fatal(err)
	}
	if !got.Amount.Equal(decimal.RequireFromString("45.75")) || got.Date.String() != "2025-03-27" || got.OwnerID != "" {
		t.Errorf("Unmarshal() = %+v", got)
	}

	if err := json.Unmarshal([]byte(`{"date":"yesterday"}`), &got); err == nil {
		t.Error("Unmarshal() accepted a malformed date")
	}
}

func TestDemoExpenses(t *testing.T) {
	demo := DemoExpenses("u1")
	if len(demo) != 7 {
		t.Fatalf("len = %d, want 7", len(demo))
	}
	total := decimal.Zero
	for _, e := range demo {
		if e.OwnerID != "u1" {
			t.Errorf("expense %s owner = %q", e.ID, e.OwnerID)
		}
		if err := e.Fields().Validate(); err != nil {
			t.Errorf("expense %s invalid: %v", e.ID, err)
		}
		total = total.Add(e.Amount)
	}
	if want := decimal.RequireFromString("511.51"); !total.Equal(want) {
		t.Errorf("total = %s, want %s", total, want)
	}

	// Each call returns fresh records.
	demo[0].Title = "changed"
	if DemoExpenses("u1")[0].Title == "changed" {
		t.Error("DemoExpenses shares state between calls")
	}
}

func TestPreferencesApply(t *testing.T) {
	eur := CurrencyEUR
	dark := true
	base := DefaultPreferences()

	got := base.Apply(PreferencesPatch{Currency: &eur})
	want := Preferences{Currency: CurrencyEUR, DarkMode: false, EmailNotifications: true}
	if got != want {
		t.Errorf("Apply(currency) = %+v, want %+v", got, want)
	}

	got = got.Apply(PreferencesPatch{DarkMode: &dark})
	want.DarkMode = true
	if got != want {
		t.Errorf("Apply(darkMode) = %+v, want %+v", got, want)
	}

	if base != DefaultPreferences() {
		t.Error("Apply modified the receiver")
	}
	if got.Apply(PreferencesPatch{}) != got {
		t.Error("empty patch changed preferences")
	}
}

func TestCategory(t *testing.T) {
	if got := len(Categories()); got != 10 {
		t.Errorf("len(Categories()) = %d, want 10", got)
	}
	if got := CategoryFood.DisplayName(); got != "Food & Dining" {
		t.Errorf("DisplayName() = %q", got)
	}
	if _, err := ParseCategory("snacks"); err == nil {
		t.Error("ParseCategory accepted an unknown category")
	}
	if c, err := ParseCategory("utilities"); err != nil || c != CategoryUtilities {
		t.Errorf("ParseCategory(utilities) = %s, %v", c, err)
	}
}

func TestCurrency(t *testing.T) {
	if CurrencyJPY.Symbol() != "¥" {
		t.Errorf("Symbol() = %q", CurrencyJPY.Symbol())
	}
	if _, err := ParseCurrency("BTC"); err == nil {
		t.Error("ParseCurrency accepted BTC")
	}
}
