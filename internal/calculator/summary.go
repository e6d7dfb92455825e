// Package calculator derives read-only aggregates from a ledger.
// Every function is pure: it never modifies its input.
package calculator

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/pocketledger/internal/models"
)

// RecentLimit is how many expenses Recent returns.
const RecentLimit = 5

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category models.Category
	Amount   decimal.Decimal
}

// Total sums every amount.
func Total(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// ByCategory sums amounts per category. Categories without expenses are
// absent from the result rather than present with a zero amount.
func ByCategory(expenses []models.Expense) map[models.Category]decimal.Decimal {
	totals := make(map[models.Category]decimal.Decimal)
	for _, e := range expenses {
		if current, ok := totals[e.Category]; ok {
			totals[e.Category] = current.Add(e.Amount)
		} else {
			totals[e.Category] = e.Amount
		}
	}
	return totals
}

// Recent returns up to RecentLimit expenses, most recent date first.
// Expenses on the same date keep their ledger order.
func Recent(expenses []models.Expense) []models.Expense {
	return SortByDate(expenses)[:min(RecentLimit, len(expenses))]
}

// SortByDate returns a copy of expenses ordered by date, newest first.
// The sort is stable.
func SortByDate(expenses []models.Expense) []models.Expense {
	sorted := append([]models.Expense(nil), expenses...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date.Time)
	})
	return sorted
}

// TopCategories returns the n categories with the largest totals, largest
// first. Ties are ordered by category form order.
func TopCategories(expenses []models.Expense, n int) []CategoryTotal {
	totals := ByCategory(expenses)

	ranked := make([]CategoryTotal, 0, len(totals))
	for _, c := range models.Categories() {
		if amount, ok := totals[c]; ok {
			ranked = append(ranked, CategoryTotal{Category: c, Amount: amount})
		}
	}
	// Unknown categories still count; they go after the known ones, by name
	var unknown []models.Category
	for c := range totals {
		if !c.Valid() {
			unknown = append(unknown, c)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	for _, c := range unknown {
		ranked = append(ranked, CategoryTotal{Category: c, Amount: totals[c]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.GreaterThan(ranked[j].Amount)
	})

	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Share returns part as a percentage of whole, rounded to one decimal place.
// A zero whole yields zero.
func Share(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).Round(1)
}

// Filter returns the expenses whose title contains search (case-insensitive)
// and whose category matches. An empty search or category matches everything.
func Filter(expenses []models.Expense, search string, category models.Category) []models.Expense {
	needle := strings.ToLower(search)
	var out []models.Expense
	for _, e := range expenses {
		if needle != "" && !strings.Contains(strings.ToLower(e.Title), needle) {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		out = append(out, e)
	}
	return out
}

// MonthlyBudget is the fixed spending target shown next to the total.
var MonthlyBudget = decimal.NewFromInt(2500)
