package models

import "github.com/shopspring/decimal"

// DemoExpenses returns a fresh copy of the seven sample expenses shown to
// signed-out visitors and seeded into a new identity's ledger.
// ownerID is stamped on every record; pass "" for the unowned demo view.
// Amounts are written in the canonical form they decode to from storage.
func DemoExpenses(ownerID string) []Expense {
	demo := []Expense{
		{ID: "1", Title: "Grocery shopping", Amount: decimal.RequireFromString("85.97"), Date: MustParseDate("2025-04-02"), Category: CategoryFood},
		{ID: "2", Title: "Electric bill", Amount: decimal.RequireFromString("120.5"), Date: MustParseDate("2025-04-01"), Category: CategoryUtilities},
		{ID: "3", Title: "Movie tickets", Amount: decimal.RequireFromString("32"), Date: MustParseDate("2025-03-28"), Category: CategoryEntertainment},
		{ID: "4", Title: "Gas", Amount: decimal.RequireFromString("45.75"), Date: MustParseDate("2025-03-27"), Category: CategoryTransportation},
		{ID: "5", Title: "Internet bill", Amount: decimal.RequireFromString("65"), Date: MustParseDate("2025-03-25"), Category: CategoryUtilities},
		{ID: "6", Title: "Dinner out", Amount: decimal.RequireFromString("72.3"), Date: MustParseDate("2025-03-24"), Category: CategoryFood},
		{ID: "7", Title: "New shoes", Amount: decimal.RequireFromString("89.99"), Date: MustParseDate("2025-03-22"), Category: CategoryShopping},
	}
	for i := range demo {
		demo[i].OwnerID = ownerID
	}
	return demo
}
