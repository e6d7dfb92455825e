package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MinAmount is the smallest amount the expense form accepts.
var MinAmount = decimal.RequireFromString("0.01")

// Expense represents a single recorded expense.
type Expense struct {
	// ID is unique within the active ledger. New expenses get a UUID;
	// demo records use the short ids "1" through "7".
	ID string `json:"id"`

	// Title is a short, non-empty description (e.g., "Grocery shopping").
	Title string `json:"title"`

	// Amount is the positive expense amount. It is currency-agnostic:
	// the same number is displayed in whatever currency the owner prefers.
	Amount decimal.Decimal `json:"amount"`

	// Date is the calendar day the expense happened.
	Date Date `json:"date"`

	// Category is one of the fixed categories.
	Category Category `json:"category"`

	// OwnerID references the Identity that recorded the expense.
	// Empty for demo records shown to signed-out visitors.
	OwnerID string `json:"userId,omitempty"`
}

// Fields returns the caller-editable part of the expense.
func (e Expense) Fields() ExpenseFields {
	return ExpenseFields{
		Title:    e.Title,
		Amount:   e.Amount,
		Date:     e.Date,
		Category: e.Category,
	}
}

// ExpenseFields is the set of fields supplied when adding or editing an expense.
type ExpenseFields struct {
	Title    string
	Amount   decimal.Decimal
	Date     Date
	Category Category
}

// Validate applies the expense form rules: a title of at least three
// characters, an amount of at least 0.01, a date and a known category.
func (f ExpenseFields) Validate() error {
	var errs []FieldError
	if len(strings.TrimSpace(f.Title)) < 3 {
		errs = append(errs, FieldError{Field: "title", Message: "Title must be at least 3 characters."})
	}
	if f.Amount.LessThan(MinAmount) {
		errs = append(errs, FieldError{Field: "amount", Message: "Amount must be greater than 0."})
	}
	if f.Date.IsZero() {
		errs = append(errs, FieldError{Field: "date", Message: "Please provide a valid date in YYYY-MM-DD format."})
	}
	if !f.Category.Valid() {
		errs = append(errs, FieldError{Field: "category", Message: "Please select a category."})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// ParseExpenseFields builds ExpenseFields from raw form strings and validates them.
func ParseExpenseFields(title, amount, date, category string) (ExpenseFields, error) {
	var errs []FieldError
	fields := ExpenseFields{Title: strings.TrimSpace(title), Category: Category(category)}

	amt, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		errs = append(errs, FieldError{Field: "amount", Message: "Amount must be a number."})
	} else {
		fields.Amount = amt
	}

	d, err := ParseDate(strings.TrimSpace(date))
	if err != nil {
		errs = append(errs, FieldError{Field: "date", Message: "Please provide a valid date in YYYY-MM-DD format."})
	} else {
		fields.Date = d
	}

	if len(errs) > 0 {
		return fields, NewValidationErrors(errs)
	}
	return fields, fields.Validate()
}
