// Package ledger holds the active identity's expenses.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/pocketledger/internal/calculator"
	"github.com/mmynk/pocketledger/internal/metrics"
	"github.com/mmynk/pocketledger/internal/models"
	"github.com/mmynk/pocketledger/internal/notify"
	"github.com/mmynk/pocketledger/internal/storage"
)

const storeName = "ledger"

// ErrNotFound is returned by Get for an unknown expense id.
// Update and Delete treat an unknown id as a silent no-op instead.
var ErrNotFound = errors.New("expense not found")

// CurrencySource supplies the currency used in confirmation messages.
type CurrencySource interface {
	Currency() models.Currency
}

// Options configures a Store.
type Options struct {
	// Currency is consulted at mutation time. Defaults to USD.
	Currency CurrencySource

	// NewID generates expense ids. Defaults to random UUIDs.
	NewID func() string

	Notify  notify.Sink
	Logger  *slog.Logger
	Metrics metrics.Recorder
}

type fixedCurrency models.Currency

func (c fixedCurrency) Currency() models.Currency { return models.Currency(c) }

// Store holds the expenses of the current identity, or the demo set when
// nobody is signed in.
type Store struct {
	kv       storage.KV
	currency CurrencySource
	newID    func() string
	notify   notify.Sink
	logger   *slog.Logger
	metrics  metrics.Recorder

	mu       sync.RWMutex
	owner    string
	expenses []models.Expense
}

// NewStore creates a ledger store over kv. It is empty until Reload runs.
func NewStore(kv storage.KV, opts Options) *Store {
	if opts.Currency == nil {
		opts.Currency = fixedCurrency(models.CurrencyUSD)
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.New().String() }
	}
	if opts.Notify == nil {
		opts.Notify = notify.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Nop
	}
	return &Store{
		kv:       kv,
		currency: opts.Currency,
		newID:    opts.NewID,
		notify:   opts.Notify,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
	}
}

// Reload switches the ledger to identity's partition.
//
// A stored ledger is loaded verbatim. A first-time identity (no stored
// ledger, or one that no longer decodes) is seeded with the demo set stamped
// with its id, and the seed is persisted. Without an identity the demo set is
// shown unowned and nothing is written.
func (s *Store) Reload(ctx context.Context, identity *models.Identity) {
	var (
		owner    string
		expenses []models.Expense
	)

	if identity == nil {
		expenses = models.DemoExpenses("")
	} else {
		owner = identity.ID
		key := storage.ExpensesKey(owner)

		stored, ok, err := storage.ReadJSON[[]models.Expense](ctx, s.kv, key)
		switch {
		case err != nil && !errors.Is(err, storage.ErrCorrupt):
			// The partition may be fine; show the demo set without overwriting it
			s.logger.Error("Failed to load expenses", "user_id", owner, "error", err)
			expenses = models.DemoExpenses(owner)
		case ok:
			expenses = stored
		default:
			if err != nil {
				s.logger.Warn("Replacing corrupt expenses", "user_id", owner, "error", err)
			}
			expenses = models.DemoExpenses(owner)
			if err := storage.WriteJSON(ctx, s.kv, key, expenses); err != nil {
				s.logger.Error("Failed to save seed expenses", "user_id", owner, "error", err)
			} else {
				s.logger.Info("Seeded demo expenses", "user_id", owner, "count", len(expenses))
			}
		}
	}

	s.mu.Lock()
	s.owner = owner
	s.expenses = expenses
	s.mu.Unlock()

	s.metrics.Operation(storeName, "reload", metrics.OutcomeOK)
	s.metrics.LedgerSize(len(expenses))
}

// Add records a new expense at the front of the ledger and returns it.
func (s *Store) Add(ctx context.Context, fields models.ExpenseFields) models.Expense {
	s.mu.Lock()
	expense := models.Expense{
		ID:       s.newID(),
		Title:    fields.Title,
		Amount:   fields.Amount,
		Date:     fields.Date,
		Category: fields.Category,
		OwnerID:  s.owner,
	}
	s.expenses = append([]models.Expense{expense}, s.expenses...)
	owner, snapshot := s.owner, s.snapshotLocked()
	s.mu.Unlock()

	s.metrics.Operation(storeName, "add", s.persist(ctx, owner, snapshot))
	s.metrics.LedgerSize(len(snapshot))

	s.notify.Notify(ctx, notify.Notification{
		Title:       "Expense added",
		Description: fmt.Sprintf("%s (%s) was added successfully.", expense.Title, FormatAmount(expense.Amount, s.currency.Currency())),
		Severity:    notify.SeverityInfo,
	})
	return expense
}

// Update replaces every field of the expense with the given id except its
// id and owner. An unknown id is a no-op and reports false.
func (s *Store) Update(ctx context.Context, id string, fields models.ExpenseFields) bool {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		s.metrics.Operation(storeName, "update", metrics.OutcomeNoop)
		s.logger.Debug("Update ignored", "expense_id", id, "error", ErrNotFound)
		return false
	}
	current := s.expenses[idx]
	s.expenses[idx] = models.Expense{
		ID:       current.ID,
		Title:    fields.Title,
		Amount:   fields.Amount,
		Date:     fields.Date,
		Category: fields.Category,
		OwnerID:  current.OwnerID,
	}
	owner, snapshot := s.owner, s.snapshotLocked()
	s.mu.Unlock()

	s.metrics.Operation(storeName, "update", s.persist(ctx, owner, snapshot))

	s.notify.Notify(ctx, notify.Notification{
		Title:       "Expense updated",
		Description: fmt.Sprintf("%s was updated successfully.", fields.Title),
		Severity:    notify.SeverityInfo,
	})
	return true
}

// Delete removes the expense with the given id. An unknown id is a no-op,
// emits no notification and reports false.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		s.metrics.Operation(storeName, "delete", metrics.OutcomeNoop)
		s.logger.Debug("Delete ignored", "expense_id", id, "error", ErrNotFound)
		return false
	}
	removed := s.expenses[idx]
	s.expenses = append(s.expenses[:idx:idx], s.expenses[idx+1:]...)
	owner, snapshot := s.owner, s.snapshotLocked()
	s.mu.Unlock()

	s.metrics.Operation(storeName, "delete", s.persist(ctx, owner, snapshot))
	s.metrics.LedgerSize(len(snapshot))

	s.notify.Notify(ctx, notify.Notification{
		Title:       "Expense deleted",
		Description: fmt.Sprintf("%s was deleted successfully.", removed.Title),
		Severity:    notify.SeverityInfo,
	})
	return true
}

// Expenses returns a copy of the ledger in storage order.
func (s *Store) Expenses() []models.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Get returns the expense with the given id.
func (s *Store) Get(id string) (models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexLocked(id); idx >= 0 {
		return s.expenses[idx], nil
	}
	return models.Expense{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Owner returns the identity id the ledger belongs to, or "" for the demo view.
func (s *Store) Owner() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.owner
}

// Total is the sum of every amount in the ledger.
func (s *Store) Total() decimal.Decimal {
	return calculator.Total(s.Expenses())
}

// ByCategory sums the ledger per category; empty categories are absent.
func (s *Store) ByCategory() map[models.Category]decimal.Decimal {
	return calculator.ByCategory(s.Expenses())
}

// Recent returns the five most recent expenses, newest first.
func (s *Store) Recent() []models.Expense {
	return calculator.Recent(s.Expenses())
}

// TopCategories returns the n largest category totals.
func (s *Store) TopCategories(n int) []calculator.CategoryTotal {
	return calculator.TopCategories(s.Expenses(), n)
}

// persist writes the ledger to the owner's partition. The demo view
// (no owner) is never written. Failures are logged, not returned.
func (s *Store) persist(ctx context.Context, owner string, expenses []models.Expense) string {
	if owner == "" {
		return metrics.OutcomeOK
	}
	if err := storage.WriteJSON(ctx, s.kv, storage.ExpensesKey(owner), expenses); err != nil {
		s.logger.Error("Failed to save expenses", "user_id", owner, "error", err)
		return metrics.OutcomeError
	}
	return metrics.OutcomeOK
}

func (s *Store) indexLocked(id string) int {
	for i, e := range s.expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() []models.Expense {
	return append([]models.Expense(nil), s.expenses...)
}

// Filter narrows the ledger by title search and category; "" matches all.
func (s *Store) Filter(search string, category models.Category) []models.Expense {
	return calculator.Filter(s.Expenses(), search, category)
}
