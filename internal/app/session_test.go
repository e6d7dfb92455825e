package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/pocketledger/internal/auth"
	"github.com/mmynk/pocketledger/internal/config"
	"github.com/mmynk/pocketledger/internal/models"
	"github.com/mmynk/pocketledger/internal/notify"
	"github.com/mmynk/pocketledger/internal/settings"
	"github.com/mmynk/pocketledger/internal/storage"
	"github.com/mmynk/pocketledger/internal/storage/memory"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestSession(kv storage.KV) (*Session, *notify.Recorder, *settings.Switch) {
	rec := &notify.Recorder{}
	theme := &settings.Switch{}
	s := New(kv, Options{
		Hasher: auth.NewBcryptHasher(bcrypt.MinCost),
		Theme:  theme,
		Notify: rec,
		Logger: discard,
	})
	return s, rec, theme
}

func expense(title, amount string) models.ExpenseFields {
	return models.ExpenseFields{
		Title:    title,
		Amount:   decimal.RequireFromString(amount),
		Date:     models.MustParseDate("2025-04-10"),
		Category: models.CategoryFood,
	}
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	s, rec, theme := newTestSession(kv)
	s.Start(ctx)

	// Signed out: demo ledger, default preferences, nothing written.
	if s.Identity.IsAuthenticated() || s.Identity.Loading() {
		t.Fatal("unexpected identity state after Start")
	}
	if got := len(s.Ledger.Expenses()); got != 7 {
		t.Fatalf("demo ledger has %d expenses, want 7", got)
	}
	if kv.Len() != 0 {
		t.Fatalf("Start wrote %d keys", kv.Len())
	}

	alice, err := s.Identity.Register(ctx, "Alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Identity.Authenticate(ctx, "alice@example.com", "secret123"); err != nil {
		t.Fatal(err)
	}
	if s.Ledger.Owner() != alice.ID {
		t.Fatalf("ledger owner = %q, want %q", s.Ledger.Owner(), alice.ID)
	}
	if _, ok, _ := kv.Get(ctx, storage.ExpensesKey(alice.ID)); !ok {
		t.Fatal("seed ledger not persisted on first sign in")
	}

	jpy := models.CurrencyJPY
	dark := true
	s.Settings.Update(ctx, models.PreferencesPatch{Currency: &jpy, DarkMode: &dark})
	s.Ledger.Add(ctx, expense("Ramen", "850"))

	n, _ := rec.Last()
	if n.Description != "Ramen (¥850) was added successfully." {
		t.Errorf("Description = %q", n.Description)
	}

	s.Identity.Deauthenticate(ctx)
	if s.Ledger.Owner() != "" || len(s.Ledger.Expenses()) != 7 {
		t.Error("ledger not reset to demo view after sign out")
	}
	if s.Settings.Current() != models.DefaultPreferences() || theme.Dark() {
		t.Error("preferences not reset after sign out")
	}

	// Signing back in restores both partitions.
	if _, err := s.Identity.Authenticate(ctx, "alice@example.com", "secret123"); err != nil {
		t.Fatal(err)
	}
	if got := len(s.Ledger.Expenses()); got != 8 {
		t.Errorf("ledger has %d expenses, want 8", got)
	}
	if s.Settings.Currency() != models.CurrencyJPY || !theme.Dark() {
		t.Errorf("preferences not restored: %+v", s.Settings.Current())
	}
}

func TestSessionRestoresAcrossRestart(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()

	first, _, _ := newTestSession(kv)
	first.Start(ctx)
	if _, err := first.Identity.Register(ctx, "Bob", "bob@example.com", "hunter22"); err != nil {
		t.Fatal(err)
	}
	if _, err := first.Identity.Authenticate(ctx, "bob@example.com", "hunter22"); err != nil {
		t.Fatal(err)
	}
	added := first.Ledger.Add(ctx, expense("Coffee", "3.20"))

	second, _, _ := newTestSession(kv)
	second.Start(ctx)
	current, ok := second.Identity.Current()
	if !ok || current.Email != "bob@example.com" {
		t.Fatalf("Current() = %+v, %v", current, ok)
	}
	if _, err := second.Ledger.Get(added.ID); err != nil {
		t.Errorf("expense lost across restart: %v", err)
	}
}

func TestSessionIsolatesIdentities(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestSession(memory.New())
	s.Start(ctx)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if _, err := s.Identity.Register(ctx, "User", email, "secret123"); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := s.Identity.Authenticate(ctx, "a@example.com", "secret123"); err != nil {
		t.Fatal(err)
	}
	s.Ledger.Add(ctx, expense("Only for A", "1.00"))

	if _, err := s.Identity.Authenticate(ctx, "b@example.com", "secret123"); err != nil {
		t.Fatal(err)
	}
	if got := s.Ledger.Filter("only for a", ""); len(got) != 0 {
		t.Errorf("b sees a's expense: %+v", got)
	}
	if !s.Ledger.Total().Equal(decimal.RequireFromString("511.51")) {
		t.Errorf("b total = %s, want 511.51", s.Ledger.Total())
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestSessionClose(t *testing.T) {
	ctx := context.Background()
	closed := 0
	s := New(memory.New(), Options{
		Hasher:  auth.NewBcryptHasher(bcrypt.MinCost),
		Logger:  discard,
		Notify:  notify.Discard,
		Closers: []io.Closer{closerFunc(func() error { closed++; return errors.New("broker gone") })},
	})
	s.Start(ctx)

	if err := s.Close(); err == nil {
		t.Error("Close() swallowed the closer error")
	}
	if closed != 1 {
		t.Errorf("closer called %d times, want 1", closed)
	}

	// Detached stores no longer follow identity changes.
	if _, err := s.Identity.Register(ctx, "Alice", "alice@example.com", "secret123"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Identity.Authenticate(ctx, "alice@example.com", "secret123"); err != nil {
		t.Fatal(err)
	}
	if s.Ledger.Owner() != "" {
		t.Error("ledger reloaded after Close")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		DBPath:     filepath.Join(t.TempDir(), "ledger.db"),
		CacheSize:  16,
		BcryptCost: bcrypt.MinCost,
		LogLevel:   "info",
	}
	reg := prometheus.NewRegistry()

	s, err := Open(cfg, discard, reg, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	s.Start(ctx)
	if _, err := s.Identity.Register(ctx, "Alice", "alice@example.com", "secret123"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Identity.Authenticate(ctx, "alice@example.com", "secret123"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	if got := gaugeValue(t, reg, "pocketledger_ledger_expenses"); got != 7 {
		t.Errorf("ledger gauge = %v, want 7", got)
	}

	// A second process sees the same identity and ledger.
	s, err = Open(cfg, discard, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	s.Start(ctx)
	if cur, ok := s.Identity.Current(); !ok || cur.Email != "alice@example.com" {
		t.Errorf("Current() = %+v, %v", cur, ok)
	}
	if got := len(s.Ledger.Expenses()); got != 7 {
		t.Errorf("ledger has %d expenses, want 7", got)
	}
}

func gaugeValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range families {
		if f.GetName() == name {
			return f.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s not registered", name)
	return 0
}
