// Package settings holds each identity's preferences.
package settings

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmynk/pocketledger/internal/metrics"
	"github.com/mmynk/pocketledger/internal/models"
	"github.com/mmynk/pocketledger/internal/notify"
	"github.com/mmynk/pocketledger/internal/storage"
)

const storeName = "settings"

// Options configures a Store.
type Options struct {
	Theme   Theme
	Notify  notify.Sink
	Logger  *slog.Logger
	Metrics metrics.Recorder
}

// Store holds the preferences of the current identity. It starts with the
// defaults and is brought in line with an identity by Reload.
type Store struct {
	kv      storage.KV
	theme   Theme
	notify  notify.Sink
	logger  *slog.Logger
	metrics metrics.Recorder

	mu       sync.RWMutex
	owner    string
	settings models.Preferences
}

// NewStore creates a preference store over kv.
func NewStore(kv storage.KV, opts Options) *Store {
	if opts.Theme == nil {
		opts.Theme = &Switch{}
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
		theme:    opts.Theme,
		notify:   opts.Notify,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		settings: models.DefaultPreferences(),
	}
}

// Reload replaces the in-memory preferences with those stored for identity.
// Stored values are decoded over the defaults, so keys missing from the
// stored record keep their default. A miss, a corrupt record or a nil
// identity all yield the defaults; Reload never writes.
func (s *Store) Reload(ctx context.Context, identity *models.Identity) {
	loaded := models.DefaultPreferences()
	owner := ""

	if identity != nil {
		owner = identity.ID
		candidate := models.DefaultPreferences()
		ok, err := storage.DecodeInto(ctx, s.kv, storage.SettingsKey(identity.ID), &candidate)
		switch {
		case err != nil:
			s.logger.Error("Failed to parse settings", "user_id", identity.ID, "error", err)
		case ok:
			loaded = candidate
		}
		if !loaded.Currency.Valid() {
			s.logger.Warn("Unknown stored currency, using default", "user_id", identity.ID, "currency", loaded.Currency)
			loaded.Currency = models.DefaultPreferences().Currency
		}
	}

	s.mu.Lock()
	s.owner = owner
	s.settings = loaded
	s.mu.Unlock()

	s.theme.SetDark(loaded.DarkMode)
	s.metrics.Operation(storeName, "reload", metrics.OutcomeOK)
}

// Update merges patch into the current preferences and persists the result
// for the current identity. Without an identity the change is kept in
// memory only. A DarkMode change is applied to the theme before Update
// returns.
func (s *Store) Update(ctx context.Context, patch models.PreferencesPatch) models.Preferences {
	s.mu.Lock()
	updated := s.settings.Apply(patch)
	s.settings = updated
	owner := s.owner
	s.mu.Unlock()

	outcome := metrics.OutcomeOK
	if owner != "" {
		if err := storage.WriteJSON(ctx, s.kv, storage.SettingsKey(owner), updated); err != nil {
			outcome = metrics.OutcomeError
			s.logger.Error("Failed to save settings", "user_id", owner, "error", err)
		}
	}

	if patch.DarkMode != nil {
		s.theme.SetDark(*patch.DarkMode)
	}

	s.metrics.Operation(storeName, "update", outcome)
	s.notify.Notify(ctx, notify.Notification{
		Title:       "Settings updated",
		Description: "Your preferences have been saved.",
		Severity:    notify.SeverityInfo,
	})
	return updated
}

// Current returns the in-memory preferences.
func (s *Store) Current() models.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Currency returns the currently selected currency.
func (s *Store) Currency() models.Currency {
	return s.Current().Currency
}
