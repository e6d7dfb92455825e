// Package app composes the identity, preference and ledger stores into one
// session.
package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/mmynk/pocketledger/internal/auth"
	"github.com/mmynk/pocketledger/internal/ledger"
	"github.com/mmynk/pocketledger/internal/metrics"
	"github.com/mmynk/pocketledger/internal/models"
	"github.com/mmynk/pocketledger/internal/notify"
	"github.com/mmynk/pocketledger/internal/settings"
	"github.com/mmynk/pocketledger/internal/storage"
)

// Options configures a Session.
type Options struct {
	Latency time.Duration
	Hasher  auth.Hasher
	Theme   settings.Theme
	Notify  notify.Sink
	Logger  *slog.Logger
	Metrics metrics.Recorder

	// Closers are released by Session.Close after the keyed store.
	Closers []io.Closer
}

// Session owns the three stores over a shared keyed store.
//
// Identity changes are delivered to the preference store first and the
// ledger store second, so the ledger always formats with the new identity's
// currency.
type Session struct {
	Identity *auth.Store
	Settings *settings.Store
	Ledger   *ledger.Store

	kv          storage.KV
	logger      *slog.Logger
	closers     []io.Closer
	unsubscribe []func()
}

// New builds a session over kv. Call Start before use.
func New(kv storage.KV, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Notify == nil {
		opts.Notify = notify.NewLogSink(opts.Logger)
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Nop
	}

	identity := auth.NewStore(kv, auth.Options{
		Latency: opts.Latency,
		Hasher:  opts.Hasher,
		Logger:  opts.Logger.With("store", "identity"),
		Metrics: opts.Metrics,
	})
	prefs := settings.NewStore(kv, settings.Options{
		Theme:   opts.Theme,
		Notify:  opts.Notify,
		Logger:  opts.Logger.With("store", "settings"),
		Metrics: opts.Metrics,
	})
	expenses := ledger.NewStore(kv, ledger.Options{
		Currency: prefs,
		Notify:   opts.Notify,
		Logger:   opts.Logger.With("store", "ledger"),
		Metrics:  opts.Metrics,
	})

	s := &Session{
		Identity: identity,
		Settings: prefs,
		Ledger:   expenses,
		kv:       kv,
		logger:   opts.Logger,
		closers:  opts.Closers,
	}
	s.unsubscribe = append(s.unsubscribe,
		identity.Subscribe(func(ctx context.Context, current *models.Identity) {
			prefs.Reload(ctx, current)
		}),
		identity.Subscribe(func(ctx context.Context, current *models.Identity) {
			expenses.Reload(ctx, current)
		}),
	)
	return s
}

// Start restores the persisted identity. The preference and ledger stores
// are reloaded for it before Start returns.
func (s *Session) Start(ctx context.Context) {
	s.Identity.Initialize(ctx)
	if current, ok := s.Identity.Current(); ok {
		s.logger.Debug("Session started", "user_id", current.ID)
	} else {
		s.logger.Debug("Session started without identity")
	}
}

// Close detaches the stores and releases the keyed store and any extra
// resources.
func (s *Session) Close() error {
	for _, unsub := range s.unsubscribe {
		unsub()
	}
	s.unsubscribe = nil

	errs := []error{s.kv.Close()}
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
