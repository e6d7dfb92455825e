package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/pocketledger/internal/metrics"
	"github.com/mmynk/pocketledger/internal/models"
	"github.com/mmynk/pocketledger/internal/storage"
)

const storeName = "identity"

// Options configures a Store.
type Options struct {
	// Latency is an artificial delay applied to Register and Authenticate.
	Latency time.Duration

	// Hasher hashes credentials. Defaults to bcrypt at the default cost.
	Hasher Hasher

	Logger  *slog.Logger
	Metrics metrics.Recorder
}

// Store owns the current identity and the roster of registered accounts.
//
// Every mutation writes through to the keyed store before returning and then
// publishes the new current identity to subscribers. There is no operation
// lock: overlapping Register/Authenticate calls may interleave.
type Store struct {
	kv      storage.KV
	hasher  Hasher
	latency time.Duration
	logger  *slog.Logger
	metrics metrics.Recorder

	mu      sync.RWMutex
	current *models.Identity
	loading atomic.Bool

	subMu     sync.Mutex
	subs      []subscription
	nextSubID int
}

// NewStore creates an identity store over kv. The store starts in the
// loading state until Initialize runs.
func NewStore(kv storage.KV, opts Options) *Store {
	if opts.Hasher == nil {
		opts.Hasher = NewBcryptHasher(0)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.Nop
	}

	s := &Store{
		kv:      kv,
		hasher:  opts.Hasher,
		latency: opts.Latency,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}
	s.loading.Store(true)
	return s
}

// Register creates a new account. It does not sign the new identity in.
func (s *Store) Register(ctx context.Context, name, email, password string) (models.Identity, error) {
	s.loading.Store(true)
	defer s.loading.Store(false)

	if err := s.simulateLatency(ctx); err != nil {
		return models.Identity{}, err
	}

	accounts, err := s.roster(ctx)
	if err != nil {
		s.metrics.Operation(storeName, "register", metrics.OutcomeError)
		return models.Identity{}, err
	}

	// Exact match, as stored
	for _, a := range accounts {
		if a.Email == email {
			s.metrics.Operation(storeName, "register", metrics.OutcomeRejected)
			s.logger.Warn("Registration rejected", "email", email, "error", ErrDuplicateIdentity)
			return models.Identity{}, ErrDuplicateIdentity
		}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.metrics.Operation(storeName, "register", metrics.OutcomeError)
		return models.Identity{}, err
	}

	account := models.Account{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().Unix(),
	}
	accounts = append(accounts, account)

	if err := storage.WriteJSON(ctx, s.kv, storage.KeyUsers, accounts); err != nil {
		s.metrics.Operation(storeName, "register", metrics.OutcomeError)
		return models.Identity{}, fmt.Errorf("failed to save account: %w", err)
	}

	s.metrics.Operation(storeName, "register", metrics.OutcomeOK)
	s.logger.Info("User registered successfully", "user_id", account.ID, "email", account.Email)
	return account.Identity(), nil
}

// Authenticate verifies the credentials and makes the matching identity current.
func (s *Store) Authenticate(ctx context.Context, email, password string) (models.Identity, error) {
	s.loading.Store(true)
	defer s.loading.Store(false)

	if err := s.simulateLatency(ctx); err != nil {
		return models.Identity{}, err
	}

	accounts, err := s.roster(ctx)
	if err != nil {
		s.metrics.Operation(storeName, "authenticate", metrics.OutcomeError)
		return models.Identity{}, err
	}

	var found *models.Account
	for _, a := range accounts {
		if a.Email != email {
			continue
		}
		if err := s.hasher.Compare(a.PasswordHash, password); err == nil {
			found = &a
			break
		}
	}
	if found == nil {
		s.metrics.Operation(storeName, "authenticate", metrics.OutcomeRejected)
		s.logger.Warn("Login failed", "email", email, "error", ErrInvalidCredentials)
		return models.Identity{}, ErrInvalidCredentials
	}

	identity := found.Identity()
	if err := storage.WriteJSON(ctx, s.kv, storage.KeyUser, identity); err != nil {
		s.metrics.Operation(storeName, "authenticate", metrics.OutcomeError)
		return models.Identity{}, fmt.Errorf("failed to save session: %w", err)
	}

	s.setCurrent(&identity)
	s.metrics.Operation(storeName, "authenticate", metrics.OutcomeOK)
	s.logger.Info("User logged in successfully", "user_id", identity.ID, "email", identity.Email)

	s.publish(ctx)
	return identity, nil
}

// roster loads the registered accounts. A missing or corrupt roster reads
// as empty. Any other read failure is returned and nothing may be written.
func (s *Store) roster(ctx context.Context) ([]models.Account, error) {
	accounts, _, err := storage.ReadJSON[[]models.Account](ctx, s.kv, storage.KeyUsers)
	if errors.Is(err, storage.ErrCorrupt) {
		s.logger.Warn("Ignoring corrupt roster", "key", storage.KeyUsers, "error", err)
		return nil, nil
	}
	if err != nil {
		s.logger.Error("Failed to read roster", "key", storage.KeyUsers, "error", err)
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	return accounts, nil
}

// simulateLatency stands in for the round trip a real backend would need.
func (s *Store) simulateLatency(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
