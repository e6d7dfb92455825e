package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/pocketledger/internal/metrics"
	"github.com/mmynk/pocketledger/internal/models"
	"github.com/mmynk/pocketledger/internal/storage"
)

// Initialize restores the persisted current identity, if any, and publishes
// it to subscribers. A corrupt stored identity is removed and the store
// continues unauthenticated.
func (s *Store) Initialize(ctx context.Context) {
	defer s.loading.Store(false)

	identity, ok, err := storage.ReadJSON[models.Identity](ctx, s.kv, storage.KeyUser)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		s.logger.Warn("Discarding corrupt session", "key", storage.KeyUser, "error", err)
		if err := s.kv.Delete(ctx, storage.KeyUser); err != nil {
			s.logger.Error("Failed to remove corrupt session", "key", storage.KeyUser, "error", err)
		}
		s.setCurrent(nil)
	case err != nil:
		s.logger.Error("Failed to restore session", "key", storage.KeyUser, "error", err)
		s.setCurrent(nil)
	case ok:
		s.setCurrent(&identity)
		s.logger.Debug("Session restored", "user_id", identity.ID)
	default:
		s.setCurrent(nil)
	}

	s.publish(ctx)
}

// Deauthenticate clears the current identity in memory and in storage.
// It always succeeds; a failed delete is logged.
func (s *Store) Deauthenticate(ctx context.Context) {
	s.setCurrent(nil)
	if err := s.kv.Delete(ctx, storage.KeyUser); err != nil {
		s.logger.Error("Failed to remove session", "key", storage.KeyUser, "error", err)
	}
	s.metrics.Operation(storeName, "deauthenticate", metrics.OutcomeOK)
	s.logger.Info("User logged out")

	s.publish(ctx)
}

// UpdateProfile changes the current identity's name and email, in both the
// roster and the current-identity record. The identity's ID never changes.
func (s *Store) UpdateProfile(ctx context.Context, fields models.ProfileFields) (models.Identity, error) {
	current, ok := s.Current()
	if !ok {
		s.metrics.Operation(storeName, "update_profile", metrics.OutcomeRejected)
		return models.Identity{}, ErrNotAuthenticated
	}

	accounts, err := s.roster(ctx)
	if err != nil {
		s.metrics.Operation(storeName, "update_profile", metrics.OutcomeError)
		return models.Identity{}, err
	}
	for i := range accounts {
		if accounts[i].ID == current.ID {
			accounts[i].Name = fields.Name
			accounts[i].Email = fields.Email
		}
	}
	if err := storage.WriteJSON(ctx, s.kv, storage.KeyUsers, accounts); err != nil {
		s.metrics.Operation(storeName, "update_profile", metrics.OutcomeError)
		return models.Identity{}, fmt.Errorf("failed to save account: %w", err)
	}

	updated := models.Identity{ID: current.ID, Name: fields.Name, Email: fields.Email}
	if err := storage.WriteJSON(ctx, s.kv, storage.KeyUser, updated); err != nil {
		s.metrics.Operation(storeName, "update_profile", metrics.OutcomeError)
		return models.Identity{}, fmt.Errorf("failed to save session: %w", err)
	}

	s.setCurrent(&updated)
	s.metrics.Operation(storeName, "update_profile", metrics.OutcomeOK)
	s.logger.Info("Profile updated", "user_id", updated.ID)

	s.publish(ctx)
	return updated, nil
}

// Current returns the current identity, if any.
func (s *Store) Current() (models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.Identity{}, false
	}
	return *s.current, true
}

// IsAuthenticated reports whether an identity is current.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

// Loading is true during Initialize and while a Register or Authenticate
// call is in flight.
func (s *Store) Loading() bool {
	return s.loading.Load()
}

func (s *Store) setCurrent(identity *models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = identity
}
