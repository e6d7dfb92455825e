package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/pocketledger/internal/auth"
	"github.com/mmynk/pocketledger/internal/ledger"
	"github.com/mmynk/pocketledger/internal/models"
)

// logCommands wraps every runnable command under cmd so each invocation is
// logged with the current user, its outcome and its duration.
func (c *cli) logCommands(cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		c.logCommands(sub)
	}
	if cmd.Run == nil && cmd.RunE == nil {
		return
	}

	run := cmd.RunE
	if run == nil {
		plain := cmd.Run
		run = func(cmd *cobra.Command, args []string) error {
			plain(cmd, args)
			return nil
		}
		cmd.Run = nil
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		err := run(cmd, args)

		duration := time.Since(start).Milliseconds()
		userID := "" // empty when signed out
		if identity, ok := c.session.Identity.Current(); ok {
			userID = identity.ID
		}

		switch {
		case err == nil:
			c.logger.Debug("Command ok", "command", cmd.CommandPath(), "user_id", userID, "duration_ms", duration)
		case isUserError(err):
			c.logger.Warn("Command rejected", "command", cmd.CommandPath(), "error", err, "user_id", userID, "duration_ms", duration)
		default:
			c.logger.Error("Command failed", "command", cmd.CommandPath(), "error", err, "user_id", userID, "duration_ms", duration)
		}
		return err
	}
}

// isUserError reports errors caused by the caller's input rather than by
// the system.
func isUserError(err error) bool {
	return errors.Is(err, models.ErrValidation) ||
		errors.Is(err, auth.ErrInvalidCredentials) ||
		errors.Is(err, auth.ErrDuplicateIdentity) ||
		errors.Is(err, auth.ErrNotAuthenticated) ||
		errors.Is(err, ledger.ErrNotFound)
}
