package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/pocketledger/internal/auth"
	"github.com/mmynk/pocketledger/internal/models"
)

func (c *cli) signupCmd() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := (models.ProfileFields{Name: name, Email: email}).Validate(); err != nil {
				return err
			}
			if password == "" {
				return models.NewValidationErrors([]models.FieldError{{Field: "password", Message: "Password must not be empty."}})
			}
			identity, err := c.session.Identity.Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s. Sign in with: pocketledger signin --email %s\n", identity.Name, identity.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	for _, f := range []string{"name", "email", "password"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func (c *cli) signinCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and make the account current",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity, err := c.session.Identity.Authenticate(cmd.Context(), email, password)
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return fmt.Errorf("login failed: %w", err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s.\n", identity.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) signoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Sign out of the current account",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			c.session.Identity.Deauthenticate(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current account",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			identity, ok := c.session.Identity.Current()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in. Showing demo data.")
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\nid: %s\n", identity.Name, identity.Email, identity.ID)
		},
	}
}

func (c *cli) profileCmd() *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Change the current account's name or email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, ok := c.session.Identity.Current()
			if !ok {
				return auth.ErrNotAuthenticated
			}
			fields := models.ProfileFields{Name: current.Name, Email: current.Email}
			if cmd.Flags().Changed("name") {
				fields.Name = name
			}
			if cmd.Flags().Changed("email") {
				fields.Email = email
			}
			if err := fields.Validate(); err != nil {
				return err
			}
			updated, err := c.session.Identity.UpdateProfile(cmd.Context(), fields)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile updated: %s <%s>\n", updated.Name, updated.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&email, "email", "", "new email address")
	cmd.MarkFlagsOneRequired("name", "email")
	return cmd
}
