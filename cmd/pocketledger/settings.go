package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/pocketledger/internal/models"
)

func (c *cli) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
	}
	cmd.AddCommand(c.settingsShowCmd(), c.settingsSetCmd())
	return cmd
}

func (c *cli) settingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current preferences",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			p := c.session.Settings.Current()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "currency:            %s (%s)\n", p.Currency, p.Currency.Symbol())
			fmt.Fprintf(out, "dark mode:           %t\n", p.DarkMode)
			fmt.Fprintf(out, "email notifications: %t\n", p.EmailNotifications)
		},
	}
}

func (c *cli) settingsSetCmd() *cobra.Command {
	var currency string
	var darkMode, emailNotifications bool
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var patch models.PreferencesPatch
			f := cmd.Flags()
			if f.Changed("currency") {
				cur, err := models.ParseCurrency(strings.ToUpper(currency))
				if err != nil {
					return err
				}
				patch.Currency = &cur
			}
			if f.Changed("dark-mode") {
				patch.DarkMode = &darkMode
			}
			if f.Changed("email-notifications") {
				patch.EmailNotifications = &emailNotifications
			}
			c.session.Settings.Update(cmd.Context(), patch)
			if !c.session.Identity.IsAuthenticated() {
				fmt.Fprintln(cmd.ErrOrStderr(), "Not signed in: preferences apply to this run only.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&currency, "currency", "", "display currency (USD, EUR, GBP, JPY)")
	cmd.Flags().BoolVar(&darkMode, "dark-mode", false, "use the dark theme")
	cmd.Flags().BoolVar(&emailNotifications, "email-notifications", true, "receive email notifications")
	cmd.MarkFlagsOneRequired("currency", "dark-mode", "email-notifications")
	return cmd
}
