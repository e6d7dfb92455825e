package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/mmynk/pocketledger/internal/app"
	"github.com/mmynk/pocketledger/internal/config"
	"github.com/mmynk/pocketledger/internal/settings"
	"github.com/mmynk/pocketledger/pkg/logging"
)

// cli holds the state shared by every command of one invocation.
type cli struct {
	session     *app.Session
	theme       *settings.Switch
	registry    *prometheus.Registry
	logger      *slog.Logger
	showMetrics bool
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pocketledger",
		Short:         "Personal expense tracker",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if c.showMetrics {
				return c.writeMetrics(cmd.ErrOrStderr())
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&c.showMetrics, "metrics", false, "print store metrics to stderr on exit")

	root.AddCommand(
		c.signupCmd(),
		c.signinCmd(),
		c.signoutCmd(),
		c.whoamiCmd(),
		c.profileCmd(),
		c.addCmd(),
		c.editCmd(),
		c.rmCmd(),
		c.listCmd(),
		c.statsCmd(),
		c.settingsCmd(),
	)
	c.logCommands(root)
	return root
}

// open loads configuration and restores the session, exactly as a fresh
// start of the application would.
func (c *cli) open(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	c.logger = logging.Setup(os.Stderr, cfg.LogLevel)
	c.theme = &settings.Switch{}
	c.registry = prometheus.NewRegistry()

	session, err := app.Open(cfg, c.logger, c.registry, c.theme)
	if err != nil {
		c.logger.Error("Failed to open session", "error", err)
		return err
	}
	c.session = session
	c.session.Start(cmd.Context())
	return nil
}

func (c *cli) close() error {
	if c.session == nil {
		return nil
	}
	err := c.session.Close()
	c.session = nil
	return err
}

func (c *cli) writeMetrics(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
