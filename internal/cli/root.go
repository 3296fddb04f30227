// Package cli implements the feedctl command line.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nrfta/feed-go/internal/config"
)

// app is the state shared by subcommands once the root command loaded the
// configuration.
type app struct {
	cfg    config.Config
	logger zerolog.Logger
}

// NewRootCmd creates the root Cobra command for feedctl.
func NewRootCmd(version string) *cobra.Command {
	a := &app{
		cfg:    config.Default(),
		logger: zerolog.Nop(),
	}

	var (
		configPath string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:           "feedctl",
		Short:         "Browse and seed paginated listing feeds",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: `  # Create a local SQLite store with demo listings
  feedctl seed

  # Browse three pages of urgent shifts with highlights
  feedctl browse --kind shifts --urgent --pages 3 --highlights`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			level := cfg.LogLevel
			if debug {
				level = "debug"
			}

			a.cfg = cfg
			a.logger = config.NewLogger(level, cmd.ErrOrStderr())
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "feedctl.yaml", "path to the configuration file")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.AddCommand(newSeedCmd(a), newBrowseCmd(a))

	return cmd
}
