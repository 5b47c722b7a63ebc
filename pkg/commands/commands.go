// Package commands implements the waypoint command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/config"
)

var configPath string

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "waypoint",
		Short:         "Inspect and drive the waypoint navigation engine.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			if level != "" {
				waypoint.SetRawLogLevel(level)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $WAYPOINT_CONFIG or ~/.config/waypoint/config.toml)")
	cmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addRoutes(topLevel)
	addLayout(topLevel)
	addRun(topLevel)
}

func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return config.Config{}, err
		}
	}
	return config.Load(path)
}
