package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ajadmin/ajadmin/internal/config"
	"github.com/ajadmin/ajadmin/internal/daemon"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	rootCmd.AddCommand(startCmd)
}

var (
	cfg     config.Config
	devMode bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the AJAdmin web service",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			var err error
			if cfg, err = loadConfig(); err != nil {
				return err
			}

			if devMode {
				cfg.DevMode = true
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := daemon.New(contextOf(cmd), &cfg)
			if err != nil {
				return err
			}

			return d.Start()
		},
	}
)

// contextOf returns the command context or a background context for commands run without one.
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
