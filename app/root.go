// Package app implements the main application commands.
package app

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ajadmin/ajadmin/internal/config"
	"github.com/ajadmin/ajadmin/internal/logger"
)

const (
	envPrefix   = "AJADMIN"
	flagConfig  = "config"
	defaultPath = "./etc/"
)

var rootCmd = &cobra.Command{
	Use:   "ajadmin",
	Short: "AJAdmin is the REST backend of a shop admin panel",
	Long: `AJAdmin is the REST backend of a shop admin panel.
It manages the catalogue, customers, orders, blog content and role based
permissions, and serves a public storefront, payment and mail API.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().String(flagConfig, defaultPath, "directory holding main.toml and an optional .env")

	_ = viper.BindPFlag(flagConfig, rootCmd.PersistentFlags().Lookup(flagConfig))

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// configDir is the config directory from --config or AJADMIN_CONFIG, always ending in a slash.
func configDir() string {
	dir := viper.GetString(flagConfig)
	if dir == "" {
		dir = defaultPath
	}

	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}

	return dir
}

// loadConfig reads the configuration and initializes the global logger from it.
func loadConfig() (config.Config, error) {
	cfg, err := config.ReadConfig(configDir())
	if err != nil {
		return cfg, err
	}

	if err = logger.Init(cfg.Log); err != nil {
		return cfg, err
	}

	return cfg, nil
}
