package main

import (
	"fmt"

	"github.com/fondsvergleich/vergleichsrechner/internal/config"
	"github.com/fondsvergleich/vergleichsrechner/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app is the state shared by all subcommands once the root pre-run has
// loaded settings and built the logger.
type app struct {
	v          *viper.Viper
	configPath string
	settings   *config.Settings
	logger     *zap.Logger
}

// setup loads settings and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings(a.v, a.configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(settings.LogLevel, settings.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.settings = settings
	a.logger = logger
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:               "vergleichsrechner",
		Short:             "Fondspolice vs. Fondssparplan comparison for a single premium",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "settings file (yaml, json or toml)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "console", "log format: console or json")
	flags.String("db", "vergleichsrechner.db", "SQLite database for saved bundles")
	a.bind("log_level", flags.Lookup("log-level"))
	a.bind("log_format", flags.Lookup("log-format"))
	a.bind("database_path", flags.Lookup("db"))

	root.AddCommand(
		newCompareCmd(a),
		newBreakEvenCmd(a),
		newExampleCmd(a),
		newServeCmd(a),
		newBundlesCmd(a),
	)
	return root
}
