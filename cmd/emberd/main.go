package main

import (
	"fmt"
	"os"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ember-oracle/ember/config"
)

var cfgPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "emberd",
		Short: "Ember price oracle engine",
		Long: `Ember runs commit-reveal price epochs and finalizes them with a
truncated weighted median over blended native and asset vote power.`,
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (YAML)")
	rootCmd.AddCommand(replayCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	return config.LoadConfig(cfgPath)
}

func newLogger(cfg *config.Config) (log.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	return log.NewLogger(os.Stderr, log.LevelOption(level)), nil
}
