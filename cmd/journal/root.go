package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phrazzld/degen-journal/internal/config"
	"github.com/phrazzld/degen-journal/internal/platform/logger"
)

var (
	configFile string
	envFiles   []string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "journal",
	Short: "A personal learning and trading journal",
	Long: `journal tracks study progress (XP, levels, streaks, skills and
spaced-repetition flashcards) alongside a log of trades and their P&L.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "env files loaded before reading the environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// loadConfig reads configuration and installs the default logger.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(config.Options{ConfigFile: configFile, EnvFiles: envFiles})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose {
		cfg.Server.LogLevel = "debug"
	}

	log := logger.Setup(cfg.Server.LogLevel)
	log.Debug("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.String("timezone", cfg.Clock.Timezone),
		slog.Bool("scheduler_enabled", cfg.Scheduler.Enabled))
	return cfg, log, nil
}
