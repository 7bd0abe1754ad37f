package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// JOURNAL_SERVER_PORT.
const EnvPrefix = "JOURNAL"

// Options tune where Load looks for settings.
type Options struct {
	// ConfigFile is an optional YAML/JSON/TOML file. Empty means none.
	ConfigFile string
	// EnvFiles are loaded into the process environment first. Missing
	// files are ignored; existing variables are not overwritten.
	EnvFiles []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.dir", "data")
	v.SetDefault("storage.database_url", "")

	v.SetDefault("clock.timezone", "Local")
	v.SetDefault("catalog.path", "")
	v.SetDefault("vault.dir", "")

	v.SetDefault("rewards.note_read_xp", 10)
	v.SetDefault("rewards.review_pass_xp", 5)
	v.SetDefault("rewards.review_fail_xp", 2)

	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.reminder_interval", "1h")
}

// Load reads configuration from env files, the optional config file and
// environment variables, then validates it.
func Load(opts Options) (*Config, error) {
	for _, f := range opts.EnvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct tags and the settings tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := c.Clock.Location(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
