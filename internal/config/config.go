package config

import (
	"fmt"
	"time"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Storage   StorageConfig   `mapstructure:"storage" validate:"required"`
	Clock     ClockConfig     `mapstructure:"clock"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Vault     VaultConfig     `mapstructure:"vault"`
	Rewards   RewardsConfig   `mapstructure:"rewards"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// ServerConfig contains the HTTP server and logging settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// StorageConfig selects where snapshots are persisted.
type StorageConfig struct {
	Driver      string `mapstructure:"driver" validate:"required,oneof=memory file postgres"`
	Dir         string `mapstructure:"dir" validate:"required_if=Driver file"`
	DatabaseURL string `mapstructure:"database_url" validate:"required_if=Driver postgres"`
}

// ClockConfig sets the time zone calendar days are counted in.
type ClockConfig struct {
	Timezone string `mapstructure:"timezone" validate:"required"`
}

// Location resolves the configured time zone.
func (c ClockConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid clock timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// CatalogConfig points at an optional catalog override file.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// VaultConfig points at the markdown note vault.
type VaultConfig struct {
	Dir string `mapstructure:"dir"`
}

// RewardsConfig sets the XP granted for learning activity.
type RewardsConfig struct {
	NoteReadXP   int `mapstructure:"note_read_xp" validate:"gte=0"`
	ReviewPassXP int `mapstructure:"review_pass_xp" validate:"gte=0"`
	ReviewFailXP int `mapstructure:"review_fail_xp" validate:"gte=0"`
}

// SchedulerConfig controls the due-card reminder job.
type SchedulerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	ReminderInterval time.Duration `mapstructure:"reminder_interval" validate:"required_if=Enabled true,gte=0"`
}
