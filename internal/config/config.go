package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config represents the complete troupe configuration
type Config struct {
	Messaging MessagingConfig `mapstructure:"messaging"`
	Host      HostConfig      `mapstructure:"host"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// MessagingConfig controls mailbox behavior
type MessagingConfig struct {
	// MessagesPerTick is the default per-mailbox drain budget. Each owning
	// context may override its own mailbox's budget at runtime.
	MessagesPerTick int `mapstructure:"messages_per_tick"`
	// IDCeiling is the message id at which allocation wraps back to 1.
	// Id 0 is reserved as the send-failure sentinel and is never assigned.
	IDCeiling uint64 `mapstructure:"id_ceiling"`
}

// HostConfig controls the tick scheduler
type HostConfig struct {
	// TickIntervalMs is how often the scheduler drains all mailboxes
	// (in milliseconds)
	TickIntervalMs int `mapstructure:"tick_interval_ms"`
}

// LoggingConfig controls runtime logging behavior
type LoggingConfig struct {
	// Enabled controls whether runtime logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the directory for the log file; empty logs to stderr
	Dir string `mapstructure:"dir"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// TickInterval returns the scheduler tick interval as a time.Duration
func (h *HostConfig) TickInterval() time.Duration {
	return time.Duration(h.TickIntervalMs) * time.Millisecond
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Messaging: MessagingConfig{
			MessagesPerTick: 10,
			IDCeiling:       1_000_000_000_000,
		},
		Host: HostConfig{
			TickIntervalMs: 100,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			Dir:        "",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Messaging defaults
	viper.SetDefault("messaging.messages_per_tick", defaults.Messaging.MessagesPerTick)
	viper.SetDefault("messaging.id_ceiling", defaults.Messaging.IDCeiling)

	// Host defaults
	viper.SetDefault("host.tick_interval_ms", defaults.Host.TickIntervalMs)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// Watch reloads the configuration whenever the config file changes on disk
// and invokes onChange with the new value. Invalid on-disk configurations
// are ignored, keeping the last good one in effect. Budget and tick
// changes take effect on the next drain pass.
func Watch(onChange func(*Config)) {
	viper.OnConfigChange(func(fsnotify.Event) {
		cfg, err := Load()
		if err != nil {
			return
		}
		onChange(cfg)
	})
	viper.WatchConfig()
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "troupe")
	}
	// Fall back to ~/.config/troupe
	home, err := os.UserHomeDir()
	if err != nil {
		return ".troupe"
	}
	return filepath.Join(home, ".config", "troupe")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
