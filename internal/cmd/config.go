package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/troupelabs/troupe/internal/config"
	"github.com/troupelabs/troupe/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify troupe configuration",
	Long: `View or modify troupe configuration.

Without arguments, displays the current configuration.
Use subcommands to create a config file or locate it.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/troupe/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	fmt.Println("Current configuration:")
	fmt.Println()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Printf("Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Printf("Config file: (none - using defaults)\n")
	}
	fmt.Println()

	fmt.Println("messaging:")
	fmt.Printf("  messages_per_tick: %d\n", cfg.Messaging.MessagesPerTick)
	fmt.Printf("  id_ceiling: %d\n", cfg.Messaging.IDCeiling)

	fmt.Println("host:")
	fmt.Printf("  tick_interval_ms: %d\n", cfg.Host.TickIntervalMs)

	fmt.Println("logging:")
	fmt.Printf("  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Printf("  level: %s\n", cfg.Logging.Level)
	fmt.Printf("  dir: %s\n", cfg.Logging.Dir)
	fmt.Printf("  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
	fmt.Printf("  max_backups: %d\n", cfg.Logging.MaxBackups)

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create config directory %s", configDir)
	}

	// Generate a commented config file
	configContent := `# Troupe Configuration
# See https://github.com/troupelabs/troupe for documentation.

messaging:
  # Default per-mailbox drain budget per host tick. Each owning context
  # may change its own mailbox's budget at runtime.
  messages_per_tick: 10
  # Message id at which allocation wraps back to 1. Id 0 is reserved as
  # the send-failure sentinel.
  id_ceiling: 1000000000000

host:
  # How often the built-in scheduler drains all mailboxes, in milliseconds.
  tick_interval_ms: 100

logging:
  enabled: true
  # One of: debug, info, warn, error
  level: info
  # Directory for troupe.log; empty logs to stderr.
  dir: ""
  # Rotate the log when it exceeds this many megabytes (0 disables).
  max_size_mb: 10
  # Number of rotated backups to keep.
  max_backups: 3
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}

	fmt.Printf("Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	fmt.Println(config.ConfigFile())
	return nil
}
