// Package cmd implements the troupe command-line interface: a config
// inspector and a reference embedding of the messaging runtime.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/troupelabs/troupe/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "troupe",
	Short: "In-process actor messaging for embedded script contexts",
	Long: `Troupe is an in-process actor/mailbox messaging layer that lets
independently running script contexts exchange asynchronous messages by
name, with fire-and-forget tell and non-blocking ask/response delivery
driven by the host's tick loop.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/troupe/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/troupe")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TROUPE")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TROUPE_MESSAGING_MESSAGES_PER_TICK for messaging.messages_per_tick
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
