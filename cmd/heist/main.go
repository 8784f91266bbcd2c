// heist manages the Terminal Heist game settings from the terminal.
//
// Usage:
//
//	heist config show              - Print the effective settings
//	heist config get <key>         - Print one setting
//	heist config set <key>=<value> - Change settings and write them back
//	heist config init              - Write a settings file from the defaults
//	heist config check             - Report values the game cannot use
//	heist config diff              - Show settings that differ from the defaults
//	heist config edit              - Edit settings interactively
//	heist config watch             - Log settings changes as the file is edited
//	heist profile <command>        - Save and restore named settings profiles
//
// Global flags:
//
//	--config <path>     - Settings file (default: search ~/.heist/config.yaml, ./configs/heist.yaml)
//	--db <path>         - Profile database path (default: ~/.heist/profiles.db)
//	--log-level <level> - debug, info, warn or error (default: warn)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/terminal-heist/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "heist",
	Short: "Terminal Heist - manage game settings",
	Long: `Terminal Heist reads its grid, guard, balance and color settings from
a YAML or JSON file. Keys the file omits keep their defaults.

Available commands:
  config   - Show, change, check and edit the settings file
  profile  - Save and restore named settings profiles

Examples:
  heist config show --format json
  heist config set guard_los_range=6 color_guard=gold
  heist config init --preset hard
  heist profile save speedrun
  heist --config ./my-heist.yaml config edit`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.heist/profiles.db", "Path to profile database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(profileCmd)
}

// newLogger builds the stderr logger at the level given by --log-level.
func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "heist",
		Level:           level,
	}), nil
}

// loadSettings resolves the settings file named by --config or the search path.
func loadSettings() (config.GameConfig, *config.Loader, *log.Logger, error) {
	logger, err := newLogger()
	if err != nil {
		return config.GameConfig{}, nil, nil, err
	}
	loader := config.NewLoader(flagConfig, logger)
	cfg, err := loader.Load()
	if err != nil {
		return cfg, nil, nil, err
	}
	if src := loader.Source(); src != "" {
		logger.Debug("loaded settings", "path", src)
	} else {
		logger.Debug("using built-in settings")
	}
	return cfg, loader, logger, nil
}
