package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/terminal-heist/internal/config"
	"github.com/vovakirdan/terminal-heist/internal/core"
)

var (
	flagFormat string
	flagForce  bool
	flagPreset string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show, change, check and edit the settings file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Long: `Print every setting after the settings file has been overlaid onto
the defaults, in the same key order the game writes.

Examples:
  heist config show
  heist config show --format json`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key>=<value>...",
	Short: "Change settings and write them back",
	Long: `Change one or more settings and save the result to the settings file
(--config if given, otherwise the file that was loaded, otherwise
~/.heist/config.yaml). Nothing is written if any value is invalid.

Examples:
  heist config set grid_width=30
  heist config set guard_los_range=6 color_guard=gold`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file from the defaults",
	Long: `Write the default settings to --config or ~/.heist/config.yaml.

Difficulty options:
  easy   - Short chases, short sight lines, one guard per floor
  normal - Default guard and balance settings
  hard   - Long chases, long sight lines, three guards per floor
  fixed  - Defaults unchanged

Examples:
  heist config init
  heist config init --preset hard --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report values the game cannot use",
	Args:  cobra.NoArgs,
	RunE:  runConfigCheck,
}

var configDiffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show settings that differ from the defaults",
	Args:  cobra.NoArgs,
	RunE:  runConfigDiff,
}

func init() {
	configShowCmd.Flags().StringVar(&flagFormat, "format", "yaml", "Output format: yaml or json")
	configInitCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing settings file")
	configInitCmd.Flags().StringVar(&flagPreset, "preset", "", "Difficulty preset: easy, normal, hard, fixed")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configCheckCmd)
	configCmd.AddCommand(configDiffCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configWatchCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	format, err := config.ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	cfg, _, _, err := loadSettings()
	if err != nil {
		return err
	}
	data, err := config.Encode(cfg, format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, _, _, err := loadSettings()
	if err != nil {
		return err
	}
	v, ok := cfg.Get(args[0])
	if !ok {
		return fmt.Errorf("%w %q (run 'heist config show' to list keys)", config.ErrUnknownKey, args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, loader, logger, err := loadSettings()
	if err != nil {
		return err
	}

	updated, err := applyAssignments(cfg, args)
	if err != nil {
		return err
	}

	path := loader.WritePath()
	if path == "" {
		return errors.New("no settings file to write to; pass --config")
	}
	if err := config.Save(path, updated); err != nil {
		return err
	}

	for _, c := range config.Diff(cfg, updated) {
		logger.Info("setting changed", "key", c.Key, "old", c.Old, "new", c.New)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
	return nil
}

// applyAssignments applies key=value pairs to a copy of cfg. The copy is
// only returned if every pair applied cleanly.
func applyAssignments(cfg config.GameConfig, pairs []string) (config.GameConfig, error) {
	var errs []error
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			errs = append(errs, fmt.Errorf("expected key=value, got %q", pair))
			continue
		}
		if err := cfg.Set(strings.TrimSpace(key), value); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return config.GameConfig{}, err
	}
	return cfg, nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return err
	}

	path := flagConfig
	if path == "" {
		path = config.UserConfigPath()
	}
	path, err = config.ExpandHome(path)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New("cannot locate home directory; pass --config")
	}

	if _, err := os.Stat(path); err == nil && !flagForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.DefaultGameConfig()
	config.ApplyPreset(&cfg, preset)
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", path, preset)
	return nil
}

func runConfigCheck(cmd *cobra.Command, args []string) error {
	cfg, loader, _, err := loadSettings()
	if err != nil {
		return err
	}

	source := loader.Source()
	if source == "" {
		source = "built-in defaults"
	}

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s:\n%s\n", source, err)
		if hasUnknownColor(err) {
			fmt.Fprintf(cmd.OutOrStdout(), "\nKnown colors: %s\n", strings.Join(core.ColorNames(), ", "))
		}
		return errors.New("settings check failed")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: OK\n", source)
	return nil
}

func hasUnknownColor(err error) bool {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return false
	}
	for _, e := range joined.Unwrap() {
		var ve config.ValidationError
		if errors.As(e, &ve) && ve.Code == "UNKNOWN_COLOR" {
			return true
		}
	}
	return false
}

func runConfigDiff(cmd *cobra.Command, args []string) error {
	cfg, _, _, err := loadSettings()
	if err != nil {
		return err
	}

	changes := config.Diff(config.DefaultGameConfig(), cfg)
	if len(changes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "All settings are at their defaults.")
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-26s %-12s %s\n", "KEY", "DEFAULT", "CURRENT")
	fmt.Fprintln(out, strings.Repeat("-", 52))
	for _, c := range changes {
		fmt.Fprintf(out, "%-26s %-12v %v\n", c.Key, c.Old, c.New)
	}
	return nil
}
