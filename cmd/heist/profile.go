package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/terminal-heist/internal/config"
	"github.com/vovakirdan/terminal-heist/internal/storage"
)

var flagHistoryLimit int

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Save and restore named settings profiles",
	Long: `Profiles are named copies of the settings kept in the profile
database (--db). Saving over an existing profile records which keys changed.

Examples:
  heist profile save speedrun
  heist profile list
  heist profile load speedrun
  heist profile history speedrun`,
}

var profileSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the current settings as a profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileSave,
}

var profileLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Write a profile to the settings file",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileLoad,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	Args:  cobra.NoArgs,
	RunE:  runProfileList,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile and its history",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileDelete,
}

var profileHistoryCmd = &cobra.Command{
	Use:   "history <name>",
	Short: "Show recent changes to a profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileHistory,
}

func init() {
	profileHistoryCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of changes to show")

	profileCmd.AddCommand(profileSaveCmd)
	profileCmd.AddCommand(profileLoadCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	profileCmd.AddCommand(profileHistoryCmd)
}

func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("could not open profile database: %w", err)
	}
	return store, nil
}

func runProfileSave(cmd *cobra.Command, args []string) error {
	cfg, _, logger, err := loadSettings()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveProfile(args[0], cfg); err != nil {
		return err
	}
	logger.Info("profile saved", "name", args[0], "db", flagDBPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %q\n", args[0])
	return nil
}

func runProfileLoad(cmd *cobra.Command, args []string) error {
	_, loader, logger, err := loadSettings()
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	cfg, err := store.LoadProfile(args[0])
	if err != nil {
		return err
	}

	path := loader.WritePath()
	if path == "" {
		return errors.New("no settings file to write to; pass --config")
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	logger.Info("profile loaded", "name", args[0], "path", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Loaded profile %q into %s\n", args[0], path)
	return nil
}

func runProfileList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	profiles, err := store.ListProfiles()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(profiles) == 0 {
		fmt.Fprintln(out, "No profiles saved yet.")
		return nil
	}

	fmt.Fprintf(out, "%-24s %s\n", "NAME", "UPDATED")
	fmt.Fprintln(out, "----------------------------------------")
	for _, p := range profiles {
		fmt.Fprintf(out, "%-24s %s\n", p.Name, p.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteProfile(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %q\n", args[0])
	return nil
}

func runProfileHistory(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	changes, err := store.ProfileHistory(args[0], flagHistoryLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(changes) == 0 {
		fmt.Fprintf(out, "No recorded changes for %q.\n", args[0])
		return nil
	}

	fmt.Fprintf(out, "%-17s %-26s %-12s %s\n", "WHEN", "KEY", "OLD", "NEW")
	fmt.Fprintln(out, "----------------------------------------------------------------")
	for _, c := range changes {
		fmt.Fprintf(out, "%-17s %-26s %-12s %s\n", c.CreatedAt.Format("2006-01-02 15:04"), c.Key, c.OldValue, c.NewValue)
	}
	return nil
}
