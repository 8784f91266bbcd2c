package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/terminal-heist/internal/config"
	"github.com/vovakirdan/terminal-heist/internal/platform/tui"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit settings interactively",
	Long: `Open the settings editor. Changes are written to the settings file
when you press s.

Controls:
  Up/Down    - Select a setting
  Enter/E    - Edit the selected value
  Esc        - Cancel an edit
  R          - Reset the selected value to its default
  S          - Save
  ?          - Toggle help
  Q/Ctrl+C   - Quit`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	cfg, loader, logger, err := loadSettings()
	if err != nil {
		return err
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	var save tui.SaveFunc
	if path := loader.WritePath(); path != "" {
		save = func(edited config.GameConfig) error {
			if err := config.Save(path, edited); err != nil {
				return err
			}
			logger.Info("settings saved", "path", path)
			return nil
		}
	}

	result, err := tui.RunEditor(cfg, save, width, height)
	if err != nil {
		return fmt.Errorf("editor: %w", err)
	}

	reportEditorResult(cmd, result, loader.WritePath())
	return nil
}

// reportEditorResult tells the user where edits went, or warns that some
// were discarded.
func reportEditorResult(cmd *cobra.Command, result tui.EditorResult, path string) {
	if result.Saved {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
	}
	if result.Unsaved {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning: quit with unsaved changes")
	}
}
