package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/terminal-heist/internal/config"
)

var configWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Log settings changes as the file is edited",
	Long: `Watch the settings file and reload it whenever it changes. Each reload
prints the keys that changed. A file that fails to parse is reported and
the previous settings are kept.

Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runConfigWatch,
}

func runConfigWatch(cmd *cobra.Command, args []string) error {
	cfg, loader, logger, err := loadSettings()
	if err != nil {
		return err
	}

	if loader.Source() == "" {
		return errors.New("no settings file found; pass --config or run 'heist config init'")
	}

	holder := config.NewHolder(cfg, loader, logger)
	updates := make(chan config.GameConfig, 4)
	holder.Subscribe(updates)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	go func() {
		prev := cfg
		for {
			select {
			case <-ctx.Done():
				return
			case next := <-updates:
				for _, c := range config.Diff(prev, next) {
					fmt.Fprintf(out, "%s: %v -> %v\n", c.Key, c.Old, c.New)
				}
				prev = next
			}
		}
	}()

	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", loader.Source())
	return holder.Watch(ctx)
}
