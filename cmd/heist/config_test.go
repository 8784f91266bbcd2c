package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/terminal-heist/internal/config"
	"github.com/vovakirdan/terminal-heist/internal/platform/tui"
)

func TestApplyAssignments(t *testing.T) {
	base := config.DefaultGameConfig()

	got, err := applyAssignments(base, []string{"grid_width=30", " color_guard =gold"})
	if err != nil {
		t.Fatalf("applyAssignments() error = %v", err)
	}
	if got.GridWidth != 30 || got.ColorGuard != "gold" {
		t.Errorf("got grid_width=%d color_guard=%q", got.GridWidth, got.ColorGuard)
	}
	if base.GridWidth != 20 {
		t.Error("applyAssignments modified its input")
	}
}

func TestApplyAssignmentsRejects(t *testing.T) {
	tests := []struct {
		name  string
		pairs []string
	}{
		{"missing equals", []string{"grid_width"}},
		{"unknown key", []string{"grid_depth=3"}},
		{"bad integer", []string{"floor_count=three"}},
		{"empty value", []string{"color_exit="}},
		{"one bad pair", []string{"grid_width=30", "turn_penalty=x"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := applyAssignments(config.DefaultGameConfig(), tc.pairs); err == nil {
				t.Errorf("applyAssignments(%q) succeeded, expected error", tc.pairs)
			}
		})
	}
}

func TestHasUnknownColor(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.GridWidth = 0
	if hasUnknownColor(config.Validate(cfg)) {
		t.Error("range finding reported as unknown color")
	}

	cfg.ColorWall = "plaid"
	if !hasUnknownColor(config.Validate(cfg)) {
		t.Error("unknown color not detected")
	}
}

func TestConfigSetRefusesBrokenUserFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	flagConfig = ""
	flagLogLevel = "error"

	path := filepath.Join(home, ".heist", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	broken := "floor_count: lots\ngrid_width: 40\ncolor_guard: gold\n"
	if err := os.WriteFile(path, []byte(broken), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cmd := &cobra.Command{}
	cmd.SetOut(io.Discard)
	if err := runConfigSet(cmd, []string{"grid_width=30"}); err == nil {
		t.Fatal("set succeeded against a settings file that does not parse")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(data) != broken {
		t.Errorf("settings file was rewritten:\n%s", data)
	}
}

func TestReportEditorResult(t *testing.T) {
	tests := []struct {
		name     string
		result   tui.EditorResult
		wantOut  string
		wantWarn bool
	}{
		{"nothing changed", tui.EditorResult{}, "", false},
		{"saved", tui.EditorResult{Saved: true}, "Saved /tmp/heist.yaml\n", false},
		{"unsaved edits", tui.EditorResult{Unsaved: true}, "", true},
		{"saved then edited", tui.EditorResult{Saved: true, Unsaved: true}, "Saved /tmp/heist.yaml\n", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			cmd := &cobra.Command{}
			cmd.SetOut(&out)
			cmd.SetErr(&errOut)

			reportEditorResult(cmd, tc.result, "/tmp/heist.yaml")

			if out.String() != tc.wantOut {
				t.Errorf("stdout = %q, expected %q", out.String(), tc.wantOut)
			}
			if got := strings.Contains(errOut.String(), "unsaved changes"); got != tc.wantWarn {
				t.Errorf("warning printed = %v, expected %v (stderr %q)", got, tc.wantWarn, errOut.String())
			}
		})
	}
}
