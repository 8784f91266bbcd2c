package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/terminal-heist/internal/config"
)

func TestRoleForKey(t *testing.T) {
	tests := []struct {
		key  string
		want Role
		ok   bool
	}{
		{"color_player", RolePlayer, true},
		{"color_door_closed", RoleDoorClosed, true},
		{"color_exit", RoleExit, true},
		{"color_", "", false},
		{"color_sky", "", false},
		{"grid_width", "", false},
	}
	for _, tc := range tests {
		got, ok := RoleForKey(tc.key)
		if ok != tc.ok || got != tc.want {
			t.Errorf("RoleForKey(%q) = %q, %v; expected %q, %v", tc.key, got, ok, tc.want, tc.ok)
		}
	}
}

func TestEveryColorKeyHasRole(t *testing.T) {
	for _, f := range config.Fields() {
		if f.Kind != config.KindString {
			continue
		}
		if _, ok := RoleForKey(f.Key); !ok {
			t.Errorf("no tile role for %s", f.Key)
		}
	}
}

func TestThemeLegend(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.ColorGuard = "plaid" // unknown names still render

	legend := NewHeistTheme(cfg).Legend()
	for _, glyph := range []string{"@", "G", "#", "k", ">"} {
		if !strings.Contains(legend, glyph) {
			t.Errorf("legend %q missing glyph %q", legend, glyph)
		}
	}
}
