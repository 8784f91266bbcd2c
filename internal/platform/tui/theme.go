package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/terminal-heist/internal/config"
	"github.com/vovakirdan/terminal-heist/internal/core"
)

// Role is a tile kind that has a configurable color.
type Role string

const (
	RolePlayer     Role = "player"
	RoleGuard      Role = "guard"
	RoleWall       Role = "wall"
	RoleFloor      Role = "floor"
	RoleDoorOpen   Role = "door_open"
	RoleDoorClosed Role = "door_closed"
	RoleKeycard    Role = "keycard"
	RoleShard      Role = "shard"
	RoleExit       Role = "exit"
)

// roleGlyphs are the characters the preview draws for each role.
var roleGlyphs = map[Role]string{
	RolePlayer:     "@",
	RoleGuard:      "G",
	RoleWall:       "#",
	RoleFloor:      ".",
	RoleDoorOpen:   "/",
	RoleDoorClosed: "+",
	RoleKeycard:    "k",
	RoleShard:      "*",
	RoleExit:       ">",
}

// RoleForKey maps a color_* settings key to its role.
func RoleForKey(key string) (Role, bool) {
	const prefix = "color_"
	if len(key) <= len(prefix) || key[:len(prefix)] != prefix {
		return "", false
	}
	r := Role(key[len(prefix):])
	if _, ok := roleGlyphs[r]; !ok {
		return "", false
	}
	return r, true
}

// HeistTheme holds one style per tile role plus the editor chrome.
type HeistTheme struct {
	tiles map[Role]lipgloss.Style

	Title    lipgloss.Style
	Group    lipgloss.Style
	Key      lipgloss.Style
	Value    lipgloss.Style
	Usage    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Status   lipgloss.Style
	Help     lipgloss.Style
}

// NewHeistTheme builds the tile styles from the presentation settings.
// Unknown color names render in the terminal's default color.
func NewHeistTheme(cfg config.GameConfig) HeistTheme {
	t := HeistTheme{
		tiles: make(map[Role]lipgloss.Style, len(roleGlyphs)),

		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Group:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		Key:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Usage:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}

	for _, f := range config.Fields() {
		role, ok := RoleForKey(f.Key)
		if !ok {
			continue
		}
		name, _ := cfg.Get(f.Key)
		t.tiles[role] = tileStyle(name.(string))
	}
	return t
}

func tileStyle(name string) lipgloss.Style {
	c, ok := core.ParseColor(name)
	if !ok {
		return lipgloss.NewStyle().Foreground(lipgloss.NoColor{})
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.String())).Bold(true)
}

// Tile returns the style for a role.
func (t HeistTheme) Tile(r Role) lipgloss.Style {
	if s, ok := t.tiles[r]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// Swatch renders the role's glyph in its color.
func (t HeistTheme) Swatch(r Role) string {
	return t.Tile(r).Render(roleGlyphs[r])
}

// Legend renders every role's glyph in settings order, for a palette preview.
func (t HeistTheme) Legend() string {
	var parts []string
	for _, f := range config.Fields() {
		if role, ok := RoleForKey(f.Key); ok {
			parts = append(parts, t.Swatch(role))
		}
	}
	return strings.Join(parts, " ")
}
