// Package core holds small primitives shared by the settings, storage and
// terminal layers.
package core

import (
	"sort"
	"strconv"
	"strings"
)

// Color is an ANSI 256-color code used to draw a tile in the terminal.
type Color uint8

// String returns the numeric code, which is the form lipgloss.Color expects.
func (c Color) String() string {
	return strconv.Itoa(int(c))
}

// namedColors maps the color names accepted in settings files to
// 256-color codes. Names follow the CSS keywords players already know.
var namedColors = map[string]Color{
	"black":   16,
	"white":   255,
	"gray":    245,
	"grey":    245,
	"silver":  250,
	"red":     196,
	"maroon":  124,
	"orange":  208,
	"yellow":  226,
	"gold":    220,
	"olive":   142,
	"lime":    118,
	"green":   46,
	"teal":    37,
	"aqua":    51,
	"cyan":    51,
	"blue":    33,
	"navy":    18,
	"purple":  129,
	"magenta": 201,
	"fuchsia": 201,
	"pink":    205,
	"brown":   130,
}

// ParseColor resolves a color name (case-insensitive) to its code.
func ParseColor(name string) (Color, bool) {
	c, ok := namedColors[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// ColorNames returns every recognized color name, sorted.
func ColorNames() []string {
	names := make([]string, 0, len(namedColors))
	for name := range namedColors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
