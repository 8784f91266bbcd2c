package config

import (
	_ "embed"
)

//go:embed defaults/heist.yaml
var defaultHeistYAML []byte

// DefaultYAML returns the embedded, commented default settings file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultHeistYAML))
	copy(out, defaultHeistYAML)
	return out
}
