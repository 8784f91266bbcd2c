package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets returns every preset in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset validates a preset name. Empty input means fixed.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyFixed, nil
	}
	p := DifficultyPreset(strings.ToLower(s))
	for _, known := range Presets() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// presetTuning holds the guard and balance values a preset writes.
type presetTuning struct {
	chaseTurns  int
	losRange    int
	guards      int
	turnPenalty int
}

var presetTunings = map[DifficultyPreset]presetTuning{
	DifficultyEasy: {chaseTurns: 3, losRange: 6, guards: 1, turnPenalty: 0},
	DifficultyHard: {chaseTurns: 8, losRange: 10, guards: 3, turnPenalty: 2},
}

// ApplyPreset modifies the guard AI and balance fields for a preset.
// Normal restores the defaults for those fields; fixed leaves cfg untouched.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		return
	case DifficultyNormal:
		d := DefaultGameConfig()
		cfg.GuardMaxChaseTurns = d.GuardMaxChaseTurns
		cfg.GuardLOSRange = d.GuardLOSRange
		cfg.GuardsPerFloorBase = d.GuardsPerFloorBase
		cfg.TurnPenalty = d.TurnPenalty
		return
	}

	t, ok := presetTunings[preset]
	if !ok {
		return
	}
	cfg.GuardMaxChaseTurns = t.chaseTurns
	cfg.GuardLOSRange = t.losRange
	cfg.GuardsPerFloorBase = t.guards
	cfg.TurnPenalty = t.turnPenalty
}
