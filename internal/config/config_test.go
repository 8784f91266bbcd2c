package config

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var wireKeys = []string{
	"grid_width", "grid_height", "floor_count",
	"guard_max_chase_turns", "guard_los_range", "guards_per_floor_base",
	"keycards_required_to_win", "shard_score_bonus", "floor_completion_bonus", "turn_penalty",
	"color_player", "color_guard", "color_wall", "color_floor", "color_door_open",
	"color_door_closed", "color_keycard", "color_shard", "color_exit",
}

func TestDefaults(t *testing.T) {
	cfg := DefaultGameConfig()

	if cfg.GridWidth != 20 {
		t.Errorf("GridWidth = %d, expected 20", cfg.GridWidth)
	}
	if cfg.ColorPlayer != "aqua" {
		t.Errorf("ColorPlayer = %q, expected aqua", cfg.ColorPlayer)
	}
	if cfg.ShardScoreBonus != 500 {
		t.Errorf("ShardScoreBonus = %d, expected 500", cfg.ShardScoreBonus)
	}
	if cfg.KeycardsRequiredToWin != 1 {
		t.Errorf("KeycardsRequiredToWin = %d, expected 1", cfg.KeycardsRequiredToWin)
	}
}

func TestToMapKeys(t *testing.T) {
	cfg := DefaultGameConfig()
	m := cfg.ToMap()

	if m.Len() != 19 {
		t.Fatalf("ToMap() has %d keys, expected 19", m.Len())
	}
	if diff := cmp.Diff(wireKeys, m.Keys()); diff != "" {
		t.Errorf("ToMap() keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wireKeys, Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestToMapValues(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.GuardLOSRange = 11
	cfg.ColorExit = "pink"
	m := cfg.ToMap()

	if v, _ := m.Get("guard_los_range"); v != 11 {
		t.Errorf("guard_los_range = %v, expected 11", v)
	}
	if v, _ := m.Get("color_exit"); v != "pink" {
		t.Errorf("color_exit = %v, expected pink", v)
	}
	if _, ok := m.Get("not_a_field"); ok {
		t.Error("Get() found a key that was never written")
	}
}

func TestRoundTrip(t *testing.T) {
	src := GameConfig{
		GridWidth: 31, GridHeight: 17, FloorCount: 5,
		GuardMaxChaseTurns: 2, GuardLOSRange: 4, GuardsPerFloorBase: 6,
		KeycardsRequiredToWin: 3, ShardScoreBonus: 750, FloorCompletionBonus: 40, TurnPenalty: 0,
		ColorPlayer: "pink", ColorGuard: "maroon", ColorWall: "navy", ColorFloor: "black",
		ColorDoorOpen: "teal", ColorDoorClosed: "orange", ColorKeycard: "purple",
		ColorShard: "silver", ColorExit: "olive",
	}

	dst := DefaultGameConfig()
	if err := dst.FromMapping(src.ToMap()); err != nil {
		t.Fatalf("FromMapping() failed: %v", err)
	}
	if diff := cmp.Diff(src, dst); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFromMapPartialOverlay(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.TurnPenalty = 9 // prior mutation must survive

	if err := cfg.FromMap(map[string]any{"grid_width": 30}); err != nil {
		t.Fatalf("FromMap() failed: %v", err)
	}

	want := DefaultGameConfig()
	want.GridWidth = 30
	want.TurnPenalty = 9
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("overlay mismatch (-want +got):\n%s", diff)
	}
}

func TestFromMapUnknownKeys(t *testing.T) {
	cfg := DefaultGameConfig()
	if err := cfg.FromMap(map[string]any{"not_a_field": 1}); err != nil {
		t.Fatalf("FromMap() with unknown key returned %v", err)
	}
	if diff := cmp.Diff(DefaultGameConfig(), cfg); diff != "" {
		t.Errorf("unknown key changed the record (-want +got):\n%s", diff)
	}
}

func TestFromMapEmptyAndNil(t *testing.T) {
	cfg := DefaultGameConfig()
	if err := cfg.FromMap(nil); err != nil {
		t.Fatalf("FromMap(nil) returned %v", err)
	}
	if err := cfg.FromMap(map[string]any{}); err != nil {
		t.Fatalf("FromMap({}) returned %v", err)
	}
	if diff := cmp.Diff(DefaultGameConfig(), cfg); diff != "" {
		t.Errorf("empty overlay changed the record (-want +got):\n%s", diff)
	}
}

func TestFromMapRejectsWithoutPartialWrite(t *testing.T) {
	cfg := DefaultGameConfig()
	err := cfg.FromMap(map[string]any{
		"grid_width":   30,
		"grid_height":  "tall",
		"color_player": 7,
	})
	if err == nil {
		t.Fatal("FromMap() accepted mismatched values")
	}

	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("error %v is not a *FieldError", err)
	}
	for _, key := range []string{"grid_height", "color_player"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q does not mention %s", err, key)
		}
	}
	if cfg.GridWidth != 20 {
		t.Errorf("GridWidth = %d after rejected overlay, expected 20", cfg.GridWidth)
	}
}

func TestFromMapCoercion(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
		ok    bool
	}{
		{"int", 42, 42, true},
		{"int64", int64(7), 7, true},
		{"uint8", uint8(3), 3, true},
		{"integral float", float64(12), 12, true},
		{"json number", json.Number("9"), 9, true},
		{"decimal string", " 15 ", 15, true},
		{"negative string", "-4", -4, true},
		{"fractional float", 1.5, 0, false},
		{"word", "abc", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
		{"fractional json number", json.Number("2.5"), 0, false},
		{"float at int minimum", float64(math.MinInt), math.MinInt, true},
		{"float past int maximum", -float64(math.MinInt), 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultGameConfig()
			err := cfg.FromMap(map[string]any{"floor_count": tc.value})
			if tc.ok {
				if err != nil {
					t.Fatalf("FromMap(%v) failed: %v", tc.value, err)
				}
				if cfg.FloorCount != tc.want {
					t.Errorf("FloorCount = %d, expected %d", cfg.FloorCount, tc.want)
				}
				return
			}
			if err == nil {
				t.Fatalf("FromMap(%v) accepted value", tc.value)
			}
			if cfg.FloorCount != 3 {
				t.Errorf("FloorCount = %d after rejection, expected 3", cfg.FloorCount)
			}
		})
	}
}

func TestFromMapFloatOverflow(t *testing.T) {
	cfg := DefaultGameConfig()
	err := cfg.FromMap(map[string]any{"grid_width": -float64(math.MinInt)})
	if !errors.Is(err, errOverflow) {
		t.Fatalf("FromMap() error = %v, expected overflow", err)
	}
}

func TestToMapCopyIndependence(t *testing.T) {
	cfg := DefaultGameConfig()
	a := cfg.ToMap()
	b := cfg.ToMap()

	if diff := cmp.Diff(a.Entries(), b.Entries()); diff != "" {
		t.Fatalf("two ToMap() results differ (-a +b):\n%s", diff)
	}

	a.Set("grid_width", 99)
	if v, _ := b.Get("grid_width"); v != 20 {
		t.Errorf("mutating one mapping changed the other: %v", v)
	}
	if cfg.GridWidth != 20 {
		t.Errorf("mutating the mapping changed the record: %d", cfg.GridWidth)
	}

	plain := cfg.ToMap().Map()
	plain["grid_height"] = 1
	if cfg.GridHeight != 12 {
		t.Errorf("mutating Map() changed the record: %d", cfg.GridHeight)
	}
}

func TestGetSet(t *testing.T) {
	cfg := DefaultGameConfig()

	if err := cfg.Set("guard_los_range", "12"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if v, ok := cfg.Get("guard_los_range"); !ok || v != 12 {
		t.Errorf("Get() = %v, %v; expected 12, true", v, ok)
	}

	if err := cfg.Set("color_wall", " silver "); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if cfg.ColorWall != "silver" {
		t.Errorf("ColorWall = %q, expected silver", cfg.ColorWall)
	}

	if err := cfg.Set("guard_los_range", "far"); err == nil {
		t.Error("Set() accepted a non-integer")
	}
	if cfg.GuardLOSRange != 12 {
		t.Errorf("failed Set() changed the field to %d", cfg.GuardLOSRange)
	}

	if err := cfg.Set("color_wall", "   "); err == nil {
		t.Error("Set() accepted an empty color")
	}

	if err := cfg.Set("nope", "1"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Set() on unknown key returned %v, expected ErrUnknownKey", err)
	}
	if _, ok := cfg.Get("nope"); ok {
		t.Error("Get() found an unknown key")
	}
}

func TestResetKey(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.ShardScoreBonus = 1
	cfg.ColorShard = "red"

	if err := cfg.ResetKey("shard_score_bonus"); err != nil {
		t.Fatalf("ResetKey() failed: %v", err)
	}
	if err := cfg.ResetKey("color_shard"); err != nil {
		t.Fatalf("ResetKey() failed: %v", err)
	}
	if diff := cmp.Diff(DefaultGameConfig(), cfg); diff != "" {
		t.Errorf("reset mismatch (-want +got):\n%s", diff)
	}
	if err := cfg.ResetKey("nope"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("ResetKey() on unknown key returned %v", err)
	}
}

func TestDiff(t *testing.T) {
	a := DefaultGameConfig()
	b := a
	b.FloorCount = 4
	b.ColorGuard = "pink"

	got := Diff(a, b)
	want := []Change{
		{Key: "floor_count", Old: 3, New: 4},
		{Key: "color_guard", Old: "red", New: "pink"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Diff() mismatch (-want +got):\n%s", diff)
	}

	if changes := Diff(a, a); len(changes) != 0 {
		t.Errorf("Diff() of identical configs = %v", changes)
	}
}

func TestFieldsMetadata(t *testing.T) {
	groups := map[Group]int{}
	for _, f := range Fields() {
		groups[f.Group]++
		if f.Usage == "" {
			t.Errorf("field %s has no usage text", f.Key)
		}
		if strings.HasPrefix(f.Key, "color_") != (f.Kind == KindString) {
			t.Errorf("field %s has kind %s", f.Key, f.Kind)
		}
	}
	want := map[Group]int{GroupGrid: 3, GroupGuards: 3, GroupBalance: 4, GroupPresentation: 9}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Errorf("group sizes mismatch (-want +got):\n%s", diff)
	}

	if _, ok := LookupField("turn_penalty"); !ok {
		t.Error("LookupField(turn_penalty) not found")
	}
}
