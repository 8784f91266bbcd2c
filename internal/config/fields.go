package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Group names the section a field belongs to.
type Group string

const (
	GroupGrid         Group = "Grid & level"
	GroupGuards       Group = "Guard AI"
	GroupBalance      Group = "Balance"
	GroupPresentation Group = "Presentation"
)

// Kind is the value type a field stores.
type Kind int

const (
	KindInt Kind = iota
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Field describes one recognized settings key.
type Field struct {
	Key   string
	Group Group
	Kind  Kind
	Usage string

	intPtr func(*GameConfig) *int
	strPtr func(*GameConfig) *string
}

func (f Field) get(c *GameConfig) any {
	if f.Kind == KindInt {
		return *f.intPtr(c)
	}
	return *f.strPtr(c)
}

func intField(key string, g Group, usage string, p func(*GameConfig) *int) Field {
	return Field{Key: key, Group: g, Kind: KindInt, Usage: usage, intPtr: p}
}

func strField(key string, g Group, usage string, p func(*GameConfig) *string) Field {
	return Field{Key: key, Group: g, Kind: KindString, Usage: usage, strPtr: p}
}

// fields is the single list of recognized keys, in wire order.
var fields = []Field{
	intField("grid_width", GroupGrid, "Columns per floor", func(c *GameConfig) *int { return &c.GridWidth }),
	intField("grid_height", GroupGrid, "Rows per floor", func(c *GameConfig) *int { return &c.GridHeight }),
	intField("floor_count", GroupGrid, "Floors per run", func(c *GameConfig) *int { return &c.FloorCount }),

	intField("guard_max_chase_turns", GroupGuards, "Turns a guard chases after losing sight", func(c *GameConfig) *int { return &c.GuardMaxChaseTurns }),
	intField("guard_los_range", GroupGuards, "Guard line-of-sight range in tiles", func(c *GameConfig) *int { return &c.GuardLOSRange }),
	intField("guards_per_floor_base", GroupGuards, "Guards placed on the first floor", func(c *GameConfig) *int { return &c.GuardsPerFloorBase }),

	intField("keycards_required_to_win", GroupBalance, "Keycards needed to open the exit", func(c *GameConfig) *int { return &c.KeycardsRequiredToWin }),
	intField("shard_score_bonus", GroupBalance, "Points per data shard", func(c *GameConfig) *int { return &c.ShardScoreBonus }),
	intField("floor_completion_bonus", GroupBalance, "Points per cleared floor", func(c *GameConfig) *int { return &c.FloorCompletionBonus }),
	intField("turn_penalty", GroupBalance, "Points lost per turn", func(c *GameConfig) *int { return &c.TurnPenalty }),

	strField("color_player", GroupPresentation, "Player tile color", func(c *GameConfig) *string { return &c.ColorPlayer }),
	strField("color_guard", GroupPresentation, "Guard tile color", func(c *GameConfig) *string { return &c.ColorGuard }),
	strField("color_wall", GroupPresentation, "Wall tile color", func(c *GameConfig) *string { return &c.ColorWall }),
	strField("color_floor", GroupPresentation, "Floor tile color", func(c *GameConfig) *string { return &c.ColorFloor }),
	strField("color_door_open", GroupPresentation, "Open door color", func(c *GameConfig) *string { return &c.ColorDoorOpen }),
	strField("color_door_closed", GroupPresentation, "Closed door color", func(c *GameConfig) *string { return &c.ColorDoorClosed }),
	strField("color_keycard", GroupPresentation, "Keycard color", func(c *GameConfig) *string { return &c.ColorKeycard }),
	strField("color_shard", GroupPresentation, "Data shard color", func(c *GameConfig) *string { return &c.ColorShard }),
	strField("color_exit", GroupPresentation, "Exit tile color", func(c *GameConfig) *string { return &c.ColorExit }),
}

var fieldIndex = func() map[string]int {
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		idx[f.Key] = i
	}
	return idx
}()

// Fields returns the descriptors of every recognized key, in wire order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Keys returns the recognized keys in wire order.
func Keys() []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}
	return keys
}

// LookupField returns the descriptor for key.
func LookupField(key string) (Field, bool) {
	i, ok := fieldIndex[key]
	if !ok {
		return Field{}, false
	}
	return fields[i], true
}

// ErrUnknownKey is returned by Get, Set and ResetKey for unrecognized keys.
var ErrUnknownKey = errors.New("config: unknown key")

// FieldError reports a value that could not be stored in a field.
type FieldError struct {
	Key   string
	Value any
	Want  Kind
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config: %s: cannot use %v (%T) as %s: %v", e.Key, e.Value, e.Value, e.Want, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

var (
	errNotInteger = errors.New("not an integer")
	errNotString  = errors.New("not a string")
	errOverflow   = errors.New("out of range")
	errEmpty      = errors.New("empty value")
)

// ToMap returns the current values as a fresh ordered mapping holding
// exactly the recognized keys.
func (c *GameConfig) ToMap() Mapping {
	m := Mapping{entries: make([]Entry, len(fields))}
	for i, f := range fields {
		m.entries[i] = Entry{Key: f.Key, Value: f.get(c)}
	}
	return m
}

// FromMap overlays data onto the record. Recognized keys present in data
// replace the field; absent keys keep their current value; unknown keys are
// ignored. Integer fields accept integral numbers and decimal strings. If any
// value cannot be stored, nothing is written and the joined *FieldError
// values are returned.
func (c *GameConfig) FromMap(data map[string]any) error {
	type update struct {
		f Field
		n int
		s string
	}

	var (
		updates []update
		errs    []error
	)
	for _, f := range fields {
		raw, ok := data[f.Key]
		if !ok {
			continue
		}
		switch f.Kind {
		case KindInt:
			n, err := coerceInt(raw)
			if err != nil {
				errs = append(errs, &FieldError{Key: f.Key, Value: raw, Want: f.Kind, Err: err})
				continue
			}
			updates = append(updates, update{f: f, n: n})
		case KindString:
			s, ok := raw.(string)
			if !ok {
				errs = append(errs, &FieldError{Key: f.Key, Value: raw, Want: f.Kind, Err: errNotString})
				continue
			}
			updates = append(updates, update{f: f, s: s})
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	for _, u := range updates {
		if u.f.Kind == KindInt {
			*u.f.intPtr(c) = u.n
		} else {
			*u.f.strPtr(c) = u.s
		}
	}
	return nil
}

// FromMapping is FromMap for an ordered mapping.
func (c *GameConfig) FromMapping(m Mapping) error {
	return c.FromMap(m.Map())
}

// Get returns the current value of key.
func (c *GameConfig) Get(key string) (any, bool) {
	f, ok := LookupField(key)
	if !ok {
		return nil, false
	}
	return f.get(c), true
}

// Set parses raw as the field's kind and stores it. Used for command-line
// and editor input, where every value arrives as text.
func (c *GameConfig) Set(key, raw string) error {
	f, ok := LookupField(key)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownKey, key)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return &FieldError{Key: key, Value: raw, Want: f.Kind, Err: errEmpty}
	}
	if f.Kind == KindInt {
		n, err := coerceInt(raw)
		if err != nil {
			return &FieldError{Key: key, Value: raw, Want: f.Kind, Err: err}
		}
		*f.intPtr(c) = n
		return nil
	}
	*f.strPtr(c) = raw
	return nil
}

// ResetKey restores a single field to its default.
func (c *GameConfig) ResetKey(key string) error {
	f, ok := LookupField(key)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	d := DefaultGameConfig()
	if f.Kind == KindInt {
		*f.intPtr(c) = *f.intPtr(&d)
	} else {
		*f.strPtr(c) = *f.strPtr(&d)
	}
	return nil
}

// Change is one differing key between two configs.
type Change struct {
	Key string
	Old any
	New any
}

// Diff lists the keys whose values differ between a and b, in wire order.
func Diff(a, b GameConfig) []Change {
	var changes []Change
	for _, f := range fields {
		oldV, newV := f.get(&a), f.get(&b)
		if oldV != newV {
			changes = append(changes, Change{Key: f.Key, Old: oldV, New: newV})
		}
	}
	return changes
}

// coerceInt converts the shapes decoders produce for whole numbers.
func coerceInt(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, errOverflow
		}
		return int(v), nil
	case uint:
		if uint64(v) > math.MaxInt {
			return 0, errOverflow
		}
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case uint64:
		if v > math.MaxInt {
			return 0, errOverflow
		}
		return int(v), nil
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			f, ferr := v.Float64()
			if ferr != nil {
				return 0, errNotInteger
			}
			return floatToInt(f)
		}
		return coerceInt(n)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, errNotInteger
		}
		return n, nil
	default:
		return 0, errNotInteger
	}
}

func floatToInt(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, errNotInteger
	}
	if f < math.MinInt || f >= math.MaxInt {
		return 0, errOverflow
	}
	return int(f), nil
}
