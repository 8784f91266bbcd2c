package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/terminal-heist/internal/core"
)

// ValidationError contains details about a questionable setting.
type ValidationError struct {
	Code    string
	Key     string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Key, e.Message)
}

// Validate lints cfg. It is advisory: FromMap and Load never call it, so
// out-of-range values still load and callers decide whether to refuse them.
// Findings are returned joined, in key order.
func Validate(cfg GameConfig) error {
	var errs []error

	for _, f := range fields {
		switch f.Kind {
		case KindInt:
			n := *f.intPtr(&cfg)
			lowest := minimumFor(f.Key)
			if n < lowest {
				errs = append(errs, ValidationError{
					Code:    "OUT_OF_RANGE",
					Key:     f.Key,
					Message: fmt.Sprintf("%d is below the minimum of %d", n, lowest),
				})
			}
		case KindString:
			name := *f.strPtr(&cfg)
			if _, ok := core.ParseColor(name); !ok {
				errs = append(errs, ValidationError{
					Code:    "UNKNOWN_COLOR",
					Key:     f.Key,
					Message: fmt.Sprintf("%q is not a known color name", name),
				})
			}
		}
	}

	return errors.Join(errs...)
}

// minimumFor returns the smallest sensible value for an integer key.
// Dimensions and floor count must be positive; everything else non-negative.
func minimumFor(key string) int {
	switch key {
	case "grid_width", "grid_height", "floor_count":
		return 1
	default:
		return 0
	}
}
