package pipeline

import (
	"fmt"
	"math"
)

// Params holds the parsed parameters of a single step.
type Params struct {
	Op  string
	Num map[string]float64
	Str map[string]string
}

// Float returns a numeric parameter, or def when it is missing. NaN and
// Inf fail with ErrInvalidRecipe instead of falling back to def.
func (p Params) Float(key string, def float64) (float64, error) {
	v, ok := p.Num[key]
	if !ok {
		return def, nil
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s: parameter %q is %v: %w", p.Op, key, v, ErrInvalidRecipe)
	}

	return v, nil
}

// Int returns an integral parameter, or def when it is missing. Fractional
// and non-finite values fail with ErrInvalidRecipe.
func (p Params) Int(key string, def int) (int, error) {
	v, err := p.Float(key, float64(def))
	if err != nil {
		return 0, err
	}

	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("%s: parameter %q must be an integer, got %v: %w", p.Op, key, v, ErrInvalidRecipe)
	}

	return int(v), nil
}

// RequireFloat returns a numeric parameter that must be present and finite.
func (p Params) RequireFloat(key string) (float64, error) {
	if _, ok := p.Num[key]; !ok {
		return 0, fmt.Errorf("%s: missing numeric parameter %q: %w", p.Op, key, ErrInvalidRecipe)
	}

	return p.Float(key, 0)
}

// GetStr returns a string parameter, or def when it is missing.
func (p Params) GetStr(key, def string) string {
	v, ok := p.Str[key]
	if !ok {
		return def
	}

	return v
}
