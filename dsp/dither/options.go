package dither

import (
	"fmt"
	"math/rand/v2"
)

type config struct {
	typ     Type
	shaping bool
	rng     *rand.Rand
}

// Option configures a [Quantizer].
type Option func(*config) error

// WithType sets the dither distribution (default [Triangular]).
func WithType(t Type) Option {
	return func(cfg *config) error {
		if !t.Valid() {
			return fmt.Errorf("dither: invalid type: %d", t)
		}

		cfg.typ = t

		return nil
	}
}

// WithNoiseShaping enables first-order error feedback, which moves
// quantization noise towards high frequencies.
func WithNoiseShaping(enabled bool) Option {
	return func(cfg *config) error {
		cfg.shaping = enabled
		return nil
	}
}

// WithRNG sets the noise source. Use a seeded generator for reproducible
// output.
func WithRNG(rng *rand.Rand) Option {
	return func(cfg *config) error {
		if rng == nil {
			return fmt.Errorf("dither: rng must not be nil")
		}

		cfg.rng = rng

		return nil
	}
}
