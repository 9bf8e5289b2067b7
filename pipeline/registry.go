package pipeline

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cwbudde/algo-audiokit/dsp/amplitude"
	"github.com/cwbudde/algo-audiokit/dsp/filter/design"
)

// Factory builds a Step from its parameters.
type Factory func(p Params) (Step, error)

// Registry maps op names to step factories.
type Registry struct {
	factories map[string]Factory
}

var errDuplicateOp = errors.New("duplicate op")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for op.
func (r *Registry) Register(op string, factory Factory) error {
	if op == "" {
		return errors.New("empty op name")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.factories[op]; exists {
		return fmt.Errorf("%w: %s", errDuplicateOp, op)
	}

	r.factories[op] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(op string, factory Factory) {
	if err := r.Register(op, factory); err != nil {
		panic("pipeline registry: " + err.Error())
	}
}

// Lookup returns the factory for op, or nil.
func (r *Registry) Lookup(op string) Factory {
	return r.factories[op]
}

// Ops returns the registered op names, sorted.
func (r *Registry) Ops() []string {
	ops := make([]string, 0, len(r.factories))
	for op := range r.factories {
		ops = append(ops, op)
	}

	slices.Sort(ops)

	return ops
}

// Build constructs the step described by p.
func (r *Registry) Build(p Params) (Step, error) {
	factory := r.Lookup(p.Op)
	if factory == nil {
		return nil, fmt.Errorf("unknown op %q (known: %v): %w", p.Op, r.Ops(), ErrInvalidRecipe)
	}

	return factory(p)
}

// DefaultRegistry returns a Registry with the built-in steps:
//
//	normalize  target (default 0.8)
//	filter     kind (low|high|band), cutoff, high_cutoff (band), order (default 5)
//	volume     factor
//	fade       in, out (seconds, default 0)
//	trim       threshold (default 0.01)
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(OpNormalize, func(p Params) (Step, error) {
		target, err := p.Float("target", amplitude.DefaultTargetPeak)
		if err != nil {
			return nil, err
		}

		return NormalizeStep{TargetPeak: target}, nil
	})
	r.MustRegister(OpFilter, func(p Params) (Step, error) {
		kind, err := design.ParseKind(p.GetStr("kind", ""))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Op, err)
		}

		cutoff, err := p.RequireFloat("cutoff")
		if err != nil {
			return nil, err
		}

		high, err := p.Float("high_cutoff", 0)
		if err != nil {
			return nil, err
		}

		order, err := p.Int("order", design.DefaultOrder)
		if err != nil {
			return nil, err
		}

		return FilterStep{Spec: design.FilterSpec{
			Kind:         kind,
			CutoffHz:     cutoff,
			HighCutoffHz: high,
			Order:        order,
		}}, nil
	})
	r.MustRegister(OpVolume, func(p Params) (Step, error) {
		factor, err := p.RequireFloat("factor")
		if err != nil {
			return nil, err
		}

		return VolumeStep{Factor: factor}, nil
	})
	r.MustRegister(OpFade, func(p Params) (Step, error) {
		in, err := p.Float("in", 0)
		if err != nil {
			return nil, err
		}

		out, err := p.Float("out", 0)
		if err != nil {
			return nil, err
		}

		return FadeStep{In: in, Out: out}, nil
	})
	r.MustRegister(OpTrim, func(p Params) (Step, error) {
		threshold, err := p.Float("threshold", amplitude.DefaultSilenceThreshold)
		if err != nil {
			return nil, err
		}

		return TrimStep{Threshold: threshold}, nil
	})

	return r
}
