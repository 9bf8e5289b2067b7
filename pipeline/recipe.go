package pipeline

import (
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/cwbudde/algo-audiokit/feature"
)

// Recipe is the YAML form of a pipeline:
//
//	name: voice-cleanup
//	features: true
//	steps:
//	  - op: filter
//	    kind: band
//	    cutoff: 80
//	    high_cutoff: 8000
//	  - op: trim
//	  - op: normalize
//	    target: 0.9
type Recipe struct {
	Name     string           `yaml:"name"`
	Features bool             `yaml:"features"`
	Steps    []map[string]any `yaml:"steps"`
}

// Params converts each step map into Params. Numbers (and numeric
// strings) go to Num, other scalars to Str.
func (r Recipe) Params() ([]Params, error) {
	out := make([]Params, 0, len(r.Steps))

	for i, raw := range r.Steps {
		p := Params{Num: map[string]float64{}, Str: map[string]string{}}

		for key, val := range raw {
			if key == "op" {
				op, ok := val.(string)
				if !ok || op == "" {
					return nil, fmt.Errorf("step %d: op must be a non-empty string: %w", i, ErrInvalidRecipe)
				}

				p.Op = op

				continue
			}

			switch v := val.(type) {
			case int:
				p.Num[key] = float64(v)
			case int64:
				p.Num[key] = float64(v)
			case uint64:
				p.Num[key] = float64(v)
			case float64:
				p.Num[key] = v
			case bool:
				p.Str[key] = strconv.FormatBool(v)
			case string:
				if f, err := strconv.ParseFloat(v, 64); err == nil {
					p.Num[key] = f
				} else {
					p.Str[key] = v
				}
			default:
				return nil, fmt.Errorf("step %d: parameter %q has unsupported type %T: %w", i, key, val, ErrInvalidRecipe)
			}
		}

		if p.Op == "" {
			return nil, fmt.Errorf("step %d: missing op: %w", i, ErrInvalidRecipe)
		}

		out = append(out, p)
	}

	return out, nil
}

// Build turns the recipe into a pipeline using reg. A nil reg selects
// DefaultRegistry.
func (r Recipe) Build(reg *Registry, opts ...Option) (*Pipeline, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}

	params, err := r.Params()
	if err != nil {
		return nil, err
	}

	steps := make([]Step, 0, len(params))

	for i, p := range params {
		step, err := reg.Build(p)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}

		steps = append(steps, step)
	}

	if r.Features {
		opts = append([]Option{WithFeatures(feature.DefaultConfig())}, opts...)
	}

	return New(r.Name, steps, opts...)
}

// ParseRecipe decodes a YAML recipe and builds it with DefaultRegistry.
func ParseRecipe(data []byte, opts ...Option) (*Pipeline, error) {
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode recipe: %v: %w", err, ErrInvalidRecipe)
	}

	return r.Build(nil, opts...)
}

// LoadRecipe reads a YAML recipe from rd.
func LoadRecipe(rd io.Reader, opts ...Option) (*Pipeline, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("read recipe: %w", err)
	}

	return ParseRecipe(data, opts...)
}
