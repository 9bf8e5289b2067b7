package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/algo-audiokit/dsp/buffer"
	"github.com/cwbudde/algo-audiokit/feature"
)

// ErrInvalidRecipe reports a recipe or step description that cannot be
// turned into a pipeline.
var ErrInvalidRecipe = errors.New("invalid recipe")

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for step tracing and warnings.
// A nil logger selects slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithFeatures enables feature extraction after the last step.
func WithFeatures(cfg feature.Config) Option {
	return func(p *Pipeline) {
		p.features = &cfg
	}
}

// Pipeline applies steps in order to a buffer it does not retain.
type Pipeline struct {
	name     string
	steps    []Step
	features *feature.Config
	logger   *slog.Logger
}

// New creates a pipeline from steps.
func New(name string, steps []Step, opts ...Option) (*Pipeline, error) {
	for i, s := range steps {
		if s == nil {
			return nil, fmt.Errorf("step %d is nil: %w", i, ErrInvalidRecipe)
		}
	}

	p := &Pipeline{name: name, steps: append([]Step(nil), steps...)}
	for _, opt := range opts {
		opt(p)
	}

	if p.features != nil {
		if err := p.features.Validate(); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Name returns the pipeline name.
func (p *Pipeline) Name() string { return p.name }

// Steps returns the step names in execution order.
func (p *Pipeline) Steps() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name()
	}

	return names
}

// ExtractsFeatures reports whether Run computes a feature vector.
func (p *Pipeline) ExtractsFeatures() bool { return p.features != nil }

func (p *Pipeline) log() *slog.Logger {
	if p.logger == nil {
		return slog.Default()
	}

	return p.logger
}

// StepReport records one executed step.
type StepReport struct {
	Index   int           `json:"index"`
	Name    string        `json:"name"`
	Result  StepResult    `json:"result"`
	Elapsed time.Duration `json:"elapsed"`
}

// Result is the outcome of Run.
type Result struct {
	Steps    []StepReport    `json:"steps"`
	Features *feature.Vector `json:"features,omitempty"`
}

// Warnings returns human-readable notes for non-fatal step outcomes.
func (r Result) Warnings() []string {
	var out []string

	for _, s := range r.Steps {
		if s.Result.ClipPrevented {
			out = append(out, fmt.Sprintf("step %d (%s): clipping prevented, gain %.4f", s.Index, s.Name, s.Result.Gain))
		}

		if len(s.Result.SilentChannels) > 0 {
			out = append(out, fmt.Sprintf("step %d (%s): silent channels %v", s.Index, s.Name, s.Result.SilentChannels))
		}
	}

	return out
}

// Run applies every step to buf in order. It stops at the first failing
// step; steps already applied stay applied. The context is checked before
// each step.
func (p *Pipeline) Run(ctx context.Context, buf *buffer.Buffer) (Result, error) {
	if err := buf.Validate(); err != nil {
		return Result{}, err
	}

	logger := p.log().With("pipeline", p.name)

	res := Result{Steps: make([]StepReport, 0, len(p.steps))}

	for i, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		start := time.Now()

		out, err := step.Apply(buf)
		if err != nil {
			logger.Error("step failed", "index", i, "step", step.Name(), "error", err)
			return res, fmt.Errorf("step %d (%s): %w", i, step.Name(), err)
		}

		report := StepReport{Index: i, Name: step.Name(), Result: out, Elapsed: time.Since(start)}
		res.Steps = append(res.Steps, report)

		logger.Debug("step done", "index", i, "step", step.Name(), "len", buf.Len(), "elapsed", report.Elapsed)

		if out.ClipPrevented {
			logger.Warn("clipping prevented", "index", i, "gain", out.Gain)
		}

		if len(out.SilentChannels) > 0 {
			logger.Warn("silent channels", "index", i, "channels", out.SilentChannels)
		}
	}

	if p.features == nil {
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	vec, err := feature.ExtractWithConfig(buf, *p.features)
	if err != nil {
		return res, fmt.Errorf("features: %w", err)
	}

	res.Features = &vec

	return res, nil
}
