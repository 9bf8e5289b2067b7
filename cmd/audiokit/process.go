package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"

	"github.com/cwbudde/algo-audiokit/codec/wavio"
	"github.com/cwbudde/algo-audiokit/dsp/buffer"
	"github.com/cwbudde/algo-audiokit/dsp/dither"
	"github.com/cwbudde/algo-audiokit/feature"
	"github.com/cwbudde/algo-audiokit/pipeline"
)

// RecipeFlags are shared by process and batch.
type RecipeFlags struct {
	Recipe   string `short:"r" required:"" type:"existingfile" help:"YAML recipe with the steps to run"`
	Features bool   `short:"f" help:"Extract features after the last step, even if the recipe does not ask for it"`
	BitDepth int    `default:"16" enum:"8,16,24,32" help:"PCM bit depth of the output files"`
	Dither   string `default:"none" enum:"none,rectangular,triangular" help:"Dither applied when quantizing the output"`
}

func (f RecipeFlags) encodeOptions() ([]wavio.Option, error) {
	t, err := dither.ParseType(f.Dither)
	if err != nil {
		return nil, err
	}

	if t == dither.None {
		return nil, nil
	}

	return []wavio.Option{wavio.WithDither(t, dither.WithNoiseShaping(true))}, nil
}

func (f RecipeFlags) load(logger *slog.Logger) (*pipeline.Pipeline, error) {
	rd, err := os.Open(f.Recipe)
	if err != nil {
		return nil, err
	}
	defer rd.Close()

	opts := []pipeline.Option{pipeline.WithLogger(logger)}
	if f.Features {
		opts = append(opts, pipeline.WithFeatures(feature.DefaultConfig()))
	}

	p, err := pipeline.LoadRecipe(rd, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Recipe, err)
	}

	return p, nil
}

// ProcessCmd runs a recipe over a single file.
type ProcessCmd struct {
	RecipeFlags

	Input  string `arg:"" type:"existingfile" help:"Input WAV file"`
	Output string `arg:"" type:"path" help:"Output WAV file"`
}

func (c *ProcessCmd) Run(g *Globals) error {
	logger := g.logger()

	p, err := c.load(logger)
	if err != nil {
		return err
	}

	buf, err := wavio.DecodeFile(c.Input)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := p.Run(ctx, buf)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Input, err)
	}

	encOpts, err := c.encodeOptions()
	if err != nil {
		return err
	}

	if err := wavio.EncodeFile(c.Output, buf, c.BitDepth, encOpts...); err != nil {
		return err
	}

	logger.Info("processed", "input", c.Input, "output", c.Output, "steps", len(res.Steps))

	return report(os.Stdout, g.JSON, []fileResult{{File: c.Input, Output: c.Output, Result: res}})
}

// BatchCmd runs a recipe over many files on a worker pool.
type BatchCmd struct {
	RecipeFlags

	OutDir  string   `required:"" type:"path" help:"Directory for the processed files"`
	Workers int      `short:"j" default:"0" help:"Concurrent workers, 0 for one per CPU"`
	Inputs  []string `arg:"" type:"existingfile" help:"Input WAV files"`
}

func (c *BatchCmd) Run(g *Globals) error {
	logger := g.logger()

	p, err := c.load(logger)
	if err != nil {
		return err
	}

	encOpts, err := c.encodeOptions()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.OutDir, 0o755); err != nil {
		return err
	}

	bufs := make([]*buffer.Buffer, len(c.Inputs))
	for i, path := range c.Inputs {
		if bufs[i], err = wavio.DecodeFile(path); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, runErr := pipeline.RunBatch(ctx, p, bufs, c.Workers)

	out := make([]fileResult, 0, len(c.Inputs))

	for i, path := range c.Inputs {
		if !completed(p, results[i]) {
			continue
		}

		dst := filepath.Join(c.OutDir, filepath.Base(path))
		if err := wavio.EncodeFile(dst, bufs[i], c.BitDepth, encOpts...); err != nil {
			return err
		}

		out = append(out, fileResult{File: path, Output: dst, Result: results[i]})
	}

	if err := report(os.Stdout, g.JSON, out); err != nil {
		return err
	}

	return runErr
}

// completed reports whether every step, and extraction when enabled, ran.
func completed(p *pipeline.Pipeline, res pipeline.Result) bool {
	if len(res.Steps) != len(p.Steps()) {
		return false
	}

	return !p.ExtractsFeatures() || res.Features != nil
}

type fileResult struct {
	File   string          `json:"file"`
	Output string          `json:"output"`
	Result pipeline.Result `json:"result"`
}

func report(w io.Writer, asJSON bool, results []fileResult) error {
	if asJSON {
		return writeJSON(w, results)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Input\tOutput\tSteps\tWarnings\n")
	fmt.Fprintf(tw, "-----\t------\t-----\t--------\n")

	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", r.File, r.Output, len(r.Result.Steps), len(r.Result.Warnings()))
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	for _, r := range results {
		for _, warn := range r.Result.Warnings() {
			fmt.Fprintf(w, "%s: %s\n", r.File, warn)
		}

		if r.Result.Features != nil {
			fmt.Fprintf(w, "\n%s features:\n", r.File)

			if err := writeFeatureTable(w, *r.Result.Features); err != nil {
				return err
			}
		}
	}

	return nil
}
