// Command audiokit cleans up audio files and extracts feature vectors.
//
// Usage:
//
//	audiokit info FILE...
//	audiokit process --recipe RECIPE.yaml IN.wav OUT.wav
//	audiokit batch --recipe RECIPE.yaml --out-dir DIR IN.wav...
//	audiokit features [--json] FILE...
//	audiokit windows [--size N] [--periodic]
//
// Recipes are YAML step lists:
//
//	name: cleanup
//	steps:
//	  - op: filter
//	    kind: high
//	    cutoff: 80
//	  - op: trim
//	  - op: normalize
//	    target: 0.9
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

var version = "0.1.0"

// Globals are flags shared by every command.
type Globals struct {
	Verbose bool             `short:"v" help:"Log every pipeline step"`
	JSON    bool             `help:"Write machine-readable JSON instead of tables"`
	Version kong.VersionFlag `help:"Show version information"`
}

func (g *Globals) logger() *slog.Logger {
	level := slog.LevelWarn
	if g.Verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Info     InfoCmd     `cmd:"" help:"Print format, duration and levels of WAV files"`
	Process  ProcessCmd  `cmd:"" help:"Run a recipe over one WAV file"`
	Batch    BatchCmd    `cmd:"" help:"Run a recipe over many WAV files concurrently"`
	Features FeaturesCmd `cmd:"" help:"Extract feature vectors from WAV files"`
	Windows  WindowsCmd  `cmd:"" help:"Print properties of the analysis windows"`
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("audiokit"),
		kong.Description("Audio clean-up pipeline and feature extractor"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	slog.SetDefault(cli.logger())

	ctx.FatalIfErrorf(ctx.Run(&cli.Globals))
}
