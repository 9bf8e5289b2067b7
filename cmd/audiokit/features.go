package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-audiokit/codec/wavio"
	"github.com/cwbudde/algo-audiokit/feature"
)

// FeaturesCmd extracts feature vectors without modifying the files.
type FeaturesCmd struct {
	Files []string `arg:"" name:"files" type:"existingfile" help:"WAV files to analyse"`
}

type fileFeatures struct {
	File     string         `json:"file"`
	Features feature.Vector `json:"features"`
}

func (c *FeaturesCmd) Run(g *Globals) error {
	out := make([]fileFeatures, 0, len(c.Files))

	for _, path := range c.Files {
		buf, err := wavio.DecodeFile(path)
		if err != nil {
			return err
		}

		vec, err := feature.Extract(buf)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		out = append(out, fileFeatures{File: path, Features: vec})
	}

	if g.JSON {
		return writeJSON(os.Stdout, out)
	}

	for i, f := range out {
		if i > 0 {
			fmt.Println()
		}

		fmt.Printf("%s:\n", f.File)

		if err := writeFeatureTable(os.Stdout, f.Features); err != nil {
			return err
		}
	}

	return nil
}

func writeFeatureTable(w io.Writer, v feature.Vector) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range v.Entries() {
		fmt.Fprintf(tw, "  %s\t%.6g\n", e.Name, e.Value)
	}

	return tw.Flush()
}
