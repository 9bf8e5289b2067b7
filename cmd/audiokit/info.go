package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-audiokit/codec/wavio"
	"github.com/cwbudde/algo-audiokit/dsp/buffer"
	"github.com/cwbudde/algo-audiokit/dsp/core"
)

// InfoCmd prints buffer metadata.
type InfoCmd struct {
	Files []string `arg:"" name:"files" type:"existingfile" help:"WAV files to inspect"`
}

type fileInfo struct {
	File string `json:"file"`
	buffer.Info
}

func (c *InfoCmd) Run(g *Globals) error {
	infos := make([]fileInfo, 0, len(c.Files))

	for _, path := range c.Files {
		buf, err := wavio.DecodeFile(path)
		if err != nil {
			return err
		}

		infos = append(infos, fileInfo{File: path, Info: buf.Info()})
	}

	if g.JSON {
		return writeJSON(os.Stdout, infos)
	}

	return writeInfoTable(os.Stdout, infos)
}

func writeInfoTable(w io.Writer, infos []fileInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "File\tRate\tChannels\tSamples\tDuration [s]\tPeak [dBFS]\tRMS [dBFS]\n")
	fmt.Fprintf(tw, "----\t----\t--------\t-------\t------------\t-----------\t----------\n")

	for _, in := range infos {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.3f\t%.2f\t%.2f\n",
			in.File,
			in.SampleRate,
			in.NumChannels,
			in.Samples,
			in.Duration,
			core.LinearToDB(in.Peak),
			core.LinearToDB(in.RMS),
		)
	}

	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
