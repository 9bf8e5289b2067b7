package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-audiokit/dsp/window"
)

// WindowsCmd prints the spectral properties of the supported analysis
// windows.
type WindowsCmd struct {
	Size     int      `default:"2048" help:"Window length in samples"`
	Periodic bool     `help:"Use the periodic (FFT) form instead of the symmetric one"`
	Names    []string `arg:"" optional:"" help:"Window names; all when omitted"`
}

type windowRow struct {
	Name         string  `json:"name"`
	Size         int     `json:"size"`
	CoherentGain float64 `json:"coherentGain"`
	ENBW         float64 `json:"enbw"`
}

var allWindows = []window.Type{window.TypeRectangular, window.TypeHann, window.TypeHamming, window.TypeBlackman}

func (c *WindowsCmd) Run(g *Globals) error {
	types := allWindows

	if len(c.Names) > 0 {
		types = make([]window.Type, 0, len(c.Names))

		for _, name := range c.Names {
			t, err := window.ParseType(name)
			if err != nil {
				return err
			}

			types = append(types, t)
		}
	}

	rows, err := windowRows(types, c.Size, c.Periodic)
	if err != nil {
		return err
	}

	if g.JSON {
		return writeJSON(os.Stdout, rows)
	}

	return writeWindowTable(os.Stdout, rows)
}

func windowRows(types []window.Type, size int, periodic bool) ([]windowRow, error) {
	if size < 2 {
		return nil, fmt.Errorf("window size %d: need at least 2 samples", size)
	}

	var opts []window.Option
	if periodic {
		opts = append(opts, window.WithPeriodic())
	}

	rows := make([]windowRow, 0, len(types))

	for _, t := range types {
		coeffs := window.Generate(t, size, opts...)

		enbw, err := window.EquivalentNoiseBandwidth(coeffs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t, err)
		}

		rows = append(rows, windowRow{Name: t.String(), Size: size, CoherentGain: window.CoherentGain(coeffs), ENBW: enbw})
	}

	return rows, nil
}

func writeWindowTable(w io.Writer, rows []windowRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\n")
	fmt.Fprintf(tw, "------\t----\t-------------\t-----------\n")

	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\n", r.Name, r.Size, r.CoherentGain, r.ENBW)
	}

	return tw.Flush()
}
