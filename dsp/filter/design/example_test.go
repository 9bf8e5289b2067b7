package design_test

import (
	"fmt"

	"github.com/cwbudde/algo-audiokit/dsp/filter/design"
)

func ExampleDesign() {
	f, err := design.Design(design.FilterSpec{
		Kind:     design.KindLow,
		CutoffHz: 1000,
		Order:    5,
	}, 22050)
	if err != nil {
		panic(err)
	}

	b, a := f.TransferFunction()
	fmt.Printf("sections=%d order=%d taps=%d/%d\n", len(f.Sections), f.Order(), len(b), len(a))
	fmt.Printf("cutoff gain=%.2f dB\n", f.MagnitudeDB(1000))

	// Output:
	// sections=3 order=5 taps=6/6
	// cutoff gain=-3.01 dB
}
