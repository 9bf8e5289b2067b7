package amplitude_test

import (
	"fmt"

	"github.com/cwbudde/algo-audiokit/dsp/amplitude"
	"github.com/cwbudde/algo-audiokit/dsp/buffer"
)

func ExampleChangeVolume() {
	buf, _ := buffer.New([][]float64{{0.5, -0.25}, {0.1, 0.2}}, 44100)

	report, err := amplitude.ChangeVolume(buf, 4)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("clip prevented=%v peak=%.2f\n", report.ClipPrevented, buf.PeakAbsolute())
	// Output:
	// clip prevented=true peak=0.98
}

func ExampleTrimSilence() {
	buf, _ := buffer.New([][]float64{{0, 0, 0.5, -0.5, 0.3, 0}}, 8000)

	report, _ := amplitude.TrimSilence(buf, amplitude.DefaultSilenceThreshold)
	fmt.Println(report.Start, report.End, buf.Channel(0))
	// Output:
	// 2 5 [0.5 -0.5 0.3]
}
