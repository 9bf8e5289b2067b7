package spectrum_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiokit/dsp/spectrum"
)

func ExampleMagnitude() {
	bins := []complex128{1 + 0i, 0 + 1i, -1 + 0i}
	mag := spectrum.Magnitude(bins)
	fmt.Printf("%.1f %.1f %.1f\n", mag[0], mag[1], mag[2])
	// Output:
	// 1.0 1.0 1.0
}

func ExampleSTFT() {
	const rate = 22050

	x := make([]float64, rate)
	for i := range x {
		x[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/rate)
	}

	frames, err := spectrum.STFT(x, spectrum.DefaultSTFTConfig())
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("frames=%d bins=%d\n", len(frames), len(frames[0]))
	// Output:
	// frames=44 bins=1025
}

func ExampleHzToMel() {
	fmt.Printf("%.1f %.1f\n", spectrum.HzToMel(500), spectrum.HzToMel(1000))
	// Output:
	// 7.5 15.0
}
