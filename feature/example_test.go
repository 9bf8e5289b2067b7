package feature_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiokit/dsp/buffer"
	"github.com/cwbudde/algo-audiokit/feature"
)

func ExampleExtract() {
	const rate = 22050

	x := make([]float64, rate)
	for i := range x {
		x[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/rate)
	}

	buf, _ := buffer.New([][]float64{x}, rate)

	v, err := feature.Extract(buf)
	if err != nil {
		fmt.Println(err)
		return
	}

	maxVal, _ := v.Get(feature.KeyMax)
	fmt.Printf("keys=%d max=%.2f\n", v.Len(), maxVal)
	// Output:
	// keys=23 max=0.50
}
