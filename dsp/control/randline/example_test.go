package randline_test

import (
	"fmt"

	"github.com/cwbudde/algo-control/dsp/control/randline"
)

// halfSource always targets the middle of the range.
type halfSource struct{}

func (halfSource) Intn(int) int     { return 0 }
func (halfSource) Float64() float64 { return 0.5 }

func ExampleNew() {
	freq, err := randline.New(400, 80,
		randline.WithSource(halfSource{}),
		randline.WithSegmentRange(4, 4),
	)
	if err != nil {
		panic(err)
	}

	for range 6 {
		fmt.Printf("%.0f ", freq.Next())
	}
	fmt.Println()

	// Output:
	// 400 410 420 430 440 440
}

func ExampleLine_Fill() {
	amp := randline.MustNew(0.4, 0.2, randline.WithSeed(1))

	block := make([]float64, 256)
	amp.Fill(block)

	fmt.Printf("first=%.1f retargets=%d\n", block[0], amp.Retargets())

	// Output:
	// first=0.4 retargets=1
}
