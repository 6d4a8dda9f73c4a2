package time

import (
	"math"
	"strconv"
	"testing"
)

func makeBenchSignal(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.4 + 0.2*math.Sin(2*math.Pi*float64(i)/float64(n))
	}

	return out
}

func BenchmarkCalculate(b *testing.B) {
	for _, n := range []int{256, 4096, 65536} {
		signal := makeBenchSignal(n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(n * 8))

			for range b.N {
				Calculate(signal)
			}
		})
	}
}

func BenchmarkStreamingAdd(b *testing.B) {
	var s StreamingStats

	b.ReportAllocs()

	for i := range b.N {
		s.Add(float64(i & 255))
	}
}
