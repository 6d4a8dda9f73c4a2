package randline

import (
	"strconv"
	"testing"
)

func BenchmarkNext(b *testing.B) {
	l := MustNew(400, 80, WithSeed(1))

	b.ReportAllocs()
	b.ResetTimer()

	var sink float64
	for i := 0; i < b.N; i++ {
		sink += l.Next()
	}

	_ = sink
}

func BenchmarkFill(b *testing.B) {
	sizes := []int{32, 256, 4096}

	for _, n := range sizes {
		b.Run("n="+strconv.Itoa(n), func(b *testing.B) {
			l := MustNew(0.4, 0.2, WithSeed(1))
			buf := make([]float64, n)

			b.ReportAllocs()
			b.SetBytes(int64(n * 8))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				l.Fill(buf)
			}
		})
	}
}
