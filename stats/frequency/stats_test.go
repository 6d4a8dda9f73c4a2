package frequency

import (
	"math"
	"testing"
)

const tolerance = 1e-10

func TestCalculate_SingleBin(t *testing.T) {
	// 9 bins at rate 16: bin i is i Hz.
	mag := make([]float64, 9)
	mag[3] = 2

	s := Calculate(mag, 16)

	if s.BinCount != 9 || s.MaxBin != 3 || s.Max != 2 {
		t.Fatalf("BinCount/MaxBin/Max = %d/%d/%g", s.BinCount, s.MaxBin, s.Max)
	}
	if s.PeakFreq != 3 || s.Centroid != 3 || s.Rolloff != 3 {
		t.Fatalf("PeakFreq/Centroid/Rolloff = %g/%g/%g, want 3", s.PeakFreq, s.Centroid, s.Rolloff)
	}
	if s.Spread != 0 {
		t.Fatalf("Spread = %g, want 0", s.Spread)
	}
	if s.Flatness != 0 {
		t.Fatalf("Flatness = %g, want 0 with zero bins", s.Flatness)
	}
	if s.Sum != 2 || s.Energy != 4 {
		t.Fatalf("Sum/Energy = %g/%g", s.Sum, s.Energy)
	}
}

func TestCalculate_Flat(t *testing.T) {
	mag := []float64{1, 1, 1, 1, 1}

	s := Calculate(mag, 8)

	if math.Abs(s.Flatness-1) > tolerance {
		t.Fatalf("Flatness = %g, want 1", s.Flatness)
	}
	// Bins at 0..4 Hz, equal weight.
	if math.Abs(s.Centroid-2) > tolerance {
		t.Fatalf("Centroid = %g, want 2", s.Centroid)
	}
	if math.Abs(s.Spread-math.Sqrt(2)) > tolerance {
		t.Fatalf("Spread = %g, want sqrt(2)", s.Spread)
	}
	// 85% of 5 units is reached at the fifth bin.
	if s.Rolloff != 4 {
		t.Fatalf("Rolloff = %g, want 4", s.Rolloff)
	}
}

func TestCalculate_Degenerate(t *testing.T) {
	if s := Calculate(nil, 100); s != (Stats{}) {
		t.Fatalf("Calculate(nil) = %+v", s)
	}

	s := Calculate([]float64{3}, 100)
	if s.BinCount != 1 || s.DC != 3 || s.Centroid != 0 {
		t.Fatalf("Calculate([3]) = %+v", s)
	}

	if s := Calculate(make([]float64, 8), 100); s.Centroid != 0 || s.Rolloff != 0 {
		t.Fatalf("silent spectrum = %+v", s)
	}
}

func TestStandaloneDescriptors(t *testing.T) {
	mag := []float64{0, 1, 3, 1, 0}

	if got := Centroid(mag, 8); math.Abs(got-2) > tolerance {
		t.Errorf("Centroid = %g, want 2", got)
	}
	if got := Rolloff(mag, 8, 0.5); got != 2 {
		t.Errorf("Rolloff(0.5) = %g, want 2", got)
	}
	if got := Flatness([]float64{0, 2, 2}); math.Abs(got-1) > tolerance {
		t.Errorf("Flatness = %g, want 1", got)
	}
	if got := BinFreq(2, 8, 5); got != 2 {
		t.Errorf("BinFreq = %g, want 2", got)
	}
	if got := BinFreq(2, 8, 1); got != 0 {
		t.Errorf("BinFreq with one bin = %g, want 0", got)
	}
}
