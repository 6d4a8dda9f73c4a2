package window

import (
	"math"
	"testing"
)

func TestGenerateHannSymmetric(t *testing.T) {
	w := Generate(TypeHann, 5)
	want := []float64{0, 0.5, 1, 0.5, 0}

	for i := range want {
		if math.Abs(w[i]-want[i]) > 1e-12 {
			t.Fatalf("Generate(Hann, 5) = %v, want %v", w, want)
		}
	}
}

func TestGeneratePeriodic(t *testing.T) {
	a := Generate(TypeHann, 16)
	b := Generate(TypeHann, 16, WithPeriodic())

	if a[15] > 1e-12 {
		t.Fatalf("symmetric last = %v, want 0", a[15])
	}
	if b[15] < 1e-3 {
		t.Fatalf("periodic last = %v, want > 0", b[15])
	}
	if b[8] != 1 {
		t.Fatalf("periodic center = %v, want 1", b[8])
	}
}

func TestGenerateEdgeLengths(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("Generate(0) = %v, want nil", w)
	}
	if w := Generate(TypeHann, 1); len(w) != 1 || w[0] != 1 {
		t.Fatalf("Generate(1) = %v, want [1]", w)
	}
}

func TestTypes(t *testing.T) {
	tests := []struct {
		typ  Type
		edge float64
		gain float64
	}{
		{TypeRectangular, 1, 1},
		{TypeHann, 0, 0.5},
		{TypeHamming, 0.08, 0.54},
	}

	for _, tt := range tests {
		w := Generate(tt.typ, 1025, WithPeriodic())
		if math.Abs(w[0]-tt.edge) > 1e-12 {
			t.Errorf("type %d edge = %v, want %v", tt.typ, w[0], tt.edge)
		}
		if g := CoherentGain(w); math.Abs(g-tt.gain) > 1e-3 {
			t.Errorf("type %d coherent gain = %v, want %v", tt.typ, g, tt.gain)
		}
	}
}

func TestApply(t *testing.T) {
	buf := []float64{2, 2, 2, 2, 2}
	coeffs := Apply(TypeHann, buf)

	for i := range buf {
		if math.Abs(buf[i]-2*coeffs[i]) > 1e-12 {
			t.Fatalf("buf[%d] = %v, want %v", i, buf[i], 2*coeffs[i])
		}
	}

	if Apply(TypeHann, nil) != nil {
		t.Fatal("Apply(nil) should return nil")
	}
}

func TestHannValidation(t *testing.T) {
	if _, err := Hann(0); err == nil {
		t.Fatal("expected error for size 0")
	}
	if w, err := Hann(8); err != nil || len(w) != 8 {
		t.Fatalf("Hann(8) = %v, %v", w, err)
	}
	if CoherentGain(nil) != 0 {
		t.Fatal("CoherentGain(nil) should be 0")
	}
}
