package trace

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-control/dsp/spectrum"
	"github.com/cwbudde/algo-control/dsp/window"
	"github.com/cwbudde/algo-control/stats/frequency"
	timestats "github.com/cwbudde/algo-control/stats/time"
)

const minSpectrumSize = 8

// Spectrum describes the frequency content of a control signal. Frequencies
// are in Hz of the control rate, not audio Hz.
type Spectrum struct {
	// BinHz is the spacing between magnitude bins.
	BinHz float64
	// Magnitude holds the one-sided amplitude spectrum from DC to Nyquist
	// of the mean-removed, Hann-windowed signal.
	Magnitude []float64
	// PeakHz is the frequency of the largest non-DC bin.
	PeakHz float64
	// Shape descriptors of the non-DC bins.
	Centroid float64
	Spread   float64
	Flatness float64
	Rolloff  float64
}

// Analyze computes the spectrum of values sampled at controlRate Hz. The
// signal is zero-padded to the next power of two.
func Analyze(values []float64, controlRate float64) (Spectrum, error) {
	n := len(values)
	if n < 2 {
		return Spectrum{}, fmt.Errorf("trace: spectrum needs at least 2 values: %d", n)
	}

	if controlRate <= 0 || math.IsNaN(controlRate) || math.IsInf(controlRate, 0) {
		return Spectrum{}, fmt.Errorf("trace: control rate must be > 0 and finite: %v", controlRate)
	}

	size := nextPowerOf2(max(n, minSpectrumSize))

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return Spectrum{}, fmt.Errorf("trace: failed to create FFT plan: %w", err)
	}

	frame := make([]float64, n)
	offset := make([]float64, n)
	mean := timestats.Calculate(values).Mean

	for i := range offset {
		offset[i] = -mean
	}

	copy(frame, values)
	vecmath.AddBlockInPlace(frame, offset)

	win := window.Apply(window.TypeHann, frame)

	in := make([]complex128, size)
	for i, v := range frame {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return Spectrum{}, fmt.Errorf("trace: forward FFT failed: %w", err)
	}

	mag := spectrum.Magnitude(spectrum.OneSided(out))
	bins := len(mag)

	if winSum := float64(n) * window.CoherentGain(win); winSum > 0 {
		vecmath.ScaleBlock(mag, mag, 2/winSum)
	}

	// Residual DC from windowing the mean-removed frame is left out of the
	// descriptors.
	shape := make([]float64, bins)
	copy(shape[1:], mag[1:])

	stats := frequency.Calculate(shape, controlRate)

	return Spectrum{
		BinHz:     controlRate / float64(size),
		Magnitude: mag,
		PeakHz:    stats.PeakFreq,
		Centroid:  stats.Centroid,
		Spread:    stats.Spread,
		Flatness:  stats.Flatness,
		Rolloff:   stats.Rolloff,
	}, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
