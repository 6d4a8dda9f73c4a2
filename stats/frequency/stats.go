// Package frequency computes shape descriptors of one-sided magnitude
// spectra.
package frequency

import "math"

// DefaultRolloffPercent is the energy fraction used by [Calculate].
const DefaultRolloffPercent = 0.85

// Stats holds frequency-domain statistics computed from a magnitude spectrum.
type Stats struct {
	BinCount int
	DC       float64 // bin 0 magnitude
	Sum      float64 // sum of magnitudes
	Max      float64
	MaxBin   int
	PeakFreq float64 // frequency of MaxBin (Hz)
	Energy   float64 // sum of squared magnitudes
	// Spectral shape descriptors
	Centroid float64 // spectral centroid (Hz)
	Spread   float64 // spectral spread (Hz)
	Flatness float64 // spectral flatness (Wiener entropy), 0..1
	Rolloff  float64 // frequency below which 85% energy (Hz)
}

// binFreq returns the frequency of bin i of a one-sided spectrum with
// binCount bins sampled at sampleRate.
func binFreq(i int, sampleRate float64, binCount int) float64 {
	return float64(i) * sampleRate / float64(2*(binCount-1))
}

// BinFreq returns the frequency in Hz of bin i of a one-sided spectrum with
// binCount bins.
func BinFreq(i int, sampleRate float64, binCount int) float64 {
	if binCount < 2 {
		return 0
	}
	return binFreq(i, sampleRate, binCount)
}

// Calculate computes all statistics from a magnitude spectrum (linear scale).
//
// The magnitude slice represents bins from 0 (DC) to Nyquist, length
// FFTSize/2 + 1. The frequency of bin i is:
//
//	f_i = i * sampleRate / (2 * (len(magnitude) - 1))
func Calculate(magnitude []float64, sampleRate float64) Stats {
	n := len(magnitude)
	if n == 0 {
		return Stats{}
	}

	s := Stats{
		BinCount: n,
		DC:       magnitude[0],
		Max:      magnitude[0],
	}

	for i, v := range magnitude {
		s.Sum += v
		s.Energy += v * v

		if v > s.Max {
			s.Max = v
			s.MaxBin = i
		}
	}

	if n < 2 {
		return s
	}

	s.PeakFreq = binFreq(s.MaxBin, sampleRate, n)
	s.Centroid = centroid(magnitude, sampleRate, s.Sum)
	s.Spread = spread(magnitude, sampleRate, s.Centroid, s.Sum)
	s.Flatness = flatness(magnitude)
	s.Rolloff = rolloff(magnitude, sampleRate, DefaultRolloffPercent, s.Energy)

	return s
}

// Centroid returns the spectral centroid in Hz.
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(magnitude []float64, sampleRate float64) float64 {
	if len(magnitude) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range magnitude {
		sum += v
	}
	return centroid(magnitude, sampleRate, sum)
}

func centroid(magnitude []float64, sampleRate float64, sumMag float64) float64 {
	n := len(magnitude)
	if n < 2 || sumMag == 0 {
		return 0
	}
	weightedSum := 0.0
	for i, v := range magnitude {
		weightedSum += binFreq(i, sampleRate, n) * v
	}
	return weightedSum / sumMag
}

// spread is the standard deviation of the spectrum around the centroid.
func spread(magnitude []float64, sampleRate float64, cent float64, sumMag float64) float64 {
	n := len(magnitude)
	if n < 2 || sumMag == 0 {
		return 0
	}
	weightedSqSum := 0.0
	for i, v := range magnitude {
		diff := binFreq(i, sampleRate, n) - cent
		weightedSqSum += diff * diff * v
	}
	return math.Sqrt(weightedSqSum / sumMag)
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
//
// Flatness = exp(mean(log(|X_i|))) / mean(|X_i|)
//
// The DC bin is excluded. If any considered bin is zero, 0 is returned.
func Flatness(magnitude []float64) float64 {
	return flatness(magnitude)
}

func flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	nBins := float64(n - 1)
	sumLin, sumLog := 0.0, 0.0

	for _, v := range magnitude[1:] {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	return math.Exp(sumLog/nBins) / (sumLin / nBins)
}

// Rolloff returns the frequency below which the given fraction (0..1) of
// spectral energy lies. Energy is the sum of squared magnitudes.
func Rolloff(magnitude []float64, sampleRate float64, percent float64) float64 {
	if len(magnitude) < 2 {
		return 0
	}
	energy := 0.0
	for _, v := range magnitude {
		energy += v * v
	}
	return rolloff(magnitude, sampleRate, percent, energy)
}

func rolloff(magnitude []float64, sampleRate float64, percent float64, totalEnergy float64) float64 {
	n := len(magnitude)
	if n < 2 || totalEnergy == 0 {
		return 0
	}
	threshold := percent * totalEnergy
	cumEnergy := 0.0
	for i, v := range magnitude {
		cumEnergy += v * v
		if cumEnergy >= threshold {
			return binFreq(i, sampleRate, n)
		}
	}
	return binFreq(n-1, sampleRate, n)
}
