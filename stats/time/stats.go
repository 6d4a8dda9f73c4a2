// Package time computes time-domain statistics of sampled signals such as
// per-block control values.
package time

import "math"

// Stats holds time-domain statistics of a signal.
type Stats struct {
	Length        int
	Mean          float64 // DC
	RMS           float64
	Max           float64
	MaxPos        int
	Min           float64
	MinPos        int
	Peak          float64 // max(|max|, |min|)
	Range         float64 // max - min
	Variance      float64
	StdDev        float64
	ZeroCrossings int
	// Turns counts slope reversals: rising to falling or falling to rising.
	// Flat stretches do not end a slope.
	Turns int
}

// Calculate computes all statistics of signal in one pass.
func Calculate(signal []float64) Stats {
	var s StreamingStats

	s.Update(signal)

	return s.Result()
}

// StreamingStats accumulates statistics one sample or block at a time. The
// zero value is ready to use. It gives the same result as [Calculate] over
// the concatenated input.
type StreamingStats struct {
	n             int
	mean          float64
	m2            float64
	sumSq         float64
	maxVal        float64
	maxPos        int
	minVal        float64
	minPos        int
	zeroCrossings int
	last          float64
	lastSlope     int
	turns         int
}

// NewStreamingStats creates a new StreamingStats accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update adds a block of samples.
func (s *StreamingStats) Update(samples []float64) {
	for _, x := range samples {
		s.Add(x)
	}
}

// Add adds a single sample.
func (s *StreamingStats) Add(x float64) {
	s.n++

	// Welford update.
	delta := x - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (x - s.mean)

	s.sumSq += x * x

	pos := s.n - 1
	if pos == 0 {
		s.maxVal, s.maxPos = x, 0
		s.minVal, s.minPos = x, 0
		s.last = x

		return
	}

	if x > s.maxVal {
		s.maxVal, s.maxPos = x, pos
	}

	if x < s.minVal {
		s.minVal, s.minPos = x, pos
	}

	if s.last*x < 0 {
		s.zeroCrossings++
	}

	slope := 0
	switch {
	case x > s.last:
		slope = 1
	case x < s.last:
		slope = -1
	}

	if slope != 0 {
		if s.lastSlope != 0 && slope != s.lastSlope {
			s.turns++
		}

		s.lastSlope = slope
	}

	s.last = x
}

// Len returns the number of samples added so far.
func (s *StreamingStats) Len() int { return s.n }

// Reset clears all accumulated data.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}

// Result computes the statistics of the samples added so far.
func (s *StreamingStats) Result() Stats {
	if s.n == 0 {
		return Stats{}
	}

	nf := float64(s.n)
	variance := s.m2 / nf

	return Stats{
		Length:        s.n,
		Mean:          s.mean,
		RMS:           math.Sqrt(s.sumSq / nf),
		Max:           s.maxVal,
		MaxPos:        s.maxPos,
		Min:           s.minVal,
		MinPos:        s.minPos,
		Peak:          math.Max(math.Abs(s.maxVal), math.Abs(s.minVal)),
		Range:         s.maxVal - s.minVal,
		Variance:      variance,
		StdDev:        math.Sqrt(variance),
		ZeroCrossings: s.zeroCrossings,
		Turns:         s.turns,
	}
}
