package testutil

import "math/rand"

// StubSource is a scripted random source. Intn and Float64 pop values from
// their queues; an exhausted queue repeats its last value, and an empty one
// yields 0.
//
// Intn results are clamped to [0, n).
type StubSource struct {
	Ints   []int
	Floats []float64

	IntnCalls    []int
	Float64Calls int
}

// Intn returns the next scripted integer.
func (s *StubSource) Intn(n int) int {
	s.IntnCalls = append(s.IntnCalls, n)

	v := 0
	if len(s.Ints) > 0 {
		v = s.Ints[0]
		if len(s.Ints) > 1 {
			s.Ints = s.Ints[1:]
		}
	}

	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Float64 returns the next scripted float.
func (s *StubSource) Float64() float64 {
	s.Float64Calls++

	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[0]
	if len(s.Floats) > 1 {
		s.Floats = s.Floats[1:]
	}
	return v
}

// SeededRand returns a deterministic *rand.Rand for reproducible tests.
func SeededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
