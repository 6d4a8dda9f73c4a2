package randline

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	// DefaultMinSteps is the shortest segment, in calls to Next.
	DefaultMinSteps = 256
	// DefaultMaxSteps is the longest segment, in calls to Next.
	DefaultMaxSteps = 512
)

// Source supplies the randomness a Line draws on when it re-targets.
// *rand.Rand satisfies it.
type Source interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	src      Source
	minSteps int
	maxSteps int
}

func defaultConfig() config {
	return config{
		minSteps: DefaultMinSteps,
		maxSteps: DefaultMaxSteps,
	}
}

// WithSource sets the random source used for targets and durations.
func WithSource(src Source) Option {
	return func(cfg *config) error {
		if src == nil {
			return fmt.Errorf("randline: source must not be nil")
		}

		cfg.src = src

		return nil
	}
}

// WithSeed uses a math/rand source seeded with seed. A zero seed draws the
// seed from the wall clock.
func WithSeed(seed int64) Option {
	return func(cfg *config) error {
		cfg.src = newRand(seed)
		return nil
	}
}

// WithSegmentRange sets the inclusive range segment lengths are drawn from.
// minSteps must be at least 1 so the increment is always defined.
func WithSegmentRange(minSteps, maxSteps int) Option {
	return func(cfg *config) error {
		if minSteps < 1 {
			return fmt.Errorf("randline: min steps must be >= 1: %d", minSteps)
		}

		if maxSteps < minSteps {
			return fmt.Errorf("randline: max steps must be >= min steps: %d < %d", maxSteps, minSteps)
		}

		cfg.minSteps = minSteps
		cfg.maxSteps = maxSteps

		return nil
	}
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return rand.New(rand.NewSource(seed))
}
