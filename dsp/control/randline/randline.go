package randline

import "fmt"

// Line is a bounded random walk. The zero value is not usable; construct
// with New.
type Line struct {
	base  float64
	scale float64

	current   float64
	target    float64
	increment float64
	remaining int

	minSteps int
	maxSteps int
	src      Source

	retargets int
}

// New constructs a Line producing values in [base, base+scale).
//
// The walk starts at the normalized value 0, so the first call to Next
// returns base. With default options New never fails.
func New(base, scale float64, opts ...Option) (*Line, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.src == nil {
		cfg.src = newRand(0)
	}

	l := &Line{
		minSteps: cfg.minSteps,
		maxSteps: cfg.maxSteps,
		src:      cfg.src,
	}

	l.retarget()

	l.base = base
	l.scale = scale

	return l, nil
}

// MustNew is like New but panics on error.
func MustNew(base, scale float64, opts ...Option) *Line {
	l, err := New(base, scale, opts...)
	if err != nil {
		panic(fmt.Sprintf("randline: %v", err))
	}

	return l
}

// Next returns the next control value and advances the walk by one step.
func (l *Line) Next() float64 {
	l.remaining--
	if l.remaining < 0 {
		l.retarget()
	}

	out := l.current
	l.current += l.increment

	return l.base + l.scale*out
}

// Fill writes consecutive values into dst, one call to Next per element.
func (l *Line) Fill(dst []float64) {
	for i := range dst {
		dst[i] = l.Next()
	}
}

// Reset returns the walk to the normalized value 0 and picks a new segment.
// Base and range are kept.
func (l *Line) Reset() {
	l.current = 0
	l.retarget()
}

// retarget draws the segment length first and the target second.
func (l *Line) retarget() {
	steps := l.minSteps
	if span := l.maxSteps - l.minSteps; span > 0 {
		steps += l.src.Intn(span + 1)
	}

	l.remaining = steps
	l.target = l.src.Float64()
	l.increment = (l.target - l.current) / float64(steps)
	l.retargets++
}

// Base returns the output offset.
func (l *Line) Base() float64 { return l.base }

// Range returns the output scale.
func (l *Line) Range() float64 { return l.scale }

// Current returns the normalized value the next call to Next will emit.
func (l *Line) Current() float64 { return l.current }

// Target returns the normalized value of the current segment's end.
func (l *Line) Target() float64 { return l.target }

// Remaining returns the step count left in the current segment.
func (l *Line) Remaining() int { return l.remaining }

// Increment returns the per-call normalized delta.
func (l *Line) Increment() float64 { return l.increment }

// Retargets returns how many segments have been started, including the
// initial one.
func (l *Line) Retargets() int { return l.retargets }
