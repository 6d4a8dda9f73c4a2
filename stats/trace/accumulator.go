package trace

import timestats "github.com/cwbudde/algo-control/stats/time"

// Summary holds statistics of one control channel over a performance.
type Summary struct {
	Channel  string
	Length   int
	Mean     float64
	Variance float64
	StdDev   float64
	Min      float64
	MinBlock int
	Max      float64
	MaxBlock int
	Range    float64 // max - min
	// Turns counts slope reversals, i.e. how often the signal changed from
	// rising to falling or back.
	Turns int
}

// accumulator tracks one channel's statistics from the block it was first
// seen.
type accumulator struct {
	first int
	stats timestats.StreamingStats
}

func (a *accumulator) update(block int, x float64) {
	if a.stats.Len() == 0 {
		a.first = block
	}

	a.stats.Add(x)
}

func (a *accumulator) summary(name string) Summary {
	if a.stats.Len() == 0 {
		return Summary{Channel: name}
	}

	r := a.stats.Result()

	return Summary{
		Channel:  name,
		Length:   r.Length,
		Mean:     r.Mean,
		Variance: r.Variance,
		StdDev:   r.StdDev,
		Min:      r.Min,
		MinBlock: a.first + r.MinPos,
		Max:      r.Max,
		MaxBlock: a.first + r.MaxPos,
		Range:    r.Range,
		Turns:    r.Turns,
	}
}
