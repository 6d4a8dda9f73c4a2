package sim

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-control/dsp/core"
)

// Event is one scheduled instrument instance.
type Event struct {
	Instrument string
	Start      float64
	Duration   float64
}

// End returns the time the event stops, in seconds.
func (e Event) End() float64 { return e.Start + e.Duration }

// ParseScore reads i-statements from score text. Function-table statements
// are accepted and skipped, and an e-statement ends the score. In p2 and p3
// "." repeats the previous event's value; "+" as p2 starts right after the
// previous event.
func ParseScore(src string) ([]Event, error) {
	var (
		events []Event
		prev   *Event
	)

	for n, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(stripComment(line))
		if line == "" {
			continue
		}

		lineNo := n + 1

		switch line[0] {
		case 'e':
			return events, nil
		case 'f':
			continue
		case 'i':
		default:
			return nil, fmt.Errorf("sim: score line %d: unsupported statement %q", lineNo, line[:1])
		}

		fields := strings.Fields(line[1:])
		if len(fields) < 3 {
			return nil, fmt.Errorf("sim: score line %d: i-statement needs p1, p2 and p3", lineNo)
		}

		ev := Event{Instrument: strings.Trim(fields[0], `"`)}

		var err error

		ev.Start, err = pfield(fields[1], prev, "p2", func(p *Event) float64 { return p.Start })
		if err != nil {
			return nil, fmt.Errorf("sim: score line %d: %w", lineNo, err)
		}

		ev.Duration, err = pfield(fields[2], prev, "p3", func(p *Event) float64 { return p.Duration })
		if err != nil {
			return nil, fmt.Errorf("sim: score line %d: %w", lineNo, err)
		}

		if ev.Start < 0 {
			return nil, fmt.Errorf("sim: score line %d: start must be >= 0: %g", lineNo, ev.Start)
		}

		if ev.Duration < 0 {
			return nil, fmt.Errorf("sim: score line %d: held notes are not supported: p3=%g", lineNo, ev.Duration)
		}

		events = append(events, ev)
		prev = &events[len(events)-1]
	}

	return events, nil
}

func pfield(raw string, prev *Event, name string, carry func(*Event) float64) (float64, error) {
	switch raw {
	case ".":
		if prev == nil {
			return 0, fmt.Errorf("%s carry without a previous event", name)
		}

		return carry(prev), nil
	case "+":
		if name != "p2" {
			return 0, fmt.Errorf("%s does not accept +", name)
		}

		if prev == nil {
			return 0, fmt.Errorf("p2 + without a previous event")
		}

		return prev.End(), nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !core.IsFinite(v) {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}

	return v, nil
}

// ScoreEnd returns the latest event end time, or 0 for an empty score.
func ScoreEnd(events []Event) float64 {
	end := 0.0
	for _, ev := range events {
		end = max(end, ev.End())
	}

	return end
}
