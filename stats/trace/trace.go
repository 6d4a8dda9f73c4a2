package trace

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/cwbudde/algo-control/dsp/core"
	"github.com/cwbudde/algo-control/engine"
)

// Option configures a Trace.
type Option func(*Trace) error

// WithControlRate sets the block rate in Hz used for times and spectra.
// Engines that report their timing on start override it.
func WithControlRate(rate float64) Option {
	return func(t *Trace) error {
		if rate <= 0 || !core.IsFinite(rate) {
			return fmt.Errorf("trace: control rate must be > 0 and finite: %v", rate)
		}

		t.rate = rate

		return nil
	}
}

// WithHistory keeps every observed value. It is enabled by default.
func WithHistory(keep bool) Option {
	return func(t *Trace) error {
		t.history = keep
		return nil
	}
}

type channel struct {
	name   string
	acc    accumulator
	values []float64
}

// Trace collects per-channel control statistics. It is not safe for
// concurrent use.
type Trace struct {
	rate     float64
	history  bool
	reserve  int
	index    map[string]int
	channels []*channel
	blocks   int
}

var (
	_ engine.Observer      = (*Trace)(nil)
	_ engine.StartObserver = (*Trace)(nil)
)

// New creates an empty Trace.
func New(opts ...Option) (*Trace, error) {
	t := &Trace{
		history: true,
		index:   map[string]int{},
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// ObserveStart clears previous data and adopts the performance's control
// rate.
func (t *Trace) ObserveStart(timing engine.Timing) {
	t.Reset()

	if rate := timing.ControlRate(); rate > 0 {
		t.rate = rate
	}

	if t.history {
		t.reserve = timing.Blocks
	}
}

// ObserveBlock records the values read during block.
func (t *Trace) ObserveBlock(block int, values []engine.ChannelValue) {
	for _, cv := range values {
		ch := t.channel(cv.Name)
		ch.acc.update(block, cv.Value)

		if t.history {
			ch.values = append(ch.values, cv.Value)
		}
	}

	t.blocks = max(t.blocks, block+1)
}

func (t *Trace) channel(name string) *channel {
	if i, ok := t.index[name]; ok {
		return t.channels[i]
	}

	ch := &channel{name: name}
	if t.history && t.reserve > 0 {
		ch.values = make([]float64, 0, t.reserve)
	}

	t.index[name] = len(t.channels)
	t.channels = append(t.channels, ch)

	return ch
}

// Reset discards all recorded data. Options are kept.
func (t *Trace) Reset() {
	t.index = map[string]int{}
	t.channels = nil
	t.blocks = 0
	t.reserve = 0
}

// ControlRate returns the block rate in Hz, or 0 if unknown.
func (t *Trace) ControlRate() float64 { return t.rate }

// Blocks returns the number of blocks observed.
func (t *Trace) Blocks() int { return t.blocks }

// Channels returns channel names in first-seen order.
func (t *Trace) Channels() []string {
	names := make([]string, len(t.channels))
	for i, ch := range t.channels {
		names[i] = ch.name
	}

	return names
}

// Summary returns the statistics of one channel.
func (t *Trace) Summary(name string) (Summary, bool) {
	i, ok := t.index[name]
	if !ok {
		return Summary{Channel: name}, false
	}

	ch := t.channels[i]

	return ch.acc.summary(ch.name), true
}

// Summaries returns the statistics of every channel in first-seen order.
func (t *Trace) Summaries() []Summary {
	out := make([]Summary, len(t.channels))
	for i, ch := range t.channels {
		out[i] = ch.acc.summary(ch.name)
	}

	return out
}

// Values returns the recorded values of a channel. It returns nil without
// history or for unknown channels. The slice must not be modified.
func (t *Trace) Values(name string) []float64 {
	i, ok := t.index[name]
	if !ok {
		return nil
	}

	return t.channels[i].values
}

// Spectrum returns the spectrum of a recorded channel.
func (t *Trace) Spectrum(name string) (Spectrum, error) {
	if !t.history {
		return Spectrum{}, errors.New("trace: spectrum needs history")
	}

	if _, ok := t.index[name]; !ok {
		return Spectrum{}, fmt.Errorf("trace: unknown channel %q", name)
	}

	return Analyze(t.Values(name), t.rate)
}

// WriteCSV writes one row per block with the block index, the block start
// time in seconds and one column per channel. Channels first seen after
// block 0 are left empty for the blocks before they appeared.
func (t *Trace) WriteCSV(w io.Writer) error {
	if !t.history {
		return errors.New("trace: csv export needs history")
	}

	if t.rate <= 0 {
		return errors.New("trace: csv export needs a control rate")
	}

	cw := csv.NewWriter(w)

	header := append([]string{"block", "time"}, t.Channels()...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("trace: write csv header: %w", err)
	}

	row := make([]string, len(header))

	for b := range t.blocks {
		row[0] = strconv.Itoa(b)
		row[1] = strconv.FormatFloat(float64(b)/t.rate, 'f', 6, 64)

		for i, ch := range t.channels {
			// Late channels are aligned to the end of the trace.
			offset := t.blocks - len(ch.values)
			if b < offset {
				row[2+i] = ""
				continue
			}

			row[2+i] = strconv.FormatFloat(ch.values[b-offset], 'g', -1, 64)
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("trace: write csv row %d: %w", b, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("trace: flush csv: %w", err)
	}

	return nil
}
