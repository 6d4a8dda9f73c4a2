package sim

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cwbudde/algo-control/dsp/core"
	"github.com/cwbudde/algo-control/engine"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for lifecycle and channel messages.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithPrintInterval logs every channel value at debug level once per
// interval of performance time, in seconds. Zero disables it.
func WithPrintInterval(seconds float64) Option {
	return func(e *Engine) {
		if seconds >= 0 && core.IsFinite(seconds) {
			e.printInterval = seconds
		}
	}
}

// WithObserver registers an observer for every performed block.
func WithObserver(obs engine.Observer) Option {
	return func(e *Engine) {
		if obs != nil {
			e.observers = append(e.observers, obs)
		}
	}
}

// Engine is an in-process engine.Engine. It is not safe for concurrent use.
type Engine struct {
	defaults      core.ProcessorConfig
	logger        *slog.Logger
	printInterval float64
	observers     []engine.Observer

	orc      *Orchestra
	events   []Event
	channels map[string]int
	values   []engine.ChannelValue

	started    bool
	stopped    bool
	block      int
	total      int
	printEvery int
}

var _ engine.Engine = (*Engine)(nil)

// New creates an engine. coreOpts set the rates used when the orchestra
// header omits them.
func New(coreOpts []core.ProcessorOption, opts ...Option) *Engine {
	e := &Engine{
		defaults: core.ApplyProcessorOptions(coreOpts...),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	return e
}

// Compile scans orchestra text. Later compiles add instruments and
// channels. The first compile sets the rates; a later header may repeat
// them but must not change sr or ksmps.
func (e *Engine) Compile(orchestra string) error {
	if e.started {
		return fmt.Errorf("sim: compile: %w", engine.ErrAlreadyStarted)
	}

	defaults := e.defaults
	if e.orc != nil {
		defaults = e.orc.Config()
	}

	orc, err := ParseOrchestra(orchestra, defaults)
	if err != nil {
		return err
	}

	if e.orc != nil && orc.Config() != e.orc.Config() {
		cur, got := e.orc.Config(), orc.Config()
		return fmt.Errorf("sim: compile: header sets sr=%g ksmps=%d, engine runs at sr=%g ksmps=%d",
			got.SampleRate, got.BlockSize, cur.SampleRate, cur.BlockSize)
	}

	if e.orc == nil {
		e.orc = orc
		e.channels = make(map[string]int, len(orc.Channels))
	} else {
		e.orc.Instruments = append(e.orc.Instruments, orc.Instruments...)
	}

	for _, name := range orc.Channels {
		if _, ok := e.channels[name]; ok {
			continue
		}

		e.channels[name] = len(e.values)
		e.values = append(e.values, engine.ChannelValue{Name: name})
	}

	if orc != e.orc {
		e.orc.Channels = channelNames(e.values)
	}

	e.logger.Debug("orchestra compiled",
		"sr", e.orc.SampleRate,
		"ksmps", e.orc.BlockSize,
		"instruments", len(e.orc.Instruments),
		"channels", len(e.values))

	return nil
}

// LoadScore adds the events of a score. Every event must name a compiled
// instrument.
func (e *Engine) LoadScore(score string) error {
	if e.orc == nil {
		return fmt.Errorf("sim: load score: %w", engine.ErrNotCompiled)
	}

	if e.started {
		return fmt.Errorf("sim: load score: %w", engine.ErrAlreadyStarted)
	}

	events, err := ParseScore(score)
	if err != nil {
		return err
	}

	for _, ev := range events {
		if !e.orc.HasInstrument(ev.Instrument) {
			return fmt.Errorf("sim: score references undefined instrument %q", ev.Instrument)
		}
	}

	e.events = append(e.events, events...)

	return nil
}

// Start fixes the performance length from the loaded score and notifies
// start observers.
func (e *Engine) Start() error {
	if e.orc == nil {
		return fmt.Errorf("sim: start: %w", engine.ErrNotCompiled)
	}

	if e.started {
		return fmt.Errorf("sim: start: %w", engine.ErrAlreadyStarted)
	}

	cfg := e.orc.Config()
	end := ScoreEnd(e.events)

	total := cfg.BlocksFor(end)
	if total >= core.MaxBlocks {
		return fmt.Errorf("sim: start: score end %gs needs %d or more blocks at kr=%g", end, core.MaxBlocks, cfg.ControlRate())
	}

	e.started = true
	e.stopped = false
	e.block = 0
	e.total = total

	e.printEvery = 0
	if e.printInterval > 0 {
		e.printEvery = int(core.Clamp(e.printInterval*cfg.ControlRate()+0.5, 1, core.MaxBlocks))
	}

	timing := engine.Timing{ProcessorConfig: cfg, Blocks: e.total}
	for _, obs := range e.observers {
		if so, ok := obs.(engine.StartObserver); ok {
			so.ObserveStart(timing)
		}
	}

	e.logger.Info("performance started",
		"events", len(e.events),
		"blocks", e.total,
		"seconds", float64(e.total)*cfg.BlockDuration())

	return nil
}

// SetChannel writes value to a declared channel.
func (e *Engine) SetChannel(name string, value float64) error {
	if e.orc == nil {
		return fmt.Errorf("sim: set channel %q: %w", name, engine.ErrNotCompiled)
	}

	idx, ok := e.channels[name]
	if !ok {
		return fmt.Errorf("sim: set channel %q: %w", name, engine.ErrUnknownChannel)
	}

	if !core.IsFinite(value) {
		return fmt.Errorf("sim: set channel %q: value must be finite: %v", name, value)
	}

	e.values[idx].Value = value

	return nil
}

// Channel returns the current value of a declared channel.
func (e *Engine) Channel(name string) (float64, error) {
	idx, ok := e.channels[name]
	if !ok {
		return 0, fmt.Errorf("sim: channel %q: %w", name, engine.ErrUnknownChannel)
	}

	return e.values[idx].Value, nil
}

// PerformBlock reports the current channel values to observers and
// advances the clock by one block.
func (e *Engine) PerformBlock() (engine.Status, error) {
	if !e.started {
		return engine.StatusFinished, fmt.Errorf("sim: perform: %w", engine.ErrNotStarted)
	}

	if e.stopped || e.block >= e.total {
		return engine.StatusFinished, nil
	}

	for _, obs := range e.observers {
		obs.ObserveBlock(e.block, e.values)
	}

	if e.printEvery > 0 && e.block%e.printEvery == 0 {
		e.logChannels()
	}

	e.block++

	return engine.StatusContinue, nil
}

// Stop ends the performance; following blocks report StatusFinished.
func (e *Engine) Stop() {
	if !e.started || e.stopped {
		return
	}

	e.stopped = true

	e.logger.Info("performance stopped", "blocks", e.block)
}

// Cleanup returns the engine to its freshly constructed state. Options are
// kept.
func (e *Engine) Cleanup() {
	e.orc = nil
	e.events = nil
	e.channels = nil
	e.values = nil
	e.started = false
	e.stopped = false
	e.block = 0
	e.total = 0
	e.printEvery = 0
}

// Orchestra returns the compiled orchestra, or nil before Compile.
func (e *Engine) Orchestra() *Orchestra { return e.orc }

// Config returns the effective rates: the orchestra's after Compile, the
// defaults before.
func (e *Engine) Config() core.ProcessorConfig {
	if e.orc != nil {
		return e.orc.Config()
	}

	return e.defaults
}

// Block returns the number of blocks performed so far.
func (e *Engine) Block() int { return e.block }

// Blocks returns the performance length in blocks, known after Start.
func (e *Engine) Blocks() int { return e.total }

func (e *Engine) logChannels() {
	if !e.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	attrs := make([]any, 0, 2+2*len(e.values))
	attrs = append(attrs, "time", float64(e.block)*e.orc.Config().BlockDuration())

	for _, cv := range e.values {
		attrs = append(attrs, cv.Name, cv.Value)
	}

	e.logger.Debug("channels", attrs...)
}

func channelNames(values []engine.ChannelValue) []string {
	names := make([]string, len(values))
	for i, cv := range values {
		names[i] = cv.Name
	}

	return names
}
