// Package perform drives an engine.Engine through a performance, pushing
// one generated value to each bound control channel per block.
package perform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/cwbudde/algo-control/engine"
)

// Generator produces one control value per call. *randline.Line satisfies
// it.
type Generator interface {
	Next() float64
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func() float64

// Next calls f.
func (f GeneratorFunc) Next() float64 { return f() }

// Binding routes a generator to a named control channel.
type Binding struct {
	Channel string
	Source  Generator
}

// Result summarizes a performance.
type Result struct {
	// Blocks is the number of blocks the engine performed.
	Blocks int
	// Updates is the number of successful SetChannel calls.
	Updates int
}

// Option configures a Performance.
type Option func(*Performance)

// WithLogger sets the logger for lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Performance) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithBlockHook calls fn after every performed block with the number of
// blocks performed so far.
func WithBlockHook(fn func(blocks int)) Option {
	return func(p *Performance) {
		p.onBlock = fn
	}
}

// Performance couples an engine handle with its channel bindings.
// It is not safe for concurrent use.
type Performance struct {
	eng      engine.Engine
	bindings []Binding
	logger   *slog.Logger
	onBlock  func(blocks int)
}

// New validates bindings and returns a Performance driving eng.
func New(eng engine.Engine, bindings []Binding, opts ...Option) (*Performance, error) {
	if eng == nil {
		return nil, errors.New("perform: engine must not be nil")
	}

	if len(bindings) == 0 {
		return nil, errors.New("perform: at least one binding is required")
	}

	seen := make(map[string]bool, len(bindings))
	for i, b := range bindings {
		if b.Channel == "" {
			return nil, fmt.Errorf("perform: binding %d: empty channel name", i)
		}

		if b.Source == nil {
			return nil, fmt.Errorf("perform: binding %q: nil source", b.Channel)
		}

		if seen[b.Channel] {
			return nil, fmt.Errorf("perform: duplicate binding for channel %q", b.Channel)
		}

		seen[b.Channel] = true
	}

	p := &Performance{
		eng:      eng,
		bindings: append([]Binding(nil), bindings...),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p, nil
}

// Run compiles orchestra, loads score, starts the engine and performs until
// the engine reports StatusFinished or ctx is done. Every binding is pushed
// once before the first block and once after each block that continues.
//
// Stop is called after a successful Start and Cleanup is always called, so
// the engine is released however Run returns.
func (p *Performance) Run(ctx context.Context, orchestra, score string) (Result, error) {
	var res Result

	defer p.eng.Cleanup()

	if err := p.eng.Compile(orchestra); err != nil {
		return res, fmt.Errorf("perform: compile orchestra: %w", err)
	}

	if err := p.eng.LoadScore(score); err != nil {
		return res, fmt.Errorf("perform: load score: %w", err)
	}

	if err := p.eng.Start(); err != nil {
		return res, fmt.Errorf("perform: start: %w", err)
	}
	defer p.eng.Stop()

	p.logger.Info("performance running", "channels", len(p.bindings))

	if err := p.push(&res); err != nil {
		return res, err
	}

	for {
		if err := ctx.Err(); err != nil {
			p.logger.Info("performance canceled", "blocks", res.Blocks)
			return res, fmt.Errorf("perform: canceled after %d blocks: %w", res.Blocks, err)
		}

		status, err := p.eng.PerformBlock()
		if err != nil {
			return res, fmt.Errorf("perform: block %d: %w", res.Blocks, err)
		}

		if status == engine.StatusFinished {
			break
		}

		res.Blocks++

		if p.onBlock != nil {
			p.onBlock(res.Blocks)
		}

		if err := p.push(&res); err != nil {
			return res, err
		}
	}

	p.logger.Info("performance finished", "blocks", res.Blocks, "updates", res.Updates)

	return res, nil
}

func (p *Performance) push(res *Result) error {
	for _, b := range p.bindings {
		if err := p.eng.SetChannel(b.Channel, b.Source.Next()); err != nil {
			return fmt.Errorf("perform: after block %d: %w", res.Blocks, err)
		}

		res.Updates++
	}

	return nil
}
