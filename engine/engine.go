package engine

import (
	"errors"

	"github.com/cwbudde/algo-control/dsp/core"
)

// Status reports whether a performance continues after a block.
type Status int

const (
	// StatusContinue means more blocks remain.
	StatusContinue Status = iota
	// StatusFinished means the score has ended or the engine was stopped.
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusContinue:
		return "continue"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

var (
	// ErrNotCompiled is returned when an operation needs a compiled orchestra.
	ErrNotCompiled = errors.New("engine: orchestra not compiled")
	// ErrNotStarted is returned by PerformBlock before Start.
	ErrNotStarted = errors.New("engine: performance not started")
	// ErrAlreadyStarted is returned by Compile, LoadScore or Start once a
	// performance is running.
	ErrAlreadyStarted = errors.New("engine: performance already started")
	// ErrUnknownChannel is returned by SetChannel for undeclared names.
	ErrUnknownChannel = errors.New("engine: unknown channel")
)

// Engine is a block-based synthesis engine with named control channels.
//
// Implementations need not be safe for concurrent use; a performance is
// driven from a single goroutine.
type Engine interface {
	// Compile compiles orchestra source text.
	Compile(orchestra string) error
	// LoadScore schedules score events.
	LoadScore(score string) error
	// Start prepares the engine for performance.
	Start() error
	// SetChannel writes a control value read by the following blocks.
	SetChannel(name string, value float64) error
	// PerformBlock advances the performance by one control block.
	PerformBlock() (Status, error)
	// Stop ends the performance. It is safe to call more than once.
	Stop()
	// Cleanup releases everything Compile, LoadScore and Start acquired.
	Cleanup()
}

// ChannelValue is one control channel as read during a block.
type ChannelValue struct {
	Name  string
	Value float64
}

// Observer receives the channel values an engine read for each block.
// The values slice is only valid for the duration of the call.
type Observer interface {
	ObserveBlock(block int, values []ChannelValue)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(block int, values []ChannelValue)

// ObserveBlock calls f.
func (f ObserverFunc) ObserveBlock(block int, values []ChannelValue) { f(block, values) }

// Timing describes the block clock of a started performance.
type Timing struct {
	core.ProcessorConfig

	// Blocks is the number of blocks the score lasts.
	Blocks int
}

// StartObserver is implemented by observers that want the performance
// timing before the first block.
type StartObserver interface {
	ObserveStart(t Timing)
}
