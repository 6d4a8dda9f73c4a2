package core

import "math"

// ProcessorConfig defines the rates an engine runs at: audio samples per
// second and samples per control block (ksmps).
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns 44.1 kHz with 32-sample control blocks.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 44100,
		BlockSize:  32,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 && IsFinite(sampleRate) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the number of samples per control block.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 && blockSize <= MaxBlocks {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// ControlRate returns the number of control blocks per second.
func (c ProcessorConfig) ControlRate() float64 {
	if c.BlockSize <= 0 {
		return 0
	}
	return c.SampleRate / float64(c.BlockSize)
}

// BlockDuration returns the length of one control block in seconds.
func (c ProcessorConfig) BlockDuration() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(c.BlockSize) / c.SampleRate
}

// MaxBlocks bounds block counts and block sizes. At 44.1 kHz with 32-sample
// blocks it is about 18 days of performance.
const MaxBlocks = math.MaxInt32

// BlocksFor returns how many whole blocks are needed to cover seconds.
// A partial trailing block counts as a full one. Counts that are not
// representable, including those for non-finite durations, saturate at
// MaxBlocks.
func (c ProcessorConfig) BlocksFor(seconds float64) int {
	if c.SampleRate <= 0 || c.BlockSize <= 0 || seconds <= 0 {
		return 0
	}
	if !IsFinite(seconds) {
		return MaxBlocks
	}
	samples := math.Round(seconds*c.SampleRate*1e6) / 1e6
	blocks := math.Ceil(samples / float64(c.BlockSize))
	if !IsFinite(blocks) {
		return MaxBlocks
	}
	return int(Clamp(blocks, 0, MaxBlocks))
}
