package core

import (
	"math"
	"testing"
)

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(48000), WithBlockSize(64))
	if cfg.SampleRate != 48000 {
		t.Fatalf("sample rate = %v, want 48000", cfg.SampleRate)
	}
	if cfg.BlockSize != 64 {
		t.Fatalf("block size = %d, want 64", cfg.BlockSize)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	def := DefaultProcessorConfig()
	for _, cfg := range []ProcessorConfig{
		ApplyProcessorOptions(WithSampleRate(0), WithBlockSize(-1), nil),
		ApplyProcessorOptions(WithSampleRate(math.Inf(1)), WithBlockSize(MaxBlocks+1)),
	} {
		if cfg != def {
			t.Fatalf("cfg = %#v, want %#v", cfg, def)
		}
	}
}

func TestControlRate(t *testing.T) {
	cfg := ProcessorConfig{SampleRate: 44100, BlockSize: 32}
	if got := cfg.ControlRate(); got != 1378.125 {
		t.Fatalf("ControlRate() = %v, want 1378.125", got)
	}
	if got := cfg.BlockDuration(); !NearlyEqual(got, 32.0/44100, 1e-15) {
		t.Fatalf("BlockDuration() = %v, want %v", got, 32.0/44100)
	}
	if got := (ProcessorConfig{SampleRate: 44100}).ControlRate(); got != 0 {
		t.Fatalf("ControlRate() with zero block = %v, want 0", got)
	}
}

func TestBlocksFor(t *testing.T) {
	cfg := ProcessorConfig{SampleRate: 44100, BlockSize: 32}

	tests := []struct {
		name    string
		seconds float64
		want    int
	}{
		{name: "zero", seconds: 0, want: 0},
		{name: "negative", seconds: -1, want: 0},
		{name: "one block", seconds: 32.0 / 44100, want: 1},
		{name: "partial block", seconds: 1.0 / 44100, want: 1},
		{name: "one second", seconds: 1, want: 1379},
		{name: "sixty seconds", seconds: 60, want: 82688},
		{name: "too long", seconds: 1e300, want: MaxBlocks},
		{name: "overflowing samples", seconds: math.MaxFloat64, want: MaxBlocks},
		{name: "infinite", seconds: math.Inf(1), want: MaxBlocks},
		{name: "not a number", seconds: math.NaN(), want: MaxBlocks},
		{name: "limit", seconds: float64(MaxBlocks) * 32 / 44100, want: MaxBlocks},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.BlocksFor(tt.seconds); got != tt.want {
				t.Fatalf("BlocksFor(%v) = %d, want %d", tt.seconds, got, tt.want)
			}
		})
	}
}
