package sim

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-control/dsp/core"
)

// Orchestra is what the simulator extracts from orchestra text: the header
// rates, the instruments it defines and the control channels it declares.
// Instrument bodies are not interpreted.
type Orchestra struct {
	SampleRate  float64
	BlockSize   int
	OutChannels int
	ZeroDBFS    float64

	Instruments []string
	Channels    []string
}

var (
	headerRe  = regexp.MustCompile(`^\s*(sr|kr|ksmps|nchnls|0dbfs)\s*=\s*(\S+)\s*$`)
	instrRe   = regexp.MustCompile(`^\s*instr\s+(.+?)\s*$`)
	endinRe   = regexp.MustCompile(`^\s*endin\b`)
	channelRe = regexp.MustCompile(`\b(?:chnget|chnset|chn_k|chnexport)\b[^"]*"([^"]*)"`)
)

// ParseOrchestra scans orchestra text. Rates missing from the header fall
// back to defaults.
func ParseOrchestra(src string, defaults core.ProcessorConfig) (*Orchestra, error) {
	orc := &Orchestra{
		SampleRate:  defaults.SampleRate,
		BlockSize:   defaults.BlockSize,
		OutChannels: 1,
		ZeroDBFS:    32768,
	}

	var (
		kr        float64
		haveKsmps bool
		inInstr   bool
		seen      = map[string]bool{}
	)

	for n, line := range strings.Split(src, "\n") {
		line = stripComment(line)
		if strings.TrimSpace(line) == "" {
			continue
		}

		lineNo := n + 1

		if m := instrRe.FindStringSubmatch(line); m != nil {
			if inInstr {
				return nil, fmt.Errorf("sim: line %d: instr inside instr", lineNo)
			}

			inInstr = true

			for _, name := range strings.Split(m[1], ",") {
				name = strings.TrimSpace(name)
				if name == "" {
					return nil, fmt.Errorf("sim: line %d: empty instrument name", lineNo)
				}

				orc.Instruments = append(orc.Instruments, name)
			}

			continue
		}

		if endinRe.MatchString(line) {
			if !inInstr {
				return nil, fmt.Errorf("sim: line %d: endin without instr", lineNo)
			}

			inInstr = false

			continue
		}

		if !inInstr {
			if m := headerRe.FindStringSubmatch(line); m != nil {
				if err := orc.setHeader(m[1], m[2], &kr, &haveKsmps); err != nil {
					return nil, fmt.Errorf("sim: line %d: %w", lineNo, err)
				}

				continue
			}
		}

		for _, m := range channelRe.FindAllStringSubmatch(line, -1) {
			name := m[1]
			if name == "" {
				return nil, fmt.Errorf("sim: line %d: empty channel name", lineNo)
			}

			if !seen[name] {
				seen[name] = true
				orc.Channels = append(orc.Channels, name)
			}
		}
	}

	if inInstr {
		return nil, fmt.Errorf("sim: missing endin")
	}

	if len(orc.Instruments) == 0 {
		return nil, fmt.Errorf("sim: orchestra defines no instruments")
	}

	if kr > 0 {
		ratio := orc.SampleRate / kr
		if !haveKsmps {
			if ratio != math.Trunc(ratio) || ratio < 1 || ratio > core.MaxBlocks {
				return nil, fmt.Errorf("sim: sr/kr must be a whole number: %g/%g", orc.SampleRate, kr)
			}

			orc.BlockSize = int(ratio)
		} else if !core.NearlyEqual(ratio, float64(orc.BlockSize), 1e-9) {
			return nil, fmt.Errorf("sim: inconsistent sr, kr and ksmps: %g/%g != %d", orc.SampleRate, kr, orc.BlockSize)
		}
	}

	return orc, nil
}

func (o *Orchestra) setHeader(name, raw string, kr *float64, haveKsmps *bool) error {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !core.IsFinite(v) {
		return fmt.Errorf("invalid %s value %q", name, raw)
	}

	switch name {
	case "sr":
		if v <= 0 {
			return fmt.Errorf("sr must be > 0: %g", v)
		}

		o.SampleRate = v
	case "kr":
		if v <= 0 {
			return fmt.Errorf("kr must be > 0: %g", v)
		}

		*kr = v
	case "ksmps":
		if v < 1 || v > core.MaxBlocks || v != math.Trunc(v) {
			return fmt.Errorf("ksmps must be an integer in [1, %d]: %g", core.MaxBlocks, v)
		}

		o.BlockSize = int(v)
		*haveKsmps = true
	case "nchnls":
		if v < 1 || v > math.MaxInt32 || v != math.Trunc(v) {
			return fmt.Errorf("nchnls must be an integer in [1, %d]: %g", math.MaxInt32, v)
		}

		o.OutChannels = int(v)
	case "0dbfs":
		if v <= 0 {
			return fmt.Errorf("0dbfs must be > 0: %g", v)
		}

		o.ZeroDBFS = v
	}

	return nil
}

// HasInstrument reports whether name (or the integer part of a numeric
// name) is defined.
func (o *Orchestra) HasInstrument(name string) bool {
	if f, err := strconv.ParseFloat(name, 64); err == nil {
		name = strconv.Itoa(int(math.Trunc(f)))
	}

	for _, in := range o.Instruments {
		if in == name {
			return true
		}
	}

	return false
}

// Config returns the orchestra rates as a processor configuration.
func (o *Orchestra) Config() core.ProcessorConfig {
	return core.ProcessorConfig{SampleRate: o.SampleRate, BlockSize: o.BlockSize}
}

// stripComment removes ; and // comments. Quoted strings are respected.
func stripComment(line string) string {
	inQuote := false

	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case c == '"':
			inQuote = !inQuote
		case inQuote:
		case c == ';':
			return line[:i]
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			return line[:i]
		}
	}

	return line
}
