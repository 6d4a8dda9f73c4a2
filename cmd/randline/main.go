// Command randline drives two random-walk control lines, amplitude and
// frequency, into an engine's control channels once per block.
//
// Usage:
//
//	randline [flags]
//
// The built-in orchestra reads the channels "amp" and "freq" and the
// built-in score plays one 60 second note. The performance runs on the
// in-process engine, which keeps the engine's block clock without producing
// audio, and a summary of every channel is printed when it ends.
//
// Examples:
//
//	randline
//	randline -dur 5 -seed 42 -csv trace.csv
//	randline -orc synth.orc -sco synth.sco -realtime -v
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/cwbudde/algo-control/dsp/control/randline"
	"github.com/cwbudde/algo-control/dsp/core"
	"github.com/cwbudde/algo-control/engine/sim"
	"github.com/cwbudde/algo-control/perform"
	"github.com/cwbudde/algo-control/stats/trace"
)

const defaultInstrument = `
instr 1
kamp chnget "amp"
kfreq chnget "freq"
printk 0.5, kamp
printk 0.5, kfreq
aout vco2 kamp, kfreq
aout moogladder aout, 2000, 0.25
outs aout, aout
endin
`

const defaultScore = "i1 0 60\n"

// printInterval matches the printk period of the built-in orchestra.
const printInterval = 0.5

type options struct {
	orcPath  string
	scoPath  string
	duration float64
	seed     int64
	sr       float64
	ksmps    int
	csvPath  string
	realtime bool
	verbose  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}

		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("randline", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.orcPath, "orc", "", "orchestra file (default: built-in amp/freq instrument)")
	fs.StringVar(&opts.scoPath, "sco", "", "score file (default: \"i1 0 60\")")
	fs.Float64Var(&opts.duration, "dur", 0, "play instrument 1 for this many seconds instead of the score")
	fs.Int64Var(&opts.seed, "seed", 0, "random seed; 0 seeds from the clock")
	fs.Float64Var(&opts.sr, "sr", 0, "sample rate when the orchestra header has none")
	fs.IntVar(&opts.ksmps, "ksmps", 0, "samples per block when the orchestra header has none")
	fs.StringVar(&opts.csvPath, "csv", "", "write the per-block channel trace to this CSV file")
	fs.BoolVar(&opts.realtime, "realtime", false, "pace blocks to wall-clock time")
	fs.BoolVar(&opts.verbose, "v", false, "log channel values and lifecycle details")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: randline [flags]\n\n")
		fmt.Fprintf(stderr, "Drives random-walk amp and freq lines into an engine's control channels.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  randline -dur 5 -seed 42\n")
		fmt.Fprintf(stderr, "  randline -csv trace.csv\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if opts.duration < 0 || !core.IsFinite(opts.duration) {
		return opts, fmt.Errorf("-dur must be >= 0: %v", opts.duration)
	}

	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}

	runID := uuid.New()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run", runID.String())

	orc, sco, err := loadSources(opts)
	if err != nil {
		return err
	}

	tr, err := trace.New()
	if err != nil {
		return err
	}

	eng := sim.New(
		[]core.ProcessorOption{core.WithSampleRate(opts.sr), core.WithBlockSize(opts.ksmps)},
		sim.WithLogger(logger),
		sim.WithPrintInterval(printInterval),
		sim.WithObserver(tr),
	)

	ampSeed, freqSeed := opts.seed, opts.seed
	if opts.seed != 0 {
		freqSeed = opts.seed + 1
	}

	amp, err := randline.New(0.4, 0.2, randline.WithSeed(ampSeed))
	if err != nil {
		return err
	}

	freq, err := randline.New(400, 80, randline.WithSeed(freqSeed))
	if err != nil {
		return err
	}

	hook := newProgress(stdout, eng, opts.realtime)

	p, err := perform.New(eng, []perform.Binding{
		{Channel: "amp", Source: amp},
		{Channel: "freq", Source: freq},
	}, perform.WithLogger(logger), perform.WithBlockHook(hook.update))
	if err != nil {
		return err
	}

	res, err := p.Run(ctx, orc, sco)
	hook.finish()

	if err != nil {
		return err
	}

	if opts.csvPath != "" {
		if err := writeCSV(opts.csvPath, tr); err != nil {
			return err
		}
	}

	return printSummary(stdout, runID, res, tr)
}

// defaultOrchestra renders the built-in orchestra with the rates selected
// on the command line.
func defaultOrchestra(cfg core.ProcessorConfig) string {
	header := fmt.Sprintf("sr=%s\nksmps=%d\nnchnls=2\n0dbfs=1\n",
		strconv.FormatFloat(cfg.SampleRate, 'g', -1, 64), cfg.BlockSize)

	return header + defaultInstrument
}

func loadSources(opts options) (orc, sco string, err error) {
	cfg := core.ApplyProcessorOptions(core.WithSampleRate(opts.sr), core.WithBlockSize(opts.ksmps))
	orc, sco = defaultOrchestra(cfg), defaultScore

	if opts.orcPath != "" {
		data, err := os.ReadFile(opts.orcPath)
		if err != nil {
			return "", "", fmt.Errorf("read orchestra: %w", err)
		}

		orc = string(data)
	}

	if opts.scoPath != "" {
		data, err := os.ReadFile(opts.scoPath)
		if err != nil {
			return "", "", fmt.Errorf("read score: %w", err)
		}

		sco = string(data)
	}

	if opts.duration > 0 {
		sco = "i1 0 " + strconv.FormatFloat(opts.duration, 'g', -1, 64) + "\n"
	}

	return orc, sco, nil
}

// progress shows elapsed performance time on terminals and optionally
// paces blocks to the wall clock.
type progress struct {
	out      io.Writer
	eng      *sim.Engine
	tty      bool
	realtime bool
	start    time.Time
	shown    bool
}

func newProgress(out io.Writer, eng *sim.Engine, realtime bool) *progress {
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}

	return &progress{out: out, eng: eng, tty: tty, realtime: realtime}
}

func (p *progress) update(blocks int) {
	cfg := p.eng.Config()

	if p.realtime {
		if p.start.IsZero() {
			p.start = time.Now()
		}

		due := p.start.Add(time.Duration(float64(blocks) * cfg.BlockDuration() * float64(time.Second)))
		if d := time.Until(due); d > 5*time.Millisecond {
			time.Sleep(d)
		}
	}

	if !p.tty {
		return
	}

	perSecond := max(1, int(cfg.ControlRate()))
	if blocks%perSecond != 0 && blocks != p.eng.Blocks() {
		return
	}

	fmt.Fprintf(p.out, "\rperforming %6.1f / %.1f s",
		float64(blocks)*cfg.BlockDuration(),
		float64(p.eng.Blocks())*cfg.BlockDuration())
	p.shown = true
}

func (p *progress) finish() {
	if p.shown {
		fmt.Fprintln(p.out)
	}
}

func writeCSV(path string, tr *trace.Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}

	if err := tr.WriteCSV(f); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close csv: %w", err)
	}

	return nil
}

func printSummary(out io.Writer, runID uuid.UUID, res perform.Result, tr *trace.Trace) error {
	rate := tr.ControlRate()

	seconds := 0.0
	if rate > 0 {
		seconds = float64(res.Blocks) / rate
	}

	if _, err := fmt.Fprintf(out, "run %s: %d blocks (%.2f s at kr=%.3f), %d channel updates\n\n",
		runID, res.Blocks, seconds, rate, res.Updates); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Channel\tBlocks\tMean\tStdDev\tMin\tMax\tTurns\tPeak [Hz]\tCentroid [Hz]\tRolloff [Hz]\n")
	fmt.Fprintf(tw, "-------\t------\t----\t------\t---\t---\t-----\t---------\t-------------\t------------\n")

	for _, s := range tr.Summaries() {
		peak, centroid, rolloff := "-", "-", "-"
		if spec, err := tr.Spectrum(s.Channel); err == nil {
			peak = fmt.Sprintf("%.3f", spec.PeakHz)
			centroid = fmt.Sprintf("%.3f", spec.Centroid)
			rolloff = fmt.Sprintf("%.3f", spec.Rolloff)
		}

		fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%d\t%s\t%s\t%s\n",
			s.Channel, s.Length, s.Mean, s.StdDev, s.Min, s.Max, s.Turns, peak, centroid, rolloff)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	return nil
}
