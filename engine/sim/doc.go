// Package sim provides an in-process engine.Engine that keeps the block
// clock and channel table of a synthesis engine without producing audio.
//
// Compile scans orchestra text only for header rates (sr, kr, ksmps,
// nchnls, 0dbfs), instrument definitions and channel declarations (chnget,
// chnset, chn_k, chnexport). LoadScore reads i-statements to find where the
// performance ends. PerformBlock then advances one control block at a time
// and reports the channel values read in that block to registered
// observers, which makes the engine useful for exercising host control
// loops offline and in tests.
package sim
