// Package trace records the control values an engine reads block by block
// and summarizes them per channel.
//
// A Trace implements engine.Observer and engine.StartObserver. Statistics
// are accumulated in a single streaming pass (Welford's algorithm for the
// moments), so a Trace without history uses constant memory per channel.
// With history enabled the raw values are kept for CSV export and for
// Spectrum, which describes how fast a control signal moves in Hz of
// control rate.
package trace
