// Package randline provides a bounded random-walk control generator.
//
// A Line glides linearly from its current value towards a randomly chosen
// target over a randomly chosen number of calls, then picks a new target and
// duration and continues. It is meant to be stepped once per engine control
// block and produces values in [base, base+range).
//
// Segment boundary:
//
// Each call to Next first decrements the remaining step count and only
// re-targets once the count drops below zero, so a segment of n steps spans
// n+1 calls. The first segment glides up from 0 and its closing call returns
// the target exactly. Later segments begin on their re-targeting call, which
// applies the increment once more, so the walk passes each later target by
// one increment (at most 1/256 of the normalized range with the default
// segment range) before turning.
//
// Lines are deterministic given their Source. They are not safe for
// concurrent use.
package randline
