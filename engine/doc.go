// Package engine defines the handle a host program uses to drive a
// block-based synthesis engine through its control channels.
//
// An Engine is always passed explicitly to the code that needs it; there is
// no process-wide engine. The lifecycle is
//
//	Compile -> LoadScore -> Start -> (SetChannel* PerformBlock)* -> Stop -> Cleanup
//
// Every call except Stop and Cleanup reports failure through its error
// return. Errors wrap the sentinels below so callers can match them with
// errors.Is.
package engine
