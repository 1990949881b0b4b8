// Package expect is the fluent assertion engine of verihttp.
//
// A Chain wraps one Response and holds a current target: a value
// selected from the JSON body, the status code, one header, or the
// elapsed time. Target-switch calls (Body, Status, Header, Time)
// re-anchor the target; value assertions (Equals, Contains, Matches,
// HasLength, MatchesSchema, ...) act on the current target without
// changing it, so several assertions can be chained against the same
// target.
//
// Evaluation is fail-fast: the first failing assertion latches an
// *AssertionFailure and every later call on the chain is a no-op.
// Err returns the latched failure, prefixed with the active context
// label set via That.
//
// Chains are short-lived, mutated in place and owned by a single
// goroutine; build a fresh one per response.
package expect
