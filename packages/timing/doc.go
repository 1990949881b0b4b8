// Package timing records request latencies across repeated executions
// of a builder, so percentile bounds can be asserted over a series of
// exchanges rather than a single one.
package timing
