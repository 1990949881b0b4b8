// Package output renders check results for humans: a colorized
// console formatter with pass/fail symbols, per-check timing and a
// summary line.
package output
