// Package selector navigates JSON value trees by dot/bracket path
// expressions, e.g. "data.users[0].email".
//
// Paths are a deliberate subset of JSONPath: object keys separated by
// dots, with zero-based bracket indices into arrays. A missing key or
// out-of-range index is reported as ErrNotFound; malformed path syntax
// is reported as a *SyntaxError. Selection never mutates its input.
package selector
