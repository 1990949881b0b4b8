// Package http provides the request-building side of verihttp: a
// fluent builder that accumulates configuration, authentication
// strategies that mutate request headers, and an immutable Response
// snapshot of one HTTP exchange.
//
// Execution is delegated to a Transport collaborator. Client is the
// default Transport, wrapping the standard library with configurable
// timeouts, redirect handling and optional client-side rate limiting.
// A 4xx/5xx answer is a valid Response; only network-level failures
// are errors.
package http
