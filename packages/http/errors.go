package http

import "fmt"

// ConfigError reports request configuration that cannot produce a
// sendable request, e.g. an unresolvable base URL/endpoint pair. It is
// raised before any network attempt.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "request configuration: " + e.Reason
}

// RequestError reports a transport-level failure (timeout, connection
// refused) and wraps the underlying cause. A non-2xx status is not a
// RequestError; it is a valid Response.
type RequestError struct {
	Method string
	URL    string
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
