package http

import (
	"context"
	"net/url"
	"time"
)

// Request is the wire-level description of one exchange, produced by a
// Builder and consumed by a Transport.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    string
	Timeout time.Duration
}

// Clone returns a deep copy. Auth strategies clone before issuing
// preflight requests so the original is not disturbed.
func (r *Request) Clone() *Request {
	headers := make(map[string]string, len(r.Headers))
	for k, v := range r.Headers {
		headers[k] = v
	}
	return &Request{
		Method:  r.Method,
		URL:     r.URL,
		Headers: headers,
		Body:    r.Body,
		Timeout: r.Timeout,
	}
}

// Transport issues exactly one HTTP exchange. Implementations must
// distinguish transport failure (an error) from a successful but
// non-2xx response (a Response).
type Transport interface {
	RoundTrip(ctx context.Context, req *Request) (*Response, error)
}

// ResolveURL joins a base URL and an endpoint. The endpoint may itself
// be absolute, in which case the base is ignored.
func ResolveURL(base, endpoint string) (string, error) {
	if endpoint != "" {
		if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" && u.Host != "" {
			return endpoint, nil
		}
	}
	if base == "" {
		return "", &ConfigError{Reason: "no base URL configured and endpoint is not absolute"}
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", &ConfigError{Reason: "invalid base URL: " + err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", &ConfigError{Reason: "unsupported URL scheme " + u.Scheme}
	}
	if u.Host == "" {
		return "", &ConfigError{Reason: "base URL has no host"}
	}
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", &ConfigError{Reason: "invalid endpoint: " + err.Error()}
	}
	return u.ResolveReference(ref).String(), nil
}
