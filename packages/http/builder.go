package http

import (
	"context"
	"encoding/json"
	neturl "net/url"
	"time"
)

// LatencyRecorder receives the elapsed wall-clock time of each
// executed request. See the timing package for an implementation.
type LatencyRecorder interface {
	Record(d time.Duration)
}

// Builder accumulates request configuration. Configuration calls
// mutate and return the same builder and may be chained in any order;
// an execution call issues exactly one request through the transport.
// The builder is not reset after execution, so a caller may tweak and
// re-execute. It is owned by a single goroutine.
type Builder struct {
	transport Transport
	baseURL   string
	endpoint  string
	headers   map[string]string
	query     map[string]string
	body      string
	timeout   time.Duration
	auth      Strategy
	recorder  LatencyRecorder
	jsonErr   error
}

// NewBuilder returns a builder that executes through transport. A nil
// transport falls back to a default Client.
func NewBuilder(transport Transport) *Builder {
	if transport == nil {
		transport = NewClient()
	}
	return &Builder{
		transport: transport,
		headers:   make(map[string]string),
		query:     make(map[string]string),
	}
}

func (b *Builder) BaseURL(base string) *Builder {
	b.baseURL = base
	return b
}

func (b *Builder) Endpoint(endpoint string) *Builder {
	b.endpoint = endpoint
	return b
}

func (b *Builder) Header(key, value string) *Builder {
	b.headers[key] = value
	return b
}

func (b *Builder) Headers(headers map[string]string) *Builder {
	for k, v := range headers {
		b.headers[k] = v
	}
	return b
}

func (b *Builder) QueryParam(key, value string) *Builder {
	b.query[key] = value
	return b
}

func (b *Builder) Body(body string) *Builder {
	b.body = body
	return b
}

// JSONBody marshals payload and sets Content-Type unless the caller
// already chose one.
func (b *Builder) JSONBody(payload any) *Builder {
	data, err := json.Marshal(payload)
	if err != nil {
		// Surfaces at execution time as a ConfigError.
		b.jsonErr = err
		return b
	}
	b.jsonErr = nil
	b.body = string(data)
	if _, ok := b.headers["Content-Type"]; !ok {
		b.headers["Content-Type"] = "application/json"
	}
	return b
}

func (b *Builder) Timeout(d time.Duration) *Builder {
	b.timeout = d
	return b
}

// Auth sets the active authentication strategy; the most recently set
// strategy wins.
func (b *Builder) Auth(s Strategy) *Builder {
	b.auth = s
	return b
}

func (b *Builder) BasicAuth(username, password string) *Builder {
	return b.Auth(&BasicAuth{Username: username, Password: password})
}

func (b *Builder) BearerToken(token string) *Builder {
	return b.Auth(&BearerAuth{Token: token})
}

func (b *Builder) DigestAuth(username, password string) *Builder {
	return b.Auth(&DigestAuth{Username: username, Password: password})
}

// CustomAuth sets a caller-supplied header transform as the strategy.
func (b *Builder) CustomAuth(f HeaderFunc) *Builder {
	return b.Auth(f)
}

// RecordLatency attaches a recorder that observes the elapsed time of
// every subsequent execution.
func (b *Builder) RecordLatency(r LatencyRecorder) *Builder {
	b.recorder = r
	return b
}

func (b *Builder) Get(ctx context.Context) (*Response, error) {
	return b.Do(ctx, "GET")
}

func (b *Builder) Post(ctx context.Context) (*Response, error) {
	return b.Do(ctx, "POST")
}

func (b *Builder) Put(ctx context.Context) (*Response, error) {
	return b.Do(ctx, "PUT")
}

func (b *Builder) Delete(ctx context.Context) (*Response, error) {
	return b.Do(ctx, "DELETE")
}

// Do resolves the URL, applies the active auth strategy, merges
// explicit headers over auth-derived ones (last writer wins per key),
// issues exactly one transport call and measures wall-clock elapsed
// time around it.
func (b *Builder) Do(ctx context.Context, method string) (*Response, error) {
	if b.jsonErr != nil {
		return nil, &ConfigError{Reason: "marshal JSON body: " + b.jsonErr.Error()}
	}

	rawURL, err := ResolveURL(b.baseURL, b.endpoint)
	if err != nil {
		return nil, err
	}
	rawURL, err = appendQuery(rawURL, b.query)
	if err != nil {
		return nil, err
	}

	req := &Request{
		Method:  method,
		URL:     rawURL,
		Headers: make(map[string]string, len(b.headers)),
		Body:    b.body,
		Timeout: b.timeout,
	}

	for k, v := range b.headers {
		req.Headers[k] = v
	}
	if b.auth != nil {
		authHeaders, err := b.auth.Apply(ctx, b.transport, req)
		if err != nil {
			return nil, &RequestError{Method: method, URL: rawURL, Err: err}
		}
		// Explicit headers win over auth-derived ones per key.
		for k, v := range authHeaders {
			if _, explicit := b.headers[k]; !explicit {
				req.Headers[k] = v
			}
		}
	}

	start := time.Now()
	resp, err := b.transport.RoundTrip(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		return nil, &RequestError{Method: method, URL: rawURL, Err: err}
	}
	if resp.Duration == 0 {
		resp.Duration = elapsed
	}
	if b.recorder != nil {
		b.recorder.Record(resp.Duration)
	}
	return resp, nil
}

func appendQuery(rawURL string, query map[string]string) (string, error) {
	if len(query) == 0 {
		return rawURL, nil
	}
	u, err := neturl.Parse(rawURL)
	if err != nil {
		return "", &ConfigError{Reason: "invalid URL: " + err.Error()}
	}
	q := u.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
