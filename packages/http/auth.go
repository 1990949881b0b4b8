package http

import (
	"context"
	"encoding/base64"
)

// Strategy is an authentication variant. Apply returns the headers to
// attach to the outgoing request; it may issue preflight requests
// through the transport (digest does) but must not mutate req.
// Exactly one strategy is active per builder; the last one set wins.
type Strategy interface {
	Apply(ctx context.Context, transport Transport, req *Request) (map[string]string, error)
}

// BasicAuth attaches Authorization: Basic base64(user:pass).
type BasicAuth struct {
	Username string
	Password string
}

func (a *BasicAuth) Apply(context.Context, Transport, *Request) (map[string]string, error) {
	encoded := base64.StdEncoding.EncodeToString([]byte(a.Username + ":" + a.Password))
	return map[string]string{"Authorization": "Basic " + encoded}, nil
}

// BearerAuth attaches Authorization: Bearer token.
type BearerAuth struct {
	Token string
}

func (a *BearerAuth) Apply(context.Context, Transport, *Request) (map[string]string, error) {
	return map[string]string{"Authorization": "Bearer " + a.Token}, nil
}

// HeaderFunc adapts a caller-supplied header transform into a
// Strategy. It receives a copy of the headers accumulated so far and
// returns the headers to attach.
type HeaderFunc func(headers map[string]string) map[string]string

func (f HeaderFunc) Apply(_ context.Context, _ Transport, req *Request) (map[string]string, error) {
	snapshot := make(map[string]string, len(req.Headers))
	for k, v := range req.Headers {
		snapshot[k] = v
	}
	return f(snapshot), nil
}
