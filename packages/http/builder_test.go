package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_FluentConfiguration(t *testing.T) {
	var gotPath, gotQuery, gotTrace, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("verbose")
		gotTrace = r.Header.Get("X-Trace")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 7}`))
	}))
	defer server.Close()

	resp, err := NewBuilder(NewClient()).
		BaseURL(server.URL).
		Endpoint("/users").
		Header("X-Trace", "abc").
		QueryParam("verbose", "1").
		Body(`{"name": "John"}`).
		Post(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, "/users", gotPath)
	assert.Equal(t, "1", gotQuery)
	assert.Equal(t, "abc", gotTrace)
	assert.Equal(t, `{"name": "John"}`, gotBody)
}

func TestBuilder_JSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Jane", payload["name"])
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err := NewBuilder(nil).
		BaseURL(server.URL).
		JSONBody(map[string]any{"name": "Jane"}).
		Post(context.Background())

	require.NoError(t, err)
}

func TestBuilder_UnresolvableURLIsConfigError(t *testing.T) {
	_, err := NewBuilder(NewClient()).Endpoint("/users").Get(context.Background())

	require.Error(t, err)
	var cfgErr *ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestBuilder_TransportFailureIsRequestError(t *testing.T) {
	_, err := NewBuilder(NewClient(WithTimeout(100 * time.Millisecond))).
		BaseURL("http://127.0.0.1:1"). // nothing listens here
		Get(context.Background())

	require.Error(t, err)
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.NotNil(t, reqErr.Unwrap())
}

func TestBuilder_ExplicitHeadersWinOverAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer explicit", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err := NewBuilder(nil).
		BaseURL(server.URL).
		BearerToken("from-auth").
		Header("Authorization", "Bearer explicit").
		Get(context.Background())

	require.NoError(t, err)
}

func TestBuilder_LastAuthStrategyWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer final", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, err := NewBuilder(nil).
		BaseURL(server.URL).
		BasicAuth("user", "pass").
		BearerToken("final").
		Get(context.Background())

	require.NoError(t, err)
}

func TestBuilder_ReExecutionWithTweaks(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	b := NewBuilder(nil).BaseURL(server.URL).Endpoint("/first")

	_, err := b.Get(context.Background())
	require.NoError(t, err)

	_, err = b.Endpoint("/second").Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"/first", "/second"}, paths)
}

func TestBuilder_AbsoluteEndpointIgnoresBase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resp, err := NewBuilder(nil).
		BaseURL("http://example.invalid").
		Endpoint(server.URL).
		Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

type recordingObserver struct {
	samples []time.Duration
}

func (r *recordingObserver) Record(d time.Duration) {
	r.samples = append(r.samples, d)
}

func TestBuilder_RecordLatency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	obs := &recordingObserver{}
	b := NewBuilder(nil).BaseURL(server.URL).RecordLatency(obs)

	for i := 0; i < 3; i++ {
		_, err := b.Get(context.Background())
		require.NoError(t, err)
	}
	assert.Len(t, obs.samples, 3)
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		endpoint string
		want     string
		wantErr  bool
	}{
		{name: "join", base: "http://api.test", endpoint: "/v1/users", want: "http://api.test/v1/users"},
		{name: "base only", base: "http://api.test/health", endpoint: "", want: "http://api.test/health"},
		{name: "absolute endpoint", base: "", endpoint: "https://other.test/x", want: "https://other.test/x"},
		{name: "no base relative endpoint", base: "", endpoint: "/x", wantErr: true},
		{name: "bad scheme", base: "ftp://api.test", endpoint: "/x", wantErr: true},
		{name: "no host", base: "http://", endpoint: "/x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveURL(tt.base, tt.endpoint)
			if tt.wantErr {
				require.Error(t, err)
				var cfgErr *ConfigError
				assert.True(t, errors.As(err, &cfgErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
