package http

import (
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Response is an immutable snapshot of one HTTP exchange. It is fully
// formed on construction; the JSON view is parsed up front so callers
// never observe a partially populated value.
type Response struct {
	StatusCode int
	Status     string
	Headers    map[string]string
	Body       []byte
	Duration   time.Duration

	json    gjson.Result
	hasJSON bool
}

// NewResponse builds a Response and parses the body as JSON when it is
// valid JSON. Non-JSON bodies are tolerated: the raw text stays
// accessible and JSON() reports ok=false.
func NewResponse(statusCode int, status string, headers map[string]string, body []byte, duration time.Duration) *Response {
	if headers == nil {
		headers = make(map[string]string)
	}
	r := &Response{
		StatusCode: statusCode,
		Status:     status,
		Headers:    headers,
		Body:       body,
		Duration:   duration,
	}
	if gjson.ValidBytes(body) {
		r.json = gjson.ParseBytes(body)
		r.hasJSON = true
	}
	return r
}

func (r *Response) BodyString() string {
	return string(r.Body)
}

// JSON returns the parsed body and whether the body was valid JSON.
func (r *Response) JSON() (gjson.Result, bool) {
	return r.json, r.hasJSON
}

// Header looks up a header value case-insensitively.
func (r *Response) Header(key string) string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

func (r *Response) ContentType() string {
	return r.Header("Content-Type")
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500
}

func (r *Response) DurationMs() int64 {
	return r.Duration.Milliseconds()
}
