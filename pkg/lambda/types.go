package lambda

import (
	"context"
	"net/url"
	"strings"
)

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method  string
	Host    string
	Path    string
	URL     *url.URL
	Headers map[string]string
	Body    Body
}

// Query returns the parsed query string of the request
func (r *Request) Query() url.Values {
	if r.URL == nil {
		return url.Values{}
	}
	return r.URL.Query()
}

// QueryParam returns the first value of a query parameter and whether it was present
func (r *Request) QueryParam(name string) (string, bool) {
	values, ok := r.Query()[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Header returns a request header by exact name, falling back to a
// case-insensitive match
func (r *Request) Header(name string) string {
	if v, ok := r.Headers[name]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       Body
}

// NewResponse creates a response with the given status and body and no headers
func NewResponse(statusCode int, body Body) *Response {
	return &Response{
		StatusCode: statusCode,
		Headers:    map[string]string{},
		Body:       normalizeBody(body),
	}
}

// SetHeader sets a response header, replacing any header whose name differs
// only by case, and allocates the header map if needed
func (r *Response) SetHeader(name, value string) *Response {
	if r.Headers == nil {
		r.Headers = map[string]string{}
	}
	for existing := range r.Headers {
		if existing != name && strings.EqualFold(existing, name) {
			delete(r.Headers, existing)
		}
	}
	r.Headers[name] = value
	return r
}

// HandlerFunc is a framework-agnostic handler interface
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)
