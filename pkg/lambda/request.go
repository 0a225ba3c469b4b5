package lambda

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// InvocationEvent is the envelope the platform sends for each invocation.
// Body holds the JSON encoded request payload.
type InvocationEvent struct {
	Action string `json:"Action"`
	Body   string `json:"body"`
}

// requestPayload is the request carried inside an InvocationEvent
type requestPayload struct {
	Host     string                     `json:"host"`
	Path     string                     `json:"path"`
	Method   string                     `json:"method"`
	Headers  map[string]json.RawMessage `json:"headers"`
	Body     *string                    `json:"body"`
	Encoding *string                    `json:"encoding"`
}

// DecodeInvocation extracts the generic request from an invocation event
func DecodeInvocation(event InvocationEvent) (*Request, error) {
	var payload requestPayload
	if err := json.Unmarshal([]byte(event.Body), &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse request payload: %v", ErrInvalidEvent, err)
	}

	method := strings.ToUpper(payload.Method)
	if method == "" {
		method = http.MethodGet
	}

	rawURL := "https://" + payload.Host + payload.Path
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid request url %q: %v", ErrInvalidEvent, rawURL, err)
	}

	headers := make(map[string]string, len(payload.Headers))
	for name, raw := range payload.Headers {
		value, err := headerValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: header %q: %v", ErrInvalidEvent, name, err)
		}
		headers[name] = value
	}

	body, err := decodeBody(payload.Body, payload.Encoding)
	if err != nil {
		return nil, err
	}

	return &Request{
		Method:  method,
		Host:    payload.Host,
		Path:    u.Path,
		URL:     u,
		Headers: headers,
		Body:    body,
	}, nil
}

// headerValue accepts a header sent either as a string or a list of strings
func headerValue(raw json.RawMessage) (string, error) {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single, nil
	}

	var multi []string
	if err := json.Unmarshal(raw, &multi); err != nil {
		return "", errors.New("expected string or array of strings")
	}
	return strings.Join(multi, ", "), nil
}
