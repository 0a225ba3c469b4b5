package lambda

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/http/httpguts"
)

// EncodingBase64 marks an event body as base64 encoded binary
const EncodingBase64 = "base64"

var (
	// ErrInvalidHeader is returned when a header cannot be represented on the wire
	ErrInvalidHeader = errors.New("invalid header")
	// ErrInvalidEvent is returned when an event payload cannot be decoded
	ErrInvalidEvent = errors.New("invalid event")
	// ErrInvalidBody is returned when a Text body is not valid UTF-8
	ErrInvalidBody = errors.New("invalid body")
)

// EventResponse is the wire representation of a response returned to the
// platform. The encoding marker is derived from the body variant and is
// never stored separately.
type EventResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       Body
}

// NewEventResponse converts a generic response into its wire representation.
// A nil response converts to the default event: status 200 with no headers or body.
func NewEventResponse(resp *Response) (EventResponse, error) {
	if resp == nil {
		return EventResponse{StatusCode: http.StatusOK, Body: NoBody}, nil
	}

	if err := validateHeaders(resp.Headers); err != nil {
		return EventResponse{}, err
	}
	body := normalizeBody(resp.Body)
	if err := validateBody(body); err != nil {
		return EventResponse{}, err
	}

	headers := make(map[string]string, len(resp.Headers))
	for name, value := range resp.Headers {
		headers[name] = value
	}

	return EventResponse{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       body,
	}, nil
}

// Encoding returns the encoding marker for the body, or "" when none applies
func (e EventResponse) Encoding() string {
	switch normalizeBody(e.Body).(type) {
	case Binary:
		return EncodingBase64
	case Text, Empty:
		return ""
	default:
		return ""
	}
}

// Response converts the event back into a generic response
func (e EventResponse) Response() *Response {
	headers := make(map[string]string, len(e.Headers))
	for name, value := range e.Headers {
		headers[name] = value
	}
	return &Response{
		StatusCode: e.StatusCode,
		Headers:    headers,
		Body:       normalizeBody(e.Body),
	}
}

// MarshalJSON writes statusCode, headers, body and encoding in that order,
// leaving out headers when there are none, body when it is Empty, and
// encoding unless the body is Binary.
func (e EventResponse) MarshalJSON() ([]byte, error) {
	if err := validateHeaders(e.Headers); err != nil {
		return nil, err
	}
	if err := validateBody(e.Body); err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	buf.WriteString(`{"statusCode":`)
	buf.WriteString(strconv.Itoa(e.StatusCode))

	if len(e.Headers) > 0 {
		names := make([]string, 0, len(e.Headers))
		for name := range e.Headers {
			names = append(names, name)
		}
		sort.Strings(names)

		buf.WriteString(`,"headers":{`)
		for i, name := range names {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(&buf, name)
			buf.WriteByte(':')
			writeJSONString(&buf, e.Headers[name])
		}
		buf.WriteByte('}')
	}

	switch b := normalizeBody(e.Body).(type) {
	case Empty:
	case Text:
		buf.WriteString(`,"body":`)
		writeJSONString(&buf, string(b))
	case Binary:
		buf.WriteString(`,"body":`)
		writeJSONString(&buf, base64.StdEncoding.EncodeToString(b))
		buf.WriteString(`,"encoding":`)
		writeJSONString(&buf, EncodingBase64)
	default:
		return nil, fmt.Errorf("unsupported body type %T", e.Body)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an event written by MarshalJSON. A missing statusCode
// defaults to 200.
func (e *EventResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		StatusCode *int              `json:"statusCode"`
		Headers    map[string]string `json:"headers"`
		Body       *string           `json:"body"`
		Encoding   *string           `json:"encoding"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	body, err := decodeBody(raw.Body, raw.Encoding)
	if err != nil {
		return err
	}

	e.StatusCode = http.StatusOK
	if raw.StatusCode != nil {
		e.StatusCode = *raw.StatusCode
	}
	e.Headers = raw.Headers
	if e.Headers == nil {
		e.Headers = map[string]string{}
	}
	e.Body = body
	return nil
}

// decodeBody turns a wire body and optional encoding marker into a Body
func decodeBody(body *string, encoding *string) (Body, error) {
	if body == nil {
		if encoding != nil && *encoding != "" {
			return nil, fmt.Errorf("%w: encoding %q without body", ErrInvalidEvent, *encoding)
		}
		return NoBody, nil
	}
	if encoding == nil || *encoding == "" {
		return Text(*body), nil
	}
	if *encoding != EncodingBase64 {
		return nil, fmt.Errorf("%w: unsupported encoding %q", ErrInvalidEvent, *encoding)
	}
	decoded, err := base64.StdEncoding.DecodeString(*body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode base64 body: %v", ErrInvalidEvent, err)
	}
	return Binary(decoded), nil
}

// validateHeaders checks every header and rejects names that differ only by
// case, which the platform would receive as conflicting values
func validateHeaders(headers map[string]string) error {
	seen := make(map[string]string, len(headers))
	for name, value := range headers {
		if err := validateHeader(name, value); err != nil {
			return err
		}
		folded := strings.ToLower(name)
		if other, ok := seen[folded]; ok {
			return fmt.Errorf("%w: %q and %q name the same header", ErrInvalidHeader, other, name)
		}
		seen[folded] = name
	}
	return nil
}

// validateBody rejects Text bodies that JSON would silently rewrite
func validateBody(b Body) error {
	if text, ok := b.(Text); ok && !utf8.ValidString(string(text)) {
		return fmt.Errorf("%w: text body is not valid UTF-8", ErrInvalidBody)
	}
	return nil
}

// validateHeader checks that a header name is an HTTP token and its value
// is made of visible ASCII characters or tabs
func validateHeader(name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("%w: name %q", ErrInvalidHeader, name)
	}
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == '\t' || (c >= 0x20 && c < 0x7f) {
			continue
		}
		return fmt.Errorf("%w: value of %q contains byte 0x%02x at offset %d", ErrInvalidHeader, name, c, i)
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	// marshalling a string cannot fail
	encoded, _ := json.Marshal(s)
	buf.Write(encoded)
}
