package lambda

import "fmt"

// Body is the payload of a request or response. It is exactly one of Empty,
// Text or Binary; the set of variants is closed.
type Body interface {
	isBody()
}

// Empty is a body with no content
type Empty struct{}

// Text is a UTF-8 body sent to the platform as a plain string
type Text string

// Binary is a raw body sent to the platform base64 encoded
type Binary []byte

func (Empty) isBody()  {}
func (Text) isBody()   {}
func (Binary) isBody() {}

// NoBody is the Empty body
var NoBody Body = Empty{}

// TextBody creates a Text body
func TextBody(s string) Body {
	return Text(s)
}

// BinaryBody creates a Binary body
func BinaryBody(b []byte) Body {
	return Binary(b)
}

// BodyFrom wraps a nil, string, []byte or Body value as a Body
func BodyFrom(v any) (Body, error) {
	switch b := v.(type) {
	case nil:
		return NoBody, nil
	case Body:
		return normalizeBody(b), nil
	case string:
		return Text(b), nil
	case []byte:
		return Binary(b), nil
	default:
		return nil, fmt.Errorf("unsupported body type %T", v)
	}
}

// normalizeBody maps a nil Body to Empty
func normalizeBody(b Body) Body {
	if b == nil {
		return NoBody
	}
	return b
}

// IsEmpty reports whether b carries no content
func IsEmpty(b Body) bool {
	_, ok := normalizeBody(b).(Empty)
	return ok
}

// Bytes returns the raw content of a body. Empty yields nil.
func Bytes(b Body) []byte {
	switch v := normalizeBody(b).(type) {
	case Text:
		return []byte(v)
	case Binary:
		return []byte(v)
	default:
		return nil
	}
}
