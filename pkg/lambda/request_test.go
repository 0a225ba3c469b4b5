package lambda

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invocation(t *testing.T, payload map[string]any) InvocationEvent {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return InvocationEvent{Action: "Invoke", Body: string(data)}
}

func TestDecodeInvocation_TextBody(t *testing.T) {
	event := invocation(t, map[string]any{
		"host":   "example.vercel.app",
		"path":   "/api/user?id=42&tag=a&tag=b",
		"method": "post",
		"headers": map[string]any{
			"content-type": "application/json",
			"accept":       []string{"text/html", "application/json"},
		},
		"body": `{"name":"ada"}`,
	})

	req, err := DecodeInvocation(event)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "example.vercel.app", req.Host)
	assert.Equal(t, "/api/user", req.Path)
	assert.Equal(t, "https://example.vercel.app/api/user?id=42&tag=a&tag=b", req.URL.String())
	assert.Equal(t, "application/json", req.Header("Content-Type"))
	assert.Equal(t, "text/html, application/json", req.Headers["accept"])
	assert.Equal(t, Text(`{"name":"ada"}`), req.Body)

	id, ok := req.QueryParam("id")
	assert.True(t, ok)
	assert.Equal(t, "42", id)
	assert.Equal(t, []string{"a", "b"}, req.Query()["tag"])

	_, ok = req.QueryParam("missing")
	assert.False(t, ok)
}

func TestDecodeInvocation_BinaryBody(t *testing.T) {
	event := invocation(t, map[string]any{
		"host":     "example.vercel.app",
		"path":     "/upload",
		"method":   "PUT",
		"body":     "AP8=",
		"encoding": "base64",
	})

	req, err := DecodeInvocation(event)
	require.NoError(t, err)
	assert.Equal(t, Binary{0x00, 0xFF}, req.Body)
}

func TestDecodeInvocation_NoBody(t *testing.T) {
	event := invocation(t, map[string]any{
		"host": "example.vercel.app",
		"path": "/",
	})

	req, err := DecodeInvocation(event)
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.True(t, IsEmpty(req.Body))
	assert.Empty(t, req.Headers)
}

func TestDecodeInvocation_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		event InvocationEvent
	}{
		{name: "not json", event: InvocationEvent{Action: "Invoke", Body: "not json"}},
		{name: "bad header type", event: invocation(t, map[string]any{
			"host": "h", "path": "/", "headers": map[string]any{"x-n": 1},
		})},
		{name: "bad base64", event: invocation(t, map[string]any{
			"host": "h", "path": "/", "body": "%%%", "encoding": "base64",
		})},
		{name: "bad url", event: invocation(t, map[string]any{
			"host": "h", "path": "/%zz",
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeInvocation(tt.event)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidEvent))
		})
	}
}
