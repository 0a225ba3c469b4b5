package lambda

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

// ContentTypeJSON is the content type set by every JSON helper
const ContentTypeJSON = "application/json"

// Error codes carried in StructuredError bodies
const (
	CodeBadRequest          = "bad_request"
	CodeUnauthorized        = "unauthorized"
	CodeNotFound            = "not_found"
	CodeInternalServerError = "internal_server_error"
)

// StructuredError is the JSON body of every error helper
type StructuredError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// lookupResult is the body of NotFound
type lookupResult struct {
	Found bool `json:"found"`
}

// JSON builds a response with a JSON serialized body and a content-type header
func JSON(statusCode int, v any) (*Response, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize response body: %w", err)
	}
	return NewResponse(statusCode, Text(data)).SetHeader("content-type", ContentTypeJSON), nil
}

// mustJSON is JSON for values whose serialization cannot fail
func mustJSON(statusCode int, v any) *Response {
	resp, err := JSON(statusCode, v)
	if err != nil {
		panic(err)
	}
	return resp
}

// Success returns 200 with v serialized as JSON
func Success(v any) (*Response, error) {
	return JSON(http.StatusOK, v)
}

// BadRequest returns 400 with the given message
func BadRequest(message string) *Response {
	return mustJSON(http.StatusBadRequest, StructuredError{Message: message, Code: CodeBadRequest})
}

// Unauthorized returns 401
func Unauthorized() *Response {
	return mustJSON(http.StatusUnauthorized, StructuredError{Message: "Unauthorized", Code: CodeUnauthorized})
}

// EndpointNotFound returns 404 for a path the function does not serve
func EndpointNotFound() *Response {
	return mustJSON(http.StatusNotFound, StructuredError{Message: "Not found", Code: CodeNotFound})
}

// NotFound returns 200 with {"found":false}, reporting a lookup that matched
// nothing. It is not an HTTP 404; see EndpointNotFound for that.
func NotFound() *Response {
	return mustJSON(http.StatusOK, lookupResult{Found: false})
}

// InternalServerError logs err to the standard logger and returns a 500
// whose body never includes err
func InternalServerError(err error) *Response {
	return InternalServerErrorWithLogger(logrus.StandardLogger(), err)
}

// InternalServerErrorWithLogger logs err to log and returns a 500 whose body
// never includes err
func InternalServerErrorWithLogger(log logrus.FieldLogger, err error) *Response {
	log.WithError(err).Error("internal server error")
	return mustJSON(http.StatusInternalServerError, StructuredError{
		Message: "Internal server error",
		Code:    CodeInternalServerError,
	})
}
