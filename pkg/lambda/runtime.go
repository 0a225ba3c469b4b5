package lambda

import (
	"context"
	"encoding/json"
	"fmt"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// fallbackEvent is returned when a handler response cannot be converted
var fallbackEvent = json.RawMessage(`{"statusCode":500,"headers":{"content-type":"application/json"},"body":"{\"message\":\"Internal server error\",\"code\":\"internal_server_error\"}"}`)

// Start runs handler inside the platform runtime. It blocks and does not return.
func Start(handler HandlerFunc) {
	awslambda.Start(NewHandler(handler))
}

// NewHandler adapts a HandlerFunc to the platform invocation signature
func NewHandler(handler HandlerFunc) func(context.Context, InvocationEvent) (json.RawMessage, error) {
	return func(ctx context.Context, event InvocationEvent) (json.RawMessage, error) {
		return Invoke(ctx, handler, event), nil
	}
}

// Invoke decodes the event, runs handler and returns the serialized
// EventResponse. Failures never escape: undecodable events produce a 400,
// handler errors and unconvertible responses produce a 500.
func Invoke(ctx context.Context, handler HandlerFunc, event InvocationEvent) json.RawMessage {
	fields := invocationFields(ctx)

	req, err := DecodeInvocation(event)
	if err != nil {
		log := logrus.WithFields(fields)
		log.WithError(err).Warn("Failed to decode invocation event")
		return encodeEvent(log, BadRequest("Invalid request"))
	}

	fields["method"] = req.Method
	fields["path"] = req.Path

	return encodeEvent(logrus.WithFields(fields), serve(ctx, fields, handler, req))
}

// serve runs handler with fields attached to its context, turning errors and
// panics into a 500 response
func serve(ctx context.Context, fields logrus.Fields, handler HandlerFunc, req *Request) (resp *Response) {
	log := logrus.WithFields(fields)
	ctx = ContextWithLogFields(ctx, fields)

	defer func() {
		if r := recover(); r != nil {
			resp = InternalServerErrorWithLogger(log, fmt.Errorf("handler panic: %v", r))
		}
	}()

	resp, err := handler(ctx, req)
	if err != nil {
		return InternalServerErrorWithLogger(log, err)
	}
	return resp
}

// encodeEvent converts and serializes resp, falling back to a fixed 500 event
func encodeEvent(log logrus.FieldLogger, resp *Response) json.RawMessage {
	event, err := NewEventResponse(resp)
	if err != nil {
		log.WithError(err).Error("Failed to convert response")
		return fallbackEvent
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).Error("Failed to serialize response")
		return fallbackEvent
	}

	log.WithField("status_code", event.StatusCode).Debug("Invocation completed")
	return data
}

// invocationFields returns log fields holding the platform request id, or a
// generated one when running outside the platform
func invocationFields(ctx context.Context) logrus.Fields {
	requestID := ""
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		requestID = lc.AwsRequestID
	}
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return logrus.Fields{"request_id": requestID}
}
