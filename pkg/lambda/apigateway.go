package lambda

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
)

// FromAPIGatewayProxyRequest converts an API Gateway proxy event to a generic request
func FromAPIGatewayProxyRequest(event events.APIGatewayProxyRequest) (*Request, error) {
	headers := make(map[string]string, len(event.Headers)+len(event.MultiValueHeaders))
	for name, values := range event.MultiValueHeaders {
		headers[name] = strings.Join(values, ", ")
	}
	for name, value := range event.Headers {
		headers[name] = value
	}

	query := url.Values{}
	for name, values := range event.MultiValueQueryStringParameters {
		query[name] = append([]string(nil), values...)
	}
	for name, value := range event.QueryStringParameters {
		if _, ok := query[name]; !ok {
			query.Set(name, value)
		}
	}

	req := &Request{
		Method:  strings.ToUpper(event.HTTPMethod),
		Host:    event.RequestContext.DomainName,
		Path:    event.Path,
		Headers: headers,
		Body:    NoBody,
	}
	if req.Host == "" {
		req.Host = req.Header("Host")
	}
	req.URL = &url.URL{
		Scheme:   "https",
		Host:     req.Host,
		Path:     event.Path,
		RawQuery: query.Encode(),
	}

	switch {
	case event.Body == "":
	case event.IsBase64Encoded:
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to decode base64 body: %v", ErrInvalidEvent, err)
		}
		req.Body = Binary(decoded)
	default:
		req.Body = Text(event.Body)
	}

	return req, nil
}

// APIGatewayProxyResponse converts the event to an API Gateway proxy response
func (e EventResponse) APIGatewayProxyResponse() events.APIGatewayProxyResponse {
	resp := events.APIGatewayProxyResponse{
		StatusCode: e.StatusCode,
	}
	if len(e.Headers) > 0 {
		resp.Headers = make(map[string]string, len(e.Headers))
		for name, value := range e.Headers {
			resp.Headers[name] = value
		}
	}

	switch b := normalizeBody(e.Body).(type) {
	case Empty:
	case Text:
		resp.Body = string(b)
	case Binary:
		resp.Body = base64.StdEncoding.EncodeToString(b)
		resp.IsBase64Encoded = true
	}
	return resp
}

// StartAPIGateway runs handler behind API Gateway proxy integration. It blocks
// and does not return.
func StartAPIGateway(handler HandlerFunc) {
	awslambda.Start(NewAPIGatewayHandler(handler))
}

// NewAPIGatewayHandler adapts a HandlerFunc to the API Gateway proxy signature
func NewAPIGatewayHandler(handler HandlerFunc) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		fields := invocationFields(ctx)
		log := logrus.WithFields(fields)

		var resp *Response
		req, err := FromAPIGatewayProxyRequest(event)
		if err != nil {
			log.WithError(err).Warn("Failed to decode API Gateway event")
			resp = BadRequest("Invalid request")
		} else {
			fields["method"] = req.Method
			fields["path"] = req.Path
			resp = serve(ctx, fields, handler, req)
		}

		converted, err := NewEventResponse(resp)
		if err != nil {
			// helper responses always convert
			converted, _ = NewEventResponse(InternalServerErrorWithLogger(log, fmt.Errorf("failed to convert response: %w", err)))
		}
		return converted.APIGatewayProxyResponse(), nil
	}
}
