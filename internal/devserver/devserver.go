package devserver

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"vercel-runtime/internal/config"
	"vercel-runtime/internal/middleware"
	"vercel-runtime/pkg/lambda"
)

// MaxBodyBytes bounds the request body accepted by the dev server
const MaxBodyBytes = 4 << 20

// NewRouter serves handler for every path and method, the way the platform
// invokes a single function
func NewRouter(cfg *config.Config, log logrus.FieldLogger, handler lambda.HandlerFunc) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())
	if cfg.RateLimit.RequestsPerSecond > 0 {
		router.Use(middleware.RateLimiter(log, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}

	router.Any("/*path", Handler(log, handler))
	return router
}

// Handler adapts a HandlerFunc to gin, passing the response through the same
// event conversion the platform applies
func Handler(log logrus.FieldLogger, handler lambda.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		fields := logrus.Fields{"request_id": c.GetString(middleware.RequestIDKey)}
		reqLog := log.WithFields(fields)

		req, err := toRequest(c)
		if err != nil {
			reqLog.WithError(err).Warn("Failed to read request")
			writeResponse(c, reqLog, lambda.BadRequest("Invalid request"))
			return
		}

		ctx := lambda.ContextWithLogFields(c.Request.Context(), fields)
		resp, err := handler(ctx, req)
		if err != nil {
			resp = lambda.InternalServerErrorWithLogger(reqLog, err)
		}
		writeResponse(c, reqLog, resp)
	}
}

// toRequest builds a generic request from the incoming HTTP request
func toRequest(c *gin.Context) (*lambda.Request, error) {
	u := *c.Request.URL
	u.Scheme = "https"
	u.Host = c.Request.Host

	headers := make(map[string]string, len(c.Request.Header))
	for name, values := range c.Request.Header {
		headers[strings.ToLower(name)] = strings.Join(values, ", ")
	}
	if c.Request.Host != "" {
		headers["host"] = c.Request.Host
	}

	body := lambda.NoBody
	if c.Request.Body != nil {
		data, err := io.ReadAll(io.LimitReader(c.Request.Body, MaxBodyBytes+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read body: %w", err)
		}
		if len(data) > MaxBodyBytes {
			return nil, fmt.Errorf("body exceeds %d bytes", MaxBodyBytes)
		}
		if len(data) > 0 {
			body = bodyFor(c.GetHeader("Content-Type"), data)
		}
	}

	return &lambda.Request{
		Method:  c.Request.Method,
		Host:    c.Request.Host,
		Path:    u.Path,
		URL:     &u,
		Headers: headers,
		Body:    body,
	}, nil
}

// bodyFor keeps textual payloads as Text and everything else as Binary
func bodyFor(contentType string, data []byte) lambda.Body {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	textual := strings.HasPrefix(mediaType, "text/") ||
		mediaType == "application/json" ||
		mediaType == "application/x-www-form-urlencoded" ||
		strings.HasSuffix(mediaType, "+json") ||
		strings.HasSuffix(mediaType, "xml")
	if textual && utf8.Valid(data) {
		return lambda.TextBody(string(data))
	}
	return lambda.BinaryBody(data)
}

// writeResponse converts resp to its event form and writes it
func writeResponse(c *gin.Context, log logrus.FieldLogger, resp *lambda.Response) {
	event, err := lambda.NewEventResponse(resp)
	if err != nil {
		// helper responses always convert
		event, _ = lambda.NewEventResponse(lambda.InternalServerErrorWithLogger(log, fmt.Errorf("failed to convert response: %w", err)))
	}

	contentType := ""
	for name, value := range event.Headers {
		if strings.EqualFold(name, "content-type") {
			contentType = value
			continue
		}
		c.Header(name, value)
	}

	status := event.StatusCode
	if status == 0 {
		status = http.StatusOK
	}

	if lambda.IsEmpty(event.Body) {
		if contentType != "" {
			c.Header("Content-Type", contentType)
		}
		c.Status(status)
		c.Writer.WriteHeaderNow()
		return
	}
	c.Data(status, contentType, lambda.Bytes(event.Body))
}
