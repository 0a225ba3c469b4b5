package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"vercel-runtime/pkg/lambda"
)

// CodeRateLimited is the error code of a rejected request
const CodeRateLimited = "rate_limited"

// RateLimiter implements rate limiting middleware
func RateLimiter(log logrus.FieldLogger, requestsPerSecond float64, burstSize int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			log.WithFields(logrus.Fields{
				"request_id": c.GetString(RequestIDKey),
				"client_ip":  c.ClientIP(),
				"path":       c.Request.URL.Path,
			}).Warn("Rate limit exceeded")

			resp, err := lambda.JSON(http.StatusTooManyRequests, lambda.StructuredError{
				Message: fmt.Sprintf("Too many requests. Limit: %.1f requests per second", requestsPerSecond),
				Code:    CodeRateLimited,
			})
			if err != nil {
				resp = lambda.InternalServerErrorWithLogger(log, err)
			}
			abortWith(c, resp)
			return
		}
		c.Next()
	}
}
