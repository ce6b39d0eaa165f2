package middleware

import (
	"golf-coach/internal/logger"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestLog tags the request context with an id (taken from the client when
// present) and logs one line per request.
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		log := logger.Ctx(c.Request.Context())
		attrs := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "err", c.Errors.String())
		}
		switch {
		case c.Writer.Status() >= 500:
			log.Error("http.request", attrs...)
		case c.Writer.Status() >= 400:
			log.Warn("http.request", attrs...)
		default:
			log.Info("http.request", attrs...)
		}
	}
}
