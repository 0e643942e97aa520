package middleware

import (
	"time"

	"go-elra/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextLogger carries request_id into the request context, and user_id once
// AuthMiddleware has resolved it, then writes one access line per request.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	access := logger.Named("http.access")

	return func(c *gin.Context) {
		start := time.Now()

		rid := c.GetString("request_id")
		if rid == "" {
			rid = c.GetHeader("X-Request-ID")
		}
		if rid == "" {
			rid = uuid.New().String()
			c.Header("X-Request-ID", rid)
		}
		c.Request = c.Request.WithContext(contextutil.WithRequestID(c.Request.Context(), rid))

		c.Next()

		fields := []zap.Field{
			zap.String("request_id", rid),
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if uid := c.GetString(ContextUserID); uid != "" {
			fields = append(fields, zap.String("user_id", uid))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			access.Error("request completed", fields...)
		case status >= 400:
			access.Warn("request completed", fields...)
		default:
			access.Info("request completed", fields...)
		}
	}
}
