package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// RequestIDHeader is the standard header name used to propagate request IDs.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is the key used to store the request ID in Fiber's context locals.
	RequestIDLocalKey = "request_id"
	// LoggerLocalKey holds the request-scoped *zap.Logger.
	LoggerLocalKey = "logger"

	maxRequestIDLen = 128
)

// RequestID makes sure every request carries an ID and a logger tagged with it.
// An incoming X-Request-ID is reused when it is short printable ASCII; otherwise a UUID is generated.
// The ID is echoed in the response header.
func RequestID(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.Clone(c.Get(RequestIDHeader))
		if !validRequestID(id) {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Locals(LoggerLocalKey, log.With(zap.String("request_id", id)))
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}

// RequestLogger returns the logger stored by RequestID, or fallback when the middleware did not run.
func RequestLogger(c *fiber.Ctx, fallback *zap.Logger) *zap.Logger {
	if l, ok := c.Locals(LoggerLocalKey).(*zap.Logger); ok && l != nil {
		return l
	}
	return fallback
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
