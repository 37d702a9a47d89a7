package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/arturoeanton/portfolio-rag/internal/service"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const requestIDLocal = "request_id"

// RequestLogMiddleware tags every request with an id (reusing a sane inbound
// X-Request-ID) and logs one summary line when the handler returns.
func RequestLogMiddleware(logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c fiber.Ctx) error {
		start := time.Now()

		// Capture request data BEFORE handler execution (Fiber reuses context objects)
		method := c.Method()
		path := c.Path()
		ip := c.IP()

		id := c.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Locals(requestIDLocal, id)
		c.Set(RequestIDHeader, id)
		c.SetContext(service.WithRequestID(c.Context(), id))

		err := c.Next()

		status := c.Response().StatusCode()
		level := slog.LevelInfo
		if err != nil || status >= fiber.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Context(), level, "http request",
			"request_id", id,
			"method", method,
			"path", path,
			"status", status,
			"ip", ip,
			"duration_ms", time.Since(start).Milliseconds(),
		)

		return err
	}
}

// GetRequestID returns the id assigned by RequestLogMiddleware, or "".
func GetRequestID(c fiber.Ctx) string {
	id, _ := c.Locals(requestIDLocal).(string)
	return id
}
