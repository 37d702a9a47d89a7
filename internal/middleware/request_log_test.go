package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturoeanton/portfolio-rag/internal/service"
)

func newTestApp(buf *bytes.Buffer) *fiber.App {
	app := fiber.New()
	app.Use(RequestLogMiddleware(slog.New(slog.NewJSONHandler(buf, nil))))
	app.Get("/id", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"local":   GetRequestID(c),
			"context": service.RequestID(c.Context()),
		})
	})
	return app
}

func TestRequestLogMiddleware_AssignsID(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf)

	resp, err := app.Test(httptest.NewRequest("GET", "/id", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	id := resp.Header.Get(RequestIDHeader)
	_, parseErr := uuid.Parse(id)
	assert.NoError(t, parseErr)

	var body map[string]string
	require.NoError(t, decodeJSON(resp.Body, &body))
	assert.Equal(t, id, body["local"])
	assert.Equal(t, id, body["context"])

	assert.Contains(t, buf.String(), `"msg":"http request"`)
	assert.Contains(t, buf.String(), `"path":"/id"`)
	assert.Contains(t, buf.String(), id)
}

func TestRequestLogMiddleware_ReusesInboundID(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf)

	req := httptest.NewRequest("GET", "/id", nil)
	req.Header.Set(RequestIDHeader, "trace-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "trace-123", resp.Header.Get(RequestIDHeader))
}

func decodeJSON(r io.Reader, v interface{}) error {
	return json.NewDecoder(r).Decode(v)
}
