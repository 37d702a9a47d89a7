package handler

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/static"
)

// RegisterStatic serves the built frontend from dir and falls back to
// index.html for client-side routes. Nothing is registered if dir is missing.
func RegisterStatic(app *fiber.App, dir string) bool {
	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		slog.Warn("frontend not found, static hosting disabled", "dir", dir)
		return false
	}

	app.Get("/*", static.New(dir))
	app.Get("/*", func(c fiber.Ctx) error {
		return c.SendFile(index)
	})
	return true
}
