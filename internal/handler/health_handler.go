package handler

import (
	"github.com/gofiber/fiber/v3"
)

// Readiness reports whether the embedding model has finished loading.
type Readiness interface {
	IsReady() bool
}

// HealthHandler reports liveness and embedder readiness.
type HealthHandler struct {
	appName  string
	embedder Readiness
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(appName string, embedder Readiness) *HealthHandler {
	return &HealthHandler{appName: appName, embedder: embedder}
}

// Register sets up the health route.
func (h *HealthHandler) Register(router fiber.Router) {
	router.Get("/health", h.Health)
}

// Health returns "starting" until the embedder is ready, then "healthy".
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ready := h.embedder == nil || h.embedder.IsReady()
	status := "healthy"
	if !ready {
		status = "starting"
	}
	return c.JSON(fiber.Map{
		"status":         status,
		"embedder_ready": ready,
		"app":            h.appName,
	})
}
