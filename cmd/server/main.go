package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/arturoeanton/portfolio-rag/internal/app"
	"github.com/arturoeanton/portfolio-rag/internal/handler"
	"github.com/arturoeanton/portfolio-rag/internal/mcp"
	"github.com/arturoeanton/portfolio-rag/internal/middleware"
	"github.com/arturoeanton/portfolio-rag/pkg/config"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()

	logger := app.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("🚀 Starting portfolio answer service",
		"port", cfg.Port,
		"store", cfg.StoreTarget(),
		"ollama_embed", cfg.OllamaEmbedURL,
		"llm_provider", cfg.LLMProvider,
		"mcp_enabled", cfg.MCPEnabled,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── Answer pipeline ──────────────────────────────────────────────────
	pipeline, err := app.NewPipeline(ctx, cfg)
	if err != nil {
		slog.Error("failed to build answer pipeline", "error", err)
		os.Exit(1)
	}
	defer pipeline.Close()

	// ── Fiber App ────────────────────────────────────────────────────────
	fiberApp := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.EmbedTimeout + cfg.SearchTimeout + cfg.GenerateTimeout + 10*time.Second,
	})

	// Global middleware
	fiberApp.Use(recover.New())
	fiberApp.Use(fiberlogger.New())
	fiberApp.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
	}))
	fiberApp.Use(middleware.RequestLogMiddleware(logger))

	// ── Routes ───────────────────────────────────────────────────────────
	api := fiberApp.Group("/api")
	handler.NewAnswerHandler(pipeline.Service).Register(api)
	handler.NewHealthHandler(cfg.AppName, pipeline.Embedder).Register(api)

	// Static frontend last so it never shadows the API
	handler.RegisterStatic(fiberApp, cfg.StaticDir)

	// ── MCP Server (separate port) ───────────────────────────────────────
	var mcpServer *mcp.Server
	if cfg.MCPEnabled {
		mcpServer = mcp.NewServer(cfg.AppName, pipeline.Service, cfg.MCPPort)
		go func() {
			if err := mcpServer.Start(); err != nil {
				slog.Error("MCP server failed", "error", err)
			}
		}()
	}

	// ── Shutdown ─────────────────────────────────────────────────────────
	go func() {
		<-ctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if mcpServer != nil {
			if err := mcpServer.Shutdown(shutdownCtx); err != nil {
				slog.Warn("MCP shutdown", "error", err)
			}
		}
		if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
			slog.Warn("fiber shutdown", "error", err)
		}
	}()

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("🌐 Fiber listening", "port", cfg.Port)
	if err := fiberApp.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
