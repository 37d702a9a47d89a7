package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/arturoeanton/portfolio-rag/internal/adapter/ai"
	"github.com/arturoeanton/portfolio-rag/internal/adapter/store"
	"github.com/arturoeanton/portfolio-rag/internal/port"
	"github.com/arturoeanton/portfolio-rag/internal/service"
	"github.com/arturoeanton/portfolio-rag/pkg/config"
)

// Pipeline bundles the shared clients and the answer service built from them.
type Pipeline struct {
	Embedder *ai.WarmEmbedder
	Store    port.KnowledgeStore
	Service  *service.AnswerService
}

// Close releases the knowledge store connection.
func (p *Pipeline) Close() error {
	return p.Store.Close()
}

// NewPipeline constructs every client once and wires them into the answer
// service. The embedder warm-up is started in the background under ctx.
func NewPipeline(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	persona, err := LoadPersona(cfg)
	if err != nil {
		return nil, err
	}

	knowledge, err := NewKnowledgeStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{}

	ollamaEmbed, err := ai.NewOllamaEmbedder(ai.OllamaEndpointConfig{
		BaseURL: cfg.OllamaEmbedURL,
		Model:   cfg.OllamaEmbedModel,
		Token:   cfg.OllamaEmbedToken,
	}, cfg.EmbeddingDimension, httpClient)
	if err != nil {
		knowledge.Close()
		return nil, fmt.Errorf("embedder: %w", err)
	}
	embedder := ai.NewWarmEmbedder(ollamaEmbed, cfg.EmbedWarmupInterval, cfg.EmbedTimeout)

	generator, err := ai.NewGenerator(ctx, ai.GeneratorConfig{
		Provider:      cfg.LLMProvider,
		BaseURL:       cfg.LLMBaseURL,
		Model:         cfg.LLMModel,
		APIKey:        cfg.LLMAPIKey,
		MaxTokens:     cfg.LLMMaxTokens,
		RatePerSecond: cfg.LLMRateLimit,
		Burst:         cfg.LLMRateBurst,
	}, httpClient)
	if err != nil {
		knowledge.Close()
		return nil, fmt.Errorf("generator: %w", err)
	}

	svc := service.NewAnswerService(embedder, knowledge, generator, persona, service.Timeouts{
		Embed:    cfg.EmbedTimeout,
		Search:   cfg.SearchTimeout,
		Generate: cfg.GenerateTimeout,
	})

	embedder.Start(ctx)

	slog.Info("answer pipeline ready",
		"store", cfg.StoreTarget(),
		"embed_model", ollamaEmbed.ModelName(),
		"generator", cfg.LLMProvider,
		"model", generator.ModelName(),
	)

	return &Pipeline{Embedder: embedder, Store: knowledge, Service: svc}, nil
}

// NewKnowledgeStore opens the configured backend and checks it is reachable.
// An unreachable store is logged, not fatal: requests fall back until it
// recovers.
func NewKnowledgeStore(ctx context.Context, cfg *config.Config) (port.KnowledgeStore, error) {
	var knowledge port.KnowledgeStore

	switch cfg.StoreBackend {
	case config.StorePgVector:
		pg, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("knowledge store: %w", err)
		}
		knowledge = store.NewPgVectorStore(pg, cfg.PgVectorTable)
	default:
		q, err := store.NewQdrantStore(store.QdrantConfig{
			Host:       cfg.QdrantHost,
			Port:       cfg.QdrantPort,
			APIKey:     cfg.QdrantAPIKey,
			UseTLS:     cfg.QdrantUseTLS,
			Collection: cfg.QdrantCollection,
		})
		if err != nil {
			return nil, fmt.Errorf("knowledge store: %w", err)
		}
		knowledge = q
	}

	if hc, ok := knowledge.(port.HealthChecker); ok {
		checkCtx, cancel := context.WithTimeout(ctx, cfg.SearchTimeout)
		defer cancel()
		if err := hc.HealthCheck(checkCtx); err != nil {
			slog.Warn("knowledge store health check failed", "store", cfg.StoreTarget(), "error", err)
		}
	}
	return knowledge, nil
}

// LoadPersona builds the persona from PERSONA_NAME and the optional persona file.
func LoadPersona(cfg *config.Config) (service.Persona, error) {
	persona := service.DefaultPersona(cfg.PersonaName)

	pf, err := config.LoadPersonaFile(cfg.PersonaFile)
	if err != nil {
		return persona, err
	}
	if pf.SystemPrompt != "" {
		persona.SystemPrompt = strings.TrimSpace(pf.SystemPrompt)
	}
	if pf.ImageKeywords != nil {
		persona.ImageKeywords = pf.ImageKeywords
	}
	if pf.NoMatchContext != "" {
		persona.NoMatchContext = pf.NoMatchContext
	}
	if pf.FallbackMessage != "" {
		persona.FallbackMessage = strings.TrimSpace(pf.FallbackMessage)
	}
	return persona, nil
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
