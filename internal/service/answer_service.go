package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/arturoeanton/portfolio-rag/internal/domain"
	"github.com/arturoeanton/portfolio-rag/internal/port"
)

// Timeouts bound each external call. A zero value means no timeout.
type Timeouts struct {
	Embed    time.Duration
	Search   time.Duration
	Generate time.Duration
}

// AnswerService answers questions about the profile owner: embed, retrieve the
// top-1 fact, prompt the generator in persona, and sanitize the result.
type AnswerService struct {
	embedder  port.Embedder
	retriever *Retriever
	generator port.Generator
	persona   Persona
	images    ImagePolicy
	timeouts  Timeouts
}

// NewAnswerService creates a new answer pipeline. Empty persona fields fall
// back to DefaultPersona.
func NewAnswerService(embedder port.Embedder, store port.KnowledgeStore, generator port.Generator, persona Persona, timeouts Timeouts) *AnswerService {
	persona = persona.withDefaults()
	return &AnswerService{
		embedder:  embedder,
		retriever: NewRetriever(store, persona.NoMatchContext),
		generator: generator,
		persona:   persona,
		images:    NewImagePolicy(persona.ImageKeywords),
		timeouts:  timeouts,
	}
}

// Persona returns the persona the service was built with.
func (s *AnswerService) Persona() Persona {
	return s.persona
}

// Answer runs the pipeline for one question. The only error it returns is
// port.ErrInvalidInput for an empty question; every upstream failure yields
// the fallback message with no images.
func (s *AnswerService) Answer(ctx context.Context, query string) (result domain.AnswerResult, err error) {
	if strings.TrimSpace(query) == "" {
		return domain.AnswerResult{}, port.ErrInvalidInput
	}

	log := slog.With("request_id", RequestID(ctx))
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error("answer panicked, returning fallback", "stage", StageFailed, "panic", r)
			result, err = s.fallback(), nil
		}
	}()

	result, stage, err := s.run(ctx, log, query)
	if err != nil {
		log.Warn("answer failed, returning fallback",
			"stage", stage,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return s.fallback(), nil
	}

	log.Info("answer ready",
		"images", len(result.Images),
		"answer_length", len(result.Text),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// run walks READY → RETRIEVING → GENERATING → SANITIZING → DONE and reports
// the stage it failed in.
func (s *AnswerService) run(ctx context.Context, log *slog.Logger, query string) (domain.AnswerResult, Stage, error) {
	log.Debug("answer stage", "stage", StageReady)

	stage := StageRetrieving
	log.Debug("answer stage", "stage", stage)

	// 1. Embed the question
	vector, err := s.embed(ctx, query)
	if err != nil {
		return domain.AnswerResult{}, stage, fmt.Errorf("embed query: %w", err)
	}

	// 2. Retrieve the single nearest fact
	retrieval, err := s.retrieve(ctx, vector)
	if err != nil {
		return domain.AnswerResult{}, stage, err
	}
	log.Debug("retrieval complete",
		"matched", retrieval.Matched,
		"entry_id", retrieval.EntryID,
		"score", retrieval.Score,
		"candidate_images", len(retrieval.CandidateImages),
	)

	images := s.images.SelectImages(query, retrieval.CandidateImages)

	// 3. Generate the answer in persona
	stage = StageGenerating
	log.Debug("answer stage", "stage", stage, "model", s.generator.ModelName())

	prompt := BuildPrompt(s.persona, retrieval.ContextText, query)
	raw, err := s.complete(ctx, prompt)
	if err != nil {
		return domain.AnswerResult{}, stage, fmt.Errorf("complete: %w", err)
	}

	// 4. Sanitize
	stage = StageSanitizing
	log.Debug("answer stage", "stage", stage)

	text := SanitizeCompletion(raw)
	if text == "" {
		return domain.AnswerResult{}, stage, port.ErrEmptyCompletion
	}

	log.Debug("answer stage", "stage", StageDone)
	return domain.NewAnswerResult(text, images), StageDone, nil
}

func (s *AnswerService) embed(ctx context.Context, query string) ([]float32, error) {
	ctx, cancel := withOptionalTimeout(ctx, s.timeouts.Embed)
	defer cancel()

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(vector) == 0 {
		return nil, port.ErrEmptyEmbedding
	}
	return vector, nil
}

func (s *AnswerService) retrieve(ctx context.Context, vector []float32) (Retrieval, error) {
	ctx, cancel := withOptionalTimeout(ctx, s.timeouts.Search)
	defer cancel()
	return s.retriever.Retrieve(ctx, vector)
}

func (s *AnswerService) complete(ctx context.Context, prompt Prompt) (string, error) {
	ctx, cancel := withOptionalTimeout(ctx, s.timeouts.Generate)
	defer cancel()
	return s.generator.Complete(ctx, prompt.System, prompt.User)
}

func (s *AnswerService) fallback() domain.AnswerResult {
	return domain.NewAnswerResult(s.persona.FallbackMessage, nil)
}

func withOptionalTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
