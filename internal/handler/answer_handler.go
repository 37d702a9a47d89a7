package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/portfolio-rag/internal/domain"
	"github.com/arturoeanton/portfolio-rag/internal/port"
)

// Answerer runs the answer pipeline for one question.
type Answerer interface {
	Answer(ctx context.Context, query string) (domain.AnswerResult, error)
}

// AnswerHandler serves the question endpoints used by the portfolio frontend.
type AnswerHandler struct {
	answers Answerer
}

// NewAnswerHandler creates a new answer handler.
func NewAnswerHandler(answers Answerer) *AnswerHandler {
	return &AnswerHandler{answers: answers}
}

// Register sets up the question routes.
func (h *AnswerHandler) Register(router fiber.Router) {
	router.Post("/chat", h.Chat)
	router.Post("/query", h.Query)
}

// Chat answers {"message"} with {"response", "images"}.
func (h *AnswerHandler) Chat(c fiber.Ctx) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "No message provided")
	}

	result, err := h.answers.Answer(c.Context(), body.Message)
	if err != nil {
		return h.fail(c, err, "No message provided")
	}

	return c.JSON(fiber.Map{
		"response": result.Text,
		"images":   imagesOrEmpty(result.Images),
	})
}

// Query answers {"query"} with {"answer", "images"}.
func (h *AnswerHandler) Query(c fiber.Ctx) error {
	var body struct {
		Query string `json:"query"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "No query provided")
	}

	result, err := h.answers.Answer(c.Context(), body.Query)
	if err != nil {
		return h.fail(c, err, "No query provided")
	}

	return c.JSON(fiber.Map{
		"answer": result.Text,
		"images": imagesOrEmpty(result.Images),
	})
}

func (h *AnswerHandler) fail(c fiber.Ctx, err error, invalidMsg string) error {
	if errors.Is(err, port.ErrInvalidInput) {
		return badRequest(c, invalidMsg)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": strings.TrimSpace(err.Error())})
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func imagesOrEmpty(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}
