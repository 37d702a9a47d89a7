package port

import (
	"context"

	"github.com/arturoeanton/portfolio-rag/internal/domain"
)

// KnowledgeStore searches the pre-built knowledge base by vector similarity.
// Results are ordered by descending score and always carry their payload.
type KnowledgeStore interface {
	Search(ctx context.Context, vector []float32, limit int) ([]domain.RetrievalMatch, error)
	Close() error
}

// HealthChecker is implemented by adapters that can probe their backend.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
