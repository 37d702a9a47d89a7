package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/arturoeanton/portfolio-rag/internal/domain"
	"github.com/arturoeanton/portfolio-rag/internal/port"
)

// Payload keys written by the knowledge-base uploader.
const (
	payloadText     = "text"
	payloadImages   = "images"
	payloadExamples = "example_questions"
)

// DefaultQdrantCollection is the collection searched when none is configured.
const DefaultQdrantCollection = "portfolio"

var (
	_ port.KnowledgeStore = (*QdrantStore)(nil)
	_ port.HealthChecker  = (*QdrantStore)(nil)
)

// QdrantConfig configures the gRPC connection to Qdrant.
type QdrantConfig struct {
	Host       string
	Port       int
	APIKey     string
	UseTLS     bool
	Collection string
}

// QdrantStore implements port.KnowledgeStore on a Qdrant collection.
type QdrantStore struct {
	client     *qdrant.Client
	collection string
}

// NewQdrantStore dials Qdrant. The connection is lazy; use HealthCheck to
// verify it.
func NewQdrantStore(cfg QdrantConfig) (*QdrantStore, error) {
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 6334
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultQdrantCollection
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("create qdrant client: %w", err)
	}

	return &QdrantStore{client: client, collection: cfg.Collection}, nil
}

// Search returns the nearest points with their payloads, best match first.
func (q *QdrantStore) Search(ctx context.Context, vector []float32, limit int) ([]domain.RetrievalMatch, error) {
	if limit <= 0 {
		limit = 1
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant query %s (%s): %w", q.collection, status.Code(err), err)
	}

	results := make([]domain.RetrievalMatch, 0, len(points))
	for _, p := range points {
		results = append(results, matchFromPoint(p))
	}
	return results, nil
}

// HealthCheck verifies the server is reachable and the collection exists.
func (q *QdrantStore) HealthCheck(ctx context.Context) error {
	if _, err := q.client.HealthCheck(ctx); err != nil {
		return fmt.Errorf("qdrant health: %w", err)
	}
	exists, err := q.client.CollectionExists(ctx, q.collection)
	if err != nil {
		if status.Code(err) == codes.Unauthenticated || status.Code(err) == codes.PermissionDenied {
			return fmt.Errorf("qdrant auth: %w", err)
		}
		return fmt.Errorf("qdrant collection check: %w", err)
	}
	if !exists {
		return fmt.Errorf("qdrant collection %q: %w", q.collection, port.ErrCollectionMissing)
	}
	return nil
}

// Close releases the gRPC connection.
func (q *QdrantStore) Close() error {
	return q.client.Close()
}

func matchFromPoint(p *qdrant.ScoredPoint) domain.RetrievalMatch {
	payload := p.GetPayload()
	return domain.RetrievalMatch{
		Entry: domain.KnowledgeEntry{
			ID:     pointID(p.GetId()),
			Text:   payload[payloadText].GetStringValue(),
			Images: stringList(payload[payloadImages]),
			Tags:   stringList(payload[payloadExamples]),
		},
		Score: float64(p.GetScore()),
	}
}

func pointID(id *qdrant.PointId) string {
	if id == nil {
		return ""
	}
	if u := id.GetUuid(); u != "" {
		return u
	}
	return strconv.FormatUint(id.GetNum(), 10)
}

// stringList keeps the string items of a list value, skipping anything else.
func stringList(v *qdrant.Value) []string {
	values := v.GetListValue().GetValues()
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, item := range values {
		if s, ok := item.GetKind().(*qdrant.Value_StringValue); ok {
			out = append(out, s.StringValue)
		}
	}
	return out
}
