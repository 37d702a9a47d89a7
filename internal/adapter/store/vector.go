package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/arturoeanton/portfolio-rag/internal/domain"
)

// DefaultPgVectorTable is the table searched when none is configured.
const DefaultPgVectorTable = "knowledge_entries"

// PgVectorStore implements port.KnowledgeStore on a pgvector table:
//
//	CREATE TABLE knowledge_entries (
//	    id                TEXT PRIMARY KEY,
//	    text              TEXT NOT NULL,
//	    images            TEXT[] NOT NULL DEFAULT '{}',
//	    example_questions TEXT[] NOT NULL DEFAULT '{}',
//	    embedding         vector(384) NOT NULL
//	);
type PgVectorStore struct {
	store *PostgresStore
	query string
}

// NewPgVectorStore binds a knowledge table to the given Postgres store.
func NewPgVectorStore(store *PostgresStore, table string) *PgVectorStore {
	if table == "" {
		table = DefaultPgVectorTable
	}
	return &PgVectorStore{store: store, query: searchQuery(table)}
}

func searchQuery(table string) string {
	return fmt.Sprintf(`SELECT id, text, images, example_questions,
	                 1 - (embedding <=> $1::vector) AS similarity
	          FROM %s
	          ORDER BY embedding <=> $1::vector
	          LIMIT $2`, pq.QuoteIdentifier(table))
}

// Search performs a cosine similarity search, best match first.
func (v *PgVectorStore) Search(ctx context.Context, vector []float32, limit int) ([]domain.RetrievalMatch, error) {
	if limit <= 0 {
		limit = 1
	}

	rows, err := v.store.db.QueryContext(ctx, v.query, vectorToString(vector), limit)
	if err != nil {
		return nil, fmt.Errorf("search similar: %w", err)
	}
	defer rows.Close()

	var results []domain.RetrievalMatch
	for rows.Next() {
		var m domain.RetrievalMatch
		if err := rows.Scan(
			&m.Entry.ID, &m.Entry.Text,
			pq.Array(&m.Entry.Images), pq.Array(&m.Entry.Tags),
			&m.Score,
		); err != nil {
			return nil, fmt.Errorf("scan similar: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate similar: %w", err)
	}
	return results, nil
}

// Close closes the underlying connection pool.
func (v *PgVectorStore) Close() error {
	return v.store.Close()
}

// HealthCheck pings the database.
func (v *PgVectorStore) HealthCheck(ctx context.Context) error {
	return v.store.HealthCheck(ctx)
}

// vectorToString converts a float32 slice to pgvector string format: [0.1,0.2,0.3].
func vectorToString(v []float32) string {
	parts := make([]string, len(v))
	for i, val := range v {
		parts[i] = fmt.Sprintf("%g", val)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
