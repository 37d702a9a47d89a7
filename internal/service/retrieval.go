package service

import (
	"context"
	"fmt"

	"github.com/arturoeanton/portfolio-rag/internal/port"
)

// retrievalLimit is fixed: the generator receives exactly one context entry.
const retrievalLimit = 1

// Retrieval is the outcome of the top-1 retrieval policy.
type Retrieval struct {
	ContextText     string
	CandidateImages []string
	Matched         bool
	EntryID         string
	Score           float64
}

// Retriever applies the top-1 retrieval policy over a knowledge store.
type Retriever struct {
	store          port.KnowledgeStore
	noMatchContext string
}

// NewRetriever creates a retriever that substitutes noMatchContext when the
// store has no usable match.
func NewRetriever(store port.KnowledgeStore, noMatchContext string) *Retriever {
	return &Retriever{store: store, noMatchContext: noMatchContext}
}

// Retrieve searches for the single nearest entry. An empty result is not an
// error; only store failures are.
func (r *Retriever) Retrieve(ctx context.Context, vector []float32) (Retrieval, error) {
	matches, err := r.store.Search(ctx, vector, retrievalLimit)
	if err != nil {
		return Retrieval{}, fmt.Errorf("search knowledge store: %w", err)
	}

	if len(matches) == 0 || !matches[0].HasText() {
		return Retrieval{ContextText: r.noMatchContext, CandidateImages: []string{}}, nil
	}

	top := matches[0]
	images := top.Entry.Images
	if images == nil {
		images = []string{}
	}
	return Retrieval{
		ContextText:     top.Entry.Text,
		CandidateImages: images,
		Matched:         true,
		EntryID:         top.Entry.ID,
		Score:           top.Score,
	}, nil
}
