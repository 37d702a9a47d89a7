package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturoeanton/portfolio-rag/internal/domain"
)

func TestRetriever_TopMatch(t *testing.T) {
	store := &fakeStore{matches: []domain.RetrievalMatch{
		entry("a", "first", 0.3),
		entry("b", "second", 0.8, "b.png"),
	}}
	r := NewRetriever(store, NoMatchContext)

	got, err := r.Retrieve(context.Background(), []float32{1})
	require.NoError(t, err)
	assert.True(t, got.Matched)
	assert.Equal(t, "second", got.ContextText)
	assert.Equal(t, []string{"b.png"}, got.CandidateImages)
	assert.Equal(t, "b", got.EntryID)
	assert.Equal(t, 1, store.lastLimit)
}

func TestRetriever_UsesFirstRowWhenStoreIgnoresLimit(t *testing.T) {
	store := &fakeStore{searchFunc: func(ctx context.Context, vector []float32, limit int) ([]domain.RetrievalMatch, error) {
		return []domain.RetrievalMatch{entry("top", "TOP", 0.9), entry("next", "NEXT", 0.8)}, nil
	}}
	got, err := NewRetriever(store, NoMatchContext).Retrieve(context.Background(), []float32{1})
	require.NoError(t, err)
	assert.Equal(t, "TOP", got.ContextText)
}

func TestRetriever_NoMatch(t *testing.T) {
	got, err := NewRetriever(&fakeStore{}, NoMatchContext).Retrieve(context.Background(), []float32{1})
	require.NoError(t, err)
	assert.False(t, got.Matched)
	assert.Equal(t, "no relevant information found", got.ContextText)
	assert.Equal(t, []string{}, got.CandidateImages)
}

func TestRetriever_MatchWithoutTextIsNoMatch(t *testing.T) {
	store := &fakeStore{matches: []domain.RetrievalMatch{entry("blank", "", 0.99, "x.png")}}
	got, err := NewRetriever(store, NoMatchContext).Retrieve(context.Background(), []float32{1})
	require.NoError(t, err)
	assert.False(t, got.Matched)
	assert.Equal(t, NoMatchContext, got.ContextText)
	assert.Empty(t, got.CandidateImages)
}

func TestRetriever_NilImagesBecomeEmpty(t *testing.T) {
	store := &fakeStore{matches: []domain.RetrievalMatch{entry("a", "text", 0.5)}}
	got, err := NewRetriever(store, NoMatchContext).Retrieve(context.Background(), []float32{1})
	require.NoError(t, err)
	assert.NotNil(t, got.CandidateImages)
	assert.Empty(t, got.CandidateImages)
}

func TestRetriever_StoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("unavailable")}
	_, err := NewRetriever(store, NoMatchContext).Retrieve(context.Background(), []float32{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search knowledge store")
}
