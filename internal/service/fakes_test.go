package service

import (
	"context"
	"sort"
	"sync"

	"github.com/arturoeanton/portfolio-rag/internal/domain"
)

// fakeEmbedder implements port.Embedder for testing
type fakeEmbedder struct {
	mu     sync.Mutex
	calls  int
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.vector != nil {
		return f.vector, nil
	}
	return []float32{1, 0, 0}, nil
}

func (f *fakeEmbedder) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeStore implements port.KnowledgeStore over an in-memory slice of scored
// matches. Search sorts by score and honors limit.
type fakeStore struct {
	mu         sync.Mutex
	matches    []domain.RetrievalMatch
	err        error
	calls      int
	lastLimit  int
	searchFunc func(ctx context.Context, vector []float32, limit int) ([]domain.RetrievalMatch, error)
}

func (f *fakeStore) Search(ctx context.Context, vector []float32, limit int) ([]domain.RetrievalMatch, error) {
	f.mu.Lock()
	f.calls++
	f.lastLimit = limit
	f.mu.Unlock()

	if f.searchFunc != nil {
		return f.searchFunc(ctx, vector, limit)
	}
	if f.err != nil {
		return nil, f.err
	}
	sorted := make([]domain.RetrievalMatch, len(f.matches))
	copy(sorted, f.matches)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeGenerator implements port.Generator and records the last prompt.
type fakeGenerator struct {
	mu           sync.Mutex
	response     string
	err          error
	calls        int
	lastSystem   string
	lastUser     string
	completeFunc func(ctx context.Context, system, user string) (string, error)
}

func (f *fakeGenerator) ModelName() string { return "fake-model" }

func (f *fakeGenerator) Complete(ctx context.Context, system, user string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	f.mu.Unlock()

	if f.completeFunc != nil {
		return f.completeFunc(ctx, system, user)
	}
	if f.err != nil {
		return "", f.err
	}
	if f.response != "" {
		return f.response, nil
	}
	return "I build things.", nil
}

func (f *fakeGenerator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeGenerator) LastUser() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastUser
}

func entry(id, text string, score float64, images ...string) domain.RetrievalMatch {
	return domain.RetrievalMatch{
		Entry: domain.KnowledgeEntry{ID: id, Text: text, Images: images},
		Score: score,
	}
}
