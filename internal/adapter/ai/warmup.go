package ai

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/arturoeanton/portfolio-rag/internal/port"
)

const warmupText = "warm up"

var _ port.ReadyEmbedder = (*WarmEmbedder)(nil)

// WarmEmbedder wraps an Embedder whose first call is expensive (model load).
// Start probes the inner embedder until it succeeds, then closes Ready.
// Embed calls made before that wait for readiness or for their context.
type WarmEmbedder struct {
	inner    port.Embedder
	interval time.Duration
	timeout  time.Duration

	ready     chan struct{}
	startOnce sync.Once
	readyOnce sync.Once
}

// NewWarmEmbedder creates a wrapper that retries the warm-up probe every
// interval, each attempt bounded by timeout.
func NewWarmEmbedder(inner port.Embedder, interval, timeout time.Duration) *WarmEmbedder {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &WarmEmbedder{
		inner:    inner,
		interval: interval,
		timeout:  timeout,
		ready:    make(chan struct{}),
	}
}

// Start launches the warm-up in the background. Only the first call has any
// effect. Warm-up stops early if ctx is cancelled.
func (w *WarmEmbedder) Start(ctx context.Context) {
	w.startOnce.Do(func() {
		go w.warm(ctx)
	})
}

// Ready is closed once the embedder has produced its first vector.
func (w *WarmEmbedder) Ready() <-chan struct{} {
	return w.ready
}

// IsReady reports readiness without blocking.
func (w *WarmEmbedder) IsReady() bool {
	select {
	case <-w.ready:
		return true
	default:
		return false
	}
}

// Embed waits for readiness, then delegates.
func (w *WarmEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	select {
	case <-w.ready:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", port.ErrEmbedderNotReady, ctx.Err())
	}
	return w.inner.Embed(ctx, text)
}

func (w *WarmEmbedder) warm(ctx context.Context) {
	start := time.Now()
	slog.Info("loading embedding model")

	for attempt := 1; ; attempt++ {
		err := w.probe(ctx)
		if err == nil {
			w.readyOnce.Do(func() { close(w.ready) })
			slog.Info("embedding model loaded", "attempt", attempt, "duration_ms", time.Since(start).Milliseconds())
			return
		}
		slog.Warn("embedding model warm-up failed", "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			slog.Info("embedding warm-up cancelled", "error", ctx.Err())
			return
		case <-time.After(w.interval):
		}
	}
}

func (w *WarmEmbedder) probe(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	vector, err := w.inner.Embed(probeCtx, warmupText)
	if err != nil {
		return err
	}
	if len(vector) == 0 {
		return port.ErrEmptyEmbedding
	}
	return nil
}
