package ai

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/arturoeanton/portfolio-rag/internal/port"
)

// RateLimitedGenerator caps the rate of completions sent to a paid API.
// A request that cannot get a token before its context ends fails, which the
// answer pipeline turns into its fallback response.
type RateLimitedGenerator struct {
	next    port.Generator
	limiter *rate.Limiter
}

// NewRateLimitedGenerator wraps next with a token bucket of perSecond requests
// and the given burst. A non-positive perSecond returns next unchanged.
func NewRateLimitedGenerator(next port.Generator, perSecond float64, burst int) port.Generator {
	if perSecond <= 0 {
		return next
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimitedGenerator{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// ModelName returns the wrapped model identifier.
func (r *RateLimitedGenerator) ModelName() string {
	return r.next.ModelName()
}

// Complete waits for a token, then delegates.
func (r *RateLimitedGenerator) Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}
	return r.next.Complete(ctx, systemPrompt, userPrompt)
}
