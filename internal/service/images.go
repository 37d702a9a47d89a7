package service

import "strings"

// ImagePolicy decides whether a question is the kind that should show images.
// Whether the retrieved entry has images is a separate, ingestion-time
// property; both must hold for images to be attached.
type ImagePolicy struct {
	keywords []string
}

// NewImagePolicy creates a policy from trigger phrases. Matching is
// case-insensitive substring search on the question.
func NewImagePolicy(keywords []string) ImagePolicy {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			lowered = append(lowered, k)
		}
	}
	return ImagePolicy{keywords: lowered}
}

// Matches reports whether the question contains any trigger phrase.
func (p ImagePolicy) Matches(query string) bool {
	q := strings.ToLower(query)
	for _, k := range p.keywords {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}

// SelectImages returns the candidates when the question matches, otherwise an
// empty slice.
func (p ImagePolicy) SelectImages(query string, candidates []string) []string {
	if len(candidates) == 0 || !p.Matches(query) {
		return []string{}
	}
	out := make([]string, len(candidates))
	copy(out, candidates)
	return out
}
