package port

import "errors"

// Sentinel errors used across ports.
var (
	ErrInvalidInput      = errors.New("invalid input: question is empty")
	ErrEmbedderNotReady  = errors.New("embedder not ready")
	ErrEmptyCompletion   = errors.New("generator returned an empty completion")
	ErrEmptyEmbedding    = errors.New("embedder returned an empty vector")
	ErrUnknownProvider   = errors.New("unknown provider")
	ErrCollectionMissing = errors.New("collection does not exist")
)
