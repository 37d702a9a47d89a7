package domain

// AnswerResult is the final, sanitized answer to a single question.
type AnswerResult struct {
	Text   string   `json:"text"`
	Images []string `json:"images"`
}

// NewAnswerResult builds a result whose image list is never nil, so it always
// serializes as a JSON array.
func NewAnswerResult(text string, images []string) AnswerResult {
	out := make([]string, len(images))
	copy(out, images)
	return AnswerResult{Text: text, Images: out}
}
