package domain

// KnowledgeEntry is one stored fact about the profile owner. Entries are
// written by an external ingestion process; this service only reads them.
type KnowledgeEntry struct {
	ID     string   `json:"id"`
	Text   string   `json:"text"`
	Images []string `json:"images,omitempty"`
	Tags   []string `json:"example_questions,omitempty"`
}

// RetrievalMatch is returned by a knowledge store search, including similarity score.
type RetrievalMatch struct {
	Entry KnowledgeEntry `json:"entry"`
	Score float64        `json:"score"`
}

// HasText reports whether the match carries usable context text.
func (m RetrievalMatch) HasText() bool {
	return m.Entry.Text != ""
}
