package service

import "fmt"

// Prompt is a single-turn request to the generator.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt interpolates the retrieved context and the raw question verbatim
// into the user turn. The model is told to use the context only if it helps.
func BuildPrompt(persona Persona, contextText, query string) Prompt {
	return Prompt{
		System: persona.SystemPrompt,
		User:   fmt.Sprintf(`Use this context if helpful: "%s". User question: "%s"`, contextText, query),
	}
}
