package service

import (
	"fmt"
	"strings"
)

// DefaultPersonaName is used when no PERSONA_NAME is configured.
const DefaultPersonaName = "Suyash Sawant"

// NoMatchContext is substituted for the context text when retrieval finds nothing.
const NoMatchContext = "no relevant information found"

// DefaultFallbackMessage is returned, with no images, whenever an upstream call fails.
const DefaultFallbackMessage = `Sorry, I can't answer that right now. Please try again in a few seconds.

Meanwhile, feel free to explore my **projects**, **skills**, or **achievements** using the sections below.`

// DefaultImageKeywords are the phrases that mark a question as image-worthy.
var DefaultImageKeywords = []string{
	"achievement",
	"hackathon",
	"about me",
	"tell me about yourself",
}

const systemPromptTemplate = `You are %[1]s, and you're answering in first person but don't write 'As %[1]s' unnecessarily.
Write clearly, professionally, and in a structured, elegant style.
Use bullet points, line breaks, and markdown formatting as needed.
When necessary, bold important words (using ** **), or use headings (like ## or ###) to organize sections and emphasize key points.
Avoid overly casual words or emojis.
Only provide a direct answer. Do not mention that you are an assistant or AI.`

// Persona holds the fixed, process-wide answer policy: the system instruction,
// the image trigger phrases, and the two fixed texts used by the pipeline.
type Persona struct {
	SystemPrompt    string
	ImageKeywords   []string
	NoMatchContext  string
	FallbackMessage string
}

// DefaultPersona returns the built-in persona for the given name.
func DefaultPersona(name string) Persona {
	if strings.TrimSpace(name) == "" {
		name = DefaultPersonaName
	}
	keywords := make([]string, len(DefaultImageKeywords))
	copy(keywords, DefaultImageKeywords)
	return Persona{
		SystemPrompt:    fmt.Sprintf(systemPromptTemplate, name),
		ImageKeywords:   keywords,
		NoMatchContext:  NoMatchContext,
		FallbackMessage: DefaultFallbackMessage,
	}
}

// withDefaults fills any empty field from DefaultPersona.
func (p Persona) withDefaults() Persona {
	def := DefaultPersona("")
	if p.SystemPrompt == "" {
		p.SystemPrompt = def.SystemPrompt
	}
	if p.ImageKeywords == nil {
		p.ImageKeywords = def.ImageKeywords
	}
	if p.NoMatchContext == "" {
		p.NoMatchContext = def.NoMatchContext
	}
	if p.FallbackMessage == "" {
		p.FallbackMessage = def.FallbackMessage
	}
	return p
}
