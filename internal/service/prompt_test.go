package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	persona := DefaultPersona("Ada Lovelace")
	p := BuildPrompt(persona, "Wrote the first algorithm.", "What did you write?")

	assert.Equal(t, persona.SystemPrompt, p.System)
	assert.Equal(t, `Use this context if helpful: "Wrote the first algorithm.". User question: "What did you write?"`, p.User)
}

func TestBuildPrompt_InterpolatesVerbatim(t *testing.T) {
	p := BuildPrompt(DefaultPersona(""), "line one\nline \"two\"", "why?\n")
	assert.Contains(t, p.User, "line one\nline \"two\"")
	assert.Contains(t, p.User, `"why?`+"\n"+`"`)
}

func TestDefaultPersona(t *testing.T) {
	p := DefaultPersona("Ada Lovelace")
	assert.Contains(t, p.SystemPrompt, "You are Ada Lovelace")
	assert.Contains(t, p.SystemPrompt, "'As Ada Lovelace'")
	assert.Contains(t, p.SystemPrompt, "first person")
	assert.Equal(t, NoMatchContext, p.NoMatchContext)
	assert.Equal(t, DefaultFallbackMessage, p.FallbackMessage)
	assert.Equal(t, DefaultImageKeywords, p.ImageKeywords)

	p.ImageKeywords[0] = "mutated"
	assert.Equal(t, "achievement", DefaultImageKeywords[0])
}

func TestDefaultPersona_BlankNameUsesDefault(t *testing.T) {
	p := DefaultPersona("  ")
	assert.Contains(t, p.SystemPrompt, "You are "+DefaultPersonaName)
}

func TestPersona_WithDefaults(t *testing.T) {
	p := Persona{FallbackMessage: "custom"}.withDefaults()
	assert.Equal(t, "custom", p.FallbackMessage)
	assert.Equal(t, NoMatchContext, p.NoMatchContext)
	assert.NotEmpty(t, p.SystemPrompt)
	assert.Equal(t, DefaultImageKeywords, p.ImageKeywords)

	empty := Persona{ImageKeywords: []string{}}.withDefaults()
	assert.Empty(t, empty.ImageKeywords)
}
