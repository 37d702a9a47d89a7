package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PersonaFile is the on-disk override for the answer persona. Empty fields
// keep the built-in defaults.
type PersonaFile struct {
	SystemPrompt    string   `yaml:"system_prompt"`
	ImageKeywords   []string `yaml:"image_keywords"`
	NoMatchContext  string   `yaml:"no_match_context"`
	FallbackMessage string   `yaml:"fallback_message"`
}

// LoadPersonaFile reads a YAML persona file. An empty path returns a zero
// PersonaFile.
func LoadPersonaFile(path string) (PersonaFile, error) {
	var pf PersonaFile
	if path == "" {
		return pf, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pf, fmt.Errorf("read persona file: %w", err)
	}
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return pf, fmt.Errorf("parse persona file %s: %w", path, err)
	}
	return pf, nil
}
