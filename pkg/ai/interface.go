package ai

import (
	"context"
)

// Synthesizer is the interface for briefing synthesis.
// Implement this interface to add new AI providers (Gemini, Ollama, OpenAI, etc.)
type Synthesizer interface {
	SynthesizeBriefing(ctx context.Context, prompt string) (string, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)
