// Package llm provides the client interface to the chat/vision completion provider.
package llm

import (
	"context"

	"github.com/notaryai/notaryd/internal/models"
)

// Message is one entry in a composed prompt. Images, when present, are
// attached alongside the text content as high-detail image references;
// each entry is either an http(s) URL or a base64 data URL.
type Message struct {
	Role    models.ChatRole
	Content string
	Images  []string
}

// Options contains tuning parameters for a completion request.
type Options struct {
	Model            string
	Temperature      float32
	MaxTokens        int
	PresencePenalty  float32
	FrequencyPenalty float32
}

// Completion is the provider's raw output for one request.
type Completion struct {
	Content string
	Usage   models.Usage
}

// Provider defines the interface to the completion service. Implementations
// make exactly one attempt per call; retry policy belongs to the caller.
type Provider interface {
	// Complete sends the composed message list and returns the raw text
	// completion plus token usage.
	Complete(ctx context.Context, messages []Message, opts Options) (Completion, error)

	// Name returns the provider name.
	Name() string
}

// AnalysisOptions favours determinism and JSON fidelity for document
// analysis: low temperature, generous token budget.
func AnalysisOptions(model string) Options {
	return Options{
		Model:       model,
		Temperature: 0.3,
		MaxTokens:   2000,
	}
}

// LegacyAnalysisOptions matches the free-text analysis endpoint.
func LegacyAnalysisOptions(model string) Options {
	return Options{
		Model:       model,
		Temperature: 0.3,
		MaxTokens:   1500,
	}
}

// ChatOptions favours natural phrasing for conversational turns.
func ChatOptions(model string) Options {
	return Options{
		Model:            model,
		Temperature:      0.7,
		MaxTokens:        800,
		PresencePenalty:  0.1,
		FrequencyPenalty: 0.1,
	}
}

// AssistOptions is the profile for the general assistant endpoint.
func AssistOptions(model string) Options {
	return Options{
		Model:       model,
		Temperature: 0.7,
		MaxTokens:   1000,
	}
}
