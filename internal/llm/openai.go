// Package llm provides the OpenAI implementation of the Provider interface.
package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/notaryai/notaryd/internal/config"
	"github.com/notaryai/notaryd/internal/models"
)

// OpenAIProvider implements Provider using the OpenAI API.
type OpenAIProvider struct {
	client *openai.Client
	apiKey string
}

// NewOpenAIProvider creates a new OpenAI provider. A missing API key is not
// an error at construction; it is reported on first use so the service
// surfaces a "not configured" response instead of failing to boot.
func NewOpenAIProvider(cfg *config.OpenAIConfig) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(cfg.APIKey),
		apiKey: cfg.APIKey,
	}
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Complete sends a chat completion request. Messages carrying image
// attachments are sent as multi-part content with high image detail.
// One attempt per call, no retries.
func (p *OpenAIProvider) Complete(ctx context.Context, messages []Message, opts Options) (Completion, error) {
	if p.apiKey == "" {
		return Completion{}, ErrNotConfigured
	}

	req := openai.ChatCompletionRequest{
		Model:            opts.Model,
		Messages:         toChatMessages(messages),
		MaxTokens:        opts.MaxTokens,
		Temperature:      opts.Temperature,
		PresencePenalty:  opts.PresencePenalty,
		FrequencyPenalty: opts.FrequencyPenalty,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Completion{}, fmt.Errorf("openai completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return Completion{}, fmt.Errorf("openai returned no choices")
	}

	return Completion{
		Content: resp.Choices[0].Message.Content,
		Usage: models.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func toChatMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		cm := openai.ChatCompletionMessage{Role: string(m.Role)}
		if len(m.Images) == 0 {
			cm.Content = m.Content
			out = append(out, cm)
			continue
		}

		parts := []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: m.Content},
		}
		for _, img := range m.Images {
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    img,
					Detail: openai.ImageURLDetailHigh,
				},
			})
		}
		cm.MultiContent = parts
		out = append(out, cm)
	}
	return out
}
