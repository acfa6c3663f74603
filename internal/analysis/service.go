package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/notaryai/notaryd/internal/config"
	"github.com/notaryai/notaryd/internal/llm"
	"github.com/notaryai/notaryd/internal/models"
)

// Service orchestrates the full pipeline for each operation:
// validate, compose, call the provider once, interpret.
type Service struct {
	provider    llm.Provider
	chatModel   string
	visionModel string
}

// NewService creates a new analysis service.
func NewService(provider llm.Provider, cfg *config.OpenAIConfig) *Service {
	return &Service{
		provider:    provider,
		chatModel:   cfg.ChatModel,
		visionModel: cfg.VisionModel,
	}
}

// AnalyzeDocument runs strict-JSON document analysis over the uploaded
// pages. Interpretation never fails: an unparseable completion degrades to
// the documented fallback result.
func (s *Service) AnalyzeDocument(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisResponse, error) {
	if err := ValidateAnalysisRequest(req); err != nil {
		return nil, err
	}

	var totalSize int
	for _, page := range req.FileBase64 {
		totalSize += len(page)
	}
	log.Info().
		Str("file", req.FileName).
		Str("type", req.FileType).
		Int("pages", len(req.FileBase64)).
		Float64("size_mb", float64(totalSize)*0.75/1024/1024). // base64 is ~33% larger than the raw bytes
		Msg("Processing document")

	messages := ComposeAnalysisPrompt(req.FileName, req.FileBase64)
	completion, err := s.provider.Complete(ctx, messages, llm.AnalysisOptions(s.visionModel))
	if err != nil {
		return nil, fmt.Errorf("document analysis failed: %w", err)
	}

	result := InterpretAnalysis(completion.Content)
	log.Info().Str("document_type", result.DocumentType).Int("confidence", result.Confidence).Msg("Document analyzed")

	return &models.AnalysisResponse{
		Analysis: result,
		Usage:    completion.Usage,
	}, nil
}

// AnalyzeDocumentLegacy runs the free-text analysis variant and mines the
// prose completion with the heuristic interpreter.
func (s *Service) AnalyzeDocumentLegacy(ctx context.Context, req *models.LegacyAnalysisRequest) (*models.HeuristicResponse, error) {
	if err := ValidateLegacyAnalysisRequest(req); err != nil {
		return nil, err
	}

	messages := ComposeLegacyAnalysisPrompt(req.FileName, req.FileType, req.DocumentContent)
	completion, err := s.provider.Complete(ctx, messages, llm.LegacyAnalysisOptions(s.chatModel))
	if err != nil {
		return nil, fmt.Errorf("document analysis failed: %w", err)
	}

	raw := completion.Content
	if raw == "" {
		raw = legacyFallbackRawAnalysis
	}

	return &models.HeuristicResponse{
		Analysis: InterpretHeuristic(raw),
		Usage:    completion.Usage,
	}, nil
}

// Chat handles one conversational turn. The caller supplies the full
// history each time; only the most recent turns are forwarded.
func (s *Service) Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResult, error) {
	if err := ValidateChatRequest(req); err != nil {
		return nil, err
	}

	messages := ComposeChatPrompt(req.ConversationHistory, req.Message)
	completion, err := s.provider.Complete(ctx, messages, llm.ChatOptions(s.chatModel))
	if err != nil {
		return nil, fmt.Errorf("chat failed: %w", err)
	}

	response := completion.Content
	if response == "" {
		response = chatFallbackResponse
	}

	return &models.ChatResult{
		Response:  response,
		Usage:     completion.Usage,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// Assist handles the general assistant endpoint, selecting a persona from
// the request type.
func (s *Service) Assist(ctx context.Context, req *models.AssistRequest) (*models.AssistResponse, error) {
	if err := ValidateAssistRequest(req); err != nil {
		return nil, err
	}

	messages := ComposeAssistPrompt(req.Type, req.Context, req.Message)
	completion, err := s.provider.Complete(ctx, messages, llm.AssistOptions(s.chatModel))
	if err != nil {
		return nil, fmt.Errorf("assist failed: %w", err)
	}

	response := completion.Content
	if response == "" {
		response = assistFallbackResponse
	}

	return &models.AssistResponse{
		Response: response,
		Usage:    completion.Usage,
	}, nil
}
