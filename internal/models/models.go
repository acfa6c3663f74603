// Package models defines the core data structures used throughout the application.
package models

import (
	"encoding/json"
	"time"
)

// Quality represents the assessed condition of an uploaded document.
type Quality string

const (
	QualityGood Quality = "good"
	QualityFair Quality = "fair"
	QualityPoor Quality = "poor"
)

// Priority represents the processing priority suggested for a document.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ChatRole identifies the author of a conversation turn.
type ChatRole string

const (
	RoleSystem    ChatRole = "system"
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// MaxHistoryTurns is the number of prior conversation turns retained when
// composing a chat prompt. Older turns are dropped oldest-first.
const MaxHistoryTurns = 10

// ChatTurn is a single prior turn in a conversation, supplied by the caller
// on every request; there is no server-side session state.
type ChatTurn struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// PageList holds the base64-encoded pages of one logical document, in page
// order. It unmarshals from either a single JSON string or an array of
// strings, matching both request shapes callers send.
type PageList []string

// UnmarshalJSON accepts "..." or ["...", "..."].
func (p *PageList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*p = PageList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*p = PageList(many)
	return nil
}

// AnalysisRequest is the request body for document analysis.
type AnalysisRequest struct {
	FileName   string   `json:"fileName"`
	FileType   string   `json:"fileType"`
	FileBase64 PageList `json:"fileBase64"`
}

// LegacyAnalysisRequest is the request body for the legacy analysis
// endpoint, which works from extracted text instead of page images.
type LegacyAnalysisRequest struct {
	FileName        string `json:"fileName"`
	FileType        string `json:"fileType"`
	DocumentContent string `json:"documentContent,omitempty"`
}

// ChatRequest is the request body for conversational endpoints.
type ChatRequest struct {
	Message             string     `json:"message"`
	ConversationHistory []ChatTurn `json:"conversationHistory,omitempty"`
}

// AssistRequest is the request body for the general assistant endpoint,
// dispatched by Type to a persona-specific system prompt.
type AssistRequest struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
	Context string `json:"context,omitempty"`
}

// DocumentAnalysis is the fixed result shape produced by the strict-JSON
// interpreter. Every field has a deterministic default applied when the
// model omits it; RawAnalysis always carries the unparsed completion.
type DocumentAnalysis struct {
	DocumentType           string   `json:"documentType"`
	Confidence             int      `json:"confidence"`
	Language               string   `json:"language"`
	NeedsTranslation       bool     `json:"needsTranslation"`
	NeedsArabicTranslation bool     `json:"needsArabicTranslation"`
	Quality                Quality  `json:"quality"`
	Recommendations        []string `json:"recommendations"`
	NotarizationSteps      []string `json:"notarizationSteps"`
	EstimatedTime          string   `json:"estimatedTime"`
	Priority               Priority `json:"priority"`
	RawAnalysis            string   `json:"rawAnalysis"`
}

// HeuristicAnalysis is the result shape produced by the legacy text-mining
// interpreter, which pattern-searches free-form prose instead of parsing JSON.
type HeuristicAnalysis struct {
	DocumentType        string   `json:"documentType"`
	Confidence          int      `json:"confidence"`
	Issues              []string `json:"issues"`
	Recommendations     []string `json:"recommendations"`
	TranslationRequired bool     `json:"translationRequired"`
	Completeness        int      `json:"completeness"`
	RawAnalysis         string   `json:"rawAnalysis"`
}

// Usage reports provider token consumption for one completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResult is the response produced for one chat turn.
type ChatResult struct {
	Response  string `json:"response"`
	Usage     Usage  `json:"usage"`
	Timestamp string `json:"timestamp"`
}

// AnalysisResponse is the API response envelope for strict-JSON analysis.
type AnalysisResponse struct {
	Analysis DocumentAnalysis `json:"analysis"`
	Usage    Usage            `json:"usage"`
}

// HeuristicResponse is the API response envelope for heuristic analysis.
type HeuristicResponse struct {
	Analysis HeuristicAnalysis `json:"analysis"`
	Usage    Usage             `json:"usage"`
}

// AssistResponse is the API response envelope for the assistant endpoint.
type AssistResponse struct {
	Response string `json:"response"`
	Usage    Usage  `json:"usage"`
}

// Activity is a user-visible job record, the server-side counterpart of the
// submission log the web client keeps. Append-only; records are never updated.
type Activity struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"` // notarize, attest, bulk
	Title         string    `json:"title"`
	Status        string    `json:"status"`
	DocumentCount int       `json:"document_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// AuditLog represents an API request audit entry.
type AuditLog struct {
	ID           string    `json:"id"`
	Endpoint     string    `json:"endpoint"`
	Method       string    `json:"method"`
	RequestSize  int64     `json:"request_size"`
	ResponseCode int       `json:"response_code"`
	DurationMs   int64     `json:"duration_ms"`
	Timestamp    time.Time `json:"timestamp"`
}
