// Package analysis implements the document-analysis and chat pipeline:
// request validation, prompt composition, provider invocation, and
// interpretation of the model output into fixed result shapes.
package analysis

import (
	"github.com/notaryai/notaryd/internal/models"
)

// ValidationError marks a request rejected before any provider work.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func invalid(msg string) error {
	return &ValidationError{msg: msg}
}

// ValidateAnalysisRequest checks required fields for document analysis.
func ValidateAnalysisRequest(req *models.AnalysisRequest) error {
	if req.FileName == "" || req.FileType == "" {
		return invalid("File name and type are required")
	}
	if len(req.FileBase64) == 0 {
		return invalid("File content (base64) is required")
	}
	for _, page := range req.FileBase64 {
		if page == "" {
			return invalid("File content (base64) is required")
		}
	}
	return nil
}

// ValidateLegacyAnalysisRequest checks required fields for the legacy
// text-based analysis endpoint; document content itself is optional there.
func ValidateLegacyAnalysisRequest(req *models.LegacyAnalysisRequest) error {
	if req.FileName == "" || req.FileType == "" {
		return invalid("File name and type are required")
	}
	return nil
}

// ValidateChatRequest checks required fields for a chat turn.
func ValidateChatRequest(req *models.ChatRequest) error {
	if req.Message == "" {
		return invalid("Message is required")
	}
	return nil
}

// ValidateAssistRequest checks required fields for the assistant endpoint.
func ValidateAssistRequest(req *models.AssistRequest) error {
	if req.Message == "" {
		return invalid("Message is required")
	}
	return nil
}
