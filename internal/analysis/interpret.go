package analysis

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/notaryai/notaryd/internal/models"
)

// Documented defaults applied when the model omits a field, and the fixed
// fallback used when the completion is not parseable JSON at all.
const (
	defaultDocumentType  = "Unknown Document"
	defaultConfidence    = 85
	fallbackConfidence   = 75
	defaultLanguage      = "Unknown"
	defaultEstimatedTime = "5-7 business days"

	fallbackRecommendation    = "Please re-upload the document for better analysis"
	fallbackNotarizationStep  = "Contact support for assistance"
	chatFallbackResponse      = "I apologize, but I could not generate a response. Please try again."
	assistFallbackResponse    = "No response generated"
	legacyFallbackRawAnalysis = "Analysis could not be completed"
)

// parsedAnalysis mirrors the JSON shape the vision prompt requests. Zero
// values read as absent, matching how the original treated falsy fields.
type parsedAnalysis struct {
	DocumentType           string   `json:"documentType"`
	Confidence             int      `json:"confidence"`
	Language               string   `json:"language"`
	NeedsTranslation       bool     `json:"needsTranslation"`
	NeedsArabicTranslation bool     `json:"needsArabicTranslation"`
	Quality                string   `json:"quality"`
	Recommendations        []string `json:"recommendations"`
	NotarizationSteps      []string `json:"notarizationSteps"`
	EstimatedTime          string   `json:"estimatedTime"`
	Priority               string   `json:"priority"`
}

// InterpretAnalysis transforms a model completion into a DocumentAnalysis.
// Total: a malformed completion degrades to the fixed fallback result, and
// RawAnalysis always retains the unparsed output for auditability.
func InterpretAnalysis(raw string) models.DocumentAnalysis {
	cleaned := stripCodeFence(raw)

	var parsed parsedAnalysis
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		log.Warn().Err(err).Msg("Analysis completion is not valid JSON, using fallback result")
		return fallbackAnalysis(raw)
	}

	result := models.DocumentAnalysis{
		DocumentType:           parsed.DocumentType,
		Confidence:             parsed.Confidence,
		Language:               parsed.Language,
		NeedsTranslation:       parsed.NeedsTranslation,
		NeedsArabicTranslation: parsed.NeedsArabicTranslation,
		Quality:                models.Quality(parsed.Quality),
		Recommendations:        parsed.Recommendations,
		NotarizationSteps:      parsed.NotarizationSteps,
		EstimatedTime:          parsed.EstimatedTime,
		Priority:               models.Priority(parsed.Priority),
		RawAnalysis:            raw,
	}

	if result.DocumentType == "" {
		result.DocumentType = defaultDocumentType
	}
	if result.Confidence == 0 {
		result.Confidence = defaultConfidence
	}
	if result.Language == "" {
		result.Language = defaultLanguage
	}
	if result.Quality == "" {
		result.Quality = models.QualityFair
	}
	if result.Recommendations == nil {
		result.Recommendations = []string{}
	}
	if result.NotarizationSteps == nil {
		result.NotarizationSteps = []string{}
	}
	if result.EstimatedTime == "" {
		result.EstimatedTime = defaultEstimatedTime
	}
	if result.Priority == "" {
		result.Priority = models.PriorityMedium
	}

	return result
}

func fallbackAnalysis(raw string) models.DocumentAnalysis {
	return models.DocumentAnalysis{
		DocumentType:      defaultDocumentType,
		Confidence:        fallbackConfidence,
		Language:          defaultLanguage,
		Quality:           models.QualityFair,
		Recommendations:   []string{fallbackRecommendation},
		NotarizationSteps: []string{fallbackNotarizationStep},
		EstimatedTime:     defaultEstimatedTime,
		Priority:          models.PriorityMedium,
		RawAnalysis:       raw,
	}
}

// stripCodeFence removes a leading ```json or ``` marker and a trailing
// ``` marker when the completion arrives wrapped in a Markdown code block.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```json") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```json"))
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}

	return s
}
