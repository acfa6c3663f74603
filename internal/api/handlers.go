// Package api provides HTTP API handlers.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/notaryai/notaryd/internal/analysis"
	"github.com/notaryai/notaryd/internal/database"
	"github.com/notaryai/notaryd/internal/llm"
	"github.com/notaryai/notaryd/internal/models"
)

// Handler contains all HTTP handlers.
type Handler struct {
	service *analysis.Service
	store   database.Store
}

// NewHandler creates a new handler.
func NewHandler(service *analysis.Service, store database.Store) *Handler {
	return &Handler{
		service: service,
		store:   store,
	}
}

// HealthCheck returns the service health status.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"version":   "1.0.0",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, response)
}

// Gpt handles the combined endpoint, dispatching on the request body's
// "type" discriminator to document analysis or chat.
func (h *Handler) Gpt(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	log.Info().Str("type", envelope.Type).Msg("GPT API request")

	switch envelope.Type {
	case "document-analysis":
		var req models.AnalysisRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		h.gptDocumentAnalysis(w, r, &req)

	case "chat":
		var req models.ChatRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		h.gptChat(w, r, &req)

	default:
		writeError(w, http.StatusBadRequest, `Invalid request type. Use "document-analysis" or "chat"`)
	}
}

func (h *Handler) gptDocumentAnalysis(w http.ResponseWriter, r *http.Request, req *models.AnalysisRequest) {
	result, err := h.service.AnalyzeDocument(r.Context(), req)
	if err != nil {
		var ve *analysis.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
			return
		}

		log.Error().Err(err).Msg("Document analysis error")
		switch llm.Classify(err) {
		case llm.KindNotConfigured:
			writeError(w, http.StatusInternalServerError,
				"AI service not configured. Please set OPENAI_API_KEY in the environment.")
		case llm.KindRateLimited:
			writeError(w, http.StatusTooManyRequests,
				"Service temporarily busy. Please try again in a moment.")
		case llm.KindInvalidKey:
			writeError(w, http.StatusUnauthorized,
				"Invalid API key. Please check your OpenAI API key configuration.")
		default:
			writeErrorDetails(w, http.StatusInternalServerError, "Document analysis failed", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) gptChat(w http.ResponseWriter, r *http.Request, req *models.ChatRequest) {
	result, err := h.service.Chat(r.Context(), req)
	if err != nil {
		var ve *analysis.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
			return
		}

		log.Error().Err(err).Msg("Chat error")
		switch llm.Classify(err) {
		case llm.KindRateLimited:
			writeError(w, http.StatusTooManyRequests,
				"Service temporarily busy. Please try again in a moment.")
		case llm.KindNotConfigured, llm.KindInvalidKey:
			// Chat callers get a generic configuration failure, never a 401.
			writeError(w, http.StatusInternalServerError,
				"Service configuration error. Please contact support.")
		default:
			writeErrorDetails(w, http.StatusInternalServerError, "Chat service temporarily unavailable", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Chat handles the standalone chat endpoint.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.gptChat(w, r, &req)
}

// AnalyzeDocumentLegacy handles the legacy text-based analysis endpoint,
// whose completion is mined heuristically instead of parsed as JSON.
func (h *Handler) AnalyzeDocumentLegacy(w http.ResponseWriter, r *http.Request) {
	var req models.LegacyAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.AnalyzeDocumentLegacy(r.Context(), &req)
	if err != nil {
		var ve *analysis.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
			return
		}

		log.Error().Err(err).Msg("Document analysis error")
		writeErrorDetails(w, http.StatusInternalServerError, "Document analysis failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Assist handles the general assistant endpoint.
func (h *Handler) Assist(w http.ResponseWriter, r *http.Request) {
	var req models.AssistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Assist(r.Context(), &req)
	if err != nil {
		var ve *analysis.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
			return
		}

		log.Error().Err(err).Msg("Assist error")
		writeErrorDetails(w, http.StatusInternalServerError, "AI service temporarily unavailable", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListActivities returns the activity log, newest first.
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	activities, err := h.store.ListActivities(r.Context(), limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list activities")
		writeError(w, http.StatusInternalServerError, "Failed to list activities")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"activities": activities,
		"limit":      limit,
		"offset":     offset,
	})
}

// AppendActivity records a new activity entry.
func (h *Handler) AppendActivity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind          string `json:"kind"`
		Title         string `json:"title"`
		Status        string `json:"status"`
		DocumentCount int    `json:"document_count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Kind == "" || req.Title == "" {
		writeError(w, http.StatusBadRequest, "Kind and title are required")
		return
	}
	if req.Status == "" {
		req.Status = "submitted"
	}

	activity := &models.Activity{
		ID:            uuid.New().String(),
		Kind:          req.Kind,
		Title:         req.Title,
		Status:        req.Status,
		DocumentCount: req.DocumentCount,
		CreatedAt:     time.Now().UTC(),
	}

	if err := h.store.AppendActivity(r.Context(), activity); err != nil {
		log.Error().Err(err).Msg("Failed to append activity")
		writeError(w, http.StatusInternalServerError, "Failed to record activity")
		return
	}

	writeJSON(w, http.StatusCreated, activity)
}

// GetAuditLogs returns paginated audit logs.
func (h *Handler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	logs, err := h.store.GetAuditLogs(r.Context(), limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get audit logs")
		writeError(w, http.StatusInternalServerError, "Failed to get audit logs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"logs":   logs,
		"limit":  limit,
		"offset": offset,
	})
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func writeErrorDetails(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message, "details": details})
}
