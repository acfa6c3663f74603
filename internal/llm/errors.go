// Package llm provides provider error classification.
package llm

import (
	"errors"
	"strings"
)

// ErrNotConfigured indicates the provider credential is absent from the
// environment. Detected on first use, never at startup.
var ErrNotConfigured = errors.New("AI service not configured: OPENAI_API_KEY is missing")

// Kind classifies a provider failure for HTTP status mapping.
type Kind int

const (
	// KindUpstream is any provider-side failure not matched below.
	KindUpstream Kind = iota
	// KindRateLimited means the provider throttled the request; retryable.
	KindRateLimited
	// KindInvalidKey means the provider rejected the credential.
	KindInvalidKey
	// KindNotConfigured means no credential was available to send.
	KindNotConfigured
)

// Classify inspects a provider error and returns its kind. Matching is by
// known substrings of the provider's message, kept in this one place so the
// fragile string contract is centralized and testable. Total: any error,
// including nil message content, classifies to KindUpstream at worst.
func Classify(err error) Kind {
	if err == nil {
		return KindUpstream
	}
	if errors.Is(err, ErrNotConfigured) {
		return KindNotConfigured
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit"):
		return KindRateLimited
	case strings.Contains(msg, "invalid api key"), strings.Contains(msg, "invalid_api_key"):
		return KindInvalidKey
	default:
		return KindUpstream
	}
}
