package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/notaryai/notaryd/internal/models"
)

func TestComposeChatPrompt_emptyHistory(t *testing.T) {
	messages := ComposeChatPrompt(nil, "How long does MoFA attestation take?")

	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Role != models.RoleSystem {
		t.Errorf("first message role = %s, want system", messages[0].Role)
	}
	if !strings.Contains(messages[0].Content, "does not constitute legal advice") {
		t.Error("system message should carry the non-legal-advice disclaimer")
	}
	if messages[1].Role != models.RoleUser {
		t.Errorf("last message role = %s, want user", messages[1].Role)
	}
	if messages[1].Content != "How long does MoFA attestation take?" {
		t.Errorf("unexpected user content: %q", messages[1].Content)
	}
}

func TestComposeChatPrompt_truncatesToLastTen(t *testing.T) {
	history := make([]models.ChatTurn, 15)
	for i := range history {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		history[i] = models.ChatTurn{Role: role, Content: fmt.Sprintf("turn %d", i)}
	}

	messages := ComposeChatPrompt(history, "latest")

	if len(messages) != models.MaxHistoryTurns+2 {
		t.Fatalf("expected %d messages, got %d", models.MaxHistoryTurns+2, len(messages))
	}
	// Oldest-first truncation: turns 0-4 dropped, 5-14 kept in order.
	for i := 0; i < models.MaxHistoryTurns; i++ {
		want := fmt.Sprintf("turn %d", i+5)
		if messages[i+1].Content != want {
			t.Errorf("message %d content = %q, want %q", i+1, messages[i+1].Content, want)
		}
	}
	if messages[len(messages)-1].Content != "latest" {
		t.Error("new user message should be last")
	}
}

func TestComposeChatPrompt_shortHistoryKeptWhole(t *testing.T) {
	history := []models.ChatTurn{
		{Role: models.RoleUser, Content: "a"},
		{Role: models.RoleAssistant, Content: "b"},
	}
	messages := ComposeChatPrompt(history, "c")
	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	if messages[1].Content != "a" || messages[2].Content != "b" {
		t.Error("history order not preserved")
	}
}

func TestComposeAnalysisPrompt_singlePage(t *testing.T) {
	messages := ComposeAnalysisPrompt("passport.pdf", []string{"data:image/png;base64,AAAA"})

	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	m := messages[0]
	if m.Role != models.RoleUser {
		t.Errorf("role = %s, want user", m.Role)
	}
	if !strings.Contains(m.Content, `"passport.pdf"`) {
		t.Error("prompt should name the file")
	}
	if strings.Contains(m.Content, "pages. Please analyze all pages together") {
		t.Error("single-page prompt should not carry the multi-page instruction")
	}
	if len(m.Images) != 1 {
		t.Errorf("expected 1 image attachment, got %d", len(m.Images))
	}
}

func TestComposeAnalysisPrompt_multiPage(t *testing.T) {
	pages := []string{"p1", "p2", "p3"}
	messages := ComposeAnalysisPrompt("deed.pdf", pages)

	m := messages[0]
	if !strings.Contains(m.Content, "This document has 3 pages. Please analyze all pages together.") {
		t.Error("multi-page prompt should instruct treating pages as one document")
	}
	if len(m.Images) != 3 {
		t.Errorf("expected 3 image attachments, got %d", len(m.Images))
	}
	for i, img := range m.Images {
		if img != pages[i] {
			t.Errorf("image %d = %q, want %q", i, img, pages[i])
		}
	}
}

func TestComposeAssistPrompt_personaSelection(t *testing.T) {
	tests := []struct {
		reqType string
		marker  string
	}{
		{"chat", "Be concise, accurate, and helpful"},
		{"document-analysis", "document analysis expert"},
		{"requirements-check", "UAE legal requirements specialist"},
		{"", "helpful assistant specializing in UAE legal documents and processes"},
		{"unknown-kind", "helpful assistant specializing in UAE legal documents and processes"},
	}

	for _, tt := range tests {
		messages := ComposeAssistPrompt(tt.reqType, "", "hello")
		if len(messages) != 2 {
			t.Fatalf("type %q: expected 2 messages, got %d", tt.reqType, len(messages))
		}
		if !strings.Contains(messages[0].Content, tt.marker) {
			t.Errorf("type %q: system prompt missing %q", tt.reqType, tt.marker)
		}
	}
}

func TestComposeAssistPrompt_contextPrefixed(t *testing.T) {
	messages := ComposeAssistPrompt("chat", "Document: tenancy contract", "Is it valid?")
	user := messages[len(messages)-1]
	if user.Content != "Document: tenancy contract\n\nIs it valid?" {
		t.Errorf("unexpected user content: %q", user.Content)
	}
}

func TestComposeLegacyAnalysisPrompt(t *testing.T) {
	messages := ComposeLegacyAnalysisPrompt("will.docx", "application/msword", "I, the undersigned...")
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Role != models.RoleSystem {
		t.Error("first message should be the system persona")
	}
	user := messages[1].Content
	if !strings.Contains(user, `"will.docx"`) || !strings.Contains(user, "application/msword") {
		t.Error("user prompt should name file and type")
	}
	if !strings.Contains(user, "Document content: I, the undersigned...") {
		t.Error("user prompt should include supplied document content")
	}

	without := ComposeLegacyAnalysisPrompt("will.docx", "application/msword", "")
	if strings.Contains(without[1].Content, "Document content:") {
		t.Error("user prompt should omit content section when none supplied")
	}
}
