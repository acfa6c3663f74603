package analysis

import (
	"fmt"

	"github.com/notaryai/notaryd/internal/llm"
	"github.com/notaryai/notaryd/internal/models"
)

// chatPersona is the fixed system prompt for conversational endpoints.
const chatPersona = `You are a knowledgeable legal assistant specializing in UAE legal processes, document notarization, and attestation services.

Your expertise includes:
- UAE legal document requirements and procedures
- Notarization and attestation processes in the UAE
- Document translation requirements (Arabic/English)
- Common legal procedures for expatriates and UAE residents
- Embassy and consulate procedures
- MOFA (Ministry of Foreign Affairs) requirements
- Legal document formatting and compliance

Guidelines:
- Provide clear, accurate information about UAE legal processes
- Be helpful and professional
- Always recommend consulting with qualified legal professionals for specific legal advice
- Explain complex procedures in simple terms
- Provide step-by-step guidance when appropriate
- Include relevant timeframes and costs when known
- Mention required documents and prerequisites

Important: This is for informational purposes only and does not constitute legal advice.`

// Assistant personas, selected by request type.
const (
	assistChatPersona = `You are a helpful legal assistant specializing in UAE legal documents and notarization processes.
You help users understand document requirements, legal procedures, and provide guidance on notarization and attestation processes in the UAE.
Be concise, accurate, and helpful. Always remind users to consult with qualified legal professionals for specific legal advice.`

	assistAnalysisPersona = `You are a document analysis expert specializing in UAE legal documents.
Analyze the provided document and identify:
1. Document type and classification
2. Required fields and their completeness
3. Missing information or requirements
4. Translation needs (Arabic/English)
5. Quality assessment and formatting issues
6. Specific requirements for UAE notarization/attestation

Provide a structured analysis with actionable recommendations.`

	assistRequirementsPersona = `You are a UAE legal requirements specialist.
For the given document type, provide:
1. Complete list of required documents
2. Formatting and content requirements
3. Translation requirements
4. Notarization/attestation steps
5. Common issues and how to avoid them

Be specific to UAE legal requirements and processes.`

	assistDefaultPersona = `You are a helpful assistant specializing in UAE legal documents and processes.`
)

// legacyAnalysisPersona is the system prompt for the free-text analysis endpoint.
const legacyAnalysisPersona = `You are an expert in UAE legal document analysis and notarization requirements.
Analyze documents for completeness, legal compliance, and provide specific recommendations for UAE processes.
Always consider UAE-specific legal requirements and cultural considerations.`

// visionPromptFormat instructs the model to answer with a fixed-shape JSON
// object the strict interpreter can parse. The file name is the only
// variable part.
const visionPromptFormat = `Analyze this legal document for UAE processing. Respond ONLY with valid JSON in this exact format:

{
  "documentType": "specific document type (e.g., Birth Certificate, Passport, Educational Certificate)",
  "confidence": 95,
  "language": "detected language",
  "needsTranslation": false,
  "needsArabicTranslation": false,
  "quality": "good/fair/poor",
  "recommendations": [
    "Action 1: Brief actionable step",
    "Action 2: Brief actionable step",
    "Action 3: Brief actionable step"
  ],
  "notarizationSteps": [
    "Step 1: Brief notarization step",
    "Step 2: Brief notarization step"
  ],
  "estimatedTime": "5-7 business days",
  "priority": "high/medium/low"
}

File: %q

Provide 3-5 concise, actionable recommendations for UAE legal compliance and notarization. Focus on practical next steps.`

// ComposeAnalysisPrompt builds the vision prompt for strict-JSON document
// analysis. Every page is attached as an image reference; with more than
// one page the model is told to treat them as one logical document.
func ComposeAnalysisPrompt(fileName string, pages []string) []llm.Message {
	text := fmt.Sprintf(visionPromptFormat, fileName)
	if len(pages) > 1 {
		text = fmt.Sprintf("%s\n\nThis document has %d pages. Please analyze all pages together.", text, len(pages))
	}

	return []llm.Message{
		{
			Role:    models.RoleUser,
			Content: text,
			Images:  pages,
		},
	}
}

// ComposeLegacyAnalysisPrompt builds the free-text analysis prompt whose
// output the heuristic interpreter mines.
func ComposeLegacyAnalysisPrompt(fileName, fileType, documentContent string) []llm.Message {
	content := ""
	if documentContent != "" {
		content = fmt.Sprintf("Document content: %s\n\n", documentContent)
	}

	user := fmt.Sprintf(`Analyze this %s document: %q

%sPlease provide a detailed analysis including:
1. Document type identification
2. Completeness assessment (what's present vs missing)
3. UAE legal requirements compliance
4. Translation requirements (Arabic/English)
5. Quality and formatting assessment
6. Specific recommendations for notarization/attestation
7. Confidence score (0-100%%)

Format your response as a structured analysis suitable for a legal document processing system.`, fileType, fileName, content)

	return []llm.Message{
		{Role: models.RoleSystem, Content: legacyAnalysisPersona},
		{Role: models.RoleUser, Content: user},
	}
}

// ComposeChatPrompt builds the ordered message list for one chat turn:
// the persona system message, at most the last MaxHistoryTurns prior turns
// in original order, then the new user message. No reordering, no
// deduplication.
func ComposeChatPrompt(history []models.ChatTurn, message string) []llm.Message {
	if len(history) > models.MaxHistoryTurns {
		history = history[len(history)-models.MaxHistoryTurns:]
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: models.RoleSystem, Content: chatPersona})
	for _, turn := range history {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: models.RoleUser, Content: message})
	return messages
}

// ComposeAssistPrompt builds the prompt for the general assistant endpoint.
// The request type selects a persona; optional context is prefixed to the
// user message.
func ComposeAssistPrompt(reqType, context, message string) []llm.Message {
	var persona string
	switch reqType {
	case "chat":
		persona = assistChatPersona
	case "document-analysis":
		persona = assistAnalysisPersona
	case "requirements-check":
		persona = assistRequirementsPersona
	default:
		persona = assistDefaultPersona
	}

	user := message
	if context != "" {
		user = context + "\n\n" + message
	}

	return []llm.Message{
		{Role: models.RoleSystem, Content: persona},
		{Role: models.RoleUser, Content: user},
	}
}
