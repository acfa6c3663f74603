package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/notaryai/notaryd/internal/models"
)

// The heuristic interpreter mines free-text prose the model returns when no
// JSON contract is enforced. Every extractor is total: an absent pattern
// yields the documented default, never an error.

const maxIssues = 5
const maxRecommendations = 5

var (
	documentTypeRe = regexp.MustCompile(`(?i)document type[:\s]*([^\n.]+)`)
	confidenceRe   = regexp.MustCompile(`(?i)confidence[:\s]*(\d+)%?`)
	completenessRe = regexp.MustCompile(`(?i)completeness[:\s]*(\d+)%?`)

	// Scanned in this order; issue lists keep pattern-scan order.
	issueRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)missing[:\s]*[^\n.]+`),
		regexp.MustCompile(`(?i)required[:\s]*[^\n.]+`),
		regexp.MustCompile(`(?i)incomplete[:\s]*[^\n.]+`),
	}

	recommendationsRe = regexp.MustCompile(`(?i)recommendations?[:\s]*`)
	listMarkerRe      = regexp.MustCompile(`\n[-•]\s*|\n\d+\.\s*`)
)

// InterpretHeuristic extracts a HeuristicAnalysis from unstructured prose.
func InterpretHeuristic(raw string) models.HeuristicAnalysis {
	issues := ExtractIssues(raw)
	lower := strings.ToLower(raw)

	return models.HeuristicAnalysis{
		DocumentType:        ExtractDocumentType(raw),
		Confidence:          ExtractConfidence(raw),
		Issues:              issues,
		Recommendations:     ExtractRecommendations(raw),
		TranslationRequired: strings.Contains(lower, "translation") || strings.Contains(lower, "arabic"),
		Completeness:        extractCompleteness(raw, len(issues)),
		RawAnalysis:         raw,
	}
}

// ExtractDocumentType finds a "document type: X" mention; default "Unknown".
func ExtractDocumentType(analysis string) string {
	if m := documentTypeRe.FindStringSubmatch(analysis); m != nil {
		return strings.TrimSpace(m[1])
	}
	return "Unknown"
}

// ExtractConfidence finds a "confidence: NN%" mention; default 85.
func ExtractConfidence(analysis string) int {
	if m := confidenceRe.FindStringSubmatch(analysis); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return defaultConfidence
}

// ExtractIssues collects issue mentions from the missing/required/incomplete
// patterns, in pattern-scan order, capped at the first 5 across all
// patterns combined.
func ExtractIssues(analysis string) []string {
	issues := []string{}
	for _, re := range issueRes {
		for _, m := range re.FindAllString(analysis, -1) {
			issues = append(issues, strings.TrimSpace(m))
		}
	}
	if len(issues) > maxIssues {
		issues = issues[:maxIssues]
	}
	return issues
}

// ExtractRecommendations takes the text following a "recommendations:"
// heading up to the next blank line, splits it on bullet or numbered-list
// markers, and caps the result at 5 items.
func ExtractRecommendations(analysis string) []string {
	recommendations := []string{}

	loc := recommendationsRe.FindStringIndex(analysis)
	if loc == nil {
		return recommendations
	}

	section := analysis[loc[1]:]
	if end := strings.Index(section, "\n\n"); end >= 0 {
		section = section[:end]
	}

	for _, item := range listMarkerRe.Split(section, -1) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		recommendations = append(recommendations, item)
		if len(recommendations) == maxRecommendations {
			break
		}
	}

	return recommendations
}

// extractCompleteness honours an explicit "completeness: NN%" mention;
// otherwise it estimates from the issue count as max(100-15n, 20). The
// estimate is deliberately lossy.
func extractCompleteness(analysis string, issueCount int) int {
	if m := completenessRe.FindStringSubmatch(analysis); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}

	estimate := 100 - issueCount*15
	if estimate < 20 {
		estimate = 20
	}
	return estimate
}
