package assemble

import (
	"fmt"
	"strings"

	"reportlens/domain/report"
	"reportlens/domain/snapshot"
)

// Truncation limits for the one-screen brief.
const (
	keyFindingLimit = 150
	decisionLimit   = 120
)

// Fixed fallbacks for each brief slot.
const (
	limitedHeadline    = "Analysis completed with limited data"
	keyFindingFallback = "Key findings will appear once the analysis completes"
	decisionPrompt     = "View the data requirements to unlock the full analysis"
	decisionFallback   = "Review the full report before acting on these findings"
)

// trendWords are checked in this fixed order against the trend section.
var trendWords = []string{"growing", "declining", "stable"}

// actionVerbs mark a recommendation line in the strategies section.
var actionVerbs = []string{"recommend", "focus", "prioritize", "target"}

func buildBrief(in Input, safeMode bool) report.Brief {
	blocked := safeMode && len(in.Guidance) > 0
	status, accent := briefStatus(in.Confidence, safeMode, in.Guidance)
	return report.Brief{
		Headline:   headline(in, safeMode),
		KeyFinding: truncate(keyFinding(in, blocked), keyFindingLimit),
		Decision:   truncate(decision(in, blocked), decisionLimit),
		Status:     status,
		Accent:     accent,
	}
}

// headline is fixed whenever safe mode is active; otherwise it combines the
// detected report type with a trend keyword found in a trend-labeled section.
func headline(in Input, safeMode bool) string {
	if safeMode {
		return limitedHeadline
	}
	base := typeHeadline(in.ReportType)
	if word, ok := trendWord(in.Sections); ok {
		return fmt.Sprintf("%s with a %s trend", base, word)
	}
	return base
}

func typeHeadline(reportType string) string {
	switch reportType {
	case "segmentation":
		return "Customer segmentation analysis"
	case "forecast":
		return "Forecast analysis"
	case "correlation":
		return "Relationship analysis"
	case "anomaly":
		return "Anomaly analysis"
	default:
		return "Analysis results"
	}
}

func trendWord(sections []snapshot.Section) (string, bool) {
	sec, ok := snapshot.FindSection(sections, "trend", "over time", "forecast")
	if !ok {
		return "", false
	}
	text := strings.ToLower(sec.Content)
	for _, w := range trendWords {
		if strings.Contains(text, w) {
			return w, true
		}
	}
	return "", false
}

// keyFinding prefers the first guidance explanation when blocked, then the
// first numeral-bearing sentence of the executive summary, then that
// section's first sentence, then the fixed fallback.
func keyFinding(in Input, blocked bool) string {
	if blocked {
		return in.Guidance[0].Explanation
	}
	sec, ok := snapshot.FindSection(in.Sections, "executive", "summary")
	if !ok {
		return keyFindingFallback
	}
	sentences := splitSentences(sec.Content)
	for _, s := range sentences {
		if strings.ContainsAny(s, "0123456789") {
			return s
		}
	}
	if len(sentences) > 0 {
		return sentences[0]
	}
	return keyFindingFallback
}

// decision prefers the data-requirements prompt when blocked, then the first
// action-verb line of a strategies-labeled section, then the fixed fallback.
func decision(in Input, blocked bool) string {
	if blocked {
		return decisionPrompt
	}
	sec, ok := snapshot.FindSection(in.Sections, "strateg", "recommend", "persona")
	if !ok {
		return decisionFallback
	}
	for _, line := range strings.Split(sec.Content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*"))
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		for _, verb := range actionVerbs {
			if strings.Contains(lower, verb) {
				return line
			}
		}
	}
	return decisionFallback
}

// splitSentences performs a rough sentence split, good enough for picking a
// leading finding out of markdown prose.
func splitSentences(text string) []string {
	var out []string
	var b strings.Builder
	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(b.String()); len(s) > 1 {
				out = append(out, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); len(s) > 1 {
		out = append(out, s)
	}
	return out
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit])) + "..."
}
