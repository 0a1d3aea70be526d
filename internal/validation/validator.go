// Package validation scores a derived report-data object against the raw
// report text. Issues are data, not errors: the validator never fails, never
// panics, and treats a nil input as a report with every field absent.
package validation

import (
	"fmt"
	"strings"

	"reportlens/domain/report"
)

// Scoring weights per severity; the score is clamped at zero.
const (
	errorPenalty   = 30
	warningPenalty = 10
	infoPenalty    = 2
)

// Gate boundaries. Values at the boundary pass; only values strictly below
// (or above, for anomalies) trigger an issue.
const (
	lowConfidenceBelow  = 40.0
	lowQualityBelow     = 50.0
	anomalyWarningAbove = 10
)

// check inspects the report data and optionally yields one issue.
type check func(data *report.ReportData, content string) (report.ValidationIssue, bool)

// checks run in a fixed order; each is independent of the others.
var checks = []check{
	checkContent,
	checkMetrics,
	checkSegments,
	checkBrief,
	checkHeroInsight,
	checkConfidence,
	checkDataQuality,
	checkSections,
	checkSafeMode,
	checkAnomalies,
}

// Validate runs every check and aggregates the verdict. A nil data pointer or
// empty content is normal input, not a fault.
func Validate(data *report.ReportData, content string) report.ValidationResult {
	result := report.ValidationResult{}
	for _, c := range checks {
		if issue, ok := c(data, content); ok {
			result.Issues = append(result.Issues, issue)
			switch issue.Severity {
			case report.SeverityError:
				result.Summary.Errors++
			case report.SeverityWarning:
				result.Summary.Warnings++
			case report.SeverityInfo:
				result.Summary.Info++
			}
		}
	}

	score := 100 -
		errorPenalty*result.Summary.Errors -
		warningPenalty*result.Summary.Warnings -
		infoPenalty*result.Summary.Info
	if score < 0 {
		score = 0
	}
	result.Score = score
	result.IsValid = result.Summary.Errors == 0
	return result
}

func checkContent(_ *report.ReportData, content string) (report.ValidationIssue, bool) {
	if strings.TrimSpace(content) != "" {
		return report.ValidationIssue{}, false
	}
	return report.ValidationIssue{
		Field:      "content",
		Severity:   report.SeverityError,
		Message:    "Report content is empty",
		Suggestion: "Re-run the analysis or check that the backend returned a report body",
	}, true
}

func checkMetrics(data *report.ReportData, _ string) (report.ValidationIssue, bool) {
	if data != nil && data.Metrics != nil && !data.Metrics.IsEmpty() {
		return report.ValidationIssue{}, false
	}
	return report.ValidationIssue{
		Field:      "metrics",
		Severity:   report.SeverityWarning,
		Message:    "No summary metrics could be derived",
		Suggestion: "Verify the snapshot includes diagnostics or a profiled dataset",
	}, true
}

func checkSegments(data *report.ReportData, _ string) (report.ValidationIssue, bool) {
	if data != nil && len(data.Segments) > 0 {
		return report.ValidationIssue{}, false
	}
	return report.ValidationIssue{
		Field:      "segments",
		Severity:   report.SeverityInfo,
		Message:    "No segments were identified",
		Suggestion: "Segmentation may not apply to this dataset; no action needed unless expected",
	}, true
}

func checkBrief(data *report.ReportData, _ string) (report.ValidationIssue, bool) {
	if data != nil && data.Brief != nil && len(data.Brief.KeyFindings) > 0 {
		return report.ValidationIssue{}, false
	}
	return report.ValidationIssue{
		Field:      "executiveBrief",
		Severity:   report.SeverityWarning,
		Message:    "Executive brief is missing or has no key findings",
		Suggestion: "Check that the report includes an executive summary section",
	}, true
}

func checkHeroInsight(data *report.ReportData, _ string) (report.ValidationIssue, bool) {
	if data != nil && strings.TrimSpace(data.HeroInsight) != "" {
		return report.ValidationIssue{}, false
	}
	return report.ValidationIssue{
		Field:      "heroInsight",
		Severity:   report.SeverityInfo,
		Message:    "No primary insight was surfaced",
		Suggestion: "The headline card will fall back to a generic summary",
	}, true
}

func checkConfidence(data *report.ReportData, _ string) (report.ValidationIssue, bool) {
	if data == nil || data.Confidence == nil {
		return report.ValidationIssue{
			Field:      "confidence",
			Severity:   report.SeverityWarning,
			Message:    "Confidence level is missing",
			Suggestion: "Confidence banding will default to the low band",
		}, true
	}
	if *data.Confidence < lowConfidenceBelow {
		return report.ValidationIssue{
			Field:      "confidence",
			Severity:   report.SeverityInfo,
			Message:    fmt.Sprintf("Confidence is low (%.0f%%)", *data.Confidence),
			Suggestion: "Treat findings as directional rather than conclusive",
		}, true
	}
	return report.ValidationIssue{}, false
}

func checkDataQuality(data *report.ReportData, _ string) (report.ValidationIssue, bool) {
	if data == nil || data.DataQuality == nil {
		return report.ValidationIssue{
			Field:      "dataQuality",
			Severity:   report.SeverityWarning,
			Message:    "Data quality score is missing",
			Suggestion: "Verify the diagnostics block was produced for this run",
		}, true
	}
	if *data.DataQuality < lowQualityBelow {
		return report.ValidationIssue{
			Field:      "dataQuality",
			Severity:   report.SeverityInfo,
			Message:    fmt.Sprintf("Data quality is low (%.0f/100)", *data.DataQuality),
			Suggestion: "Consider cleaning the dataset before acting on the findings",
		}, true
	}
	return report.ValidationIssue{}, false
}

func checkSections(data *report.ReportData, _ string) (report.ValidationIssue, bool) {
	if data != nil && len(data.Sections) > 0 {
		return report.ValidationIssue{}, false
	}
	return report.ValidationIssue{
		Field:      "sections",
		Severity:   report.SeverityWarning,
		Message:    "Report has no sections",
		Suggestion: "Navigation and traceability will be empty; check the backend output",
	}, true
}

func checkSafeMode(data *report.ReportData, _ string) (report.ValidationIssue, bool) {
	if data == nil || !data.SafeMode {
		return report.ValidationIssue{}, false
	}
	return report.ValidationIssue{
		Field:      "safeMode",
		Severity:   report.SeverityInfo,
		Message:    "Report was generated in safe mode",
		Suggestion: "Recommendations are suppressed until data requirements are met",
	}, true
}

func checkAnomalies(data *report.ReportData, _ string) (report.ValidationIssue, bool) {
	if data == nil || data.Anomalies == nil || data.Anomalies.Count <= anomalyWarningAbove {
		return report.ValidationIssue{}, false
	}
	return report.ValidationIssue{
		Field:      "anomalies",
		Severity:   report.SeverityWarning,
		Message:    fmt.Sprintf("High number of anomalies detected (%d)", data.Anomalies.Count),
		Suggestion: "Review the anomaly list before trusting aggregate figures",
	}, true
}
