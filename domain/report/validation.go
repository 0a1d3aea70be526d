package report

import "reportlens/domain/snapshot"

// Severity classifies a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ValidationIssue is one finding about the report data. Suggestion is always
// populated; an issue without a remediation hint is a bug.
type ValidationIssue struct {
	Field      string   `json:"field"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion"`
}

// ValidationSummary counts issues per severity.
type ValidationSummary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
}

// ValidationResult is the validator's verdict on one report.
type ValidationResult struct {
	IsValid bool              `json:"isValid"` // true iff zero error-severity issues
	Score   int               `json:"score"`   // 0-100
	Issues  []ValidationIssue `json:"issues,omitempty"`
	Summary ValidationSummary `json:"summary"`
}

// GuidanceEntry is a human-readable translation of one raw diagnostic code.
type GuidanceEntry struct {
	Code        string `json:"code"`
	Explanation string `json:"explanation"`
	Remediation string `json:"remediation,omitempty"`
}

// ExecutiveBrief is the upstream one-screen summary block, validated for
// presence of findings.
type ExecutiveBrief struct {
	Headline    string   `json:"headline"`
	KeyFindings []string `json:"keyFindings,omitempty"`
}

// ReportData is the partially-derived object the validator inspects alongside
// the raw report text. Every field is optional; a nil *ReportData is valid
// input and is treated as all fields absent.
type ReportData struct {
	Metrics     *ExtractedMetrics
	Segments    []Segment
	Brief       *ExecutiveBrief
	HeroInsight string
	Confidence  *float64 // 0-100
	DataQuality *float64 // 0-100
	Sections    []snapshot.Section
	SafeMode    bool
	Anomalies   *AnomalySummary
}
