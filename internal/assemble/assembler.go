// Package assemble builds the render-ready report view model. It is the only
// place with cross-cutting knowledge of confidence, safe mode and navigation;
// everything it does is a pure function of its input, and every step falls
// through to a documented default when a section is missing.
package assemble

import (
	"regexp"
	"strings"

	"reportlens/domain/report"
	"reportlens/domain/snapshot"
)

// defaultTitle is used when neither a primary question nor a report type is
// available.
const defaultTitle = "Analysis Report"

// Input carries everything the assembler needs. Confidence is on the
// canonical 0-100 scale; extract.NormalizeConfidence is the only place raw
// backend values are converted.
type Input struct {
	PrimaryQuestion  string
	ReportType       string
	Confidence       float64
	SafeMode         bool
	Sections         []snapshot.Section
	Guidance         []report.GuidanceEntry
	ValidationErrors []string
}

// safeModeMarker overrides the explicit flag when a validation section spells
// out the final safe-mode status.
var safeModeMarker = regexp.MustCompile(`(?i)safe_mode_status["']?\s*[:=]\s*(true|false)`)

// Assemble builds the view model. It never fails: absent sections, zero
// confidence and empty guidance all produce a well-formed result.
func Assemble(in Input) report.ReportViewModel {
	title := resolveTitle(in)
	b, bars, tone := band(in.Confidence)
	safeMode := resolveSafeMode(in)

	return report.ReportViewModel{
		Header: report.Header{
			Title:    title,
			Band:     b,
			Bars:     bars,
			Tone:     tone,
			SafeMode: safeMode,
		},
		Navigation:       navigation(in.Sections),
		Traceability:     traceability(in.Sections),
		ValidationErrors: in.ValidationErrors,
		Guidance:         in.Guidance,
		Brief:            buildBrief(in, safeMode),
	}
}

// resolveTitle prefers the explicit primary question, then a label derived
// from the report type, then the fixed default.
func resolveTitle(in Input) string {
	if q := strings.TrimSpace(in.PrimaryQuestion); q != "" {
		return q
	}
	switch in.ReportType {
	case "segmentation":
		return "Customer Segmentation Report"
	case "forecast":
		return "Forecast Report"
	case "correlation":
		return "Correlation Analysis"
	case "anomaly":
		return "Anomaly Report"
	}
	return defaultTitle
}

// resolveSafeMode starts from the explicit upstream flag; a boolean-looking
// safe_mode_status marker inside a validation-labeled section overrides it.
func resolveSafeMode(in Input) bool {
	sec, ok := snapshot.FindSection(in.Sections, "validation")
	if !ok {
		return in.SafeMode
	}
	m := safeModeMarker.FindStringSubmatch(sec.Content)
	if m == nil {
		return in.SafeMode
	}
	return strings.EqualFold(m[1], "true")
}

// navigation lists the non-empty sections in document order.
func navigation(sections []snapshot.Section) []report.NavigationItem {
	var items []report.NavigationItem
	for _, sec := range sections {
		if strings.TrimSpace(sec.Content) == "" {
			continue
		}
		label := sec.Title
		if label == "" {
			label = sec.ID
		}
		id := sec.ID
		if id == "" {
			id = strings.ToLower(strings.ReplaceAll(label, " ", "-"))
		}
		items = append(items, report.NavigationItem{ID: id, Label: label})
	}
	return items
}
