// Package app wires the extraction, transformation, validation and assembly
// stages into one report-building service. Everything in here is a pure
// function of the snapshot; persistence and transport live in the adapters.
package app

import (
	"strings"

	"reportlens/domain/report"
	"reportlens/domain/snapshot"
	"reportlens/internal/assemble"
	"reportlens/internal/extract"
	"reportlens/internal/guidance"
	"reportlens/internal/transform"
	"reportlens/internal/validation"
)

// ReportBundle is everything the rendering layer needs for one report. View
// fields are nil when their sufficiency gate was not met; the renderer decides
// visibility per field.
type ReportBundle struct {
	ViewModel    report.ReportViewModel   `json:"viewModel"`
	Cards        []report.MetricCard      `json:"cards,omitempty"`
	Allocation   *report.AllocationChart  `json:"allocation,omitempty"`
	Table        []report.SegmentRow      `json:"table,omitempty"`
	Trend        *report.TrendSeries      `json:"trend,omitempty"`
	Narrative    *report.Narrative        `json:"narrative,omitempty"`
	Correlations []report.CorrelationPair `json:"correlations,omitempty"`
	Skews        []report.ColumnSkew      `json:"skews,omitempty"`
	Importances  []report.FeatureWeight   `json:"importances,omitempty"`
	Validation   report.ValidationResult  `json:"validation"`
}

// BuildReport runs the full pipeline over one snapshot. It is side-effect
// free and idempotent: the same snapshot always yields the same bundle.
func BuildReport(snap *snapshot.Snapshot) ReportBundle {
	sections := snap.Sections()
	text := flattenSections(sections)

	metrics := extract.Metrics(snap, text)
	segments := extract.Segments(snap)
	anomalies := extract.Anomalies(snap, text)
	execBrief := extract.Brief(sections)

	hero, _ := snap.HeroInsight()
	safeMode, _ := snap.SafeMode()

	data := &report.ReportData{
		Metrics:     &metrics,
		Segments:    segments,
		Brief:       execBrief,
		HeroInsight: hero,
		Confidence:  metrics.ConfidenceLevel,
		DataQuality: metrics.DataQualityScore,
		Sections:    sections,
		SafeMode:    safeMode,
		Anomalies:   anomalies,
	}
	result := validation.Validate(data, text)

	var guidanceEntries []report.GuidanceEntry
	if diag, ok := snap.Diagnostics(); ok {
		guidanceEntries = guidance.Map(diag)
	}

	confidence := 0.0
	if metrics.ConfidenceLevel != nil {
		confidence = *metrics.ConfidenceLevel
	}
	question, _ := snap.PrimaryQuestion()
	reportType, _ := snap.ReportType()

	vm := assemble.Assemble(assemble.Input{
		PrimaryQuestion:  question,
		ReportType:       reportType,
		Confidence:       confidence,
		SafeMode:         safeMode,
		Sections:         sections,
		Guidance:         guidanceEntries,
		ValidationErrors: errorMessages(result),
	})

	return ReportBundle{
		ViewModel:    vm,
		Cards:        transform.Cards(metrics, segments, anomalies),
		Allocation:   transform.Allocation(segments),
		Table:        transform.Table(segments),
		Trend:        transform.Trend(sections),
		Narrative:    transform.Narrative(metrics, segments, anomalies),
		Correlations: extract.Correlations(snap),
		Skews:        extract.Skews(snap),
		Importances:  extract.Importances(snap),
		Validation:   result,
	}
}

// flattenSections joins every section's markdown as plain text for the
// text-fallback extractors and the validator.
func flattenSections(sections []snapshot.Section) string {
	var parts []string
	for _, sec := range sections {
		if flat := extract.FlattenMarkdown(sec.Content); flat != "" {
			parts = append(parts, flat)
		}
	}
	return strings.Join(parts, "\n")
}

// errorMessages collects the blocking issue messages for the view model.
func errorMessages(result report.ValidationResult) []string {
	var msgs []string
	for _, issue := range result.Issues {
		if issue.Severity == report.SeverityError {
			msgs = append(msgs, issue.Message)
		}
	}
	return msgs
}
