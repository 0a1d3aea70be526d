package transform

import (
	"fmt"
	"strings"

	"reportlens/domain/report"
)

// strongQualityThreshold splits the quality-score headline wording.
const strongQualityThreshold = 70.0

// maxKeyPoints bounds the narrative bullet list.
const maxKeyPoints = 4

// Narrative builds the prose summary. The gate requires a derivable quality
// score or at least one segment. The headline is chosen by priority: segment
// count, then anomaly count, then quality score, then a generic fallback; the
// summary and key points cite only facts that are actually present.
func Narrative(m report.ExtractedMetrics, segments []report.Segment, anomalies *report.AnomalySummary) *report.Narrative {
	if m.DataQualityScore == nil && len(segments) == 0 {
		return nil
	}

	n := &report.Narrative{
		Headline:  narrativeHeadline(m, segments, anomalies),
		Summary:   narrativeSummary(m, segments, anomalies),
		KeyPoints: narrativeKeyPoints(m, segments, anomalies),
	}
	return n
}

func narrativeHeadline(m report.ExtractedMetrics, segments []report.Segment, anomalies *report.AnomalySummary) string {
	switch {
	case len(segments) > 0:
		return fmt.Sprintf("Analysis identified %d distinct segments", len(segments))
	case anomalies != nil && anomalies.Count > 0:
		return fmt.Sprintf("%d anomalies detected in the dataset", anomalies.Count)
	case m.DataQualityScore != nil && *m.DataQualityScore >= strongQualityThreshold:
		return fmt.Sprintf("Data quality is strong at %.0f/100", *m.DataQualityScore)
	case m.DataQualityScore != nil:
		return fmt.Sprintf("Data quality needs attention at %.0f/100", *m.DataQualityScore)
	default:
		return "Analysis complete"
	}
}

func narrativeSummary(m report.ExtractedMetrics, segments []report.Segment, anomalies *report.AnomalySummary) string {
	var parts []string
	if m.RecordsProcessed != nil {
		parts = append(parts, fmt.Sprintf("The run analyzed %s records.", humanizeCount(*m.RecordsProcessed)))
	}
	if len(segments) > 0 {
		parts = append(parts, fmt.Sprintf("%d segments emerged from the population.", len(segments)))
	}
	if m.DataQualityScore != nil {
		parts = append(parts, fmt.Sprintf("Overall data quality scored %.0f out of 100.", *m.DataQualityScore))
	}
	if anomalies != nil && anomalies.Count > 0 {
		parts = append(parts, fmt.Sprintf("%d records were flagged as anomalous.", anomalies.Count))
	}
	if m.ConfidenceLevel != nil {
		parts = append(parts, fmt.Sprintf("Analysis confidence stands at %.0f%%.", *m.ConfidenceLevel))
	}
	if len(parts) == 0 {
		return "The analysis completed without summary figures."
	}
	return strings.Join(parts, " ")
}

func narrativeKeyPoints(m report.ExtractedMetrics, segments []report.Segment, anomalies *report.AnomalySummary) []string {
	var points []string
	if len(segments) > 0 {
		largest := segments[0]
		for _, s := range segments[1:] {
			if s.Size > largest.Size {
				largest = s
			}
		}
		points = append(points, fmt.Sprintf("%s is the largest segment with %d members", largest.Label(), largest.Size))
	}
	if m.DataQualityScore != nil {
		points = append(points, fmt.Sprintf("Data quality score: %.0f/100", *m.DataQualityScore))
	}
	if anomalies != nil {
		points = append(points, fmt.Sprintf("Anomalies flagged: %d", anomalies.Count))
	}
	if m.ConfidenceLevel != nil {
		points = append(points, fmt.Sprintf("Confidence level: %.0f%%", *m.ConfidenceLevel))
	}
	if len(points) > maxKeyPoints {
		points = points[:maxKeyPoints]
	}
	return points
}
