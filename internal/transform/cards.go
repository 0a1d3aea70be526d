package transform

import (
	"fmt"

	"reportlens/domain/report"
)

// maxCards bounds the card strip; candidates beyond the cap are dropped in
// preference order.
const maxCards = 4

// Cards builds the metric card strip. The sufficiency gate requires at least
// two derivable metrics among quality, volume, segmentation, anomalies and
// confidence; below that the strip is absent rather than padded. Candidates
// are considered in a fixed preference order: quality, volume, segmentation,
// anomalies, confidence.
func Cards(m report.ExtractedMetrics, segments []report.Segment, anomalies *report.AnomalySummary) []report.MetricCard {
	var cards []report.MetricCard

	if m.DataQualityScore != nil {
		cards = append(cards, report.MetricCard{
			Label:   "Data Quality",
			Value:   fmt.Sprintf("%.0f/100", *m.DataQualityScore),
			Caption: qualityCaption(*m.DataQualityScore),
		})
	}
	if m.RecordsProcessed != nil {
		cards = append(cards, report.MetricCard{
			Label:   "Records Analyzed",
			Value:   humanizeCount(*m.RecordsProcessed),
			Caption: "rows in this run",
		})
	}
	if len(segments) > 0 {
		cards = append(cards, report.MetricCard{
			Label:   "Segments Identified",
			Value:   fmt.Sprintf("%d", len(segments)),
			Caption: "distinct groups",
		})
	}
	if anomalies != nil {
		card := report.MetricCard{
			Label: "Anomalies Flagged",
			Value: fmt.Sprintf("%d", anomalies.Count),
		}
		if anomalies.Percentage != nil {
			card.Caption = fmt.Sprintf("%.1f%% of records", *anomalies.Percentage)
		}
		cards = append(cards, card)
	}
	if m.ConfidenceLevel != nil {
		cards = append(cards, report.MetricCard{
			Label:   "Confidence",
			Value:   fmt.Sprintf("%.0f%%", *m.ConfidenceLevel),
			Caption: "analysis confidence",
		})
	}

	if len(cards) < 2 {
		return nil
	}
	if len(cards) > maxCards {
		cards = cards[:maxCards]
	}
	return cards
}

func qualityCaption(score float64) string {
	switch {
	case score >= 80:
		return "ready for decisions"
	case score >= 50:
		return "usable with caution"
	default:
		return "needs cleanup"
	}
}

func humanizeCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 10_000:
		return fmt.Sprintf("%.0fK", float64(n)/1_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
