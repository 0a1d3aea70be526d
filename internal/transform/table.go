package transform

import (
	"fmt"
	"strings"

	"reportlens/domain/report"
)

// Table builds the segment comparison rows. One segment is enough for a
// table; zero is absence. Status follows a fixed decision table: high risk
// wins, then high value or low risk, then the neutral default.
func Table(segments []report.Segment) []report.SegmentRow {
	if len(segments) == 0 {
		return nil
	}

	total := 0
	for _, s := range segments {
		total += s.Size
	}

	rows := make([]report.SegmentRow, 0, len(segments))
	for _, s := range segments {
		share := 0.0
		if total > 0 {
			share = float64(s.Size) / float64(total) * 100
		}
		rows = append(rows, report.SegmentRow{
			Name:     s.Label(),
			Size:     s.Size,
			Share:    fmt.Sprintf("%.1f%%", share),
			AvgValue: fmt.Sprintf("$%.2f", s.AvgValue),
			Status:   segmentStatus(s),
		})
	}
	return rows
}

func segmentStatus(s report.Segment) string {
	switch {
	case s.RiskLevel == report.RiskHigh:
		return "At Risk"
	case s.AvgValue > highValueThreshold || s.RiskLevel == report.RiskLow:
		return "Exceeding"
	default:
		return "On Track"
	}
}

func containsAny(s string, subs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}
