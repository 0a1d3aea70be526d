package transform

import (
	"regexp"
	"strconv"
	"strings"

	"reportlens/domain/report"
	"reportlens/domain/snapshot"
)

// trendPoint matches "Q1 2025: 1,234.5" style lines: a short period label
// followed by a number. The label must start with a letter or quarter marker
// so plain key-value metric lines do not register as observations.
var trendPoint = regexp.MustCompile(`(?im)^\s*[-*]?\s*(Q[1-4](?:\s*\d{2,4})?|[A-Za-z][A-Za-z0-9 /-]{0,19}?)\s*[:=]\s*\$?([0-9][0-9,]*(?:\.[0-9]+)?)\s*$`)

// minTrendPoints is the sufficiency gate: fewer genuine observations than
// this is absence, never synthesized data.
const minTrendPoints = 2

// Trend recovers a genuine time series from a trend-labeled report section.
// It only ever parses what the text actually contains; when no such section
// or too few observations exist it returns absence.
func Trend(sections []snapshot.Section) *report.TrendSeries {
	sec, ok := snapshot.FindSection(sections, "trend", "time series", "over time", "forecast")
	if !ok {
		return nil
	}

	var points []report.TrendPoint
	for _, m := range trendPoint.FindAllStringSubmatch(sec.Content, -1) {
		label := strings.TrimSpace(m[1])
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
		if err != nil || label == "" {
			continue
		}
		points = append(points, report.TrendPoint{Period: label, Value: v})
	}
	if len(points) < minTrendPoints {
		return nil
	}

	label := sec.Title
	if label == "" {
		label = "Observed trend"
	}
	return &report.TrendSeries{Label: label, Points: points}
}
