package transform

import (
	"fmt"
	"math"

	"reportlens/domain/report"
)

// palette is reused cyclically, indexed by segment position.
var palette = []string{"#14b8a6", "#f59e0b", "#6366f1", "#ec4899", "#84cc16", "#64748b"}

// highValueThreshold is the avg-value above which a segment counts as
// high-value for the insight rules.
const highValueThreshold = 500.0

// maxAllocationInsights bounds the natural-language insight strings.
const maxAllocationInsights = 3

// Allocation builds the segment share chart. The gate requires at least two
// segments: a single segment has no allocation story to tell. Shares are
// rounded percentages of the summed sizes.
func Allocation(segments []report.Segment) *report.AllocationChart {
	if len(segments) < 2 {
		return nil
	}

	total := 0
	for _, s := range segments {
		total += s.Size
	}
	if total <= 0 {
		return nil
	}

	chart := &report.AllocationChart{}
	for i, s := range segments {
		chart.Slices = append(chart.Slices, report.AllocationSlice{
			Label: s.Label(),
			Value: int(math.Round(float64(s.Size) / float64(total) * 100)),
			Color: palette[i%len(palette)],
		})
	}
	chart.Insights = allocationInsights(segments, total)
	return chart
}

// allocationInsights applies the three fixed rules: largest segment, highest
// average value (when above the threshold or named premium/high), and any
// high-risk segment.
func allocationInsights(segments []report.Segment, total int) []string {
	var insights []string

	largest := segments[0]
	for _, s := range segments[1:] {
		if s.Size > largest.Size {
			largest = s
		}
	}
	share := math.Round(float64(largest.Size) / float64(total) * 100)
	insights = append(insights, fmt.Sprintf("%s is the largest segment at %.0f%% of the population", largest.Label(), share))

	richest := segments[0]
	for _, s := range segments[1:] {
		if s.AvgValue > richest.AvgValue {
			richest = s
		}
	}
	if richest.AvgValue > highValueThreshold || containsAny(richest.Label(), "premium", "high") {
		insights = append(insights, fmt.Sprintf("%s carries the highest average value at $%.2f", richest.Label(), richest.AvgValue))
	}

	for _, s := range segments {
		if s.RiskLevel == report.RiskHigh {
			insights = append(insights, fmt.Sprintf("%s is flagged high risk and may need attention", s.Label()))
			break
		}
	}

	if len(insights) > maxAllocationInsights {
		insights = insights[:maxAllocationInsights]
	}
	return insights
}
