package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportlens/domain/report"
	"reportlens/domain/snapshot"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestCards_RequiresTwoMetrics(t *testing.T) {
	tests := []struct {
		name      string
		metrics   report.ExtractedMetrics
		segments  []report.Segment
		anomalies *report.AnomalySummary
		wantCards int
	}{
		{
			name:      "nothing derivable",
			wantCards: 0,
		},
		{
			name:      "single metric is absence, not a one-card strip",
			metrics:   report.ExtractedMetrics{DataQualityScore: floatPtr(90)},
			wantCards: 0,
		},
		{
			name:      "two metrics render",
			metrics:   report.ExtractedMetrics{DataQualityScore: floatPtr(90), RecordsProcessed: intPtr(500)},
			wantCards: 2,
		},
		{
			name:      "segments and anomalies count as metrics",
			segments:  []report.Segment{{Name: "a", Size: 10}},
			anomalies: &report.AnomalySummary{Count: 2},
			wantCards: 2,
		},
		{
			name: "capped at four in preference order",
			metrics: report.ExtractedMetrics{
				DataQualityScore: floatPtr(82),
				RecordsProcessed: intPtr(10_000),
				ConfidenceLevel:  floatPtr(71),
			},
			segments:  []report.Segment{{Name: "a", Size: 10}},
			anomalies: &report.AnomalySummary{Count: 2},
			wantCards: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := Cards(tt.metrics, tt.segments, tt.anomalies)
			assert.Len(t, cards, tt.wantCards)
		})
	}
}

func TestCards_PreferenceOrderDropsConfidence(t *testing.T) {
	metrics := report.ExtractedMetrics{
		DataQualityScore: floatPtr(82),
		RecordsProcessed: intPtr(10_000),
		ConfidenceLevel:  floatPtr(71),
	}
	segments := []report.Segment{{Name: "a", Size: 10}}
	anomalies := &report.AnomalySummary{Count: 2}

	cards := Cards(metrics, segments, anomalies)

	require.Len(t, cards, 4)
	assert.Equal(t, "Data Quality", cards[0].Label)
	assert.Equal(t, "Records Analyzed", cards[1].Label)
	assert.Equal(t, "Segments Identified", cards[2].Label)
	assert.Equal(t, "Anomalies Flagged", cards[3].Label)
}

func TestAllocation_SharesAreRoundedPercentages(t *testing.T) {
	segments := []report.Segment{
		{Name: "loyalists", Size: 600, AvgValue: 100},
		{Name: "drifters", Size: 400, AvgValue: 80},
	}

	chart := Allocation(segments)

	require.NotNil(t, chart)
	require.Len(t, chart.Slices, 2)
	assert.Equal(t, 60, chart.Slices[0].Value)
	assert.Equal(t, 40, chart.Slices[1].Value)
}

func TestAllocation_RequiresTwoSegments(t *testing.T) {
	assert.Nil(t, Allocation(nil))
	assert.Nil(t, Allocation([]report.Segment{{Name: "only", Size: 100}}))
}

func TestAllocation_PaletteCycles(t *testing.T) {
	segments := make([]report.Segment, len(palette)+1)
	for i := range segments {
		segments[i] = report.Segment{Name: "s", Size: 10}
	}

	chart := Allocation(segments)

	require.NotNil(t, chart)
	assert.Equal(t, chart.Slices[0].Color, chart.Slices[len(palette)].Color)
}

func TestAllocation_Insights(t *testing.T) {
	segments := []report.Segment{
		{Name: "premium spenders", Size: 300, AvgValue: 900},
		{Name: "bargain hunters", Size: 700, AvgValue: 40, RiskLevel: report.RiskHigh},
	}

	chart := Allocation(segments)

	require.NotNil(t, chart)
	require.Len(t, chart.Insights, 3)
	assert.Contains(t, chart.Insights[0], "bargain hunters")
	assert.Contains(t, chart.Insights[0], "70%")
	assert.Contains(t, chart.Insights[1], "premium spenders")
	assert.Contains(t, chart.Insights[2], "high risk")
}

func TestTable_StatusDecisionTable(t *testing.T) {
	tests := []struct {
		name    string
		segment report.Segment
		want    string
	}{
		{"high risk wins", report.Segment{Name: "a", Size: 1, AvgValue: 9999, RiskLevel: report.RiskHigh}, "At Risk"},
		{"high value exceeds", report.Segment{Name: "a", Size: 1, AvgValue: 600}, "Exceeding"},
		{"low risk exceeds", report.Segment{Name: "a", Size: 1, AvgValue: 10, RiskLevel: report.RiskLow}, "Exceeding"},
		{"neutral is on track", report.Segment{Name: "a", Size: 1, AvgValue: 10}, "On Track"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Table([]report.Segment{tt.segment})
			require.Len(t, rows, 1)
			assert.Equal(t, tt.want, rows[0].Status)
		})
	}
}

func TestTable_ShareFormatting(t *testing.T) {
	rows := Table([]report.Segment{
		{Name: "a", Size: 3},
		{Name: "b", Size: 5},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, "37.5%", rows[0].Share)
	assert.Equal(t, "62.5%", rows[1].Share)
}

func TestTable_EmptyIsAbsent(t *testing.T) {
	assert.Nil(t, Table(nil))
}

func TestNarrative_Gate(t *testing.T) {
	assert.Nil(t, Narrative(report.ExtractedMetrics{}, nil, nil))
	assert.Nil(t, Narrative(report.ExtractedMetrics{RecordsProcessed: intPtr(100)}, nil, nil))

	n := Narrative(report.ExtractedMetrics{DataQualityScore: floatPtr(80)}, nil, nil)
	require.NotNil(t, n)
	assert.Contains(t, n.Headline, "80/100")
}

func TestNarrative_HeadlinePriority(t *testing.T) {
	segments := []report.Segment{{Name: "a", Size: 10}, {Name: "b", Size: 20}}
	anomalies := &report.AnomalySummary{Count: 7}
	quality := report.ExtractedMetrics{DataQualityScore: floatPtr(40)}

	withSegments := Narrative(quality, segments, anomalies)
	require.NotNil(t, withSegments)
	assert.Equal(t, "Analysis identified 2 distinct segments", withSegments.Headline)

	withAnomalies := Narrative(quality, nil, anomalies)
	require.NotNil(t, withAnomalies)
	assert.Equal(t, "7 anomalies detected in the dataset", withAnomalies.Headline)

	qualityOnly := Narrative(quality, nil, nil)
	require.NotNil(t, qualityOnly)
	assert.Equal(t, "Data quality needs attention at 40/100", qualityOnly.Headline)
}

func TestNarrative_KeyPointsCapped(t *testing.T) {
	metrics := report.ExtractedMetrics{
		DataQualityScore: floatPtr(88),
		ConfidenceLevel:  floatPtr(75),
	}
	segments := []report.Segment{{Name: "big", Size: 100}}
	anomalies := &report.AnomalySummary{Count: 4}

	n := Narrative(metrics, segments, anomalies)

	require.NotNil(t, n)
	assert.LessOrEqual(t, len(n.KeyPoints), 4)
	assert.Contains(t, n.KeyPoints[0], "big")
}

func TestTrend_ParsesGenuineSeries(t *testing.T) {
	sections := []snapshot.Section{
		{ID: "trend_analysis", Title: "Trend Analysis", Content: "Revenue by quarter:\nQ1 2025: 1,200\nQ2 2025: 1,450.5\nQ3 2025: 1,800\n"},
	}

	series := Trend(sections)

	require.NotNil(t, series)
	require.Len(t, series.Points, 3)
	assert.Equal(t, "Q1 2025", series.Points[0].Period)
	assert.Equal(t, 1200.0, series.Points[0].Value)
	assert.Equal(t, 1450.5, series.Points[1].Value)
}

func TestTrend_AbsentWithoutRealData(t *testing.T) {
	// No trend section at all.
	assert.Nil(t, Trend([]snapshot.Section{{ID: "summary", Content: "Revenue is growing over the months."}}))

	// A trend section with prose but no observations must stay absent, never
	// synthesized.
	assert.Nil(t, Trend([]snapshot.Section{{ID: "trend", Content: "Things look like they are growing nicely."}}))

	// A single observation is below the gate.
	assert.Nil(t, Trend([]snapshot.Section{{ID: "trend", Content: "Jan: 100"}}))
}
