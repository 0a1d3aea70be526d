package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportlens/domain/report"
	"reportlens/domain/snapshot"
)

func parseSnapshot(t *testing.T, payload string) *snapshot.Snapshot {
	t.Helper()
	return snapshot.Parse([]byte(payload))
}

func TestFlattenMarkdown(t *testing.T) {
	src := "## Data Quality\n\nOverall **strong** dataset.\n\n- Quality score: 87\n- Records processed: 1,500\n"

	text := FlattenMarkdown(src)

	assert.Contains(t, text, "Data Quality")
	assert.Contains(t, text, "Overall strong dataset.")
	assert.Contains(t, text, "Quality score: 87")
	assert.NotContains(t, text, "##")
	assert.NotContains(t, text, "**")
}

func TestFlattenMarkdown_Empty(t *testing.T) {
	assert.Equal(t, "", FlattenMarkdown(""))
	assert.Equal(t, "", FlattenMarkdown("   \n  "))
}

func TestNormalizeConfidence(t *testing.T) {
	assert.Equal(t, 85.0, NormalizeConfidence(0.85))
	assert.Equal(t, 85.0, NormalizeConfidence(85))
	assert.Equal(t, 100.0, NormalizeConfidence(1.0))
	assert.Equal(t, 0.0, NormalizeConfidence(0))
}

func TestMetrics_StructuredFirst(t *testing.T) {
	snap := parseSnapshot(t, `{
		"diagnostics": {"data_quality_score": 82, "confidence_level": 0.9},
		"profile": {"row_count": 1500}
	}`)
	// Text carries conflicting figures that must not win.
	text := "Quality score: 10\nRecords processed: 7\nConfidence: 0.1"

	m := Metrics(snap, text)

	require.NotNil(t, m.DataQualityScore)
	assert.Equal(t, 82.0, *m.DataQualityScore)
	require.NotNil(t, m.RecordsProcessed)
	assert.Equal(t, 1500, *m.RecordsProcessed)
	require.NotNil(t, m.ConfidenceLevel)
	assert.Equal(t, 90.0, *m.ConfidenceLevel)
}

func TestMetrics_TextFallback(t *testing.T) {
	snap := parseSnapshot(t, `{}`)
	text := "Data quality score: 76.5\nTotal records: 2,340\nConfidence level: 64"

	m := Metrics(snap, text)

	require.NotNil(t, m.DataQualityScore)
	assert.Equal(t, 76.5, *m.DataQualityScore)
	require.NotNil(t, m.RecordsProcessed)
	assert.Equal(t, 2340, *m.RecordsProcessed)
	require.NotNil(t, m.ConfidenceLevel)
	assert.Equal(t, 64.0, *m.ConfidenceLevel)
}

func TestMetrics_AbsentStaysNil(t *testing.T) {
	snap := parseSnapshot(t, `{"unrelated": {"figure": 42}}`)

	m := Metrics(snap, "The dataset mentions 9000 customers but no labeled metrics.")

	assert.Nil(t, m.DataQualityScore)
	assert.Nil(t, m.RecordsProcessed)
	assert.Nil(t, m.ConfidenceLevel)
	assert.True(t, m.IsEmpty())
}

func TestMetrics_OutOfRangeRejected(t *testing.T) {
	snap := parseSnapshot(t, `{"diagnostics": {"data_quality_score": 140, "confidence_level": 250}}`)

	m := Metrics(snap, "")

	assert.Nil(t, m.DataQualityScore)
	assert.Nil(t, m.ConfidenceLevel)
}

func TestMetrics_NumericStringAccepted(t *testing.T) {
	snap := parseSnapshot(t, `{"diagnostics": {"data_quality_score": "88"}}`)

	m := Metrics(snap, "")

	require.NotNil(t, m.DataQualityScore)
	assert.Equal(t, 88.0, *m.DataQualityScore)
}

func TestSegments(t *testing.T) {
	snap := parseSnapshot(t, `{"enhanced": {"personas": [
		{"name": "loyalists", "display_name": "Loyal Customers", "size": 420, "avg_value": 812.5, "risk_level": "Low", "key_trait": "repeat purchases", "recommended_action": "reward"},
		{"name": "drifters", "size": 130, "risk_level": "medium"},
		{"size": 99},
		{"name": "ghosts", "size": 0}
	]}}`)

	segs := Segments(snap)

	require.Len(t, segs, 2)
	assert.Equal(t, "loyalists", segs[0].Name)
	assert.Equal(t, "Loyal Customers", segs[0].Label())
	assert.Equal(t, 420, segs[0].Size)
	assert.Equal(t, 812.5, segs[0].AvgValue)
	assert.Equal(t, report.RiskLow, segs[0].RiskLevel)
	assert.Equal(t, "reward", segs[0].RecommendedAction)

	assert.Equal(t, "drifters", segs[1].Label())
	assert.Equal(t, report.RiskModerate, segs[1].RiskLevel)
}

func TestSegments_Capped(t *testing.T) {
	var entries []string
	for i := 0; i < maxSegments+3; i++ {
		entries = append(entries, fmt.Sprintf(`{"name": "seg%d", "size": %d}`, i, i+1))
	}
	snap := parseSnapshot(t, `{"personas": [`+strings.Join(entries, ",")+`]}`)

	assert.Len(t, Segments(snap), maxSegments)
}

func TestSegments_UnknownRisk(t *testing.T) {
	snap := parseSnapshot(t, `{"segments": [{"name": "a", "size": 5, "risk": "catastrophic"}]}`)

	segs := Segments(snap)

	require.Len(t, segs, 1)
	assert.Equal(t, report.RiskUnknown, segs[0].RiskLevel)
}

func TestCorrelations(t *testing.T) {
	snap := parseSnapshot(t, `{"enhanced": {"correlations": [
		{"column1": "spend", "column2": "visits", "correlation": 0.82},
		{"column1": "spend", "column2": "age", "correlation": 1.4},
		{"column1": "", "column2": "age", "correlation": 0.3},
		{"col1": "tenure", "col2": "churn", "value": -0.61}
	]}}`)

	pairs := Correlations(snap)

	require.Len(t, pairs, 2)
	assert.Equal(t, report.CorrelationPair{Column1: "spend", Column2: "visits", Correlation: 0.82}, pairs[0])
	assert.Equal(t, report.CorrelationPair{Column1: "tenure", Column2: "churn", Correlation: -0.61}, pairs[1])
}

func TestSkews(t *testing.T) {
	snap := parseSnapshot(t, `{"enhanced": {"distributions": [
		{"column": "spend", "skewness": 2.1},
		{"column": "age"},
		{"skewness": 0.4}
	]}}`)

	skews := Skews(snap)

	require.Len(t, skews, 1)
	assert.Equal(t, report.ColumnSkew{Column: "spend", Skewness: 2.1}, skews[0])
}

func TestImportances(t *testing.T) {
	snap := parseSnapshot(t, `{"enhanced": {"feature_importance": [
		{"feature": "recency", "importance": 0.42},
		{"name": "frequency", "weight": 0.31},
		{"feature": "noise", "importance": -0.2}
	]}}`)

	weights := Importances(snap)

	require.Len(t, weights, 2)
	assert.Equal(t, "recency", weights[0].Feature)
	assert.Equal(t, 0.31, weights[1].Importance)
}

func TestAnomalies_Structured(t *testing.T) {
	snap := parseSnapshot(t, `{"enhanced": {"anomalies": {"count": 12, "percentage": 2.4}}}`)

	a := Anomalies(snap, "")

	require.NotNil(t, a)
	assert.Equal(t, 12, a.Count)
	require.NotNil(t, a.Percentage)
	assert.Equal(t, 2.4, *a.Percentage)
}

func TestAnomalies_TextFallback(t *testing.T) {
	a := Anomalies(parseSnapshot(t, `{}`), "Anomalies detected: 7\nAnomaly rate: 1.5")

	require.NotNil(t, a)
	assert.Equal(t, 7, a.Count)
	require.NotNil(t, a.Percentage)
	assert.Equal(t, 1.5, *a.Percentage)
}

func TestAnomalies_Absent(t *testing.T) {
	assert.Nil(t, Anomalies(parseSnapshot(t, `{}`), "No outlier discussion here."))
}

func TestBrief(t *testing.T) {
	sections := []snapshot.Section{
		{ID: "intro", Title: "Introduction", Content: "Welcome."},
		{
			ID:    "executive_summary",
			Title: "Executive Summary",
			Content: "Revenue concentration is the story of this dataset. Details follow.\n" +
				"- Top segment drives 60% of revenue\n" +
				"* Churn risk is concentrated in new accounts\n" +
				"1. Quality issues are isolated to two columns\n",
		},
	}

	brief := Brief(sections)

	require.NotNil(t, brief)
	assert.Equal(t, "Revenue concentration is the story of this dataset.", brief.Headline)
	require.Len(t, brief.KeyFindings, 3)
	assert.Equal(t, "Top segment drives 60% of revenue", brief.KeyFindings[0])
	assert.Equal(t, "Churn risk is concentrated in new accounts", brief.KeyFindings[1])
	assert.Equal(t, "Quality issues are isolated to two columns", brief.KeyFindings[2])
}

func TestBrief_FindingsCapped(t *testing.T) {
	var b strings.Builder
	b.WriteString("Headline sentence.\n")
	for i := 0; i < maxKeyFindings+4; i++ {
		fmt.Fprintf(&b, "- finding %d\n", i)
	}
	sections := []snapshot.Section{{ID: "summary", Content: b.String()}}

	brief := Brief(sections)

	require.NotNil(t, brief)
	assert.Len(t, brief.KeyFindings, maxKeyFindings)
}

func TestBrief_NoSummarySection(t *testing.T) {
	assert.Nil(t, Brief([]snapshot.Section{{ID: "details", Content: "text"}}))
	assert.Nil(t, Brief(nil))
}
