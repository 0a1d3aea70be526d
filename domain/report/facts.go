package report

// RiskLevel classifies a segment's risk as reported upstream.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskUnknown  RiskLevel = ""
)

// ExtractedMetrics holds the summary figures derivable from a snapshot.
// Pointer fields encode absence: a nil field means the fact was neither
// structurally present nor recoverable from the report text.
type ExtractedMetrics struct {
	DataQualityScore *float64 // 0-100
	RecordsProcessed *int     // non-negative
	ConfidenceLevel  *float64 // 0-100
}

// IsEmpty reports whether no metric was derivable at all.
func (m ExtractedMetrics) IsEmpty() bool {
	return m.DataQualityScore == nil && m.RecordsProcessed == nil && m.ConfidenceLevel == nil
}

// Segment is one persona/cluster record. Sibling segments are expected to
// partition the analyzed population, though the sizes need not sum exactly.
type Segment struct {
	Name              string
	DisplayName       string
	Size              int
	AvgValue          float64
	RiskLevel         RiskLevel
	KeyTrait          string
	RecommendedAction string
}

// Label returns the display name when present, else the raw name.
func (s Segment) Label() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return s.Name
}

// AnomalySummary aggregates the anomaly detection outcome.
type AnomalySummary struct {
	Count      int
	Percentage *float64 // 0-100, fraction of records flagged
}

// CorrelationPair is one detected column relationship, correlation in [-1, 1].
type CorrelationPair struct {
	Column1     string  `json:"column1"`
	Column2     string  `json:"column2"`
	Correlation float64 `json:"correlation"`
}

// ColumnSkew is the distribution skewness of one numeric column.
type ColumnSkew struct {
	Column   string  `json:"column"`
	Skewness float64 `json:"skewness"`
}

// FeatureWeight is one feature importance entry from the model artifacts.
type FeatureWeight struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}
