package report

// MetricCard is one headline figure for the report's card strip.
type MetricCard struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Caption string `json:"caption,omitempty"`
}

// AllocationSlice is one segment's share of the allocation chart.
type AllocationSlice struct {
	Label string `json:"label"`
	Value int    `json:"value"` // rounded percentage share
	Color string `json:"color"`
}

// AllocationChart is the segment share view plus its derived insight strings.
type AllocationChart struct {
	Slices   []AllocationSlice `json:"slices"`
	Insights []string          `json:"insights,omitempty"`
}

// SegmentRow is one row of the segment comparison table.
type SegmentRow struct {
	Name     string `json:"name"`
	Size     int    `json:"size"`
	Share    string `json:"share"` // one-decimal percentage, e.g. "37.5%"
	AvgValue string `json:"avgValue"`
	Status   string `json:"status"` // "At Risk" | "Exceeding" | "On Track"
}

// TrendPoint is one observation of a parsed time series.
type TrendPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// TrendSeries is a genuine time series recovered from the report text.
type TrendSeries struct {
	Label  string       `json:"label"`
	Points []TrendPoint `json:"points"`
}

// Narrative is the generated prose summary of the run.
type Narrative struct {
	Headline  string   `json:"headline"`
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"keyPoints,omitempty"`
}
