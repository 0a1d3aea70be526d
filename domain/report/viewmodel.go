package report

// ConfidenceBand is the three-way confidence classification used everywhere a
// confidence figure drives presentation.
type ConfidenceBand string

const (
	BandHigh     ConfidenceBand = "high"
	BandModerate ConfidenceBand = "moderate"
	BandLow      ConfidenceBand = "low"
)

// Header is the report banner state.
type Header struct {
	Title    string         `json:"title"`
	Band     ConfidenceBand `json:"band"`
	Bars     int            `json:"bars"` // 1-3 confidence bars
	Tone     string         `json:"tone"` // "teal" | "amber" | "muted"
	SafeMode bool           `json:"safeMode"`
}

// NavigationItem is one entry of the section navigation list.
type NavigationItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// EvidenceLink ties a phrase in the report text to the evidence panel that
// substantiates it.
type EvidenceLink struct {
	Phrase     string `json:"phrase"`
	EvidenceID string `json:"evidenceId"`
}

// Brief is the above-the-fold headline / key finding / decision summary.
type Brief struct {
	Headline   string `json:"headline"`
	KeyFinding string `json:"keyFinding"` // truncated to 150 chars
	Decision   string `json:"decision"`   // truncated to 120 chars
	Status     string `json:"status"`     // "high" | "moderate" | "limited"
	Accent     string `json:"accent"`     // "teal" | "amber" | "muted"
}

// ReportViewModel is the assembled, render-ready report state. It is built
// fresh per call and never mutated afterwards.
type ReportViewModel struct {
	Header           Header           `json:"header"`
	Navigation       []NavigationItem `json:"navigation,omitempty"`
	Traceability     []EvidenceLink   `json:"traceability,omitempty"`
	ValidationErrors []string         `json:"validationErrors,omitempty"`
	Guidance         []GuidanceEntry  `json:"guidance,omitempty"`
	Brief            Brief            `json:"brief"`
}
