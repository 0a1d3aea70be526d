package models

import (
	"encoding/json"
	"time"

	"reportlens/app"
	"reportlens/domain/core"
)

// StoredReport is one recent-report row: the assembled bundle plus the
// columns the list view needs without unmarshaling the payload.
type StoredReport struct {
	ID        core.ReportID   `db:"id" json:"id"`
	Title     string          `db:"title" json:"title"`
	Score     int             `db:"score" json:"score"`
	SafeMode  bool            `db:"safe_mode" json:"safeMode"`
	Bundle    json.RawMessage `db:"bundle" json:"bundle,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}

// NewStoredReport snapshots a bundle for persistence.
func NewStoredReport(bundle app.ReportBundle) (*StoredReport, error) {
	payload, err := json.Marshal(bundle)
	if err != nil {
		return nil, err
	}
	return &StoredReport{
		ID:        core.ReportID(core.NewID()),
		Title:     bundle.ViewModel.Header.Title,
		Score:     bundle.Validation.Score,
		SafeMode:  bundle.ViewModel.Header.SafeMode,
		Bundle:    payload,
		CreatedAt: core.Now().Time(),
	}, nil
}

// ReportSummary is the list-endpoint projection of a stored report.
type ReportSummary struct {
	ID        core.ReportID `json:"id"`
	Title     string        `json:"title"`
	Score     int           `json:"score"`
	SafeMode  bool          `json:"safeMode"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Summary projects the stored report for listing.
func (r *StoredReport) Summary() ReportSummary {
	return ReportSummary{
		ID:        r.ID,
		Title:     r.Title,
		Score:     r.Score,
		SafeMode:  r.SafeMode,
		CreatedAt: r.CreatedAt,
	}
}
