package snapshot

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Snapshot wraps the raw analytics payload produced by the backend for one
// analysis run. The payload is not contractual: every field is optional, nesting
// varies between backend versions, and free text is mixed with structured data.
// All reads therefore go through named accessors that try the known locations in
// order and report absence explicitly instead of panicking or guessing.
type Snapshot struct {
	raw gjson.Result
}

// Section is one free-text block of the generated report.
type Section struct {
	ID      string
	Title   string
	Content string
}

// ColumnProfile describes one dataset column as profiled upstream.
type ColumnProfile struct {
	Name    string
	Type    string
	NullPct float64
}

// Parse wraps a raw payload. Invalid or empty JSON yields a snapshot whose
// accessors all report absence; Parse itself never fails.
func Parse(data []byte) *Snapshot {
	if !gjson.ValidBytes(data) {
		return &Snapshot{}
	}
	return &Snapshot{raw: gjson.ParseBytes(data)}
}

// Raw returns the underlying JSON document for callers that need to forward it.
func (s *Snapshot) Raw() string {
	return s.raw.Raw
}

// first returns the first existing result among the candidate paths.
func (s *Snapshot) first(paths ...string) (gjson.Result, bool) {
	for _, p := range paths {
		if r := s.raw.Get(p); r.Exists() {
			return r, true
		}
	}
	return gjson.Result{}, false
}

// numeric accepts a JSON number or a numeric string; backends are sloppy
// about which one they emit.
func numeric(r gjson.Result) (float64, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Float(), true
	case gjson.String:
		s := strings.TrimSpace(r.String())
		if s == "" {
			return 0, false
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

// intFrom converts a numeric result into a non-negative int.
func intFrom(r gjson.Result, ok bool) (int, bool) {
	if !ok {
		return 0, false
	}
	v, valid := numeric(r)
	if !valid || v < 0 {
		return 0, false
	}
	return int(v), true
}

// QualityScore returns the backend's data quality score, when reported.
func (s *Snapshot) QualityScore() (float64, bool) {
	r, ok := s.first(
		"diagnostics.data_quality_score",
		"diagnostics.quality_score",
		"data_quality.score",
	)
	if !ok {
		return 0, false
	}
	return numeric(r)
}

// RecordsProcessed returns how many records the run analyzed.
func (s *Snapshot) RecordsProcessed() (int, bool) {
	r, ok := s.first(
		"profile.row_count",
		"profile.shape.rows",
		"identity.rows",
		"diagnostics.records_processed",
	)
	return intFrom(r, ok)
}

// ColumnCount returns the profiled column count.
func (s *Snapshot) ColumnCount() (int, bool) {
	r, ok := s.first("profile.column_count", "profile.shape.columns", "identity.columns")
	return intFrom(r, ok)
}

// Confidence returns the run's confidence figure. Backends disagree on scale:
// some report 0-1, some 0-100. The value is returned as found; normalization
// happens once, at the view-model boundary.
func (s *Snapshot) Confidence() (float64, bool) {
	r, ok := s.first(
		"diagnostics.confidence_level",
		"model.confidence",
		"model_fit.confidence",
		"confidence",
	)
	if !ok {
		return 0, false
	}
	return numeric(r)
}

// Columns returns per-column profile entries, or nil when no profile exists.
func (s *Snapshot) Columns() []ColumnProfile {
	r, ok := s.first("profile.columns", "identity.columns_detail")
	if !ok || !r.IsArray() {
		return nil
	}
	var cols []ColumnProfile
	r.ForEach(func(_, v gjson.Result) bool {
		name := v.Get("name").String()
		if name == "" {
			return true
		}
		null := v.Get("null_pct")
		if !null.Exists() {
			null = v.Get("null_percentage")
		}
		cols = append(cols, ColumnProfile{
			Name:    name,
			Type:    v.Get("type").String(),
			NullPct: null.Float(),
		})
		return true
	})
	return cols
}

// Sections returns the free-text report sections in document order.
func (s *Snapshot) Sections() []Section {
	r, ok := s.first("report.sections", "sections")
	if !ok || !r.IsArray() {
		return nil
	}
	var out []Section
	r.ForEach(func(_, v gjson.Result) bool {
		sec := Section{
			ID:      v.Get("id").String(),
			Title:   v.Get("title").String(),
			Content: v.Get("content").String(),
		}
		if sec.ID == "" && sec.Title == "" && sec.Content == "" {
			return true
		}
		out = append(out, sec)
		return true
	})
	return out
}

// SectionByLabel returns the first section whose id or title contains any of
// the given labels, case-insensitively.
func (s *Snapshot) SectionByLabel(labels ...string) (Section, bool) {
	return FindSection(s.Sections(), labels...)
}

// FindSection searches a section list by id/title substring match.
func FindSection(sections []Section, labels ...string) (Section, bool) {
	for _, sec := range sections {
		id := strings.ToLower(sec.ID)
		title := strings.ToLower(sec.Title)
		for _, label := range labels {
			l := strings.ToLower(label)
			if strings.Contains(id, l) || strings.Contains(title, l) {
				return sec, true
			}
		}
	}
	return Section{}, false
}

// Correlations returns the enhanced-analytics correlation entries as raw
// results; the extractor owns validation and capping.
func (s *Snapshot) Correlations() []gjson.Result {
	r, ok := s.first("enhanced.correlations", "analytics.correlations", "correlations")
	if !ok || !r.IsArray() {
		return nil
	}
	return r.Array()
}

// Distributions returns per-column distribution stats entries.
func (s *Snapshot) Distributions() []gjson.Result {
	r, ok := s.first("enhanced.distributions", "analytics.distributions")
	if !ok || !r.IsArray() {
		return nil
	}
	return r.Array()
}

// FeatureImportance returns feature importance entries.
func (s *Snapshot) FeatureImportance() []gjson.Result {
	r, ok := s.first("enhanced.feature_importance", "analytics.feature_importance", "model.feature_importance")
	if !ok || !r.IsArray() {
		return nil
	}
	return r.Array()
}

// Personas returns the segment/persona entries.
func (s *Snapshot) Personas() []gjson.Result {
	r, ok := s.first("enhanced.personas", "personas", "segments")
	if !ok || !r.IsArray() {
		return nil
	}
	return r.Array()
}

// AnomalyCount returns the flagged-anomaly count.
func (s *Snapshot) AnomalyCount() (int, bool) {
	r, ok := s.first("enhanced.anomalies.count", "anomalies.count")
	return intFrom(r, ok)
}

// AnomalyPercentage returns the fraction of records flagged anomalous, 0-100.
func (s *Snapshot) AnomalyPercentage() (float64, bool) {
	r, ok := s.first("enhanced.anomalies.percentage", "anomalies.percentage")
	if !ok {
		return 0, false
	}
	v, valid := numeric(r)
	if !valid || v < 0 || v > 100 {
		return 0, false
	}
	return v, true
}

// Diagnostics returns the raw diagnostics block as a JSON string, or free text
// when the backend emitted guardrail notes as plain prose.
func (s *Snapshot) Diagnostics() (string, bool) {
	r, ok := s.first("diagnostics.guardrails", "diagnostics.blockers", "diagnostics")
	if !ok {
		return "", false
	}
	if r.Type == gjson.String {
		return r.String(), true
	}
	return r.Raw, true
}

// SafeMode returns the explicit upstream safe-mode flag.
func (s *Snapshot) SafeMode() (bool, bool) {
	r, ok := s.first("diagnostics.safe_mode", "safe_mode")
	if !ok || !r.IsBool() {
		return false, false
	}
	return r.Bool(), true
}

// PrimaryQuestion returns the question the analysis was asked to answer.
func (s *Snapshot) PrimaryQuestion() (string, bool) {
	r, ok := s.first("request.primary_question", "primary_question", "question")
	if !ok || r.Type != gjson.String || strings.TrimSpace(r.String()) == "" {
		return "", false
	}
	return strings.TrimSpace(r.String()), true
}

// HeroInsight returns the backend's single most important finding.
func (s *Snapshot) HeroInsight() (string, bool) {
	r, ok := s.first("report.hero_insight", "hero_insight", "primary_insight")
	if !ok || r.Type != gjson.String || strings.TrimSpace(r.String()) == "" {
		return "", false
	}
	return strings.TrimSpace(r.String()), true
}

// ReportType returns the detected analysis type (segmentation, forecast, ...).
func (s *Snapshot) ReportType() (string, bool) {
	r, ok := s.first("report.type", "report_type", "analysis_type")
	if !ok || r.Type != gjson.String || strings.TrimSpace(r.String()) == "" {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(r.String())), true
}
