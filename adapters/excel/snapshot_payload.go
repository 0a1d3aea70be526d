package excel

import "encoding/json"

// SnapshotPayload renders the profile in the backend's snapshot shape, so an
// upload can be previewed through the same pipeline a finished run uses.
func (p *DatasetProfile) SnapshotPayload() []byte {
	columns := make([]map[string]any, 0, len(p.Columns))
	for _, c := range p.Columns {
		columns = append(columns, map[string]any{
			"name":     c.Name,
			"type":     c.Type,
			"null_pct": c.NullPct,
		})
	}
	distributions := make([]map[string]any, 0, len(p.Skews))
	for _, s := range p.Skews {
		distributions = append(distributions, map[string]any{
			"column":   s.Column,
			"skewness": s.Skewness,
		})
	}
	correlations := make([]map[string]any, 0, len(p.Correlations))
	for _, c := range p.Correlations {
		correlations = append(correlations, map[string]any{
			"column1":     c.Column1,
			"column2":     c.Column2,
			"correlation": c.Correlation,
		})
	}

	payload := map[string]any{
		"profile": map[string]any{
			"row_count":    p.RowCount,
			"column_count": len(p.Columns),
			"columns":      columns,
		},
		"enhanced": map[string]any{
			"distributions": distributions,
			"correlations":  correlations,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return []byte("{}")
	}
	return body
}
