// Package excel profiles uploaded spreadsheets into the same identity-profile
// shape the analysis backend reports, so locally-uploaded datasets flow
// through the pipeline unchanged.
package excel

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/stat"

	"reportlens/domain/report"
	"reportlens/domain/snapshot"
	"reportlens/internal/errors"
)

// Profiling limits. Profiling is a preview, not the analysis.
const (
	maxProfileRows     = 50_000
	maxCorrelationCols = 6
	minSkewSamples     = 3
)

// numericThreshold is the fraction of parseable cells above which a column is
// typed numeric.
const numericThreshold = 0.8

// DatasetProfile is the derived identity profile of one upload.
type DatasetProfile struct {
	RowCount     int
	Columns      []snapshot.ColumnProfile
	Skews        []report.ColumnSkew
	Correlations []report.CorrelationPair
}

// ProfileReader derives dataset profiles from .xlsx uploads.
type ProfileReader struct{}

// NewProfileReader creates a profile reader.
func NewProfileReader() *ProfileReader {
	return &ProfileReader{}
}

// ReadProfile profiles the first sheet of an .xlsx stream: row and column
// counts, per-column inferred type and null rate, skewness for numeric
// columns, and pairwise correlations for the leading numeric columns.
func (r *ProfileReader) ReadProfile(src io.Reader) (*DatasetProfile, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.WithCode(errors.CodeProfileRead, fmt.Errorf("failed to open workbook: %w", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New(errors.CodeProfileRead, "workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.WithCode(errors.CodeProfileRead, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err))
	}
	if len(rows) < 2 {
		return nil, errors.New(errors.CodeProfileRead, "sheet has no data rows")
	}

	header := rows[0]
	body := rows[1:]
	if len(body) > maxProfileRows {
		body = body[:maxProfileRows]
	}

	profile := &DatasetProfile{RowCount: len(body)}
	// Row-aligned numeric samples, NaN where a cell is missing or textual,
	// so correlations can pair columns row by row.
	aligned := make(map[string][]float64)

	for col, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("column_%d", col+1)
		}

		nulls, nonEmpty, parsed := 0, 0, 0
		column := make([]float64, len(body))
		for i, row := range body {
			column[i] = math.NaN()
			cell := ""
			if col < len(row) {
				cell = strings.TrimSpace(row[col])
			}
			if cell == "" {
				nulls++
				continue
			}
			nonEmpty++
			if v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64); err == nil {
				column[i] = v
				parsed++
			}
		}

		colType := "text"
		if nonEmpty > 0 && float64(parsed)/float64(nonEmpty) >= numericThreshold {
			colType = "numeric"
			aligned[name] = column
			if skew, ok := sampleSkewness(column); ok {
				profile.Skews = append(profile.Skews, report.ColumnSkew{Column: name, Skewness: skew})
			}
		}
		profile.Columns = append(profile.Columns, snapshot.ColumnProfile{
			Name:    name,
			Type:    colType,
			NullPct: float64(nulls) / float64(len(body)) * 100,
		})
	}

	profile.Correlations = pairwiseCorrelations(profile.Columns, aligned)
	return profile, nil
}

// sampleSkewness computes the adjusted Fisher-Pearson skewness coefficient
// over the present values of an aligned column.
func sampleSkewness(column []float64) (float64, bool) {
	var values []float64
	for _, v := range column {
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	if len(values) < minSkewSamples {
		return 0, false
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return 0, false
	}
	sd, err := stats.StandardDeviationSample(values)
	if err != nil || sd == 0 {
		return 0, false
	}
	n := float64(len(values))
	var sum float64
	for _, v := range values {
		d := (v - mean) / sd
		sum += d * d * d
	}
	return n / ((n - 1) * (n - 2)) * sum, true
}

// pairwiseCorrelations computes Pearson correlations between the leading
// numeric columns, in header order for determinism. Rows where either value
// is missing are dropped pairwise.
func pairwiseCorrelations(columns []snapshot.ColumnProfile, aligned map[string][]float64) []report.CorrelationPair {
	var numeric []string
	for _, c := range columns {
		if c.Type != "numeric" {
			continue
		}
		numeric = append(numeric, c.Name)
		if len(numeric) == maxCorrelationCols {
			break
		}
	}

	var pairs []report.CorrelationPair
	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			a, b := aligned[numeric[i]], aligned[numeric[j]]
			var x, y []float64
			for k := range a {
				if math.IsNaN(a[k]) || math.IsNaN(b[k]) {
					continue
				}
				x = append(x, a[k])
				y = append(y, b[k])
			}
			if len(x) < 2 {
				continue
			}
			r := stat.Correlation(x, y, nil)
			if math.IsNaN(r) { // zero-variance column
				continue
			}
			pairs = append(pairs, report.CorrelationPair{
				Column1:     numeric[i],
				Column2:     numeric[j],
				Correlation: r,
			})
		}
	}
	return pairs
}
