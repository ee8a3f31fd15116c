package analyzer

import (
	"math"
	"strconv"
	"strings"

	"github.com/junkd0g/dataexplorer/internal/upload"
)

// ColumnType is the inferred type of an uploaded column.
type ColumnType string

const (
	ColumnNumeric     ColumnType = "numeric"
	ColumnCategorical ColumnType = "categorical"
	ColumnEmpty       ColumnType = "empty"
)

// Column describes one analyzed column of an uploaded table.
type Column struct {
	Name     string     `json:"name"`
	Type     ColumnType `json:"type"`
	NonEmpty int        `json:"nonEmpty"`
	Distinct int        `json:"distinct"`
	// Min, Max and Mean are set for numeric columns only.
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Mean *float64 `json:"mean,omitempty"`
}

// Profile is the analyzed shape of an uploaded table.
type Profile struct {
	Rows    int      `json:"rows"`
	Columns []Column `json:"columns"`
}

// Analyze infers a type for every column of t. A column is numeric when every
// non-missing cell parses as a number, empty when it has no non-missing
// cells, and categorical otherwise.
func Analyze(t *upload.Table) *Profile {
	profile := &Profile{
		Rows:    t.RowCount(),
		Columns: make([]Column, 0, t.ColCount()),
	}

	for i, name := range t.Columns {
		profile.Columns = append(profile.Columns, analyzeColumn(name, t.Column(i)))
	}

	return profile
}

// CountByType returns how many columns were inferred as each type.
func (p *Profile) CountByType() map[ColumnType]int {
	counts := make(map[ColumnType]int)
	for _, c := range p.Columns {
		counts[c.Type]++
	}
	return counts
}

func analyzeColumn(name string, values []string) Column {
	col := Column{Name: strings.TrimSpace(name)}

	distinct := make(map[string]bool)
	numeric := true
	sum, lo, hi := 0.0, math.Inf(1), math.Inf(-1)

	for _, raw := range values {
		v := strings.TrimSpace(raw)
		if isMissing(v) {
			continue
		}
		col.NonEmpty++
		distinct[v] = true

		if !numeric {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) {
			numeric = false
			continue
		}
		sum += f
		lo = math.Min(lo, f)
		hi = math.Max(hi, f)
	}
	col.Distinct = len(distinct)

	switch {
	case col.NonEmpty == 0:
		col.Type = ColumnEmpty
	case numeric:
		col.Type = ColumnNumeric
		mean := sum / float64(col.NonEmpty)
		col.Min, col.Max, col.Mean = &lo, &hi, &mean
	default:
		col.Type = ColumnCategorical
	}
	return col
}

// isMissing matches the cell values a dataframe reader treats as NA.
func isMissing(v string) bool {
	switch strings.ToLower(v) {
	case "", "na", "n/a", "nan", "null", "none", "#n/a":
		return true
	}
	return false
}
