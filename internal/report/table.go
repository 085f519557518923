package report

import (
	"fmt"

	"sms-campaign-analysis/internal/dataset"
)

// Undefined is how undefined ratios and percentages render in exported
// tables. It is a marker, never a zero or an infinity.
const Undefined = "n/a"

// Table is a simple row/column structure with stable column names, the
// exchange format between the analysis core and the report renderer.
type Table struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

func formatRatio(r dataset.Ratio) string {
	if !r.Valid {
		return Undefined
	}
	return formatFloat(r.Float64)
}

func formatPct(r dataset.Ratio) string {
	if !r.Valid {
		return Undefined
	}
	return fmt.Sprintf("%+.1f%%", r.Float64)
}

func formatInt(v int64) string {
	return fmt.Sprintf("%d", v)
}
