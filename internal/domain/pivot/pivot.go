// Package pivot builds the group x week table and serialises it as quoted,
// comma-separated text.
package pivot

import (
	"io"
	"strings"

	"github.com/diillson/weekly-usage-report/internal/domain/entity"
)

const (
	// DefaultGroupLabel heads the first column.
	DefaultGroupLabel = "Customer Group"
	// DefaultImplicitLabel names the single bucket used when no group is configured.
	DefaultImplicitLabel = "none"
)

// Options controls the labels of the table.
type Options struct {
	GroupLabel    string
	ImplicitLabel string
}

func (o Options) withDefaults() Options {
	if o.GroupLabel == "" {
		o.GroupLabel = DefaultGroupLabel
	}
	if o.ImplicitLabel == "" {
		o.ImplicitLabel = DefaultImplicitLabel
	}
	return o
}

// Build lays the aggregation out on axis. Rows keep bucket order; a week a group
// never saw is 0.
func Build(agg entity.Aggregation, axis entity.WeekAxis, opts Options) entity.PivotTable {
	opts = opts.withDefaults()
	table := entity.PivotTable{
		GroupLabel: opts.GroupLabel,
		Weeks:      append(entity.WeekAxis(nil), axis...),
		Rows:       make([]entity.PivotRow, 0, len(agg.Buckets)),
	}
	for _, b := range agg.Buckets {
		label := b.Group
		if b.Implicit {
			label = opts.ImplicitLabel
		}
		values := make([]float64, len(axis))
		for i, week := range axis {
			values[i] = b.Usage.Get(week)
		}
		table.Rows = append(table.Rows, entity.PivotRow{Label: label, Values: values})
	}
	return table
}

// CSV renders the table with every cell wrapped in quotes, cells joined by
// commas and rows by newlines. Embedded quotes are NOT escaped; see UnsafeCells.
func CSV(t entity.PivotTable) string {
	var b strings.Builder
	for i, row := range t.Cells() {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(cell)
			b.WriteByte('"')
		}
	}
	return b.String()
}

// WriteCSV writes CSV(t) to w.
func WriteCSV(w io.Writer, t entity.PivotTable) error {
	_, err := io.WriteString(w, CSV(t))
	return err
}

// UnsafeCells reports every cell containing a quote character, which CSV would
// emit unescaped and so break the row.
func UnsafeCells(t entity.PivotTable) entity.Diagnostics {
	var diags entity.Diagnostics
	for i, row := range t.Cells() {
		for _, cell := range row {
			if strings.ContainsRune(cell, '"') {
				diags.Warn(entity.DiagUnsafeCell, cell, 0,
					"cell %q in output row %d contains a quote and will not be escaped", cell, i)
			}
		}
	}
	return diags
}
