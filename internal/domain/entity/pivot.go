package entity

import (
	"strconv"

	"github.com/samber/lo"
)

// PivotRow é uma linha de dados da tabela: um grupo e seus valores por semana.
type PivotRow struct {
	Label  string    `json:"group"`
	Values []float64 `json:"values"`
}

// PivotTable is the group x week matrix. Rows follow the ResourceGroupSet order and
// Values follow Weeks.
type PivotTable struct {
	GroupLabel string     `json:"group_label"`
	Weeks      WeekAxis   `json:"weeks"`
	Rows       []PivotRow `json:"rows"`
}

// Header returns row 0: the group label column followed by one column per week.
func (t PivotTable) Header() []string {
	return append([]string{t.GroupLabel}, lo.Map(t.Weeks, func(k WeekKey, _ int) string { return k.String() })...)
}

// Cells flattens the table into string cells, header first.
func (t PivotTable) Cells() [][]string {
	cells := make([][]string, 0, len(t.Rows)+1)
	cells = append(cells, t.Header())
	for _, row := range t.Rows {
		line := make([]string, 0, len(row.Values)+1)
		line = append(line, row.Label)
		for _, v := range row.Values {
			line = append(line, FormatQuantity(v))
		}
		cells = append(cells, line)
	}
	return cells
}

// Value returns the cell for (label, week).
func (t PivotTable) Value(label string, week WeekKey) (float64, bool) {
	col := lo.IndexOf(t.Weeks, week)
	if col < 0 {
		return 0, false
	}
	for _, row := range t.Rows {
		if row.Label == label {
			return row.Values[col], true
		}
	}
	return 0, false
}

// FormatQuantity renders a quantity with the shortest exact representation
// ("8", "2.5").
func FormatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
