// Package aggregate validates the report layout, recognises weekly resource rows
// and sums their quantities per resource group and week.
package aggregate

import (
	"fmt"

	"github.com/diillson/weekly-usage-report/internal/domain/entity"
	"github.com/diillson/weekly-usage-report/internal/shared/types"
)

// DefaultHeaderRow is the zero-based row holding the column header.
const DefaultHeaderRow = 11

// DefaultHeader is the exact header the report export produces.
var DefaultHeader = []string{
	"Event Number", "Event Name", "Event Start", "Event End",
	"Event Status", "Resource Name", "Resource Category", "Resource Quantity",
}

// Layout describes where the header and the interesting columns are.
type Layout struct {
	HeaderRow       int
	Header          []string
	EventNameCol    int
	ResourceNameCol int
	QuantityCol     int
}

// DefaultLayout returns the layout of the standard activity report.
func DefaultLayout() Layout {
	return Layout{
		HeaderRow:       DefaultHeaderRow,
		Header:          append([]string(nil), DefaultHeader...),
		EventNameCol:    1,
		ResourceNameCol: 5,
		QuantityCol:     7,
	}
}

// WithHeaderRow returns a copy of the layout with a different header position.
// Negative values keep the current one.
func (l Layout) WithHeaderRow(row int) Layout {
	if row >= 0 {
		l.HeaderRow = row
	}
	return l
}

// DataRows checks the header row column for column and returns the rows after it.
func (l Layout) DataRows(report []entity.ReportRow) ([]entity.ReportRow, error) {
	if len(report) <= l.HeaderRow {
		return nil, fmt.Errorf("%w: row %d, report has %d rows", types.ErrHeaderMissing, l.HeaderRow, len(report))
	}
	header := report[l.HeaderRow]
	if len(header) != len(l.Header) {
		return nil, fmt.Errorf("%w: got %d, want %d", types.ErrHeaderLength, len(header), len(l.Header))
	}
	for i, want := range l.Header {
		if header[i] != want {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", types.ErrHeaderMismatch, i, header[i], want)
		}
	}
	return report[l.HeaderRow+1:], nil
}

// LineOf returns the 1-based text line of the idx-th data row, assuming one line
// per row. Reports with multi-line fields need the line table from the parser.
func (l Layout) LineOf(idx int) int {
	return l.HeaderRow + 2 + idx
}
