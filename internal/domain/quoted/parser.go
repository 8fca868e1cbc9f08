// Package quoted tokenizes report text where every field is wrapped in double
// quotes. Quotes are the only field boundary: the separator between fields is
// accepted and ignored.
package quoted

import (
	"strings"

	"github.com/diillson/weekly-usage-report/internal/domain/entity"
)

const (
	Quote     = '"'
	Separator = ','
)

// bom is the UTF-8 byte order mark some spreadsheet exports put before the text.
const bom = "\uFEFF"

// Parse scans content left to right and returns the rows it could build.
// See ParseLines for the diagnostics.
func Parse(content string) ([]entity.ReportRow, entity.Diagnostics) {
	rows, _, diags := ParseLines(content)
	return rows, diags
}

// ParseLines is Parse that also returns, for each row, the 1-based text line it
// starts on. A quoted field may span lines, so row and line numbers can differ.
// One leading byte order mark is skipped.
//
// Malformed input never stops the scan. Each problem is returned as a
// DiagMalformedInput diagnostic: stray characters outside quotes and an
// unterminated quote are errors; a last row without a trailing newline is a
// warning and the row is kept.
func ParseLines(content string) ([]entity.ReportRow, []int, entity.Diagnostics) {
	content = strings.TrimPrefix(content, bom)

	var (
		rows    []entity.ReportRow
		lines   []int
		diags   entity.Diagnostics
		row     = entity.ReportRow{}
		field   strings.Builder
		inQuote bool
		line    = 1
		start   = 1 // line where the current row began
		col     = 0
		flagged = 0 // last line with a stray-character diagnostic
	)

	for _, ch := range content {
		col++
		switch {
		case ch == Quote:
			if inQuote {
				row = append(row, field.String())
				field.Reset()
			}
			inQuote = !inQuote
		case inQuote:
			field.WriteRune(ch)
			if ch == '\n' {
				line++
				col = 0
			}
		case ch == Separator, ch == '\r':
		case ch == '\n':
			rows = append(rows, row)
			lines = append(lines, start)
			row = entity.ReportRow{}
			line++
			start = line
			col = 0
		default:
			// Um aviso por linha basta; o resto da linha costuma repetir o problema.
			if flagged != line {
				diags.Error(entity.DiagMalformedInput, string(ch), line,
					"unexpected character %q outside quotes at column %d", ch, col)
				flagged = line
			}
		}
	}

	switch {
	case inQuote:
		diags.Error(entity.DiagMalformedInput, field.String(), line,
			"input ends inside a quoted field")
	case len(row) > 0:
		diags.Warn(entity.DiagMalformedInput, "", line,
			"input ends without a newline after the last row")
		rows = append(rows, row)
		lines = append(lines, start)
	}

	return rows, lines, diags
}
