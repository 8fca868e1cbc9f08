package entity

// ReportRow é uma linha do relatório de atividades, já separada em campos.
type ReportRow []string

// Field returns the value at idx, or "" when the row is shorter than idx.
func (r ReportRow) Field(idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return r[idx]
}
