package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/diillson/weekly-usage-report/internal/domain/entity"
	"github.com/diillson/weekly-usage-report/internal/domain/pivot"
	"github.com/diillson/weekly-usage-report/internal/domain/repository"
	"github.com/diillson/weekly-usage-report/internal/shared/fileformat"
	"github.com/diillson/weekly-usage-report/internal/shared/types"
)

// DefaultReportName is the base name of the output files.
const DefaultReportName = "report"

// Formatos de saída suportados.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatPDF  = "pdf"
)

// pdfWeeksPerPage limita as colunas de semanas por página em paisagem A4.
const pdfWeeksPerPage = 12

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	store repository.ObjectStore
	now   func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository(store repository.ObjectStore) repository.ExportRepository {
	return &ExportRepositoryImpl{store: store, now: time.Now}
}

// ContentType returns the MIME type of an export format.
func ContentType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// RenderPivot renders the table in format without writing it anywhere.
func (r *ExportRepositoryImpl) RenderPivot(table entity.PivotTable, format string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return []byte(pivot.CSV(table)), nil
	case FormatJSON:
		return fileformat.Marshal(fileformat.JSON, table)
	case FormatPDF:
		return r.renderPDF(table)
	default:
		return nil, fmt.Errorf("%w: report type %q", types.ErrUnsupportedFormat, format)
	}
}

func (r *ExportRepositoryImpl) ExportPivotToCSV(ctx context.Context, table entity.PivotTable, filename, outputDir string) (string, error) {
	return r.export(ctx, table, FormatCSV, filename, outputDir)
}

func (r *ExportRepositoryImpl) ExportPivotToJSON(ctx context.Context, table entity.PivotTable, filename, outputDir string) (string, error) {
	return r.export(ctx, table, FormatJSON, filename, outputDir)
}

func (r *ExportRepositoryImpl) ExportPivotToPDF(ctx context.Context, table entity.PivotTable, filename, outputDir string) (string, error) {
	return r.export(ctx, table, FormatPDF, filename, outputDir)
}

func (r *ExportRepositoryImpl) export(ctx context.Context, table entity.PivotTable, format, filename, outputDir string) (string, error) {
	data, err := r.RenderPivot(table, format)
	if err != nil {
		return "", err
	}
	location := r.store.Join(outputDir, generateFilename(filename, format))
	return r.store.Write(ctx, location, data, ContentType(format))
}

func (r *ExportRepositoryImpl) renderPDF(table entity.PivotTable) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	stripeColor := [3]int{240, 240, 240}

	const (
		labelWidth = 55.0
		cellWidth  = 18.0
		rowHeight  = 7.0
	)

	chunks := chunkWeeks(table.Weeks, pdfWeeksPerPage)
	if len(chunks) == 0 {
		chunks = [][]int{nil}
	}

	for page, cols := range chunks {
		pdf.AddPage()

		// Título
		pdf.SetFont("Arial", "B", 14)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		title := "Weekly Resource Usage"
		if len(cols) > 0 {
			title = fmt.Sprintf("%s (%s - %s)", title, table.Weeks[cols[0]], table.Weeks[cols[len(cols)-1]])
		}
		pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
		pdf.Ln(4)

		// Cabeçalho da tabela
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
		pdf.CellFormat(labelWidth, rowHeight, tr(table.GroupLabel), "1", 0, "L", true, 0, "")
		for _, c := range cols {
			pdf.CellFormat(cellWidth, rowHeight, table.Weeks[c].String(), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		// Linhas
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		for i, row := range table.Rows {
			fill := i%2 == 1
			pdf.SetFillColor(stripeColor[0], stripeColor[1], stripeColor[2])
			pdf.CellFormat(labelWidth, rowHeight, tr(row.Label), "1", 0, "L", fill, 0, "")
			for _, c := range cols {
				pdf.CellFormat(cellWidth, rowHeight, entity.FormatQuantity(row.Values[c]), "1", 0, "R", fill, 0, "")
			}
			pdf.Ln(-1)
		}

		// Rodapé
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Weekly Usage Report | %s", r.now().Format("2006-01-02"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d", page+1)), "", 0, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error writing PDF file: %w", err)
	}
	return buf.Bytes(), nil
}

// chunkWeeks splits the column indexes of axis into pages of size n.
func chunkWeeks(axis entity.WeekAxis, n int) [][]int {
	var chunks [][]int
	for start := 0; start < len(axis); start += n {
		end := start + n
		if end > len(axis) {
			end = len(axis)
		}
		cols := make([]int, 0, end-start)
		for i := start; i < end; i++ {
			cols = append(cols, i)
		}
		chunks = append(chunks, cols)
	}
	return chunks
}

// generateFilename monta o nome determinístico "<base>.<ext>".
func generateFilename(base, ext string) string {
	if base == "" {
		base = DefaultReportName
	}
	return fmt.Sprintf("%s.%s", base, ext)
}
