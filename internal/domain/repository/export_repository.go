package repository

import (
	"context"

	"github.com/diillson/weekly-usage-report/internal/domain/entity"
)

// ExportRepository renders the pivot table and writes it out.
type ExportRepository interface {
	RenderPivot(table entity.PivotTable, format string) ([]byte, error)

	ExportPivotToCSV(ctx context.Context, table entity.PivotTable, filename, outputDir string) (string, error)
	ExportPivotToJSON(ctx context.Context, table entity.PivotTable, filename, outputDir string) (string, error)
	ExportPivotToPDF(ctx context.Context, table entity.PivotTable, filename, outputDir string) (string, error)
}
