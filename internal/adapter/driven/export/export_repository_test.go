package export

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/weekly-usage-report/internal/domain/entity"
	"github.com/diillson/weekly-usage-report/internal/domain/pivot"
	"github.com/diillson/weekly-usage-report/internal/shared/types"
	"github.com/diillson/weekly-usage-report/internal/testutil"
)

func table() entity.PivotTable {
	return entity.PivotTable{
		GroupLabel: "Customer Group",
		Weeks:      entity.WeekAxis{202301, 202302},
		Rows: []entity.PivotRow{
			{Label: "G1", Values: []float64{8, 0}},
			{Label: "G2", Values: []float64{0, 2.5}},
		},
	}
}

func newRepo(store *testutil.MemStore) *ExportRepositoryImpl {
	return &ExportRepositoryImpl{
		store: store,
		now:   func() time.Time { return time.Date(2023, 1, 9, 0, 0, 0, 0, time.UTC) },
	}
}

func TestRenderPivot(t *testing.T) {
	repo := newRepo(testutil.NewMemStore())

	csv, err := repo.RenderPivot(table(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, pivot.CSV(table()), string(csv))

	raw, err := repo.RenderPivot(table(), FormatJSON)
	require.NoError(t, err)
	var decoded entity.PivotTable
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, table(), decoded)

	pdf, err := repo.RenderPivot(table(), FormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	_, err = repo.RenderPivot(table(), "xlsx")
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
}

func TestRenderPivot_PDFManyWeeks(t *testing.T) {
	tbl := entity.PivotTable{GroupLabel: "Customer Group"}
	for w := 1; w <= 30; w++ {
		tbl.Weeks = append(tbl.Weeks, entity.WeekKey(202300+w))
	}
	tbl.Rows = []entity.PivotRow{{Label: "G1", Values: make([]float64, 30)}}

	pdf, err := newRepo(testutil.NewMemStore()).RenderPivot(tbl, FormatPDF)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}

func TestExportPivot(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemStore()
	repo := newRepo(store)

	loc, err := repo.ExportPivotToCSV(ctx, table(), "", "out")
	require.NoError(t, err)
	assert.Equal(t, "out/report.csv", loc)
	assert.Equal(t, pivot.CSV(table()), string(store.Files["out/report.csv"]))

	_, err = repo.ExportPivotToJSON(ctx, table(), "weekly", "out")
	require.NoError(t, err)
	_, err = repo.ExportPivotToPDF(ctx, table(), "weekly", "out")
	require.NoError(t, err)

	assert.Equal(t, []string{"out/report.csv", "out/weekly.json", "out/weekly.pdf"}, store.Locations())
}

func TestChunkWeeks(t *testing.T) {
	axis := entity.WeekAxis{1, 2, 3, 4, 5}
	assert.Equal(t, [][]int{{0, 1}, {2, 3}, {4}}, chunkWeeks(axis, 2))
	assert.Nil(t, chunkWeeks(nil, 2))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv; charset=utf-8", ContentType(FormatCSV))
	assert.Equal(t, "application/pdf", ContentType(FormatPDF))
	assert.Equal(t, "application/octet-stream", ContentType("bin"))
}
