package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/weekly-usage-report/internal/shared/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoadConfigFile(t *testing.T) {
	files := map[string]string{
		"config.toml": `
mapping_file = "mappings.json"
report_type = ["csv", "pdf"]
dir = "out"
header_row = 3
lenient = true
`,
		"config.yaml": `
mapping_file: mappings.json
report_type: [csv, pdf]
dir: out
header_row: 3
lenient: true
`,
		"config.json": `{
  "mapping_file": "mappings.json",
  "report_type": ["csv", "pdf"],
  "dir": "out",
  "header_row": 3,
  "lenient": true
}`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			cfg, err := NewConfigRepository().LoadConfigFile(writeFile(t, name, content))
			require.NoError(t, err)

			assert.Equal(t, "mappings.json", cfg.MappingFile)
			assert.Equal(t, []string{"csv", "pdf"}, cfg.ReportType)
			assert.Equal(t, "out", cfg.Dir)
			require.NotNil(t, cfg.HeaderRow)
			assert.Equal(t, 3, *cfg.HeaderRow)
			assert.True(t, cfg.Lenient)
		})
	}
}

func TestLoadConfigFile_Errors(t *testing.T) {
	repo := NewConfigRepository()

	_, err := repo.LoadConfigFile(writeFile(t, "config.ini", "x=1"))
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)

	_, err = repo.LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	dir := filepath.Join(t.TempDir(), "dir.yaml")
	require.NoError(t, os.Mkdir(dir, 0755))
	_, err = repo.LoadConfigFile(dir)
	assert.ErrorContains(t, err, "is a directory")
}
