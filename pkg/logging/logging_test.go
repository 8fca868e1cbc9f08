package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/diillson/weekly-usage-report/internal/domain/entity"
)

func TestNew(t *testing.T) {
	logger, err := New(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = New(true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestDiagnostics(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	var diags entity.Diagnostics
	diags.Warn(entity.DiagUnresolvedProject, "P9", 13, "no mapping for project: P9")
	diags.Error(entity.DiagMalformedInput, "", 0, "input ends inside a quoted field")
	Diagnostics(zap.New(core), diags)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, map[string]interface{}{
		"kind":    "unresolved_project",
		"subject": "P9",
		"line":    int64(13),
	}, entries[0].ContextMap())
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, map[string]interface{}{"kind": "malformed_input"}, entries[1].ContextMap())
}
