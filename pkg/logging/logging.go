// Package logging builds the zap logger that receives run diagnostics.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/diillson/weekly-usage-report/internal/domain/entity"
)

// New builds a production zap logger writing JSON to stderr. verbose lowers the
// level to debug, which includes the per-group usage dumps.
func New(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Fields converts a diagnostic into zap fields.
func Fields(d entity.Diagnostic) []zap.Field {
	fields := []zap.Field{zap.String("kind", string(d.Kind))}
	if d.Subject != "" {
		fields = append(fields, zap.String("subject", d.Subject))
	}
	if d.Line > 0 {
		fields = append(fields, zap.Int("line", d.Line))
	}
	return fields
}

// Diagnostics logs each diagnostic at warn or error level.
func Diagnostics(logger *zap.Logger, diags entity.Diagnostics) {
	for _, d := range diags {
		if d.Severity == entity.SeverityError {
			logger.Error(d.Message, Fields(d)...)
			continue
		}
		logger.Warn(d.Message, Fields(d)...)
	}
}
