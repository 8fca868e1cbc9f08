package repository

import (
	"context"

	"github.com/diillson/weekly-usage-report/internal/domain/entity"
)

// MappingRepository imports and exports mapping snapshots.
type MappingRepository interface {
	Load(ctx context.Context, location string) (entity.MappingSnapshot, error)
	Save(ctx context.Context, location string, snapshot entity.MappingSnapshot) (string, error)
}
