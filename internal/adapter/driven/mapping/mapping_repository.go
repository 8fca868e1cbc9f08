package mapping

import (
	"context"
	"fmt"

	"github.com/diillson/weekly-usage-report/internal/domain/entity"
	"github.com/diillson/weekly-usage-report/internal/domain/repository"
	"github.com/diillson/weekly-usage-report/internal/shared/fileformat"
	"github.com/diillson/weekly-usage-report/internal/shared/types"
)

// MappingRepositoryImpl implementa o MappingRepository sobre um ObjectStore.
// O formato (JSON, YAML ou TOML) vem da extensão do arquivo.
type MappingRepositoryImpl struct {
	store repository.ObjectStore
}

// NewMappingRepository cria uma nova implementação do MappingRepository.
func NewMappingRepository(store repository.ObjectStore) repository.MappingRepository {
	return &MappingRepositoryImpl{store: store}
}

// Load reads and validates a snapshot.
func (r *MappingRepositoryImpl) Load(ctx context.Context, location string) (entity.MappingSnapshot, error) {
	if location == "" {
		return entity.MappingSnapshot{}, types.ErrNoMappingFile
	}
	format, err := fileformat.FromPath(location)
	if err != nil {
		return entity.MappingSnapshot{}, err
	}
	data, err := r.store.Read(ctx, location)
	if err != nil {
		return entity.MappingSnapshot{}, fmt.Errorf("error loading mappings: %w", err)
	}

	snapshot := entity.NewMappingSnapshot()
	if err := fileformat.Unmarshal(format, data, &snapshot); err != nil {
		return entity.MappingSnapshot{}, err
	}
	// Um arquivo com "proj_cust_map": null deixaria os mapas nulos.
	if snapshot.ProjectCustomer == nil {
		snapshot.ProjectCustomer = map[string]string{}
	}
	if snapshot.CustomerGroup == nil {
		snapshot.CustomerGroup = map[string]string{}
	}
	if err := snapshot.Validate(); err != nil {
		return entity.MappingSnapshot{}, fmt.Errorf("invalid mapping file %s: %w", location, err)
	}
	return snapshot, nil
}

// Save writes the snapshot in the format given by the location extension. Nothing
// is written when the encoded file would not load back.
func (r *MappingRepositoryImpl) Save(ctx context.Context, location string, snapshot entity.MappingSnapshot) (string, error) {
	if location == "" {
		return "", types.ErrNoMappingFile
	}
	if err := snapshot.Validate(); err != nil {
		return "", err
	}
	format, err := fileformat.FromPath(location)
	if err != nil {
		return "", err
	}
	data, err := fileformat.Marshal(format, snapshot)
	if err != nil {
		return "", err
	}
	// O go-toml grava chaves com aspas que ele mesmo não consegue ler de volta.
	readBack := entity.NewMappingSnapshot()
	if err := fileformat.Unmarshal(format, data, &readBack); err != nil {
		return "", fmt.Errorf("mappings cannot be stored as %s at %s: %w", format, location, err)
	}
	return r.store.Write(ctx, location, data, contentTypes[format])
}

var contentTypes = map[fileformat.Format]string{
	fileformat.JSON: "application/json",
	fileformat.YAML: "application/yaml",
	fileformat.TOML: "application/toml",
}
