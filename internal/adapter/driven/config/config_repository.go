package config

import (
	"fmt"
	"os"

	"github.com/diillson/weekly-usage-report/internal/domain/repository"
	"github.com/diillson/weekly-usage-report/internal/shared/fileformat"
	"github.com/diillson/weekly-usage-report/internal/shared/types"
)

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	format, err := fileformat.FromPath(filePath)
	if err != nil {
		return nil, err
	}

	// Verifica se o arquivo existe
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config
	if err := fileformat.Unmarshal(format, fileData, &config); err != nil {
		return nil, err
	}
	return &config, nil
}
