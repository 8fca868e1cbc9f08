package repository

import "github.com/diillson/weekly-usage-report/internal/shared/types"

// ConfigRepository lê o arquivo de configuração (TOML, YAML ou JSON) cujos
// valores preenchem as flags não informadas na linha de comando.
type ConfigRepository interface {
	LoadConfigFile(location string) (*types.Config, error)
}
