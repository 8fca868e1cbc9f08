package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/diillson/weekly-usage-report/internal/adapter/driven/config"
	"github.com/diillson/weekly-usage-report/internal/adapter/driven/export"
	"github.com/diillson/weekly-usage-report/internal/adapter/driven/mapping"
	"github.com/diillson/weekly-usage-report/internal/adapter/driven/storage"
	"github.com/diillson/weekly-usage-report/internal/adapter/driving/cli"
	"github.com/diillson/weekly-usage-report/internal/application/usecase"
	"github.com/diillson/weekly-usage-report/internal/domain/repository"
	"github.com/diillson/weekly-usage-report/internal/shared/types"
	"github.com/diillson/weekly-usage-report/pkg/console"
)

func main() {
	consoleImpl := console.NewConsole()

	// Os repositórios dependem das flags (perfil/região AWS), então são criados sob demanda.
	app := cli.NewCLIApp(cli.Dependencies{
		ConfigRepo: config.NewConfigRepository(),
		Console:    consoleImpl,
		NewStore: func(args *types.CLIArgs) repository.ObjectStore {
			return storage.NewStore(storage.Options{Profile: args.AWSProfile, Region: args.AWSRegion})
		},
		NewUseCase: func(store repository.ObjectStore, logger *zap.Logger) (*usecase.ReportUseCase, repository.MappingRepository, repository.ExportRepository) {
			mappingRepo := mapping.NewMappingRepository(store)
			exportRepo := export.NewExportRepository(store)
			return usecase.NewReportUseCase(store, mappingRepo, exportRepo, consoleImpl, logger), mappingRepo, exportRepo
		},
	})

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
