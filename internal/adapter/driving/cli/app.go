package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diillson/weekly-usage-report/internal/adapter/driving/web"
	"github.com/diillson/weekly-usage-report/internal/application/usecase"
	"github.com/diillson/weekly-usage-report/internal/domain/aggregate"
	"github.com/diillson/weekly-usage-report/internal/domain/repository"
	"github.com/diillson/weekly-usage-report/internal/shared/types"
	"github.com/diillson/weekly-usage-report/pkg/logging"
	"github.com/diillson/weekly-usage-report/pkg/version"
)

// Dependencies são os repositórios que a CLI entrega aos casos de uso.
// NewUseCase é chamado depois da leitura das flags, com o logger já configurado.
type Dependencies struct {
	ConfigRepo repository.ConfigRepository
	Console    types.ConsoleInterface
	NewStore   func(args *types.CLIArgs) repository.ObjectStore
	NewUseCase func(store repository.ObjectStore, logger *zap.Logger) (*usecase.ReportUseCase, repository.MappingRepository, repository.ExportRepository)
}

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd *cobra.Command
	deps    Dependencies
	args    *types.CLIArgs
	logger  *zap.Logger
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(deps Dependencies) *CLIApp {
	app := &CLIApp{deps: deps, args: &types.CLIArgs{}}

	rootCmd := &cobra.Command{
		Use:   "usage-report [report-file]",
		Short: "Weekly resource usage pivot from an activity report",
		Long: `Reads a quoted activity report, resolves each event's project to a resource
group through the project -> customer -> group mapping file, and writes the
weekly usage of every group as a pivot table (report.csv by default).

Locations may be local paths or s3://bucket/key URIs.`,
		Version:           version.FormatVersion(),
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: app.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
		RunE:          app.runCommand,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(`{{printf "Weekly Usage Report version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&app.args.ConfigFile, "config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringVarP(&app.args.MappingFile, "mappings", "m", "", "Mapping file (JSON, YAML or TOML) with proj_cust_map and cust_rsgp_map")
	flags.BoolVarP(&app.args.Verbose, "verbose", "v", false, "Log debug diagnostics, including per-group usage")
	flags.StringVar(&app.args.AWSProfile, "aws-profile", "", "AWS profile used for s3:// locations")
	flags.StringVar(&app.args.AWSRegion, "aws-region", "", "AWS region used for s3:// locations")
	flags.IntVar(&app.args.HeaderRow, "header-row", aggregate.DefaultHeaderRow, "Zero-based row index of the report header")
	flags.StringVar(&app.args.GroupLabel, "group-label", "", "Label of the first output column (default \"Customer Group\")")
	flags.StringVar(&app.args.ImplicitGroupLabel, "implicit-group-label", "", "Row label used when no resource group is configured (default \"none\")")
	flags.BoolVar(&app.args.Lenient, "lenient", false, "Keep going when the report has malformed quoting")

	runFlags := rootCmd.Flags()
	runFlags.StringVarP(&app.args.Input, "input", "i", "", "Report file to process")
	runFlags.StringVarP(&app.args.ReportName, "report-name", "n", "report", "Base name for the report file (without extension)")
	runFlags.StringSliceVarP(&app.args.ReportType, "report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	runFlags.StringVarP(&app.args.Dir, "dir", "d", "", "Directory to save the report files (default: current directory)")
	runFlags.BoolVar(&app.args.RegisterUnknown, "register-unknown", false, "Add unresolved projects to the mapping file, asking for their customer")

	rootCmd.AddCommand(app.newMappingsCmd(), app.newServeCmd())

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// setup mescla o arquivo de configuração com as flags e inicializa o logger.
func (app *CLIApp) setup(cmd *cobra.Command, args []string) error {
	if app.args.ConfigFile != "" {
		cfg, err := app.deps.ConfigRepo.LoadConfigFile(app.args.ConfigFile)
		if err != nil {
			return err
		}
		mergeConfig(app.args, cfg, cmd.Flags().Changed)
	}

	if err := normalizeDir(app.args); err != nil {
		return err
	}

	logger, err := logging.New(app.args.Verbose)
	if err != nil {
		return err
	}
	app.logger = logger
	return nil
}

// mergeConfig applies file values to every option whose flag was not set explicitly.
func mergeConfig(args *types.CLIArgs, cfg *types.Config, changed func(string) bool) {
	setString := func(flag string, dst *string, v string) {
		if v != "" && !changed(flag) {
			*dst = v
		}
	}
	setString("mappings", &args.MappingFile, cfg.MappingFile)
	setString("report-name", &args.ReportName, cfg.ReportName)
	setString("dir", &args.Dir, cfg.Dir)
	setString("group-label", &args.GroupLabel, cfg.GroupLabel)
	setString("implicit-group-label", &args.ImplicitGroupLabel, cfg.ImplicitGroupLabel)
	setString("aws-profile", &args.AWSProfile, cfg.AWSProfile)
	setString("aws-region", &args.AWSRegion, cfg.AWSRegion)
	setString("addr", &args.ListenAddr, cfg.ListenAddr)

	if len(cfg.ReportType) > 0 && !changed("report-type") {
		args.ReportType = cfg.ReportType
	}
	if cfg.HeaderRow != nil && !changed("header-row") {
		args.HeaderRow = *cfg.HeaderRow
	}
	if cfg.Lenient && !changed("lenient") {
		args.Lenient = true
	}
}

// normalizeDir converte o diretório de saída em caminho absoluto (exceto s3://).
func normalizeDir(args *types.CLIArgs) error {
	if strings.HasPrefix(args.Dir, "s3://") {
		return nil
	}
	if args.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		args.Dir = cwd
		return nil
	}
	absDir, err := filepath.Abs(args.Dir)
	if err != nil {
		return err
	}
	args.Dir = absDir
	return nil
}

func (app *CLIApp) useCase() (*usecase.ReportUseCase, repository.MappingRepository, repository.ExportRepository) {
	store := app.deps.NewStore(app.args)
	return app.deps.NewUseCase(store, app.logger)
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner()

	if len(args) == 1 {
		app.args.Input = args[0]
	}

	uc, _, _ := app.useCase()
	return uc.RunReport(cmd.Context(), app.args)
}

func (app *CLIApp) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report pipeline over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, mappingRepo, exportRepo := app.useCase()
			srv := web.NewServer(uc, mappingRepo, exportRepo, app.args.MappingFile, usecase.OptionsFromArgs(app.args), app.logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start(app.args.ListenAddr) }()

			app.deps.Console.LogInfo("Listening on %s", app.args.ListenAddr)
			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}
	cmd.Flags().StringVar(&app.args.ListenAddr, "addr", ":8080", "HTTP listen address (host:port)")
	return cmd
}

func (app *CLIApp) newMappingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Inspect, convert and extend the mapping file",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the project/customer and customer/resource group mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, _, _ := app.useCase()
			snapshot, err := uc.LoadSnapshot(cmd.Context(), app.args.MappingFile)
			if err != nil {
				return err
			}
			renderSnapshot(app.deps.Console, snapshot)
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export <destination>",
		Short: "Write the mapping file in another format (chosen by extension)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, mappingRepo, _ := app.useCase()
			snapshot, err := uc.LoadSnapshot(cmd.Context(), app.args.MappingFile)
			if err != nil {
				return err
			}
			path, err := mappingRepo.Save(cmd.Context(), args[0], snapshot)
			if err != nil {
				return err
			}
			app.deps.Console.LogSuccess("Mappings exported to %s", path)
			return nil
		},
	}

	var customer string
	register := &cobra.Command{
		Use:   "register <project>...",
		Short: "Add projects to the mapping file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.args.MappingFile == "" {
				return types.ErrNoMappingFile
			}
			uc, mappingRepo, _ := app.useCase()
			if customer == "" {
				assigned, pending, err := uc.RegisterProjects(cmd.Context(), app.args.MappingFile, args)
				if err != nil {
					return err
				}
				app.deps.Console.LogSuccess("%d assigned, %d awaiting a customer", assigned, pending)
				return nil
			}

			snapshot, err := uc.LoadSnapshot(cmd.Context(), app.args.MappingFile)
			if err != nil {
				return err
			}
			snapshot = snapshot.Clone()
			for _, p := range args {
				snapshot.RegisterProject(p, customer)
			}
			if _, err := mappingRepo.Save(cmd.Context(), app.args.MappingFile, snapshot); err != nil {
				return err
			}
			app.deps.Console.LogSuccess("%d project(s) mapped to customer %s", len(args), customer)
			return nil
		},
	}
	register.Flags().StringVar(&customer, "customer", "", "Customer to assign instead of asking")

	cmd.AddCommand(show, exportCmd, register)
	return cmd
}
