package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/diillson/weekly-usage-report/internal/domain/aggregate"
	"github.com/diillson/weekly-usage-report/internal/domain/calendar"
	"github.com/diillson/weekly-usage-report/internal/domain/entity"
	"github.com/diillson/weekly-usage-report/internal/domain/pivot"
	"github.com/diillson/weekly-usage-report/internal/domain/quoted"
	"github.com/diillson/weekly-usage-report/internal/domain/repository"
	"github.com/diillson/weekly-usage-report/internal/shared/types"
	"github.com/diillson/weekly-usage-report/pkg/logging"
)

// ReportUseCase turns an activity report into the weekly usage pivot table.
type ReportUseCase struct {
	store       repository.ObjectStore
	mappingRepo repository.MappingRepository
	exportRepo  repository.ExportRepository
	console     types.ConsoleInterface
	logger      *zap.Logger
}

// NewReportUseCase creates a new report use case. A nil logger discards diagnostics.
func NewReportUseCase(
	store repository.ObjectStore,
	mappingRepo repository.MappingRepository,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	logger *zap.Logger,
) *ReportUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportUseCase{
		store:       store,
		mappingRepo: mappingRepo,
		exportRepo:  exportRepo,
		console:     console,
		logger:      logger,
	}
}

// GenerateOptions controls one pipeline run.
type GenerateOptions struct {
	Layout  aggregate.Layout
	Pivot   pivot.Options
	Lenient bool
}

// DefaultGenerateOptions returns the options for the standard report layout.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{Layout: aggregate.DefaultLayout()}
}

// OptionsFromArgs builds GenerateOptions from the command-line arguments.
func OptionsFromArgs(args *types.CLIArgs) GenerateOptions {
	return GenerateOptions{
		Layout: aggregate.DefaultLayout().WithHeaderRow(args.HeaderRow),
		Pivot: pivot.Options{
			GroupLabel:    args.GroupLabel,
			ImplicitLabel: args.ImplicitGroupLabel,
		},
		Lenient: args.Lenient,
	}
}

// ReportResult is everything a run produced.
type ReportResult struct {
	Table       entity.PivotTable  `json:"table"`
	Diagnostics entity.Diagnostics `json:"diagnostics"`
	Unresolved  entity.Unresolved  `json:"unresolved"`
	Summary     aggregate.Summary  `json:"summary"`
	NoData      bool               `json:"no_data"`
}

// Generate runs the pipeline parse -> header check -> aggregate -> normalize ->
// pivot over content. Structural problems (malformed quoting unless lenient,
// header mismatch) return an error and a result holding only diagnostics.
func (uc *ReportUseCase) Generate(content string, snapshot entity.MappingSnapshot, opts GenerateOptions) (*ReportResult, error) {
	result := &ReportResult{}

	rows, lines, parseDiags := quoted.ParseLines(content)
	result.Diagnostics.Merge(parseDiags)
	if errs := parseDiags.Errors(); len(errs) > 0 && !opts.Lenient {
		logging.Diagnostics(uc.logger, result.Diagnostics)
		return result, fmt.Errorf("%w: %s", types.ErrMalformedReport, errs[0])
	}

	data, err := opts.Layout.DataRows(rows)
	if err != nil {
		logging.Diagnostics(uc.logger, result.Diagnostics)
		return result, err
	}

	engine := aggregate.NewEngine(opts.Layout, uc.logger)
	agg := engine.AggregateLines(data, lines[len(rows)-len(data):], snapshot, snapshot.ResourceGroups())
	result.Diagnostics.Merge(agg.Diagnostics)
	result.Summary = agg.Summary

	axis, axisDiags := calendar.Normalize(agg.Aggregation.Usages())
	result.Diagnostics.Merge(axisDiags)
	result.NoData = axis.Empty()

	result.Table = pivot.Build(agg.Aggregation, axis, opts.Pivot)
	result.Diagnostics.Merge(pivot.UnsafeCells(result.Table))
	result.Unresolved = result.Diagnostics.Unresolved()

	logging.Diagnostics(uc.logger, result.Diagnostics)
	uc.logger.Debug("report generated",
		zap.Int("data_rows", result.Summary.DataRows),
		zap.Int("matched", result.Summary.Matched),
		zap.Int("counted", result.Summary.Counted),
		zap.Int("weeks", len(axis)))
	return result, nil
}

// LoadSnapshot loads the mapping file, or returns an empty snapshot when no file
// is configured.
func (uc *ReportUseCase) LoadSnapshot(ctx context.Context, location string) (entity.MappingSnapshot, error) {
	if location == "" {
		return entity.NewMappingSnapshot(), nil
	}
	return uc.mappingRepo.Load(ctx, location)
}

// RunReport executa a funcionalidade principal: lê o relatório, gera a tabela e exporta.
func (uc *ReportUseCase) RunReport(ctx context.Context, args *types.CLIArgs) error {
	if args.Input == "" {
		return fmt.Errorf("%w: pass the report file as an argument or with --input", types.ErrEmptyLocation)
	}

	status := uc.console.Status("Loading mappings and report...")
	snapshot, err := uc.LoadSnapshot(ctx, args.MappingFile)
	if err != nil {
		status.Stop()
		return err
	}
	content, err := uc.store.Read(ctx, args.Input)
	status.Stop()
	if err != nil {
		return err
	}

	if args.MappingFile == "" {
		uc.console.LogWarning("No mapping file given; every row goes into the ungrouped bucket")
	} else if len(snapshot.Groups()) == 0 {
		uc.console.LogWarning("Mapping file defines no resource groups; every row goes into the ungrouped bucket")
	}

	result, err := uc.Generate(string(content), snapshot, OptionsFromArgs(args))
	if err != nil {
		for _, d := range result.Diagnostics.Errors() {
			uc.console.LogError("%s", d)
		}
		return fmt.Errorf("report %s not processed: %w", args.Input, err)
	}

	uc.reportDiagnostics(result)

	if result.NoData {
		uc.console.LogWarning("No weekly resource rows matched any resource group; no report written")
		return uc.maybeRegister(ctx, args, result.Unresolved)
	}

	uc.console.DisplayPivot(result.Table)
	uc.exportResult(ctx, args, result.Table)

	uc.console.LogInfo("%d of %d data rows counted (%s)", result.Summary.Counted, result.Summary.DataRows, typeBreakdown(result.Summary))
	return uc.maybeRegister(ctx, args, result.Unresolved)
}

func (uc *ReportUseCase) exportResult(ctx context.Context, args *types.CLIArgs, table entity.PivotTable) {
	reportTypes := args.ReportType
	if len(reportTypes) == 0 {
		reportTypes = []string{"csv"}
	}
	for _, reportType := range reportTypes {
		var (
			path string
			err  error
		)
		switch strings.ToLower(reportType) {
		case "csv":
			path, err = uc.exportRepo.ExportPivotToCSV(ctx, table, args.ReportName, args.Dir)
		case "json":
			path, err = uc.exportRepo.ExportPivotToJSON(ctx, table, args.ReportName, args.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportPivotToPDF(ctx, table, args.ReportName, args.Dir)
		default:
			uc.console.LogWarning("Unknown report type '%s' ignored", reportType)
			continue
		}
		if err != nil {
			uc.console.LogError("Failed to export report to %s: %s", strings.ToUpper(reportType), err)
			continue
		}
		uc.console.LogSuccess("Successfully exported report to %s: %s", strings.ToUpper(reportType), path)
	}
}

// reportDiagnostics mostra no console um resumo dos avisos da execução.
func (uc *ReportUseCase) reportDiagnostics(result *ReportResult) {
	for _, p := range result.Unresolved.Projects {
		uc.console.LogWarning("No mapping for project: %s", p)
	}
	for _, c := range result.Unresolved.Customers {
		uc.console.LogWarning("No mapping for customer: %s", c)
	}

	kinds, counts := result.Diagnostics.CountByKind()
	for _, kind := range kinds {
		if kind == entity.DiagUnresolvedProject || kind == entity.DiagUnresolvedCustomer {
			continue
		}
		first := result.Diagnostics.OfKind(kind)[0]
		if counts[kind] == 1 {
			uc.console.LogWarning("%s", first)
			continue
		}
		uc.console.LogWarning("%s (and %d more %s)", first, counts[kind]-1, kind)
	}
}

func (uc *ReportUseCase) maybeRegister(ctx context.Context, args *types.CLIArgs, unresolved entity.Unresolved) error {
	if len(unresolved.Projects) == 0 {
		return nil
	}
	if !args.RegisterUnknown || args.MappingFile == "" {
		uc.console.LogInfo("Add the missing projects to the mapping file (or use --register-unknown) and run again")
		return nil
	}
	assigned, pending, err := uc.RegisterProjects(ctx, args.MappingFile, unresolved.Projects)
	if err != nil {
		return err
	}
	uc.console.LogSuccess("Registered %d project(s) in %s (%d assigned, %d awaiting a customer); run again to include them",
		assigned+pending, args.MappingFile, assigned, pending)
	return nil
}

// RegisterProjects adds projects to the mapping file. For each one the operator
// is asked to pick a customer; skipped projects are kept as unassigned.
func (uc *ReportUseCase) RegisterProjects(ctx context.Context, location string, projects []string) (assigned, pending int, err error) {
	snapshot, err := uc.mappingRepo.Load(ctx, location)
	if errors.Is(err, os.ErrNotExist) {
		snapshot, err = entity.NewMappingSnapshot(), nil
	}
	if err != nil {
		return 0, 0, err
	}
	snapshot = snapshot.Clone()

	customers := snapshot.Customers()
	for _, project := range projects {
		if _, known := snapshot.ProjectCustomer[project]; known {
			continue
		}
		customer, ok := uc.console.Select(fmt.Sprintf("Customer for project %q", project), customers)
		if ok {
			snapshot.RegisterProject(project, customer)
			assigned++
			continue
		}
		snapshot.RegisterProject(project, "")
		pending++
	}

	if _, err := uc.mappingRepo.Save(ctx, location, snapshot); err != nil {
		return 0, 0, err
	}
	return assigned, pending, nil
}

func typeBreakdown(s aggregate.Summary) string {
	parts := make([]string, 0, len(aggregate.WorkTypes))
	for _, t := range aggregate.WorkTypes {
		parts = append(parts, fmt.Sprintf("%s: %d", t, s.ByType[t]))
	}
	return strings.Join(parts, ", ")
}
