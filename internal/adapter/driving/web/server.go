// Package web exposes the report pipeline over HTTP: upload a report, get the
// pivot table back, and read or replace the mapping file.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/diillson/weekly-usage-report/internal/adapter/driven/export"
	"github.com/diillson/weekly-usage-report/internal/application/usecase"
	"github.com/diillson/weekly-usage-report/internal/domain/entity"
	"github.com/diillson/weekly-usage-report/internal/domain/repository"
	"github.com/diillson/weekly-usage-report/internal/shared/types"
)

// maxReportBytes limita o tamanho do relatório enviado.
const maxReportBytes = 32 << 20

// Server is the HTTP front of the report use case.
//
// Endpoints:
//
//	POST /api/v1/report?format=csv|json|pdf  body: raw report text
//	GET  /api/v1/mappings                     current mapping snapshot
//	PUT  /api/v1/mappings                     replace the mapping snapshot (JSON)
//	GET  /healthz
//	GET  /metrics
type Server struct {
	echo        *echo.Echo
	report      *usecase.ReportUseCase
	mappingRepo repository.MappingRepository
	exportRepo  repository.ExportRepository
	mappingFile string
	opts        usecase.GenerateOptions
	metrics     *Metrics
	logger      *zap.Logger
}

// NewServer wires the routes. mappingFile may be empty, in which case reports run
// against an empty snapshot and PUT /api/v1/mappings is refused.
func NewServer(
	report *usecase.ReportUseCase,
	mappingRepo repository.MappingRepository,
	exportRepo repository.ExportRepository,
	mappingFile string,
	opts usecase.GenerateOptions,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		echo:        echo.New(),
		report:      report,
		mappingRepo: mappingRepo,
		exportRepo:  exportRepo,
		mappingFile: mappingFile,
		opts:        opts,
		metrics:     NewMetrics(),
		logger:      logger,
	}
	s.echo.HideBanner = true

	api := s.echo.Group("/api/v1")
	api.POST("/report", s.handleReport)
	api.GET("/mappings", s.handleGetMappings)
	api.PUT("/mappings", s.handlePutMappings)

	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))
	return s
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleReport(c echo.Context) error {
	format := strings.ToLower(c.QueryParam("format"))
	if format == "" {
		format = export.FormatCSV
	}
	switch format {
	case export.FormatCSV, export.FormatJSON, export.FormatPDF:
	default:
		return errorJSON(c, http.StatusBadRequest, fmt.Errorf("%w: report type %q", types.ErrUnsupportedFormat, format), nil)
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Response(), c.Request().Body, maxReportBytes))
	if err != nil {
		return errorJSON(c, http.StatusRequestEntityTooLarge, err, nil)
	}

	ctx := c.Request().Context()
	snapshot, err := s.report.LoadSnapshot(ctx, s.mappingFile)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err, nil)
	}

	result, err := s.report.Generate(string(body), snapshot, s.opts)
	s.metrics.observe(result, err)
	if err != nil {
		return errorJSON(c, http.StatusUnprocessableEntity, err, result.Diagnostics)
	}

	if len(result.Unresolved.Projects) > 0 {
		c.Response().Header().Set("X-Unresolved-Projects", strings.Join(result.Unresolved.Projects, ","))
	}
	if result.NoData {
		return c.NoContent(http.StatusNoContent)
	}
	if format == export.FormatJSON {
		return c.JSON(http.StatusOK, result)
	}

	data, err := s.exportRepo.RenderPivot(result.Table, format)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err, nil)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", export.DefaultReportName+"."+format))
	return c.Blob(http.StatusOK, export.ContentType(format), data)
}

func (s *Server) handleGetMappings(c echo.Context) error {
	snapshot, err := s.report.LoadSnapshot(c.Request().Context(), s.mappingFile)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err, nil)
	}
	return c.JSON(http.StatusOK, snapshot)
}

func (s *Server) handlePutMappings(c echo.Context) error {
	if s.mappingFile == "" {
		return errorJSON(c, http.StatusConflict, types.ErrNoMappingFile, nil)
	}

	snapshot := entity.NewMappingSnapshot()
	if err := c.Bind(&snapshot); err != nil {
		return errorJSON(c, http.StatusBadRequest, err, nil)
	}
	if err := snapshot.Validate(); err != nil {
		return errorJSON(c, http.StatusBadRequest, err, nil)
	}
	if _, err := s.mappingRepo.Save(c.Request().Context(), s.mappingFile, snapshot); err != nil {
		return errorJSON(c, http.StatusInternalServerError, err, nil)
	}
	return c.JSON(http.StatusOK, snapshot)
}

func errorJSON(c echo.Context, status int, err error, diags entity.Diagnostics) error {
	body := map[string]any{"error": err.Error()}
	if len(diags) > 0 {
		body["diagnostics"] = diags
	}
	return c.JSON(status, body)
}
