// Package pipeline ejecuta una corrida completa: fuentes API, hoja de cálculo,
// analítica de inventario y, opcionalmente, persistencia y reporte PDF.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/retail-pipeline/internal/application/analytics"
	"github.com/jhoicas/retail-pipeline/internal/application/catalog"
	"github.com/jhoicas/retail-pipeline/internal/application/dto"
	"github.com/jhoicas/retail-pipeline/internal/application/ports"
	"github.com/jhoicas/retail-pipeline/internal/application/spreadsheet"
	"github.com/jhoicas/retail-pipeline/internal/domain"
	"github.com/jhoicas/retail-pipeline/internal/domain/entity"
	"github.com/jhoicas/retail-pipeline/internal/domain/repository"
	"github.com/jhoicas/retail-pipeline/pkg/logger"
)

// Pasos de la corrida (claves de RunResult.Errors y campo "step" del log).
const (
	StepDownload    = "download"
	StepAPI         = "api"
	StepSpreadsheet = "spreadsheet"
	StepAnalytics   = "analytics"
	StepPersist     = "persist"
	StepReport      = "report"
)

// APIAggregator fuente del lado API (catalog.UseCase).
type APIAggregator interface {
	GetAllAPIData(ctx context.Context) catalog.APIData
}

// SheetAggregator fuente del lado hoja de cálculo (spreadsheet.UseCase).
type SheetAggregator interface {
	DownloadDataset(ctx context.Context) error
	GetAllData(ctx context.Context) dto.SourceResult
}

// CheckLog acumula las señales de calidad emitidas durante la corrida.
type CheckLog interface {
	Checks() []entity.QualityCheck
	Reset()
}

// Options pasos opcionales de la corrida.
type Options struct {
	Download   bool   // descargar el dataset antes de leer el libro
	ReportPath string // vacío = sin reporte
}

// RunResult resultado de una corrida.
type RunResult struct {
	RunID      uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time
	API        catalog.APIData
	Sheets     dto.SourceResult
	Summary    []dto.CategoryInventorySummaryDTO
	Checks     []entity.QualityCheck
	Errors     map[string]error // fallos de pasos opcionales (download, persist, report)
}

// Sources estado de todas las fuentes: primero las de la API, luego las hojas.
func (r *RunResult) Sources() []dto.SourceStatusDTO {
	out := r.API.Statuses(catalog.Sources...)
	return append(out, r.Sheets.Statuses(spreadsheet.Sources...)...)
}

// Report contenido del reporte PDF.
func (r *RunResult) Report() dto.RunReport {
	checks := make([]dto.QualityCheckDTO, len(r.Checks))
	for i, c := range r.Checks {
		checks[i] = dto.QualityCheckDTO{Name: c.Name, Status: string(c.Status), Detail: c.Detail}
	}
	return dto.RunReport{
		RunID:      r.RunID.String(),
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Sources:    r.Sources(),
		Checks:     checks,
		Inventory:  r.Summary,
	}
}

// Snapshot datos persistibles de la corrida.
func (r *RunResult) Snapshot() repository.RunSnapshot {
	statuses := r.Sources()
	sources := make([]repository.SourceStatus, len(statuses))
	for i, s := range statuses {
		sources[i] = repository.SourceStatus{Source: s.Source, Available: s.Available, Rows: s.Rows, Reason: s.Reason}
	}
	return repository.RunSnapshot{
		RunID:      r.RunID,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Sources:    sources,
		Inventory:  r.API.Inventory,
		Checks:     r.Checks,
	}
}

// Runner orquesta una corrida. store y reporter son opcionales (nil = paso omitido).
type Runner struct {
	api      APIAggregator
	sheets   SheetAggregator
	checks   CheckLog
	store    repository.RunSnapshotRepository
	reporter ports.RunReportGenerator
	log      *logger.Logger
	opts     Options

	now   func() time.Time
	newID func() uuid.UUID
}

// NewRunner construye el runner.
func NewRunner(
	api APIAggregator,
	sheets SheetAggregator,
	checks CheckLog,
	store repository.RunSnapshotRepository,
	reporter ports.RunReportGenerator,
	log *logger.Logger,
	opts Options,
) *Runner {
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{
		api:      api,
		sheets:   sheets,
		checks:   checks,
		store:    store,
		reporter: reporter,
		log:      log,
		opts:     opts,
		now:      time.Now,
		newID:    uuid.New,
	}
}

// Run ejecuta la corrida. Solo la cancelación del contexto la aborta (con error);
// cualquier otro fallo queda en el resultado por fuente o en RunResult.Errors.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	res := &RunResult{
		RunID:     r.newID(),
		StartedAt: r.now(),
		Errors:    map[string]error{},
	}
	log := r.log.Child(r.log.With().Str("run_id", res.RunID.String()))
	if r.checks != nil {
		r.checks.Reset()
	}

	if r.opts.Download {
		log.PipelineStep(StepDownload, "started", "")
		if err := r.sheets.DownloadDataset(ctx); err != nil {
			res.Errors[StepDownload] = err
			log.PipelineStep(StepDownload, "failed", err.Error())
		} else {
			log.PipelineStep(StepDownload, "completed", "")
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.PipelineStep(StepAPI, "started", "")
	res.API = r.api.GetAllAPIData(ctx)
	logSources(log, StepAPI, res.API.SourceResult, catalog.Sources)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.PipelineStep(StepSpreadsheet, "started", "")
	res.Sheets = r.sheets.GetAllData(ctx)
	logSources(log, StepSpreadsheet, res.Sheets, spreadsheet.Sources)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.Summary = analytics.SummarizeInventory(res.API.Inventory)
	log.PipelineStep(StepAnalytics, "completed", fmt.Sprintf("%d categorías", len(res.Summary)))

	if r.checks != nil {
		res.Checks = r.checks.Checks()
	}
	res.FinishedAt = r.now()

	if r.store != nil {
		if err := r.store.SaveRun(ctx, res.Snapshot()); err != nil {
			res.Errors[StepPersist] = err
			log.PipelineStep(StepPersist, "failed", err.Error())
		} else {
			log.PipelineStep(StepPersist, "completed", "")
		}
	}

	if r.reporter != nil && r.opts.ReportPath != "" {
		if err := r.writeReport(ctx, res); err != nil {
			res.Errors[StepReport] = err
			log.PipelineStep(StepReport, "failed", err.Error())
		} else {
			log.PipelineStep(StepReport, "completed", r.opts.ReportPath)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Runner) writeReport(ctx context.Context, res *RunResult) error {
	pdf, err := r.reporter.GenerateRunReport(ctx, res.Report())
	if err != nil {
		return err
	}
	if dir := filepath.Dir(r.opts.ReportPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("crear directorio del reporte: %w", err)
		}
	}
	if err := os.WriteFile(r.opts.ReportPath, pdf, 0o644); err != nil {
		return fmt.Errorf("escribir reporte: %w", err)
	}
	return nil
}

// logSources registra un evento por fuente: completed con filas, o failed con la causa.
func logSources(log *logger.Logger, step string, res dto.SourceResult, sources []string) {
	for _, s := range sources {
		if t, ok := res.Table(s); ok {
			log.PipelineStep(step+"."+s, "completed", fmt.Sprintf("%d filas", t.Len()))
			continue
		}
		detail := "sin datos"
		if err := res.Failures[s]; err != nil {
			detail = domain.Reason(err) + ": " + err.Error()
		}
		log.PipelineStep(step+"."+s, "failed", detail)
	}
}
