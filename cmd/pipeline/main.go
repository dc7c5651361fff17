package main

import (
	"context"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/retail-pipeline/internal/application/catalog"
	"github.com/jhoicas/retail-pipeline/internal/application/pipeline"
	"github.com/jhoicas/retail-pipeline/internal/application/ports"
	"github.com/jhoicas/retail-pipeline/internal/application/spreadsheet"
	"github.com/jhoicas/retail-pipeline/internal/domain/inventory"
	"github.com/jhoicas/retail-pipeline/internal/domain/repository"
	infracatalog "github.com/jhoicas/retail-pipeline/internal/infrastructure/catalog"
	"github.com/jhoicas/retail-pipeline/internal/infrastructure/excel"
	"github.com/jhoicas/retail-pipeline/internal/infrastructure/kaggle"
	infrapdf "github.com/jhoicas/retail-pipeline/internal/infrastructure/pdf"
	"github.com/jhoicas/retail-pipeline/internal/infrastructure/postgres"
	"github.com/jhoicas/retail-pipeline/internal/infrastructure/qualitylog"
	"github.com/jhoicas/retail-pipeline/pkg/config"
	"github.com/jhoicas/retail-pipeline/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando pipeline")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := qualitylog.NewRecorder(log)

	// Fuentes API: catálogo + simulación de inventario
	catalogClient := infracatalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	simulator := inventory.NewSimulator(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), nil)
	catalogUC := catalog.NewUseCase(catalogClient, simulator, inventory.SimulationConfig{
		Days:                cfg.Simulation.Days,
		RestockingFrequency: cfg.Simulation.RestockingFrequency,
		DemandVariability:   cfg.Simulation.DemandVariability,
	}, recorder)

	// Fuentes hoja de cálculo
	downloader := kaggle.NewDownloader(kaggle.Config{
		APIURL:   cfg.Dataset.KaggleAPIURL,
		Username: cfg.Dataset.KaggleUser,
		Key:      cfg.Dataset.KaggleKey,
	})
	sheetsUC := spreadsheet.NewUseCase(
		excel.NewWorkbookReader(cfg.Dataset.ExcelFilePath),
		downloader,
		spreadsheet.Config{DataDir: cfg.Dataset.DataDir, DatasetName: cfg.Dataset.Name},
		recorder,
	)

	// Persistencia opcional de la corrida
	var store repository.RunSnapshotRepository
	if cfg.DB.Persist {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		store = postgres.NewRunSnapshotRepository(pool)
	}

	var reporter ports.RunReportGenerator
	if cfg.Report.Path != "" {
		reporter = infrapdf.NewMarotoReportGenerator(cfg.App.Name)
	}

	runner := pipeline.NewRunner(catalogUC, sheetsUC, recorder, store, reporter, log, pipeline.Options{
		Download:   cfg.Dataset.Download,
		ReportPath: cfg.Report.Path,
	})

	res, err := runner.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("corrida abortada")
		os.Exit(1)
	}

	available := 0
	sources := res.Sources()
	for _, s := range sources {
		if s.Available {
			available++
		}
	}
	log.Info().
		Str("run_id", res.RunID.String()).
		Int("sources_available", available).
		Int("sources_total", len(sources)).
		Int("inventory_rows", len(res.API.Inventory)).
		Int("quality_checks", len(res.Checks)).
		Int("step_errors", len(res.Errors)).
		Dur("elapsed", res.FinishedAt.Sub(res.StartedAt)).
		Msg("pipeline finalizado")
}
