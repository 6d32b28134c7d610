package main

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spike-metrics-service/internal/config"

	spikesHttp "spike-metrics-service/internal/spikes/adapters/http/fiber"
	spikesRepoPg "spike-metrics-service/internal/spikes/adapters/postgres"
	spikesUsecase "spike-metrics-service/internal/spikes/core/usecase"

	summaryFile "spike-metrics-service/internal/summary/adapters/file"
	summaryHttp "spike-metrics-service/internal/summary/adapters/http/fiber"
	summaryMemory "spike-metrics-service/internal/summary/adapters/memory"
	summaryRepoPg "spike-metrics-service/internal/summary/adapters/postgres"
	summaryPorts "spike-metrics-service/internal/summary/core/ports"
	summaryUsecase "spike-metrics-service/internal/summary/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "spike-metrics-service/docs"
)

// @title Spike Metrics API
// @version 1.0
// @description Interval binning and grouped spike counts for neural recordings.
// @BasePath /
func main() {
	// Config
	cfg := config.Load()
	log := config.NewLogger(os.Stdout, cfg.App)

	catalog, err := loadCatalog(cfg)
	if err != nil {
		log.Error("failed to load dataset catalog", "path", cfg.CatalogPath, "error", err)
		os.Exit(1)
	}

	ceiling := catalog.Defaults.DomainCeiling
	if cfg.DomainCeiling > 0 {
		ceiling = cfg.DomainCeiling
	}

	// DB connection, postgres source only
	var db *sql.DB
	if cfg.Source == config.SourcePostgres {
		if cfg.Database.DSN == "" {
			log.Error("POSTGRES_DSN is not set")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err = spikesRepoPg.Open(ctx, cfg.Database.DSN, spikesRepoPg.PoolConfig{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: 30 * time.Minute,
		})
		cancel()
		if err != nil {
			log.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	// Readers
	var source summaryPorts.SpikeTableReaderPort
	switch cfg.Source {
	case config.SourceFile:
		source = summaryFile.NewReader(fileSources(catalog), catalog.Delimiter)
	case config.SourcePostgres:
		source = summaryRepoPg.NewSpikeTableRepository(summaryRepoPg.NewSQLDB(db))
	default:
		log.Error("unknown SOURCE", "source", cfg.Source)
		os.Exit(1)
	}
	reader := summaryMemory.NewCachedReader(source, log)

	// Usecases
	getSummaryUC := summaryUsecase.NewGetSummaryUseCase(reader, summaryUsecase.Defaults{
		Ceiling: ceiling,
		Policy:  catalog.Defaults.BoundaryPolicy,
	})

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{AppName: "spike-metrics-service"})
	app.Use(recover.New())
	app.Use(logger.New())

	// summary endpoints
	summaryHandler := summaryHttp.NewSummaryHandler(getSummaryUC, summaryHttp.Options{
		BinWidths:       catalog.Defaults.BinWidths,
		DefaultBinWidth: catalog.Defaults.BinWidth,
		DefaultCeiling:  ceiling,
		DefaultPolicy:   catalog.Defaults.BoundaryPolicy,
	}, log)
	app.Get("/datasets", summaryHandler.ListDatasets)
	app.Get("/summary", summaryHandler.GetSummary)
	app.Get("/events", summaryHandler.GetEvents)

	// spike ingestion endpoints
	if db != nil {
		spikeRepository := spikesRepoPg.NewSpikeRepository(db)
		if err := spikeRepository.EnsureSchema(context.Background()); err != nil {
			log.Error("failed to prepare schema", "error", err)
			os.Exit(1)
		}

		storeSpikesUC := spikesUsecase.NewStoreSpikesUseCase(spikeRepository, reader)
		spikesHandler := spikesHttp.NewSpikeHandler(storeSpikesUC, log)
		app.Post("/datasets/:dataset/spikes", spikesHandler.StoreSpikes)
	}

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			log.Error("fiber stopped", "error", err)
		}
	}()

	log.Info("server started",
		"port", cfg.App.Port,
		"source", cfg.Source,
		"datasets", len(catalog.Datasets),
		"ceiling", ceiling,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("fiber shutdown error", "error", err)
	}

	hits, misses := reader.Stats()
	log.Info("server exiting", "cache_hits", hits, "cache_misses", misses)
}

// loadCatalog reads the dataset catalog. The postgres source only needs its
// defaults, so a missing file falls back to them there.
func loadCatalog(cfg *config.Config) (*config.Catalog, error) {
	catalog, err := config.LoadCatalog(cfg.CatalogPath)
	if err == nil {
		return catalog, nil
	}
	if cfg.Source == config.SourcePostgres && errors.Is(err, fs.ErrNotExist) {
		slog.Warn("catalog not found, using built-in defaults", "path", cfg.CatalogPath)
		return &config.Catalog{Delimiter: ';', Defaults: config.DefaultDefaults()}, nil
	}
	return nil, err
}

func fileSources(c *config.Catalog) []summaryFile.Source {
	out := make([]summaryFile.Source, 0, len(c.Datasets))
	for _, ds := range c.Datasets {
		out = append(out, summaryFile.Source{
			ID:        ds.ID,
			Baseline:  ds.Baseline,
			Alternate: ds.Alternate,
		})
	}
	return out
}
