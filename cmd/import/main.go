package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spike-metrics-service/internal/config"

	spikesRepoPg "spike-metrics-service/internal/spikes/adapters/postgres"
	spikesUsecase "spike-metrics-service/internal/spikes/core/usecase"

	summaryFile "spike-metrics-service/internal/summary/adapters/file"
	summaryDomain "spike-metrics-service/internal/summary/core/domain"
)

// import loads the recordings listed in a dataset catalog into Postgres so
// the API can serve them with SOURCE=postgres.
func main() {
	cfg := config.Load()
	log := config.NewLogger(os.Stderr, cfg.App)

	var (
		catalogPath string
		dataset     string
		batchSize   int
	)

	flag.StringVar(&catalogPath, "catalog", cfg.CatalogPath, "Path to the HCL dataset catalog")
	flag.StringVar(&dataset, "dataset", "", "Import only this dataset id (default: all)")
	flag.IntVar(&batchSize, "batch", 10_000, "Spikes per insert statement")
	flag.Parse()

	if cfg.Database.DSN == "" {
		log.Error("POSTGRES_DSN is not set")
		os.Exit(1)
	}
	if batchSize <= 0 || batchSize > spikesUsecase.MaxBatchSize {
		log.Error("batch size out of range", "batch", batchSize, "max", spikesUsecase.MaxBatchSize)
		os.Exit(1)
	}

	catalog, err := config.LoadCatalog(catalogPath)
	if err != nil {
		log.Error("failed to load dataset catalog", "path", catalogPath, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := spikesRepoPg.Open(ctx, cfg.Database.DSN, spikesRepoPg.PoolConfig{
		MaxOpenConns: 2,
		MaxIdleConns: 1,
	})
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := spikesRepoPg.NewSpikeRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Error("failed to prepare schema", "error", err)
		os.Exit(1)
	}

	imp := &importer{
		reader:    summaryFile.NewReader(fileSources(catalog), catalog.Delimiter),
		store:     spikesUsecase.NewStoreSpikesUseCase(repo, nil),
		batchSize: batchSize,
	}

	start := time.Now()
	var total int64

	for _, ds := range catalog.Datasets {
		if dataset != "" && ds.ID != dataset {
			continue
		}

		recordings := []summaryDomain.Recording{summaryDomain.RecordingBaseline}
		if ds.Alternate != "" {
			recordings = append(recordings, summaryDomain.RecordingAlternate)
		}

		for _, rec := range recordings {
			n, err := imp.importRecording(ctx, ds.ID, rec)
			if err != nil {
				log.Error("import failed", "dataset", ds.ID, "recording", rec, "error", err)
				os.Exit(1)
			}
			log.Info("recording imported", "dataset", ds.ID, "recording", rec, "spikes", n)
			total += n
		}
	}

	log.Info("import finished", "spikes", total, "elapsed", time.Since(start).Round(time.Millisecond))
}

type importer struct {
	reader    *summaryFile.Reader
	store     *spikesUsecase.StoreSpikesUseCase
	batchSize int
}

func (imp *importer) importRecording(ctx context.Context, datasetID string, rec summaryDomain.Recording) (int64, error) {
	table, err := imp.reader.ReadTable(ctx, datasetID, rec)
	if err != nil {
		return 0, err
	}

	events, err := summaryDomain.ParseTable(table, rec == summaryDomain.RecordingAlternate)
	if err != nil {
		return 0, err
	}

	var stored int64
	for start := 0; start < len(events); start += imp.batchSize {
		end := min(start+imp.batchSize, len(events))

		in := spikesUsecase.StoreSpikesInput{
			DatasetID: datasetID,
			Recording: string(rec),
			Spikes:    make([]spikesUsecase.SpikeInput, 0, end-start),
		}
		for _, e := range events[start:end] {
			in.Spikes = append(in.Spikes, spikesUsecase.SpikeInput{
				Timestamp: e.Timestamp,
				NeuronID:  e.NeuronID,
				Condition: e.Condition,
			})
		}

		res, err := imp.store.Execute(ctx, in)
		if err != nil {
			return stored, fmt.Errorf("spikes %d-%d: %w", start, end, err)
		}
		stored += res.Stored
	}

	return stored, nil
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
