package ports

import (
	"context"
	"errors"

	"spike-metrics-service/internal/summary/core/domain"
)

var (
	ErrDatasetNotFound   = errors.New("dataset not found")
	ErrRecordingNotFound = errors.New("recording not found")
)

type SpikeTableReaderPort interface {
	// ListDatasets returns the known dataset ids, sorted.
	ListDatasets(ctx context.Context) ([]string, error)

	// ReadTable returns the raw table for one recording of a dataset.
	// Errors wrap ErrDatasetNotFound / ErrRecordingNotFound when absent.
	ReadTable(ctx context.Context, datasetID string, rec domain.Recording) (*domain.Table, error)
}
