package ports

import (
	"context"

	"spike-metrics-service/internal/spikes/core/domain"
)

type SpikeRepositoryPort interface {
	// InsertBatch stores every spike of b atomically and returns the number
	// of rows written.
	InsertBatch(ctx context.Context, b *domain.Batch) (stored int64, err error)
}

// DatasetChangeNotifierPort is told about datasets whose stored spikes
// changed, so cached readers can drop stale recordings.
type DatasetChangeNotifierPort interface {
	DatasetChanged(ctx context.Context, datasetID string)
}
