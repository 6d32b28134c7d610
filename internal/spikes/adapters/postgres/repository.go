package postgres

import (
	"context"
	"fmt"

	"spike-metrics-service/internal/spikes/core/domain"
	"spike-metrics-service/internal/spikes/core/ports"

	"github.com/lib/pq"
)

type SpikeRepository struct {
	db DB
}

func NewSpikeRepository(db DB) *SpikeRepository {
	return &SpikeRepository{db: db}
}

var _ ports.SpikeRepositoryPort = (*SpikeRepository)(nil)

const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS spikes (
    id           BIGSERIAL PRIMARY KEY,
    batch_id     UUID             NOT NULL,
    dataset_id   TEXT             NOT NULL,
    recording    TEXT             NOT NULL,
    timestamp_ms DOUBLE PRECISION NOT NULL,
    neuron_id    BIGINT           NOT NULL,
    condition    TEXT             NOT NULL DEFAULT '',
    created_at   TIMESTAMPTZ      NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS spikes_dataset_recording_idx
    ON spikes (dataset_id, recording);
`

// One statement per batch: the arrays are zipped server side by unnest.
const insertBatchSQL = `
INSERT INTO spikes (
    batch_id,
    dataset_id,
    recording,
    timestamp_ms,
    neuron_id,
    condition
)
SELECT $1, $2, $3, s.ts, s.neuron_id, s.condition
FROM unnest($4::double precision[], $5::bigint[], $6::text[]) AS s(ts, neuron_id, condition);
`

// EnsureSchema creates the spikes table and its lookup index if absent.
func (r *SpikeRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSchemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (r *SpikeRepository) InsertBatch(ctx context.Context, b *domain.Batch) (int64, error) {
	timestamps := make([]float64, len(b.Spikes))
	neuronIDs := make([]int64, len(b.Spikes))
	conditions := make([]string, len(b.Spikes))

	for i, s := range b.Spikes {
		timestamps[i] = s.TimestampMs
		neuronIDs[i] = s.NeuronID
		conditions[i] = s.Condition
	}

	res, err := r.db.ExecContext(ctx, insertBatchSQL,
		b.ID,
		b.DatasetID,
		string(b.Recording),
		pq.Array(timestamps),
		pq.Array(neuronIDs),
		pq.Array(conditions),
	)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
