package postgres

import (
	"context"
	"fmt"
	"strconv"

	"spike-metrics-service/internal/summary/core/domain"
	"spike-metrics-service/internal/summary/core/ports"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

// SpikeTableRepository reads recordings stored by the spikes ingestion side.
type SpikeTableRepository struct {
	db DB
}

func NewSpikeTableRepository(db DB) *SpikeTableRepository {
	return &SpikeTableRepository{db: db}
}

var _ ports.SpikeTableReaderPort = (*SpikeTableRepository)(nil)

const listDatasetsSQL = `
SELECT DISTINCT dataset_id
FROM spikes
ORDER BY dataset_id`

const selectRecordingSQL = `
SELECT
    timestamp_ms,
    neuron_id,
    condition
FROM spikes
WHERE dataset_id = $1 AND recording = $2`

func (r *SpikeTableRepository) ListDatasets(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, listDatasetsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *SpikeTableRepository) ReadTable(ctx context.Context, datasetID string, rec domain.Recording) (*domain.Table, error) {
	rows, err := r.db.QueryContext(ctx, selectRecordingSQL, datasetID, string(rec))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	table := &domain.Table{
		DatasetID: datasetID,
		Recording: rec,
		Header:    []string{domain.ColumnTimestamps, domain.ColumnNeuronIDs, domain.ColumnAttack},
	}

	for rows.Next() {
		var ts float64
		var neuronID int64
		var condition string

		if err := rows.Scan(&ts, &neuronID, &condition); err != nil {
			return nil, err
		}

		table.Rows = append(table.Rows, []string{
			strconv.FormatFloat(ts, 'f', -1, 64),
			strconv.FormatInt(neuronID, 10),
			condition,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// an unknown recording and an empty one look the same in SQL
	if len(table.Rows) == 0 {
		return nil, fmt.Errorf("%w: dataset %q recording %s", ports.ErrRecordingNotFound, datasetID, rec)
	}

	return table, nil
}
