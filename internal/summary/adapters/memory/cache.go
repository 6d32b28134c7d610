package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"spike-metrics-service/internal/summary/core/domain"
	"spike-metrics-service/internal/summary/core/ports"
)

type tableKey struct {
	datasetID string
	recording domain.Recording
}

// CachedReader keeps decoded recordings in memory for the lifetime of the
// process so repeated summaries with different bin widths do not re-read
// the source. Cached tables are shared and must be treated as read-only.
type CachedReader struct {
	next   ports.SpikeTableReaderPort
	logger *slog.Logger

	mu       sync.RWMutex
	tables   map[tableKey]*domain.Table
	datasets []string

	// generation is bumped by DatasetChanged; a fill started under an
	// older generation is discarded.
	generation uint64

	hits   atomic.Int64
	misses atomic.Int64
}

var _ ports.SpikeTableReaderPort = (*CachedReader)(nil)

func NewCachedReader(next ports.SpikeTableReaderPort, logger *slog.Logger) *CachedReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedReader{
		next:   next,
		logger: logger,
		tables: make(map[tableKey]*domain.Table),
	}
}

func (c *CachedReader) ListDatasets(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	ids := c.datasets
	gen := c.generation
	c.mu.RUnlock()
	if ids != nil {
		return slices.Clone(ids), nil
	}

	ids, err := c.next.ListDatasets(ctx)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}

	c.mu.Lock()
	if c.generation == gen {
		c.datasets = ids
	}
	c.mu.Unlock()

	return slices.Clone(ids), nil
}

func (c *CachedReader) ReadTable(ctx context.Context, datasetID string, rec domain.Recording) (*domain.Table, error) {
	key := tableKey{datasetID: datasetID, recording: rec}

	c.mu.RLock()
	table, ok := c.tables[key]
	gen := c.generation
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return table, nil
	}

	c.misses.Add(1)
	table, err := c.next.ReadTable(ctx, datasetID, rec)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.generation == gen {
		c.tables[key] = table
	}
	c.mu.Unlock()

	c.logger.Debug("recording cached",
		"dataset", datasetID,
		"recording", rec,
		"rows", len(table.Rows),
	)
	return table, nil
}

// DatasetChanged drops every cached recording of datasetID along with the
// dataset list.
func (c *CachedReader) DatasetChanged(ctx context.Context, datasetID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.tables, tableKey{datasetID: datasetID, recording: domain.RecordingBaseline})
	delete(c.tables, tableKey{datasetID: datasetID, recording: domain.RecordingAlternate})
	c.datasets = nil
	c.generation++
}

// Stats returns the hit and miss counters.
func (c *CachedReader) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
