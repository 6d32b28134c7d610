package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"spike-metrics-service/internal/summary/core/domain"
	"spike-metrics-service/internal/summary/core/ports"
)

type GetEventsInput struct {
	Dataset   string // a single dataset id, "all" is not accepted
	Recording string // "baseline" / "alternate", "" = baseline
}

// Events returns every spike of one recording as raster points, without
// binning. The alternate recording must carry its condition labels.
func (uc *GetSummaryUseCase) Events(ctx context.Context, in GetEventsInput) (*domain.EventPoints, error) {
	rec, err := domain.ParseRecording(in.Recording)
	if err != nil {
		return nil, err
	}

	id := strings.TrimSpace(in.Dataset)
	if id == "" || strings.EqualFold(id, DatasetAll) {
		return nil, fmt.Errorf("%w: a single dataset is required", domain.ErrInvalidParameter)
	}

	known, err := uc.reader.ListDatasets(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(known, id) {
		return nil, fmt.Errorf("%w: unknown dataset %q", domain.ErrInvalidParameter, id)
	}

	table, err := uc.reader.ReadTable(ctx, id, rec)
	if err != nil {
		if errors.Is(err, ports.ErrRecordingNotFound) {
			return nil, fmt.Errorf("%w: %w", domain.ErrSchemaMismatch, err)
		}
		return nil, err
	}

	events, err := domain.ParseTable(table, rec == domain.RecordingAlternate)
	if err != nil {
		return nil, err
	}
	return domain.NewEventPoints(id, rec, events), nil
}
