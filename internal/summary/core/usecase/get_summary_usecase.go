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

const (
	DatasetAll     = "all"
	DefaultCeiling = 3000
)

type Defaults struct {
	Ceiling int64
	Policy  domain.BoundaryPolicy
}

type GetSummaryInput struct {
	BinWidth int64
	Ceiling  int64  // 0 = default
	Dataset  string // dataset id or "all"
	Mode     string // "single" / "dual"
	Policy   string // "reject" / "clamp" / "strict", "" = default
}

type GetSummaryUseCase struct {
	reader   ports.SpikeTableReaderPort
	defaults Defaults
}

func NewGetSummaryUseCase(reader ports.SpikeTableReaderPort, defaults Defaults) *GetSummaryUseCase {
	if defaults.Ceiling <= 0 {
		defaults.Ceiling = DefaultCeiling
	}
	if defaults.Policy == "" {
		defaults.Policy = domain.PolicyReject
	}
	return &GetSummaryUseCase{reader: reader, defaults: defaults}
}

// Execute validates the parameters, loads the selected recordings, bins every
// table once and aggregates the result.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, in GetSummaryInput) (*domain.Summary, error) {
	mode, err := domain.ParseMode(in.Mode)
	if err != nil {
		return nil, err
	}

	policy := uc.defaults.Policy
	if in.Policy != "" {
		if policy, err = domain.ParseBoundaryPolicy(in.Policy); err != nil {
			return nil, err
		}
	}

	ceiling := in.Ceiling
	if ceiling == 0 {
		ceiling = uc.defaults.Ceiling
	}

	binner, err := domain.NewBinner(in.BinWidth, ceiling, policy)
	if err != nil {
		return nil, err
	}

	datasets, err := uc.selectDatasets(ctx, in.Dataset)
	if err != nil {
		return nil, err
	}

	summary := &domain.Summary{
		Mode:        mode,
		BinWidth:    binner.Width(),
		Ceiling:     binner.Ceiling(),
		LastEdge:    binner.LastEdge(),
		BucketCount: binner.BucketCount(),
		Edges:       binner.Edges(),
		Policy:      policy,
		Datasets:    datasets,
		OutOfDomain: []*domain.OutOfDomainError{},
	}

	var agg domain.Aggregation

	switch mode {
	case domain.ModeSingle:
		cols, err := uc.binRecordings(ctx, binner, datasets, domain.RecordingBaseline, false, summary)
		if err != nil {
			return nil, err
		}
		agg = domain.AggregateSingle(cols)

	case domain.ModeDual:
		baseline, err := uc.binRecordings(ctx, binner, datasets, domain.RecordingBaseline, true, summary)
		if err != nil {
			return nil, err
		}
		alternate, err := uc.binRecordings(ctx, binner, datasets, domain.RecordingAlternate, true, summary)
		if err != nil {
			return nil, err
		}
		if agg, err = domain.AggregateDual(baseline, alternate); err != nil {
			return nil, err
		}
	}

	summary.Rows = agg.Rows
	summary.Series = agg.Series
	summary.Totals = agg.Totals

	return summary, nil
}

// ListDatasets returns the dataset ids a summary can be requested for.
func (uc *GetSummaryUseCase) ListDatasets(ctx context.Context) ([]string, error) {
	ids, err := uc.reader.ListDatasets(ctx)
	if err != nil {
		return nil, err
	}
	ids = slices.Clone(ids)
	slices.Sort(ids)
	return ids, nil
}

func (uc *GetSummaryUseCase) selectDatasets(ctx context.Context, selector string) ([]string, error) {
	known, err := uc.reader.ListDatasets(ctx)
	if err != nil {
		return nil, err
	}

	selector = strings.TrimSpace(selector)
	if selector == "" || strings.EqualFold(selector, DatasetAll) {
		out := slices.Clone(known)
		slices.Sort(out)
		return out, nil
	}

	if !slices.Contains(known, selector) {
		return nil, fmt.Errorf("%w: unknown dataset %q", domain.ErrInvalidParameter, selector)
	}
	return []string{selector}, nil
}

func (uc *GetSummaryUseCase) binRecordings(
	ctx context.Context,
	binner *domain.Binner,
	datasets []string,
	rec domain.Recording,
	requireCondition bool,
	summary *domain.Summary,
) ([]domain.Collection, error) {
	cols := make([]domain.Collection, 0, len(datasets))

	for _, id := range datasets {
		table, err := uc.reader.ReadTable(ctx, id, rec)
		if err != nil {
			if errors.Is(err, ports.ErrRecordingNotFound) {
				return nil, fmt.Errorf("%w: %w", domain.ErrSchemaMismatch, err)
			}
			return nil, err
		}

		events, err := domain.ParseTable(table, requireCondition)
		if err != nil {
			return nil, err
		}

		binned, rejected, err := binner.Assign(events)
		if err != nil {
			return nil, err
		}
		summary.OutOfDomain = append(summary.OutOfDomain, rejected...)

		cols = append(cols, domain.Collection{
			DatasetID: id,
			Recording: rec,
			Events:    binned,
		})
	}

	return cols, nil
}
