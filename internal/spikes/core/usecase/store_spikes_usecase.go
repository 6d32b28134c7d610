package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"spike-metrics-service/internal/spikes/core/domain"
	"spike-metrics-service/internal/spikes/core/ports"
)

// MaxBatchSize bounds a single insert statement.
const MaxBatchSize = 100_000

var (
	ErrInvalidSpike = errors.New("invalid spike")
	ErrEmptyBatch   = fmt.Errorf("%w: batch is empty", ErrInvalidSpike)
)

type StoreSpikesUseCase struct {
	repo     ports.SpikeRepositoryPort
	notifier ports.DatasetChangeNotifierPort
	newID    func() string
}

// NewStoreSpikesUseCase builds the use case. notifier may be nil.
func NewStoreSpikesUseCase(repo ports.SpikeRepositoryPort, notifier ports.DatasetChangeNotifierPort) *StoreSpikesUseCase {
	return &StoreSpikesUseCase{
		repo:     repo,
		notifier: notifier,
		newID:    uuid.NewString,
	}
}

type SpikeInput struct {
	Timestamp float64
	NeuronID  int64
	Condition string
}

type StoreSpikesInput struct {
	DatasetID string
	Recording string // "" = baseline
	Spikes    []SpikeInput
}

type StoreSpikesResult struct {
	BatchID string
	Stored  int64
}

func (uc *StoreSpikesUseCase) Execute(ctx context.Context, in StoreSpikesInput) (StoreSpikesResult, error) {
	var res StoreSpikesResult

	rec, err := uc.validateInput(in)
	if err != nil {
		return res, err
	}

	b := &domain.Batch{
		ID:        uc.newID(),
		DatasetID: strings.TrimSpace(in.DatasetID),
		Recording: rec,
		Spikes:    make([]domain.Spike, len(in.Spikes)),
	}
	for i, s := range in.Spikes {
		b.Spikes[i] = domain.Spike{
			TimestampMs: s.Timestamp,
			NeuronID:    s.NeuronID,
			Condition:   strings.TrimSpace(s.Condition),
		}
	}

	stored, err := uc.repo.InsertBatch(ctx, b)
	if err != nil {
		return res, err
	}

	if uc.notifier != nil {
		uc.notifier.DatasetChanged(ctx, b.DatasetID)
	}

	res.BatchID = b.ID
	res.Stored = stored
	return res, nil
}

func (uc *StoreSpikesUseCase) validateInput(in StoreSpikesInput) (domain.Recording, error) {
	datasetID := strings.TrimSpace(in.DatasetID)
	if datasetID == "" {
		return "", fmt.Errorf("%w: dataset is required", ErrInvalidSpike)
	}
	// "all" selects every dataset in summaries
	if strings.EqualFold(datasetID, "all") {
		return "", fmt.Errorf("%w: dataset id %q is reserved", ErrInvalidSpike, datasetID)
	}

	rec := domain.Recording(strings.ToLower(strings.TrimSpace(in.Recording)))
	switch rec {
	case "":
		rec = domain.RecordingBaseline
	case domain.RecordingBaseline, domain.RecordingAlternate:
	default:
		return "", fmt.Errorf("%w: unknown recording %q", ErrInvalidSpike, in.Recording)
	}

	if len(in.Spikes) == 0 {
		return "", ErrEmptyBatch
	}
	if len(in.Spikes) > MaxBatchSize {
		return "", fmt.Errorf("%w: batch of %d exceeds %d spikes", ErrInvalidSpike, len(in.Spikes), MaxBatchSize)
	}

	for i, s := range in.Spikes {
		if math.IsNaN(s.Timestamp) || math.IsInf(s.Timestamp, 0) || s.Timestamp < 0 {
			return "", fmt.Errorf("%w: spike %d has invalid timestamp %v", ErrInvalidSpike, i, s.Timestamp)
		}
		if s.NeuronID <= 0 {
			return "", fmt.Errorf("%w: spike %d has non-positive neuron id %d", ErrInvalidSpike, i, s.NeuronID)
		}
		// alternate recordings are only read in dual mode, which needs a label on every spike
		if rec == domain.RecordingAlternate && strings.TrimSpace(s.Condition) == "" {
			return "", fmt.Errorf("%w: spike %d in %s recording has no condition", ErrInvalidSpike, i, rec)
		}
	}

	return rec, nil
}
