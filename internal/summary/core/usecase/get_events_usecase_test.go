package usecase_test

import (
	"context"
	"errors"
	"testing"

	"spike-metrics-service/internal/summary/core/domain"
	"spike-metrics-service/internal/summary/core/ports"
	"spike-metrics-service/internal/summary/core/usecase"
)

// ------------------------------------------------------------
// SUCCESS: raster points with axis bounds
// ------------------------------------------------------------

func TestEvents_Success_Baseline(t *testing.T) {
	reader := newReader(
		spikeTable("A", domain.RecordingBaseline,
			[]string{"10", "3"},
			[]string{"3050", "2"},
			[]string{"250.5", "9"},
		),
	)
	uc := usecase.NewGetSummaryUseCase(reader, usecase.Defaults{})

	got, err := uc.Events(context.Background(), usecase.GetEventsInput{Dataset: "A"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Recording != domain.RecordingBaseline || got.DatasetID != "A" {
		t.Fatalf("unexpected recording: %+v", got)
	}
	if len(got.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(got.Points))
	}
	// points outside the binning domain are still plotted
	if got.MaxTimestamp != 3050 || got.MaxNeuronID != 9 {
		t.Fatalf("unexpected bounds: ts=%v neuron=%d", got.MaxTimestamp, got.MaxNeuronID)
	}
}

func TestEvents_Success_Alternate(t *testing.T) {
	reader := newReader(
		spikeTable("A", domain.RecordingBaseline, []string{"1", "1", "Spontaneous"}),
		spikeTable("A", domain.RecordingAlternate,
			[]string{"5", "2", "FLO"},
			[]string{"7", "4", "FLO"},
		),
	)
	uc := usecase.NewGetSummaryUseCase(reader, usecase.Defaults{})

	got, err := uc.Events(context.Background(), usecase.GetEventsInput{Dataset: "A", Recording: "alternate"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Points) != 2 || got.Points[0].Condition != "FLO" {
		t.Fatalf("unexpected points: %+v", got.Points)
	}
	if len(reader.readCalls) != 1 || reader.readCalls[0] != "A|alternate" {
		t.Fatalf("expected only the alternate recording to be read, got %v", reader.readCalls)
	}
}

// ------------------------------------------------------------
// VALIDATION
// ------------------------------------------------------------

func TestEvents_InvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		in   usecase.GetEventsInput
	}{
		{"missing dataset", usecase.GetEventsInput{}},
		{"all datasets", usecase.GetEventsInput{Dataset: "All"}},
		{"unknown dataset", usecase.GetEventsInput{Dataset: "Z"}},
		{"unknown recording", usecase.GetEventsInput{Dataset: "A", Recording: "attack"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := newReader(spikeTable("A", domain.RecordingBaseline, []string{"1", "1"}))
			uc := usecase.NewGetSummaryUseCase(reader, usecase.Defaults{})

			_, err := uc.Events(context.Background(), tt.in)
			if !errors.Is(err, domain.ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
			if len(reader.readCalls) != 0 {
				t.Fatalf("expected no table reads, got %v", reader.readCalls)
			}
		})
	}
}

func TestEvents_MissingAlternateRecording(t *testing.T) {
	reader := newReader(spikeTable("A", domain.RecordingBaseline, []string{"1", "1"}))
	uc := usecase.NewGetSummaryUseCase(reader, usecase.Defaults{})

	_, err := uc.Events(context.Background(), usecase.GetEventsInput{Dataset: "A", Recording: "alternate"})
	if !errors.Is(err, domain.ErrSchemaMismatch) || !errors.Is(err, ports.ErrRecordingNotFound) {
		t.Fatalf("expected schema mismatch wrapping ErrRecordingNotFound, got %v", err)
	}
}

func TestEvents_AlternateWithoutConditionColumn(t *testing.T) {
	reader := newReader(
		spikeTable("A", domain.RecordingBaseline, []string{"1", "1"}),
		spikeTable("A", domain.RecordingAlternate, []string{"2", "1"}),
	)
	uc := usecase.NewGetSummaryUseCase(reader, usecase.Defaults{})

	_, err := uc.Events(context.Background(), usecase.GetEventsInput{Dataset: "A", Recording: "alternate"})
	if !errors.Is(err, domain.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
