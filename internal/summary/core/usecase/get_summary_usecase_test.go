package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"spike-metrics-service/internal/summary/core/domain"
	"spike-metrics-service/internal/summary/core/ports"
	"spike-metrics-service/internal/summary/core/usecase"
)

// fakeReader implements SpikeTableReaderPort for tests.
type fakeReader struct {
	ListFn    func(ctx context.Context) ([]string, error)
	tables    map[string]*domain.Table // key: dataset|recording
	readCalls []string
	called    bool
}

func (f *fakeReader) ListDatasets(ctx context.Context) ([]string, error) {
	f.called = true
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	ids := make([]string, 0)
	seen := map[string]bool{}
	for _, t := range f.tables {
		if !seen[t.DatasetID] {
			seen[t.DatasetID] = true
			ids = append(ids, t.DatasetID)
		}
	}
	return ids, nil
}

func (f *fakeReader) ReadTable(ctx context.Context, datasetID string, rec domain.Recording) (*domain.Table, error) {
	key := datasetID + "|" + string(rec)
	f.readCalls = append(f.readCalls, key)
	t, ok := f.tables[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrRecordingNotFound, key)
	}
	return t, nil
}

func spikeTable(id string, rec domain.Recording, rows ...[]string) *domain.Table {
	header := []string{"timestamps", "neuron_ids"}
	if len(rows) > 0 && len(rows[0]) == 3 {
		header = append(header, "attack")
	}
	return &domain.Table{DatasetID: id, Recording: rec, Header: header, Rows: rows}
}

func newReader(tables ...*domain.Table) *fakeReader {
	r := &fakeReader{tables: map[string]*domain.Table{}}
	for _, t := range tables {
		r.tables[t.DatasetID+"|"+string(t.Recording)] = t
	}
	return r
}

// ------------------------------------------------------------
// SUCCESS: single mode, one dataset
// ------------------------------------------------------------

func TestGetSummary_Success_SingleDataset(t *testing.T) {
	reader := newReader(
		spikeTable("A", domain.RecordingBaseline,
			[]string{"10", "3"},
			[]string{"10", "3"},
			[]string{"250", "5"},
			[]string{"3050", "2"},
		),
		spikeTable("B", domain.RecordingBaseline, []string{"1", "1"}),
	)

	uc := usecase.NewGetSummaryUseCase(reader, usecase.Defaults{})

	out, err := uc.Execute(context.Background(), usecase.GetSummaryInput{
		BinWidth: 100,
		Dataset:  "A",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Mode != domain.ModeSingle {
		t.Fatalf("expected single mode, got %s", out.Mode)
	}
	if out.Ceiling != usecase.DefaultCeiling || out.BucketCount != 30 {
		t.Fatalf("unexpected domain: ceiling=%d buckets=%d", out.Ceiling, out.BucketCount)
	}
	if len(out.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(out.Rows), out.Rows)
	}
	if out.Rows[0] != (domain.SummaryRow{Interval: 1, DatasetID: "A", SpikeCount: 2}) {
		t.Fatalf("unexpected first row: %+v", out.Rows[0])
	}
	if out.Rows[1] != (domain.SummaryRow{Interval: 3, DatasetID: "A", SpikeCount: 1}) {
		t.Fatalf("unexpected second row: %+v", out.Rows[1])
	}
	if len(out.OutOfDomain) != 1 || out.OutOfDomain[0].Timestamp != 3050 {
		t.Fatalf("expected one out-of-domain event at 3050, got %+v", out.OutOfDomain)
	}
	if len(reader.readCalls) != 1 || reader.readCalls[0] != "A|baseline" {
		t.Fatalf("expected only A baseline to be read, got %v", reader.readCalls)
	}
}

// ------------------------------------------------------------
// SUCCESS: single mode, all datasets
// ------------------------------------------------------------

func TestGetSummary_Success_AllDatasets(t *testing.T) {
	reader := newReader(
		spikeTable("df1", domain.RecordingBaseline, []string{"120", "1"}),
		spikeTable("df0", domain.RecordingBaseline, []string{"120", "2"}, []string{"130", "3"}),
	)

	uc := usecase.NewGetSummaryUseCase(reader, usecase.Defaults{Ceiling: 1000})

	out, err := uc.Execute(context.Background(), usecase.GetSummaryInput{
		BinWidth: 50,
		Dataset:  "all",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Datasets) != 2 || out.Datasets[0] != "df0" || out.Datasets[1] != "df1" {
		t.Fatalf("expected sorted datasets [df0 df1], got %v", out.Datasets)
	}
	if out.BucketCount != 20 {
		t.Fatalf("expected 20 buckets, got %d", out.BucketCount)
	}
	if len(out.Totals) != 2 || out.Totals[0].SpikeCount != 2 || out.Totals[1].SpikeCount != 1 {
		t.Fatalf("unexpected totals: %+v", out.Totals)
	}
}

// ------------------------------------------------------------
// SUCCESS: dual mode
// ------------------------------------------------------------

func TestGetSummary_Success_Dual(t *testing.T) {
	var base, alt [][]string
	for i := 0; i < 5; i++ {
		base = append(base, []string{"150", "1", "Spontaneous"})
	}
	for i := 0; i < 8; i++ {
		alt = append(alt, []string{"150", "1", "FLO"})
	}

	reader := newReader(
		spikeTable("A", domain.RecordingBaseline, base...),
		spikeTable("A", domain.RecordingAlternate, alt...),
	)

	uc := usecase.NewGetSummaryUseCase(reader, usecase.Defaults{})

	out, err := uc.Execute(context.Background(), usecase.GetSummaryInput{
		BinWidth: 100,
		Mode:     "dual",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[domain.SummaryRow]bool{
		{Condition: "Spontaneous", Interval: 2, DatasetID: "A", SpikeCount: 5}: true,
		{Condition: "FLO", Interval: 2, DatasetID: "A", SpikeCount: 8}:         true,
	}
	if len(out.Rows) != len(want) {
		t.Fatalf("expected %d rows, got %+v", len(want), out.Rows)
	}
	for _, r := range out.Rows {
		if !want[r] {
			t.Fatalf("unexpected row %+v", r)
		}
	}
	if len(out.Series) != 2 || out.Series[0].Condition != "Spontaneous" {
		t.Fatalf("expected baseline series first, got %+v", out.Series)
	}
}

// ------------------------------------------------------------
// EMPTY INPUT -> empty summary
// ------------------------------------------------------------

func TestGetSummary_EmptyInput(t *testing.T) {
	reader := newReader(spikeTable("A", domain.RecordingBaseline))

	uc := usecase.NewGetSummaryUseCase(reader, usecase.Defaults{})

	out, err := uc.Execute(context.Background(), usecase.GetSummaryInput{BinWidth: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Rows) != 0 {
		t.Fatalf("expected no rows, got %+v", out.Rows)
	}
}

// ------------------------------------------------------------
// VALIDATION: invalid parameters never reach the reader
// ------------------------------------------------------------

func TestGetSummary_InvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		in   usecase.GetSummaryInput
	}{
		{"zero_bin_width", usecase.GetSummaryInput{BinWidth: 0}},
		{"negative_bin_width", usecase.GetSummaryInput{BinWidth: -5}},
		{"negative_ceiling", usecase.GetSummaryInput{BinWidth: 100, Ceiling: -1}},
		{"unknown_mode", usecase.GetSummaryInput{BinWidth: 100, Mode: "triple"}},
		{"unknown_policy", usecase.GetSummaryInput{BinWidth: 100, Policy: "wrap"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := newReader()
			uc := usecase.NewGetSummaryUseCase(reader, usecase.Defaults{})

			out, err := uc.Execute(context.Background(), tt.in)
			if !errors.Is(err, domain.ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
			if out != nil {
				t.Fatalf("expected nil result on error")
			}
			if reader.called {
				t.Fatalf("reader should not be called on invalid input")
			}
		})
	}
}

func TestGetSummary_UnknownDataset(t *testing.T) {
	reader := newReader(spikeTable("A", domain.RecordingBaseline, []string{"1", "1"}))
	uc := usecase.NewGetSummaryUseCase(reader, usecase.Defaults{})

	_, err := uc.Execute(context.Background(), usecase.GetSummaryInput{BinWidth: 100, Dataset: "Z"})
	if !errors.Is(err, domain.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if len(reader.readCalls) != 0 {
		t.Fatalf("no table should be read for an unknown dataset")
	}
}

// ------------------------------------------------------------
// SCHEMA MISMATCH
// ------------------------------------------------------------

func TestGetSummary_DualMissingAttackColumn(t *testing.T) {
	reader := newReader(
		spikeTable("A", domain.RecordingBaseline, []string{"1", "1"}),
		spikeTable("A", domain.RecordingAlternate, []string{"1", "1", "FLO"}),
	)
	uc := usecase.NewGetSummaryUseCase(reader, usecase.Defaults{})

	_, err := uc.Execute(context.Background(), usecase.GetSummaryInput{BinWidth: 100, Mode: "dual"})
	if !errors.Is(err, domain.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestGetSummary_DualMissingAlternateRecording(t *testing.T) {
	reader := newReader(spikeTable("A", domain.RecordingBaseline, []string{"1", "1", "Spontaneous"}))
	uc := usecase.NewGetSummaryUseCase(reader, usecase.Defaults{})

	_, err := uc.Execute(context.Background(), usecase.GetSummaryInput{BinWidth: 100, Mode: "dual"})
	if !errors.Is(err, domain.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	if !errors.Is(err, ports.ErrRecordingNotFound) {
		t.Fatalf("expected wrapped ErrRecordingNotFound, got %v", err)
	}
}

// ------------------------------------------------------------
// BOUNDARY POLICY
// ------------------------------------------------------------

func TestGetSummary_StrictPolicy(t *testing.T) {
	reader := newReader(spikeTable("A", domain.RecordingBaseline, []string{"3000", "1"}))
	uc := usecase.NewGetSummaryUseCase(reader, usecase.Defaults{Policy: domain.PolicyStrict})

	_, err := uc.Execute(context.Background(), usecase.GetSummaryInput{BinWidth: 100})
	if !errors.Is(err, domain.ErrOutOfDomainEvent) {
		t.Fatalf("expected ErrOutOfDomainEvent, got %v", err)
	}

	out, err := uc.Execute(context.Background(), usecase.GetSummaryInput{BinWidth: 100, Policy: "clamp"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Rows) != 1 || out.Rows[0].Interval != 30 {
		t.Fatalf("expected event clamped into interval 30, got %+v", out.Rows)
	}
}

// ------------------------------------------------------------
// READER ERROR PROPAGATION
// ------------------------------------------------------------

func TestGetSummary_ReaderError(t *testing.T) {
	reader := &fakeReader{
		ListFn: func(ctx context.Context) ([]string, error) {
			return nil, errors.New("storage failure")
		},
	}
	uc := usecase.NewGetSummaryUseCase(reader, usecase.Defaults{})

	out, err := uc.Execute(context.Background(), usecase.GetSummaryInput{BinWidth: 100})
	if err == nil || err.Error() != "storage failure" {
		t.Fatalf("expected storage failure, got %v", err)
	}
	if out != nil {
		t.Fatalf("expected nil result on error")
	}
}

// ------------------------------------------------------------
// LIST DATASETS
// ------------------------------------------------------------

func TestListDatasets_Sorted(t *testing.T) {
	reader := &fakeReader{
		ListFn: func(ctx context.Context) ([]string, error) {
			return []string{"df2", "df0", "df1"}, nil
		},
	}
	uc := usecase.NewGetSummaryUseCase(reader, usecase.Defaults{})

	ids, err := uc.ListDatasets(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 3 || ids[0] != "df0" || ids[2] != "df2" {
		t.Fatalf("expected sorted ids, got %v", ids)
	}
}
