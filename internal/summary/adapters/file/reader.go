package file

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"

	"github.com/xuri/excelize/v2"

	"spike-metrics-service/internal/summary/core/domain"
	"spike-metrics-service/internal/summary/core/ports"
)

// Source maps a dataset id to its recording files. Alternate may be empty.
type Source struct {
	ID        string
	Baseline  string
	Alternate string
}

// Reader serves recordings from flat files: delimited text (default) or
// .xlsx, either optionally gzip/xz compressed.
type Reader struct {
	sources   map[string]Source
	ids       []string
	delimiter rune
}

var _ ports.SpikeTableReaderPort = (*Reader)(nil)

func NewReader(sources []Source, delimiter rune) *Reader {
	r := &Reader{
		sources:   make(map[string]Source, len(sources)),
		delimiter: delimiter,
	}
	for _, s := range sources {
		if _, dup := r.sources[s.ID]; !dup {
			r.ids = append(r.ids, s.ID)
		}
		r.sources[s.ID] = s
	}
	slices.Sort(r.ids)
	return r
}

func (r *Reader) ListDatasets(ctx context.Context) ([]string, error) {
	return slices.Clone(r.ids), nil
}

func (r *Reader) ReadTable(ctx context.Context, datasetID string, rec domain.Recording) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, ok := r.sources[datasetID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ports.ErrDatasetNotFound, datasetID)
	}

	path := src.Baseline
	if rec == domain.RecordingAlternate {
		path = src.Alternate
	}
	if path == "" {
		return nil, fmt.Errorf("%w: dataset %q has no %s file", ports.ErrRecordingNotFound, datasetID, rec)
	}

	header, rows, err := r.readFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ports.ErrRecordingNotFound, err)
		}
		return nil, err
	}

	return &domain.Table{
		DatasetID: datasetID,
		Recording: rec,
		Header:    header,
		Rows:      rows,
	}, nil
}

func (r *Reader) readFile(path string) ([]string, [][]string, error) {
	rc, err := openRecording(path)
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()

	if formatOf(path) == ".xlsx" {
		return readXLSX(rc)
	}
	return readDelimited(rc, r.delimiter)
}

func readDelimited(rd io.Reader, delimiter rune) ([]string, [][]string, error) {
	cr := csv.NewReader(rd)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read delimited: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	return records[0], records[1:], nil
}

func readXLSX(rd io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(rd)
	if err != nil {
		return nil, nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("no sheets found in xlsx file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	return rows[0], rows[1:], nil
}
