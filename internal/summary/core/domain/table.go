package domain

import (
	"math"
	"strconv"
	"strings"
)

// Column names expected in a recording table.
const (
	ColumnTimestamps = "timestamps"
	ColumnNeuronIDs  = "neuron_ids"
	ColumnAttack     = "attack"
)

// Recording distinguishes the baseline recording of a dataset from the one
// taken under the alternate (attack) stimulus.
type Recording string

const (
	RecordingBaseline  Recording = "baseline"
	RecordingAlternate Recording = "alternate"
)

func ParseRecording(s string) (Recording, error) {
	switch Recording(strings.ToLower(strings.TrimSpace(s))) {
	case "", RecordingBaseline:
		return RecordingBaseline, nil
	case RecordingAlternate:
		return RecordingAlternate, nil
	default:
		return "", invalidParameter("unknown recording %q", s)
	}
}

// Event is a single recorded spike.
type Event struct {
	DatasetID string
	Timestamp float64 // milliseconds
	NeuronID  int64
	Condition string
}

// Table is a loaded recording in its raw tabular form.
type Table struct {
	DatasetID string
	Recording Recording
	Header    []string
	Rows      [][]string
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

func (t *Table) columnIndex(name string) int {
	for i, h := range t.Header {
		if normalizeColumn(h) == name {
			return i
		}
	}
	return -1
}

// ParseTable converts a table into events. requireCondition makes the attack
// column mandatory. A table with neither header nor rows yields no events.
func ParseTable(t *Table, requireCondition bool) ([]Event, error) {
	if t == nil || (len(t.Header) == 0 && len(t.Rows) == 0) {
		return []Event{}, nil
	}
	if strings.TrimSpace(t.DatasetID) == "" {
		return nil, schemaMismatch("table has no dataset_id")
	}

	tsIdx := t.columnIndex(ColumnTimestamps)
	if tsIdx < 0 {
		return nil, schemaMismatch("dataset %q: missing column %q", t.DatasetID, ColumnTimestamps)
	}
	nidIdx := t.columnIndex(ColumnNeuronIDs)
	if nidIdx < 0 {
		return nil, schemaMismatch("dataset %q: missing column %q", t.DatasetID, ColumnNeuronIDs)
	}
	condIdx := t.columnIndex(ColumnAttack)
	if requireCondition && condIdx < 0 {
		return nil, schemaMismatch("dataset %q: missing column %q", t.DatasetID, ColumnAttack)
	}

	events := make([]Event, 0, len(t.Rows))
	for i, row := range t.Rows {
		line := i + 1

		if tsIdx >= len(row) || nidIdx >= len(row) {
			return nil, schemaMismatch("dataset %q row %d: expected %d columns, got %d",
				t.DatasetID, line, len(t.Header), len(row))
		}

		ts, err := strconv.ParseFloat(strings.TrimSpace(row[tsIdx]), 64)
		if err != nil || math.IsNaN(ts) || math.IsInf(ts, 0) {
			return nil, schemaMismatch("dataset %q row %d: invalid timestamp %q", t.DatasetID, line, row[tsIdx])
		}

		nid, ok := parseNeuronID(row[nidIdx])
		if !ok {
			return nil, schemaMismatch("dataset %q row %d: invalid neuron id %q", t.DatasetID, line, row[nidIdx])
		}

		e := Event{
			DatasetID: t.DatasetID,
			Timestamp: ts,
			NeuronID:  nid,
		}

		if condIdx >= 0 && condIdx < len(row) {
			e.Condition = strings.TrimSpace(row[condIdx])
		}
		if requireCondition && e.Condition == "" {
			return nil, schemaMismatch("dataset %q row %d: empty %s label", t.DatasetID, line, ColumnAttack)
		}

		events = append(events, e)
	}

	return events, nil
}

// parseNeuronID accepts integral values written either as "7" or "7.0".
func parseNeuronID(cell string) (int64, bool) {
	cell = strings.TrimSpace(cell)
	if v, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return v, v > 0
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || f != math.Trunc(f) || f < 1 || f > math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
