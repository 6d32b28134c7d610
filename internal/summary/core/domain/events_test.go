package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEventPoints_AxisBounds(t *testing.T) {
	events := []Event{
		{DatasetID: "df0", Timestamp: 250.5, NeuronID: 3, Condition: "FLO"},
		{DatasetID: "df0", Timestamp: 2999, NeuronID: 1, Condition: "FLO"},
		{DatasetID: "df0", Timestamp: 10, NeuronID: 7, Condition: "Spontaneous"},
	}

	got := NewEventPoints("df0", RecordingAlternate, events)

	assert.Equal(t, "df0", got.DatasetID)
	assert.Equal(t, RecordingAlternate, got.Recording)
	assert.Equal(t, 2999.0, got.MaxTimestamp)
	assert.Equal(t, int64(7), got.MaxNeuronID)
	assert.Equal(t, []EventPoint{
		{Timestamp: 250.5, NeuronID: 3, Condition: "FLO"},
		{Timestamp: 2999, NeuronID: 1, Condition: "FLO"},
		{Timestamp: 10, NeuronID: 7, Condition: "Spontaneous"},
	}, got.Points)
}

func TestNewEventPoints_NegativeTimestamps(t *testing.T) {
	got := NewEventPoints("df0", RecordingBaseline, []Event{
		{Timestamp: -20, NeuronID: 2},
		{Timestamp: -5, NeuronID: 1},
	})
	assert.Equal(t, -5.0, got.MaxTimestamp)
	assert.Equal(t, int64(2), got.MaxNeuronID)
}

func TestNewEventPoints_Empty(t *testing.T) {
	got := NewEventPoints("df0", RecordingBaseline, nil)
	assert.NotNil(t, got.Points)
	assert.Empty(t, got.Points)
	assert.Zero(t, got.MaxTimestamp)
	assert.Zero(t, got.MaxNeuronID)
}
