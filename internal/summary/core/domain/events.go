package domain

// EventPoint is one spike as plotted on the raster: time on x, neuron on y.
type EventPoint struct {
	Timestamp float64
	NeuronID  int64
	Condition string
}

// EventPoints is the raw spike feed of a single recording together with the
// axis bounds it spans.
type EventPoints struct {
	DatasetID    string
	Recording    Recording
	Points       []EventPoint
	MaxTimestamp float64
	MaxNeuronID  int64
}

// NewEventPoints keeps events in recording order. Both maxima stay zero for
// an empty recording.
func NewEventPoints(datasetID string, rec Recording, events []Event) *EventPoints {
	out := &EventPoints{
		DatasetID: datasetID,
		Recording: rec,
		Points:    make([]EventPoint, 0, len(events)),
	}
	for i, e := range events {
		if i == 0 || e.Timestamp > out.MaxTimestamp {
			out.MaxTimestamp = e.Timestamp
		}
		if e.NeuronID > out.MaxNeuronID {
			out.MaxNeuronID = e.NeuronID
		}
		out.Points = append(out.Points, EventPoint{
			Timestamp: e.Timestamp,
			NeuronID:  e.NeuronID,
			Condition: e.Condition,
		})
	}
	return out
}
