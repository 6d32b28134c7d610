package domain

type Recording string

const (
	RecordingBaseline  Recording = "baseline"
	RecordingAlternate Recording = "alternate"
)

// Spike is one neuron firing at TimestampMs. Condition carries the attack
// label for recordings used in dual-condition summaries and may be empty.
type Spike struct {
	TimestampMs float64
	NeuronID    int64
	Condition   string
}

// Batch is a group of spikes stored together under one id.
type Batch struct {
	ID        string
	DatasetID string
	Recording Recording
	Spikes    []Spike
}
