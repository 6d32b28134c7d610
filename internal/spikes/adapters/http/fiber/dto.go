package fiber

// StoreSpikesRequest represents a spike batch upload
// @Description Spike batch DTO
type StoreSpikesRequest struct {
	Recording string      `json:"recording" example:"baseline"`
	Spikes    []spikeItem `json:"spikes"`
}

type spikeItem struct {
	Timestamp float64 `json:"timestamp" example:"10.5"`
	NeuronID  int64   `json:"neuron_id" example:"3"`
	Condition string  `json:"condition" example:"FLO"`
}

type StoreSpikesResponse struct {
	BatchID string `json:"batch_id" example:"6f1c2a1e-52b4-4d8e-9a55-1d5c3b0f7e21"`
	Stored  int64  `json:"stored" example:"2"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_spike"`
	Message string `json:"message" example:"invalid spike: batch is empty"`
}
