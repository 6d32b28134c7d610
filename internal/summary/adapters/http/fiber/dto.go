package fiber

import "spike-metrics-service/internal/summary/core/domain"

// MaxReportedOutOfDomain caps the out_of_domain list in a response; the
// full number is always in out_of_domain_count.
const MaxReportedOutOfDomain = 100

type SummaryRowResponse struct {
	Condition  string `json:"condition,omitempty" example:"FLO"`
	Interval   int    `json:"interval" example:"1"`
	DatasetID  string `json:"dataset" example:"df0"`
	SpikeCount int64  `json:"spike_count" example:"2"`
}

type SeriesPointResponse struct {
	Interval   int   `json:"interval"`
	SpikeCount int64 `json:"spike_count"`
}

type SeriesResponse struct {
	DatasetID string                `json:"dataset"`
	Condition string                `json:"condition,omitempty"`
	Points    []SeriesPointResponse `json:"points"`
}

type TotalResponse struct {
	DatasetID       string  `json:"dataset"`
	Condition       string  `json:"condition,omitempty"`
	SpikeCount      int64   `json:"spike_count"`
	ActiveNeurons   int     `json:"active_neurons"`
	MeanPerInterval float64 `json:"mean_per_interval"`
}

type OutOfDomainResponse struct {
	DatasetID string  `json:"dataset"`
	Condition string  `json:"condition,omitempty"`
	Timestamp float64 `json:"timestamp" example:"3050"`
	NeuronID  int64   `json:"neuron_id" example:"2"`
}

type SummaryResponse struct {
	Mode             string                `json:"mode" example:"single"`
	BinWidth         int64                 `json:"bin_width" example:"100"`
	Ceiling          int64                 `json:"ceiling" example:"3000"`
	LastEdge         int64                 `json:"last_edge" example:"3000"`
	BucketCount      int                   `json:"bucket_count" example:"30"`
	Edges            []int64               `json:"edges"`
	Policy           string                `json:"policy" example:"reject"`
	Datasets         []string              `json:"datasets"`
	Rows             []SummaryRowResponse  `json:"rows"`
	Series           []SeriesResponse      `json:"series"`
	Totals           []TotalResponse       `json:"totals"`
	OutOfDomainCount int                   `json:"out_of_domain_count"`
	OutOfDomain      []OutOfDomainResponse `json:"out_of_domain"`
}

type DatasetsResponse struct {
	Datasets        []string `json:"datasets"`
	BinWidths       []int64  `json:"bin_widths"`
	DefaultBinWidth int64    `json:"default_bin_width" example:"100"`
	DefaultCeiling  int64    `json:"default_ceiling" example:"3000"`
	DefaultPolicy   string   `json:"default_policy" example:"reject"`
	Modes           []string `json:"modes"`
}

type EventPointResponse struct {
	Timestamp float64 `json:"timestamp" example:"250.5"`
	NeuronID  int64   `json:"neuron_id" example:"3"`
	Condition string  `json:"condition,omitempty" example:"FLO"`
}

// EventsResponse feeds the raster plot; the axes span
// [0, max_timestamp] x [1, max_neuron_id].
type EventsResponse struct {
	DatasetID    string               `json:"dataset" example:"df0"`
	Recording    string               `json:"recording" example:"baseline"`
	Count        int                  `json:"count" example:"2"`
	MaxTimestamp float64              `json:"max_timestamp" example:"2999"`
	MaxNeuronID  int64                `json:"max_neuron_id" example:"7"`
	Points       []EventPointResponse `json:"points"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_parameter"`
	Message string `json:"message" example:"bin width must be positive"`
}

func toSummaryResponse(s *domain.Summary) SummaryResponse {
	resp := SummaryResponse{
		Mode:             string(s.Mode),
		BinWidth:         s.BinWidth,
		Ceiling:          s.Ceiling,
		LastEdge:         s.LastEdge,
		BucketCount:      s.BucketCount,
		Edges:            s.Edges,
		Policy:           string(s.Policy),
		Datasets:         s.Datasets,
		Rows:             make([]SummaryRowResponse, 0, len(s.Rows)),
		Series:           make([]SeriesResponse, 0, len(s.Series)),
		Totals:           make([]TotalResponse, 0, len(s.Totals)),
		OutOfDomainCount: len(s.OutOfDomain),
		OutOfDomain:      make([]OutOfDomainResponse, 0, min(len(s.OutOfDomain), MaxReportedOutOfDomain)),
	}
	if resp.Datasets == nil {
		resp.Datasets = []string{}
	}

	for _, r := range s.Rows {
		resp.Rows = append(resp.Rows, SummaryRowResponse{
			Condition:  r.Condition,
			Interval:   r.Interval,
			DatasetID:  r.DatasetID,
			SpikeCount: r.SpikeCount,
		})
	}

	for _, sr := range s.Series {
		points := make([]SeriesPointResponse, 0, len(sr.Points))
		for _, p := range sr.Points {
			points = append(points, SeriesPointResponse{Interval: p.Interval, SpikeCount: p.SpikeCount})
		}
		resp.Series = append(resp.Series, SeriesResponse{
			DatasetID: sr.DatasetID,
			Condition: sr.Condition,
			Points:    points,
		})
	}

	for _, t := range s.Totals {
		resp.Totals = append(resp.Totals, TotalResponse{
			DatasetID:       t.DatasetID,
			Condition:       t.Condition,
			SpikeCount:      t.SpikeCount,
			ActiveNeurons:   t.ActiveNeurons,
			MeanPerInterval: t.MeanPerInterval,
		})
	}

	for i, o := range s.OutOfDomain {
		if i == MaxReportedOutOfDomain {
			break
		}
		resp.OutOfDomain = append(resp.OutOfDomain, OutOfDomainResponse{
			DatasetID: o.DatasetID,
			Condition: o.Condition,
			Timestamp: o.Timestamp,
			NeuronID:  o.NeuronID,
		})
	}

	return resp
}

func toEventsResponse(e *domain.EventPoints) EventsResponse {
	resp := EventsResponse{
		DatasetID:    e.DatasetID,
		Recording:    string(e.Recording),
		Count:        len(e.Points),
		MaxTimestamp: e.MaxTimestamp,
		MaxNeuronID:  e.MaxNeuronID,
		Points:       make([]EventPointResponse, 0, len(e.Points)),
	}
	for _, p := range e.Points {
		resp.Points = append(resp.Points, EventPointResponse{
			Timestamp: p.Timestamp,
			NeuronID:  p.NeuronID,
			Condition: p.Condition,
		})
	}
	return resp
}
