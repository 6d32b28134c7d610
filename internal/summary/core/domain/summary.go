package domain

// Summary is the grouped spike-count table for one request.
type Summary struct {
	Mode        Mode
	BinWidth    int64 // ms
	Ceiling     int64 // ms
	LastEdge    int64 // smallest multiple of BinWidth >= Ceiling
	BucketCount int
	Edges       []int64
	Policy      BoundaryPolicy
	Datasets    []string

	Rows        []SummaryRow
	Series      []Series
	Totals      []Total
	OutOfDomain []*OutOfDomainError
}

// SummaryRow is one sparse (condition, interval, dataset) -> count entry.
// Condition is empty in single-condition mode.
type SummaryRow struct {
	Condition  string
	Interval   int
	DatasetID  string
	SpikeCount int64
}

// Series is the per-dataset interval profile used for side-by-side charts.
type Series struct {
	DatasetID string
	Condition string
	Points    []SeriesPoint
}

type SeriesPoint struct {
	Interval   int
	SpikeCount int64
}

type Total struct {
	DatasetID       string
	Condition       string
	SpikeCount      int64
	ActiveNeurons   int
	MeanPerInterval float64 // over non-empty intervals
}
