package domain

import (
	"sort"
	"strings"
)

type Mode string

const (
	ModeSingle Mode = "single"
	ModeDual   Mode = "dual"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeSingle, nil
	case ModeSingle, ModeDual:
		return m, nil
	default:
		return "", invalidParameter("unknown mode %q", s)
	}
}

// Collection is one dataset's binned events from one recording.
type Collection struct {
	DatasetID string
	Recording Recording
	Events    []BinnedEvent
}

// Aggregation is the output of the grouped aggregator.
type Aggregation struct {
	Rows   []SummaryRow
	Series []Series
	Totals []Total
}

type groupKey struct {
	condition string
	interval  int
	dataset   string
}

type seriesKey struct {
	dataset   string
	condition string
}

// AggregateSingle counts events per (interval, dataset). Conditions are ignored.
func AggregateSingle(collections []Collection) Aggregation {
	return aggregate(collections, false)
}

// AggregateDual counts events per (condition, interval, dataset). Every dataset
// must appear in both baseline and alternate, and every event must carry a
// condition. Series lists the baseline datasets first, then the alternate ones.
func AggregateDual(baseline, alternate []Collection) (Aggregation, error) {
	if err := checkPairs(baseline, alternate); err != nil {
		return Aggregation{}, err
	}

	all := make([]Collection, 0, len(baseline)+len(alternate))
	all = append(all, baseline...)
	all = append(all, alternate...)

	for _, c := range all {
		for _, e := range c.Events {
			if e.Condition == "" {
				return Aggregation{}, schemaMismatch("dataset %q (%s): event without condition", c.DatasetID, c.Recording)
			}
		}
	}

	return aggregate(all, true), nil
}

func checkPairs(baseline, alternate []Collection) error {
	inBaseline := make(map[string]bool, len(baseline))
	for _, c := range baseline {
		inBaseline[c.DatasetID] = true
	}
	inAlternate := make(map[string]bool, len(alternate))
	for _, c := range alternate {
		inAlternate[c.DatasetID] = true
	}

	for _, c := range baseline {
		if !inAlternate[c.DatasetID] {
			return schemaMismatch("dataset %q has no %s recording", c.DatasetID, RecordingAlternate)
		}
	}
	for _, c := range alternate {
		if !inBaseline[c.DatasetID] {
			return schemaMismatch("dataset %q has no %s recording", c.DatasetID, RecordingBaseline)
		}
	}
	return nil
}

func aggregate(collections []Collection, withCondition bool) Aggregation {
	counts := make(map[groupKey]int64)
	totals := make(map[seriesKey]*totalAcc)
	var totalOrder []seriesKey

	out := Aggregation{
		Rows:   []SummaryRow{},
		Series: []Series{},
		Totals: []Total{},
	}

	for _, c := range collections {
		perSeries := make(map[seriesKey]map[int]int64)
		var seriesOrder []seriesKey

		for _, e := range c.Events {
			sk := seriesKey{dataset: e.DatasetID}
			gk := groupKey{interval: e.Interval, dataset: e.DatasetID}
			if withCondition {
				sk.condition = e.Condition
				gk.condition = e.Condition
			}

			counts[gk]++

			points, ok := perSeries[sk]
			if !ok {
				points = make(map[int]int64)
				perSeries[sk] = points
				seriesOrder = append(seriesOrder, sk)
			}
			points[e.Interval]++

			acc, ok := totals[sk]
			if !ok {
				acc = newTotalAcc()
				totals[sk] = acc
				totalOrder = append(totalOrder, sk)
			}
			acc.add(e)
		}

		sort.SliceStable(seriesOrder, func(i, j int) bool {
			return lessSeriesKey(seriesOrder[i], seriesOrder[j])
		})
		for _, sk := range seriesOrder {
			out.Series = append(out.Series, newSeries(sk, perSeries[sk]))
		}
	}

	for k, n := range counts {
		out.Rows = append(out.Rows, SummaryRow{
			Condition:  k.condition,
			Interval:   k.interval,
			DatasetID:  k.dataset,
			SpikeCount: n,
		})
	}
	SortRows(out.Rows)

	sort.SliceStable(totalOrder, func(i, j int) bool {
		return lessSeriesKey(totalOrder[i], totalOrder[j])
	})
	for _, sk := range totalOrder {
		out.Totals = append(out.Totals, totals[sk].total(sk))
	}

	return out
}

// SortRows orders rows by condition, interval, then dataset.
func SortRows(rows []SummaryRow) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Condition != b.Condition {
			return a.Condition < b.Condition
		}
		if a.Interval != b.Interval {
			return a.Interval < b.Interval
		}
		return a.DatasetID < b.DatasetID
	})
}

func lessSeriesKey(a, b seriesKey) bool {
	if a.dataset != b.dataset {
		return a.dataset < b.dataset
	}
	return a.condition < b.condition
}

func newSeries(k seriesKey, points map[int]int64) Series {
	s := Series{
		DatasetID: k.dataset,
		Condition: k.condition,
		Points:    make([]SeriesPoint, 0, len(points)),
	}
	for interval, n := range points {
		s.Points = append(s.Points, SeriesPoint{Interval: interval, SpikeCount: n})
	}
	sort.Slice(s.Points, func(i, j int) bool {
		return s.Points[i].Interval < s.Points[j].Interval
	})
	return s
}

type totalAcc struct {
	count     int64
	neurons   map[int64]struct{}
	intervals map[int]struct{}
}

func newTotalAcc() *totalAcc {
	return &totalAcc{
		neurons:   make(map[int64]struct{}),
		intervals: make(map[int]struct{}),
	}
}

func (a *totalAcc) add(e BinnedEvent) {
	a.count++
	a.neurons[e.NeuronID] = struct{}{}
	a.intervals[e.Interval] = struct{}{}
}

func (a *totalAcc) total(k seriesKey) Total {
	t := Total{
		DatasetID:     k.dataset,
		Condition:     k.condition,
		SpikeCount:    a.count,
		ActiveNeurons: len(a.neurons),
	}
	if len(a.intervals) > 0 {
		t.MeanPerInterval = float64(a.count) / float64(len(a.intervals))
	}
	return t
}
