package domain

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func binAll(t *testing.T, b *Binner, events []Event) []BinnedEvent {
	t.Helper()
	binned, _, err := b.Assign(events)
	require.NoError(t, err)
	return binned
}

func repeat(dataset, condition string, ts float64, n int) []Event {
	out := make([]Event, n)
	for i := range out {
		out[i] = Event{DatasetID: dataset, Timestamp: ts, NeuronID: int64(i + 1), Condition: condition}
	}
	return out
}

func sumByDataset(rows []SummaryRow) map[string]int64 {
	out := make(map[string]int64)
	for _, r := range rows {
		out[r.DatasetID+"|"+r.Condition] += r.SpikeCount
	}
	return out
}

func TestAggregateSingle_Scenario(t *testing.T) {
	b, err := NewBinner(100, 3000, PolicyReject)
	require.NoError(t, err)

	events := []Event{
		{DatasetID: "A", Timestamp: 10, NeuronID: 3},
		{DatasetID: "A", Timestamp: 10, NeuronID: 3},
		{DatasetID: "A", Timestamp: 250, NeuronID: 5},
		{DatasetID: "A", Timestamp: 3050, NeuronID: 2},
	}

	agg := AggregateSingle([]Collection{{DatasetID: "A", Recording: RecordingBaseline, Events: binAll(t, b, events)}})

	assert.Equal(t, []SummaryRow{
		{Interval: 1, DatasetID: "A", SpikeCount: 2},
		{Interval: 3, DatasetID: "A", SpikeCount: 1},
	}, agg.Rows)

	require.Len(t, agg.Series, 1)
	assert.Equal(t, []SeriesPoint{{Interval: 1, SpikeCount: 2}, {Interval: 3, SpikeCount: 1}}, agg.Series[0].Points)

	require.Len(t, agg.Totals, 1)
	assert.Equal(t, int64(3), agg.Totals[0].SpikeCount)
	assert.Equal(t, 2, agg.Totals[0].ActiveNeurons)
	assert.InDelta(t, 1.5, agg.Totals[0].MeanPerInterval, 1e-9)
}

func TestAggregateSingle_MultipleDatasetsSparse(t *testing.T) {
	b, err := NewBinner(100, 3000, PolicyReject)
	require.NoError(t, err)

	a := binAll(t, b, append(repeat("df0", "", 120, 4), repeat("df0", "", 950, 2)...))
	c := binAll(t, b, repeat("df1", "", 120, 3))

	agg := AggregateSingle([]Collection{
		{DatasetID: "df0", Events: a},
		{DatasetID: "df1", Events: c},
	})

	assert.Equal(t, []SummaryRow{
		{Interval: 2, DatasetID: "df0", SpikeCount: 4},
		{Interval: 2, DatasetID: "df1", SpikeCount: 3},
		{Interval: 10, DatasetID: "df0", SpikeCount: 2},
	}, agg.Rows)

	for _, r := range agg.Rows {
		assert.Positive(t, r.SpikeCount, "no zero rows")
	}
	require.Len(t, agg.Series, 2)
	assert.Equal(t, "df0", agg.Series[0].DatasetID)
	assert.Equal(t, "df1", agg.Series[1].DatasetID)
}

func TestAggregateSingle_Empty(t *testing.T) {
	agg := AggregateSingle(nil)
	assert.NotNil(t, agg.Rows)
	assert.Empty(t, agg.Rows)
	assert.Empty(t, agg.Series)
	assert.Empty(t, agg.Totals)

	agg = AggregateSingle([]Collection{{DatasetID: "df0"}})
	assert.Empty(t, agg.Rows)
}

func TestAggregate_OrderIndependent(t *testing.T) {
	b, err := NewBinner(75, 3000, PolicyReject)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	events := make([]Event, 500)
	for i := range events {
		events[i] = Event{
			DatasetID: []string{"df0", "df1", "df2"}[rng.Intn(3)],
			Timestamp: rng.Float64() * 3000,
			NeuronID:  int64(rng.Intn(50) + 1),
		}
	}

	want := AggregateSingle([]Collection{{Events: binAll(t, b, events)}}).Rows

	shuffled := append([]Event(nil), events...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	got := AggregateSingle([]Collection{{Events: binAll(t, b, shuffled)}}).Rows
	assert.Equal(t, want, got)
}

func TestAggregate_CountPreservingAcrossWidths(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	events := make([]Event, 300)
	expected := map[string]int64{}
	for i := range events {
		ds := []string{"df0", "df1"}[rng.Intn(2)]
		events[i] = Event{DatasetID: ds, Timestamp: rng.Float64() * 2999, NeuronID: 1}
		expected[ds+"|"]++
	}

	prevRows := -1
	for _, w := range []int64{50, 75, 100, 150, 200, 300} {
		b, err := NewBinner(w, 3000, PolicyReject)
		require.NoError(t, err)

		agg := AggregateSingle([]Collection{{Events: binAll(t, b, events)}})
		assert.Equal(t, expected, sumByDataset(agg.Rows), "width %d", w)

		for _, r := range agg.Rows {
			assert.LessOrEqual(t, r.Interval, b.BucketCount())
		}
		if prevRows >= 0 {
			assert.LessOrEqual(t, len(agg.Rows), prevRows, "wider bins cannot produce more rows")
		}
		prevRows = len(agg.Rows)
	}
}

func TestAggregateDual_Scenario(t *testing.T) {
	b, err := NewBinner(100, 3000, PolicyReject)
	require.NoError(t, err)

	baseline := []Collection{{
		DatasetID: "A",
		Recording: RecordingBaseline,
		Events:    binAll(t, b, repeat("A", "Spontaneous", 150, 5)),
	}}
	alternate := []Collection{{
		DatasetID: "A",
		Recording: RecordingAlternate,
		Events:    binAll(t, b, repeat("A", "FLO", 150, 8)),
	}}

	agg, err := AggregateDual(baseline, alternate)
	require.NoError(t, err)

	assert.ElementsMatch(t, []SummaryRow{
		{Condition: "Spontaneous", Interval: 2, DatasetID: "A", SpikeCount: 5},
		{Condition: "FLO", Interval: 2, DatasetID: "A", SpikeCount: 8},
	}, agg.Rows)

	require.Len(t, agg.Series, 2)
	assert.Equal(t, "Spontaneous", agg.Series[0].Condition, "baseline series come first")
	assert.Equal(t, "FLO", agg.Series[1].Condition)

	totals := map[string]int64{}
	for _, tot := range agg.Totals {
		totals[tot.Condition] = tot.SpikeCount
	}
	assert.Equal(t, map[string]int64{"Spontaneous": 5, "FLO": 8}, totals)
}

func TestAggregateDual_UnmatchedPair(t *testing.T) {
	_, err := AggregateDual(
		[]Collection{{DatasetID: "A"}, {DatasetID: "B"}},
		[]Collection{{DatasetID: "A"}},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaMismatch))

	_, err = AggregateDual(nil, []Collection{{DatasetID: "A"}})
	assert.True(t, errors.Is(err, ErrSchemaMismatch))
}

func TestAggregateDual_MissingCondition(t *testing.T) {
	b, err := NewBinner(100, 3000, PolicyReject)
	require.NoError(t, err)

	_, err = AggregateDual(
		[]Collection{{DatasetID: "A", Events: binAll(t, b, repeat("A", "", 10, 1))}},
		[]Collection{{DatasetID: "A", Events: binAll(t, b, repeat("A", "FLO", 10, 1))}},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaMismatch))
}

func TestAggregateDual_Empty(t *testing.T) {
	agg, err := AggregateDual(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, agg.Rows)

	agg, err = AggregateDual([]Collection{{DatasetID: "A"}}, []Collection{{DatasetID: "A"}})
	require.NoError(t, err)
	assert.Empty(t, agg.Rows)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeSingle, m)

	m, err = ParseMode("DUAL")
	require.NoError(t, err)
	assert.Equal(t, ModeDual, m)

	_, err = ParseMode("triple")
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}
