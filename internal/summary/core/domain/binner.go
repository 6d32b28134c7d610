package domain

import (
	"math"
	"strings"
)

// BoundaryPolicy decides what happens to events outside [0, last edge).
type BoundaryPolicy string

const (
	// PolicyReject drops the event from the summary and reports it.
	PolicyReject BoundaryPolicy = "reject"
	// PolicyClamp folds events at or past the last edge into the last bin.
	PolicyClamp BoundaryPolicy = "clamp"
	// PolicyStrict fails the whole computation.
	PolicyStrict BoundaryPolicy = "strict"
)

// MaxBuckets bounds ceil(ceiling/width).
const MaxBuckets = 1_000_000

func ParseBoundaryPolicy(s string) (BoundaryPolicy, error) {
	switch p := BoundaryPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyReject, nil
	case PolicyReject, PolicyClamp, PolicyStrict:
		return p, nil
	default:
		return "", invalidParameter("unknown boundary policy %q", s)
	}
}

// Binner assigns timestamps to 1-based fixed-width intervals over
// [0, lastEdge), where lastEdge is the smallest multiple of width >= ceiling.
type Binner struct {
	width    int64
	ceiling  int64
	lastEdge int64
	policy   BoundaryPolicy
}

// BinnedEvent is an event tagged with its interval.
type BinnedEvent struct {
	Event
	Interval int
}

func NewBinner(width, ceiling int64, policy BoundaryPolicy) (*Binner, error) {
	if width <= 0 {
		return nil, invalidParameter("bin width must be positive, got %d", width)
	}
	if ceiling <= 0 {
		return nil, invalidParameter("domain ceiling must be positive, got %d", ceiling)
	}

	switch policy {
	case PolicyReject, PolicyClamp, PolicyStrict:
	default:
		return nil, invalidParameter("unknown boundary policy %q", policy)
	}

	if width > math.MaxInt64-ceiling {
		return nil, invalidParameter("bin width %d with ceiling %d overflows the time axis", width, ceiling)
	}

	buckets := ceiling / width
	if ceiling%width != 0 {
		buckets++
	}
	if buckets > math.MaxInt64/width {
		return nil, invalidParameter("bin width %d over ceiling %d overflows the time axis", width, ceiling)
	}
	if buckets > MaxBuckets {
		return nil, invalidParameter("bin width %d over ceiling %d yields %d buckets, max %d",
			width, ceiling, buckets, MaxBuckets)
	}

	return &Binner{
		width:    width,
		ceiling:  ceiling,
		lastEdge: buckets * width,
		policy:   policy,
	}, nil
}

func (b *Binner) Width() int64           { return b.width }
func (b *Binner) Ceiling() int64         { return b.ceiling }
func (b *Binner) LastEdge() int64        { return b.lastEdge }
func (b *Binner) Policy() BoundaryPolicy { return b.policy }

func (b *Binner) BucketCount() int {
	return int(b.lastEdge / b.width)
}

// Edges returns 0, w, 2w, ..., lastEdge.
func (b *Binner) Edges() []int64 {
	n := b.BucketCount()
	edges := make([]int64, 0, n+1)
	for i := 0; i <= n; i++ {
		edges = append(edges, int64(i)*b.width)
	}
	return edges
}

// Interval returns the 1-based bin of ts, or false when ts is outside
// [0, lastEdge). The policy is not applied here.
func (b *Binner) Interval(ts float64) (int, bool) {
	if math.IsNaN(ts) || math.IsInf(ts, 0) || ts < 0 || ts >= float64(b.lastEdge) {
		return 0, false
	}
	return int(int64(math.Floor(ts))/b.width) + 1, true
}

// Assign bins every event in one pass. Under PolicyStrict the first
// out-of-domain event is returned as the error; otherwise rejected events are
// returned alongside the binned ones.
func (b *Binner) Assign(events []Event) ([]BinnedEvent, []*OutOfDomainError, error) {
	binned := make([]BinnedEvent, 0, len(events))
	var rejected []*OutOfDomainError

	last := b.BucketCount()

	for _, e := range events {
		interval, ok := b.Interval(e.Timestamp)
		if !ok && b.policy == PolicyClamp && e.Timestamp >= float64(b.lastEdge) && !math.IsInf(e.Timestamp, 1) {
			interval, ok = last, true
		}

		if !ok {
			ood := &OutOfDomainError{
				DatasetID: e.DatasetID,
				Condition: e.Condition,
				Timestamp: e.Timestamp,
				NeuronID:  e.NeuronID,
				LastEdge:  b.lastEdge,
			}
			if b.policy == PolicyStrict {
				return nil, nil, ood
			}
			rejected = append(rejected, ood)
			continue
		}

		binned = append(binned, BinnedEvent{Event: e, Interval: interval})
	}

	return binned, rejected, nil
}
