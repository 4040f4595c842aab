package cluster

import (
	"github.com/wecall-go/variantcore/readmodel"
	"github.com/wecall-go/variantcore/variant"
)

// PairState classifies how two variants' supporting reads co-occur.
type PairState int

const (
	// Uncertain is returned when neither variant has enough supporting
	// reads to draw a conclusion, or the pair is too far apart to trust.
	Uncertain PairState = iota
	NeverTogether
	AlwaysTogether
	FirstImpliesSecond
	SecondImpliesFirst
)

// PairwiseState computes the §4.J co-occurrence state for a, b given
// minReadsToSupportClaim (m) and maxClusterDistance — pairs whose span
// reaches or exceeds maxClusterDistance are always Uncertain.
func PairwiseState(a, b variant.Variant, minReadsToSupportClaim int, maxClusterDistance int64) PairState {
	span := pairSpan(a, b)
	if span >= maxClusterDistance {
		return Uncertain
	}

	ra := containingBoth(a.SupportingReads(), a, b)
	rb := containingBoth(b.SupportingReads(), a, b)
	shared := intersectReads(ra, rb)

	na, nb, n := len(ra), len(rb), len(shared)
	m := minReadsToSupportClaim

	switch {
	case n == 0 && na >= m && nb >= m:
		return NeverTogether
	case n == na && n == nb && n >= m:
		return AlwaysTogether
	case n == nb && na > nb && nb >= m:
		return SecondImpliesFirst
	case n == na && nb > na && na >= m:
		return FirstImpliesSecond
	default:
		return Uncertain
	}
}

func pairSpan(a, b variant.Variant) int64 {
	lo, hi := a.Region.Interval.Start, b.Region.Interval.End
	if b.Region.Interval.Start < lo {
		lo = b.Region.Interval.Start
	}
	if a.Region.Interval.End > hi {
		hi = a.Region.Interval.End
	}
	return hi - lo
}

// containingBoth filters reads to those whose maximal read interval
// contains both a's and b's region spans.
func containingBoth(reads []*readmodel.Read, a, b variant.Variant) []*readmodel.Read {
	var out []*readmodel.Read
	for _, r := range reads {
		maxInterval := r.GetMaximalReadInterval()
		if maxInterval.Contains(a.Region) && maxInterval.Contains(b.Region) {
			out = append(out, r)
		}
	}
	return out
}

func intersectReads(a, b []*readmodel.Read) []*readmodel.Read {
	set := make(map[*readmodel.Read]bool, len(a))
	for _, r := range a {
		set[r] = true
	}
	var out []*readmodel.Read
	for _, r := range b {
		if set[r] {
			out = append(out, r)
		}
	}
	return out
}
