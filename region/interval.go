// Package region implements the half-open interval and contig-qualified
// region types that every other package in this module builds on, plus
// SetRegions, an ordered collection of non-overlapping, non-touching
// regions with merge-on-insert semantics.
package region

import (
	"fmt"

	"github.com/wecall-go/variantcore/werrors"
)

// Interval is a half-open range [Start, End) with Start <= End.
type Interval struct {
	Start, End int64
}

// NewInterval builds an Interval, failing with Invariant if start > end.
func NewInterval(start, end int64) (Interval, error) {
	if start > end {
		return Interval{}, werrors.Errorf(werrors.Invariant, "interval start %d > end %d", start, end)
	}
	return Interval{Start: start, End: end}, nil
}

// Size returns End - Start.
func (iv Interval) Size() int64 { return iv.End - iv.Start }

// Empty reports whether the interval has zero size.
func (iv Interval) Empty() bool { return iv.Start == iv.End }

// Overlaps reports whether the two intervals share any point.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// OverlapsOrTouches reports whether the two intervals overlap or abut
// (one's End equals the other's Start).
func (iv Interval) OverlapsOrTouches(other Interval) bool {
	return iv.Start <= other.End && other.Start <= iv.End
}

// ContainsPoint reports whether p lies in [Start, End).
func (iv Interval) ContainsPoint(p int64) bool {
	return iv.Start <= p && p < iv.End
}

// Contains reports whether other is entirely contained in iv.
func (iv Interval) Contains(other Interval) bool {
	return iv.Start <= other.Start && other.End <= iv.End
}

// Intersect returns the overlapping portion of the two intervals; touching
// intervals give an empty interval. Fails with Invariant if they are
// disjoint.
func (iv Interval) Intersect(other Interval) (Interval, error) {
	start := maxInt64(iv.Start, other.Start)
	end := minInt64(iv.End, other.End)
	if start > end {
		return Interval{}, werrors.Errorf(werrors.Invariant, "intervals %v and %v do not overlap", iv, other)
	}
	return Interval{Start: start, End: end}, nil
}

// Pad grows the interval by n on both sides. Fails with Invariant if n < 0
// and would invert the interval.
func (iv Interval) Pad(n int64) (Interval, error) {
	start := iv.Start - n
	end := iv.End + n
	if start > end {
		return Interval{}, werrors.Errorf(werrors.Invariant, "pad %d inverts interval %v", n, iv)
	}
	return Interval{Start: start, End: end}, nil
}

// Combine returns the convex hull of two overlapping or touching intervals.
// Fails with Invariant if the intervals neither overlap nor touch.
func (iv Interval) Combine(other Interval) (Interval, error) {
	if !iv.OverlapsOrTouches(other) {
		return Interval{}, werrors.Errorf(werrors.Invariant, "intervals %v and %v neither overlap nor touch", iv, other)
	}
	return Interval{Start: minInt64(iv.Start, other.Start), End: maxInt64(iv.End, other.End)}, nil
}

// Compare gives a total order over intervals: by Start, then by End.
func (iv Interval) Compare(other Interval) int {
	if iv.Start != other.Start {
		return cmpInt64(iv.Start, other.Start)
	}
	return cmpInt64(iv.End, other.End)
}

func (iv Interval) String() string {
	return fmt.Sprintf("%d-%d", iv.Start, iv.End)
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
