package region

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/wecall-go/variantcore/werrors"
)

// Region is a contig-qualified interval. Ordering is lexicographic by
// Contig, then by Interval. A Region with End == 0 is "no range" — it
// denotes the whole contig and serialises as the contig name alone.
type Region struct {
	Contig   string
	Interval Interval
}

// NewRegion builds a Region, failing with RegionEmpty when start > end.
func NewRegion(contig string, start, end int64) (Region, error) {
	if start > end {
		return Region{}, werrors.Errorf(werrors.RegionEmpty, "region %s:%d-%d has start > end", contig, start, end)
	}
	return Region{Contig: contig, Interval: Interval{Start: start, End: end}}, nil
}

// NewWholeContigRegion builds the "no range" region denoting an entire
// contig; it serialises as the contig name alone.
func NewWholeContigRegion(contig string) Region {
	return Region{Contig: contig, Interval: Interval{Start: 0, End: 0}}
}

// HasNoRange reports whether the region denotes "the whole contig" (End == 0).
func (r Region) HasNoRange() bool { return r.Interval.End == 0 }

var regionStringRE = regexp.MustCompile(`^([^:]+)(?::(\d+)-(\d+))?$`)

// ParseRegionString parses "contig" or "contig:start-end" (0-based,
// half-open). Fails with InvalidFormat on malformed input.
func ParseRegionString(s string) (Region, error) {
	m := regionStringRE.FindStringSubmatch(s)
	if m == nil {
		return Region{}, werrors.Errorf(werrors.InvalidFormat, "malformed region string %q", s)
	}
	if m[2] == "" {
		return NewWholeContigRegion(m[1]), nil
	}
	start, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return Region{}, werrors.Wrap(err, werrors.InvalidFormat, "malformed region start in "+s)
	}
	end, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return Region{}, werrors.Wrap(err, werrors.InvalidFormat, "malformed region end in "+s)
	}
	return NewRegion(m[1], start, end)
}

// String renders "contig" for a no-range region, else "contig:start-end".
func (r Region) String() string {
	if r.HasNoRange() {
		return r.Contig
	}
	return fmt.Sprintf("%s:%d-%d", r.Contig, r.Interval.Start, r.Interval.End)
}

// Compare gives the total order of §3: lexicographically by Contig, then
// by Interval.
func (r Region) Compare(other Region) int {
	if c := strings.Compare(r.Contig, other.Contig); c != 0 {
		return c
	}
	return r.Interval.Compare(other.Interval)
}

func (r Region) sameContig(other Region) error {
	if r.Contig != other.Contig {
		return werrors.Errorf(werrors.Invariant, "regions on different contigs: %s vs %s", r.Contig, other.Contig)
	}
	return nil
}

// Overlaps reports whether the two regions share any reference position.
func (r Region) Overlaps(other Region) bool {
	return r.Contig == other.Contig && r.Interval.Overlaps(other.Interval)
}

// OverlapsOrTouches reports whether the two regions overlap or abut.
func (r Region) OverlapsOrTouches(other Region) bool {
	return r.Contig == other.Contig && r.Interval.OverlapsOrTouches(other.Interval)
}

// Contains reports whether other is entirely contained in r.
func (r Region) Contains(other Region) bool {
	return r.Contig == other.Contig && r.Interval.Contains(other.Interval)
}

// ContainsPoint reports whether (contig, p) lies in r.
func (r Region) ContainsPoint(contig string, p int64) bool {
	return r.Contig == contig && r.Interval.ContainsPoint(p)
}

// Combine returns the convex hull of two regions on the same contig.
// Fails with Invariant if the contigs differ or the intervals neither
// overlap nor touch.
func (r Region) Combine(other Region) (Region, error) {
	if err := r.sameContig(other); err != nil {
		return Region{}, err
	}
	iv, err := r.Interval.Combine(other.Interval)
	if err != nil {
		return Region{}, err
	}
	return Region{Contig: r.Contig, Interval: iv}, nil
}

// GetIntersect returns the overlapping portion of two same-contig regions.
// Fails with Invariant on cross-contig input or non-overlapping regions.
func (r Region) GetIntersect(other Region) (Region, error) {
	if err := r.sameContig(other); err != nil {
		return Region{}, err
	}
	iv, err := r.Interval.Intersect(other.Interval)
	if err != nil {
		return Region{}, err
	}
	return Region{Contig: r.Contig, Interval: iv}, nil
}

// Pad grows the region's interval by n on both sides.
func (r Region) Pad(n int64) (Region, error) {
	iv, err := r.Interval.Pad(n)
	if err != nil {
		return Region{}, err
	}
	return Region{Contig: r.Contig, Interval: iv}, nil
}
