package region

import (
	"sort"

	"github.com/wecall-go/variantcore/werrors"
)

// SetRegions holds an ordered collection of regions that is always kept
// pairwise non-overlapping and non-touching: Insert merges any region that
// overlaps or touches an existing member into a single convex-hull span.
type SetRegions struct {
	members []Region
}

// NewSetRegions builds an empty SetRegions.
func NewSetRegions() *SetRegions {
	return &SetRegions{}
}

// Regions returns the current members in sorted order. The returned slice
// must not be mutated by the caller.
func (s *SetRegions) Regions() []Region {
	return s.members
}

// Len returns the number of members.
func (s *SetRegions) Len() int { return len(s.members) }

// Insert merges r with every member it overlaps or touches, replacing them
// with the union. sort.Search locates the insertion point on Compare order
// in O(log n); the two scans that widen it to the overlap/touch window are
// bounded by however many members r actually merges with, matching the
// endpoint-indexed approach of interval/bedunion.go.
func (s *SetRegions) Insert(r Region) error {
	lo := sort.Search(len(s.members), func(i int) bool {
		return s.members[i].Compare(r) >= 0
	})
	for lo > 0 && s.members[lo-1].OverlapsOrTouches(r) {
		lo--
	}
	hi := lo
	merged := r
	for hi < len(s.members) && s.members[hi].OverlapsOrTouches(merged) {
		combined, err := merged.Combine(s.members[hi])
		if err != nil {
			return err
		}
		merged = combined
		hi++
	}
	newMembers := make([]Region, 0, len(s.members)-(hi-lo)+1)
	newMembers = append(newMembers, s.members[:lo]...)
	newMembers = append(newMembers, merged)
	newMembers = append(newMembers, s.members[hi:]...)
	s.members = newMembers
	return nil
}

// Fill inserts the convex hull of every pair of adjacent same-contig
// members whose gap is <= d, effectively bridging nearby regions.
func (s *SetRegions) Fill(d int64) error {
	if len(s.members) < 2 {
		return nil
	}
	var toInsert []Region
	for i := 0; i+1 < len(s.members); i++ {
		a, b := s.members[i], s.members[i+1]
		if a.Contig != b.Contig {
			continue
		}
		gap := b.Interval.Start - a.Interval.End
		if gap >= 0 && gap <= d {
			filler := Region{Contig: a.Contig, Interval: Interval{Start: a.Interval.Start, End: b.Interval.End}}
			toInsert = append(toInsert, filler)
		}
	}
	for _, f := range toInsert {
		if err := s.Insert(f); err != nil {
			return err
		}
	}
	return nil
}

// AllSameContig reports whether every member shares one contig. True for
// an empty or singleton set.
func (s *SetRegions) AllSameContig() bool {
	if len(s.members) == 0 {
		return true
	}
	contig := s.members[0].Contig
	for _, m := range s.members[1:] {
		if m.Contig != contig {
			return false
		}
	}
	return true
}

// GetSpan returns the convex hull of all members. Fails with Invariant on
// an empty set or when members don't all share one contig.
func (s *SetRegions) GetSpan() (Region, error) {
	if len(s.members) == 0 {
		return Region{}, werrors.New(werrors.Invariant, "GetSpan on empty SetRegions")
	}
	if !s.AllSameContig() {
		return Region{}, werrors.New(werrors.Invariant, "GetSpan requires all members on the same contig")
	}
	first, last := s.members[0], s.members[len(s.members)-1]
	return Region{Contig: first.Contig, Interval: Interval{Start: first.Interval.Start, End: last.Interval.End}}, nil
}
