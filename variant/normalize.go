package variant

import (
	"github.com/wecall-go/variantcore/reference"
	"github.com/wecall-go/variantcore/region"
	"github.com/wecall-go/variantcore/werrors"
)

// Normalise runs the monotonic-reducer normalisation algorithm of §4.G
// over variants (already ordered in the read's strand direction), against
// refWindow. Every indel is left-aligned to the smallest possible start;
// no two adjacent variants in the result can be joined into a shorter
// combined form without that form being immediately re-splittable back to
// the same or a simpler list. SNPs pass through unchanged.
//
// Per DESIGN.md's Open Question decision #2, left-alignment stops at
// refWindow's start, or at the end of the previous variant already
// output; reaching either bound is not an error, and Normalise does not
// check that refWindow extends to the left of an indel.
func Normalise(variants []Variant, refWindow reference.Window) ([]Variant, error) {
	pending := make([]Variant, len(variants))
	copy(pending, variants)
	// Process left-to-right: pending acts as a work stack, so push in
	// reverse to pop in original order.
	reverse(pending)

	var out []Variant
	for len(pending) > 0 {
		v := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if v.Category() == SNP {
			out = append(out, v)
			continue
		}

		lowerBound := refWindow.Region.Interval.Start
		if len(out) > 0 {
			lowerBound = out[len(out)-1].Region.Interval.End
		}
		aligned, err := leftAlign(v, lowerBound)
		if err != nil {
			return nil, err
		}

		if len(out) > 0 && joinable(out[len(out)-1], aligned) {
			prev := out[len(out)-1]
			out = out[:len(out)-1]
			joined, err := join(prev, aligned)
			if err != nil {
				return nil, err
			}
			split := splitVariant(joined)
			// Push in reverse so the pending stack pops them back out in
			// their natural left-to-right order, re-entering the reducer.
			for i := len(split) - 1; i >= 0; i-- {
				pending = append(pending, split[i])
			}
			continue
		}
		out = append(out, aligned)
	}
	return out, nil
}

func reverse(vs []Variant) {
	for i, j := 0, len(vs)-1; i < j; i, j = i+1, j-1 {
		vs[i], vs[j] = vs[j], vs[i]
	}
}

// joinable reports whether a and b touch end-to-end on the same contig —
// the precondition for Join.
func joinable(a, b Variant) bool {
	return a.Region.Contig == b.Region.Contig && a.Region.Interval.End == b.Region.Interval.Start
}

// join concatenates two touching variants' ref/alt into one.
func join(a, b Variant) (Variant, error) {
	if !joinable(a, b) {
		return Variant{}, werrors.New(werrors.Invariant, "join requires touching same-contig variants")
	}
	newRegion := region.Region{Contig: a.Region.Contig, Interval: region.Interval{Start: a.Region.Interval.Start, End: b.Region.Interval.End}}
	return Variant{
		RefWindow: a.RefWindow,
		Region:    newRegion,
		Alt:       a.Alt + b.Alt,
	}, nil
}

// leftAlign shifts an indel's start leftward one base at a time while the
// base immediately preceding the current start equals the last base of
// the current ref+alt concatenation, and the start remains strictly above
// lowerBound.
func leftAlign(v Variant, lowerBound int64) (Variant, error) {
	s := v.Region.Interval.Start
	e := v.Region.Interval.End
	alt := v.Alt

	for s > lowerBound {
		combined := v.refBetween(s, e) + alt
		if len(combined) == 0 {
			break
		}
		lastBase := combined[len(combined)-1]

		precedingRegion := region.Region{Contig: v.Region.Contig, Interval: region.Interval{Start: s - 1, End: s}}
		if !v.RefWindow.Region.Contains(precedingRegion) {
			return Variant{}, werrors.Errorf(werrors.Invariant,
				"left-alignment of variant at %s needs reference context before the window start", v.Region)
		}
		precedingSub, err := v.RefWindow.Subseq(precedingRegion)
		if err != nil {
			return Variant{}, err
		}
		precedingBase := precedingSub.Sequence[0]
		if precedingBase != lastBase {
			break
		}

		if len(alt) > 0 {
			alt = string(precedingBase) + alt[:len(alt)-1]
		}
		s--
		e--
	}

	newRegion := region.Region{Contig: v.Region.Contig, Interval: region.Interval{Start: s, End: e}}
	return Variant{
		RefWindow:      v.RefWindow,
		Region:         newRegion,
		Alt:            alt,
		Prior:          v.Prior,
		NeverFilter:    v.NeverFilter,
		IsGenotyping:   v.IsGenotyping,
		FromBreakpoint: v.FromBreakpoint,
	}, nil
}

// refBetween returns the reference sequence of [start, end) under v's
// window, or "" if start==end (a pure insertion has no ref bases).
func (v Variant) refBetween(start, end int64) string {
	if start == end {
		return ""
	}
	sub, err := v.RefWindow.Subseq(region.Region{Contig: v.Region.Contig, Interval: region.Interval{Start: start, End: end}})
	if err != nil {
		return ""
	}
	return sub.Sequence
}

// splitVariant peels matching right ends, then matching left ends, emits
// SNPs for the remaining length-aligned columns, and leaves at most one
// residual pure indel for whatever is left over on the longer side.
func splitVariant(v Variant) []Variant {
	ref := v.Ref()
	alt := v.Alt
	s, e := v.Region.Interval.Start, v.Region.Interval.End

	for len(ref) > 0 && len(alt) > 0 && ref[len(ref)-1] == alt[len(alt)-1] {
		ref = ref[:len(ref)-1]
		alt = alt[:len(alt)-1]
		e--
	}
	for len(ref) > 0 && len(alt) > 0 && ref[0] == alt[0] {
		ref = ref[1:]
		alt = alt[1:]
		s++
	}

	var out []Variant
	minLen := len(ref)
	if len(alt) < minLen {
		minLen = len(alt)
	}
	for i := 0; i < minLen; i++ {
		if ref[i] != alt[i] {
			pos := s + int64(i)
			out = append(out, Variant{
				RefWindow: v.RefWindow,
				Region:    region.Region{Contig: v.Region.Contig, Interval: region.Interval{Start: pos, End: pos + 1}},
				Alt:       string(alt[i]),
			})
		}
	}

	switch {
	case len(ref) > minLen:
		residualStart := s + int64(minLen)
		out = append(out, Variant{
			RefWindow: v.RefWindow,
			Region:    region.Region{Contig: v.Region.Contig, Interval: region.Interval{Start: residualStart, End: e}},
		})
	case len(alt) > minLen:
		residualPos := s + int64(minLen)
		out = append(out, Variant{
			RefWindow: v.RefWindow,
			Region:    region.Region{Contig: v.Region.Contig, Interval: region.Interval{Start: residualPos, End: residualPos}},
			Alt:       alt[minLen:],
		})
	}
	return out
}
