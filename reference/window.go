// Package reference implements the reference-sequence store: cached contig
// windows padded with N outside contig bounds, and sub-region views.
package reference

import (
	"github.com/wecall-go/variantcore/region"
	"github.com/wecall-go/variantcore/werrors"
)

// padChar is the gap character used outside contig bounds.
const padChar = 'N'

// Window is a materialised reference sequence covering Region, with
// len(Sequence) == Region.Interval.Size().
type Window struct {
	Region   region.Region
	Sequence string
}

// Subseq returns the window covering sub, which must be contained in w's
// region. Fails with Invariant otherwise.
func (w Window) Subseq(sub region.Region) (Window, error) {
	if !w.Region.Contains(sub) {
		return Window{}, werrors.Errorf(werrors.Invariant,
			"window %s does not cover requested sub-region %s", w.Region, sub)
	}
	off := sub.Interval.Start - w.Region.Interval.Start
	return Window{
		Region:   sub,
		Sequence: w.Sequence[off : off+sub.Interval.Size()],
	}, nil
}

// GetPadded returns the sequence of sub, using w's sequence wherever it
// covers the requested positions and padChar ('N') elsewhere (sub may
// extend any distance outside w's region on either side, and outside the
// owning contig entirely).
func (w Window) GetPadded(sub region.Region) (string, error) {
	if sub.Contig != w.Region.Contig {
		return "", werrors.Errorf(werrors.Invariant, "GetPadded contig mismatch: %s vs %s", sub.Contig, w.Region.Contig)
	}
	size := sub.Interval.Size()
	out := make([]byte, size)
	for i := range out {
		out[i] = padChar
	}
	overlap, err := sub.Interval.Intersect(w.Region.Interval)
	if err == nil {
		srcOff := overlap.Start - w.Region.Interval.Start
		dstOff := overlap.Start - sub.Interval.Start
		copy(out[dstOff:dstOff+overlap.Size()], w.Sequence[srcOff:srcOff+overlap.Size()])
	}
	return string(out), nil
}
