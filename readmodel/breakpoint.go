package readmodel

import "github.com/wecall-go/variantcore/region"

// Breakpoint marks a position where a read's soft- or hard-clipped end
// lies, suggesting a structural discontinuity beyond what a CIGAR can
// describe. IsStart tags whether this is the read-start-side clip (true)
// or the read-end-side clip (false) — see DESIGN.md's Open Question
// decision #3 for why that polarity was chosen.
type Breakpoint struct {
	Contig       string
	Position     int64
	IsStart      bool
	ClipSequence string
	// MateRegion is the mate's reference position, present only when the
	// mate is mapped on the same contig; breakpoint loci accumulate these
	// via the same SetRegions merge-on-insert semantics as region input.
	MateRegion *region.Region
}
