package intake

import "github.com/wecall-go/variantcore/readmodel"

// ShortFragmentMode selects how trimReadOfShortFragment-eligible reads are
// handled — as a hard filter, or as an adapter-quality-trim (supplemented
// feature 2; original_source carries both).
type ShortFragmentMode int

const (
	ShortFragmentFilter ShortFragmentMode = iota
	ShortFragmentAdapterTrim
)

// FilterOpts collects the read-level gates applied before a read is kept
// for candidate-variant generation (§4.F).
type FilterOpts struct {
	MinMappingQuality    byte
	ExcludeMateUnmapped  bool
	ExcludeImproperPair  bool
	ShortFragmentMode    ShortFragmentMode
}

// DefaultFilterOpts mirrors common caller defaults: MAPQ >= 20, proper
// pairs and mapped mates optional, adapter-trim rather than hard filter
// for short fragments.
func DefaultFilterOpts() FilterOpts {
	return FilterOpts{MinMappingQuality: 20, ShortFragmentMode: ShortFragmentAdapterTrim}
}

// Passes reports whether r survives the unconditional and configured
// optional gates of §4.F: unmapped, secondary, duplicate and
// below-threshold mapping quality always reject; mate-unmapped and
// improper-pair are optional per opts.
func (o FilterOpts) Passes(r *readmodel.Read) bool {
	f := r.Flags
	if f.Unmapped || f.Secondary || f.Duplicate {
		return false
	}
	if r.MappingQual < o.MinMappingQuality {
		return false
	}
	if o.ExcludeMateUnmapped && f.MateUnmapped {
		return false
	}
	if o.ExcludeImproperPair && f.Paired && !f.ProperPair {
		return false
	}
	if o.ShortFragmentMode == ShortFragmentFilter && isShortFragment(r) {
		return false
	}
	return true
}

func isShortFragment(r *readmodel.Read) bool {
	return r.Flags.Paired && r.Flags.ProperPair && abs64(r.InsertSize) <= r.GetLength()
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// TrimAndFilter applies §4.F's trim/filter pipeline to one read: overlap
// and (if configured as an adapter-trim rather than a hard filter)
// short-fragment trimming happen before the keep/reject decision.
func TrimAndFilter(r *readmodel.Read, opts FilterOpts) bool {
	r.TrimOverlap()
	if opts.ShortFragmentMode == ShortFragmentAdapterTrim {
		r.TrimReadOfShortFragment()
	}
	return opts.Passes(r)
}

// FilterSimilarToKept reports whether r is similar enough to any
// already-kept read at the same start position that it should be
// dropped as a near-duplicate of unclear provenance — an optional gate
// (§4.F); similarity is exact sequence equality at a shared start.
func FilterSimilarToKept(r *readmodel.Read, kept []*readmodel.Read) bool {
	for _, k := range kept {
		if k.StartPos == r.StartPos && k.Sequence == r.Sequence {
			return true
		}
	}
	return false
}
