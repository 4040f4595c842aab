// Package variant implements candidate variants, their normalisation
// (left-align, join, split), the canonicalised VariantContainer, and the
// final read/sample-support filter.
package variant

import (
	"strings"

	"github.com/wecall-go/variantcore/readmodel"
	"github.com/wecall-go/variantcore/reference"
	"github.com/wecall-go/variantcore/region"
	"github.com/wecall-go/variantcore/werrors"
)

// Category classifies a variant by the shape of its ref/alt pair.
type Category int

const (
	SNP Category = iota
	MNP
	Insertion
	Deletion
	Complex
)

// Variant is tagged by (reference window, region, alt sequence); its ref
// allele is implicit — window.Subseq(region).Sequence.
type Variant struct {
	RefWindow reference.Window
	Region    region.Region
	Alt       string

	Prior          float64
	NeverFilter    bool
	IsGenotyping   bool
	FromBreakpoint bool

	supportingReads []*readmodel.Read
}

// New builds a Variant. refWindow must cover region.
func New(refWindow reference.Window, r region.Region, alt string) (Variant, error) {
	if !refWindow.Region.Contains(r) {
		return Variant{}, werrors.New(werrors.Invariant, "variant region not covered by its reference window")
	}
	return Variant{RefWindow: refWindow, Region: r, Alt: alt}, nil
}

// Ref returns the reference allele.
func (v Variant) Ref() string {
	sub, err := v.RefWindow.Subseq(v.Region)
	if err != nil {
		// v.Region is guaranteed covered at construction time; a failure
		// here means the window was mutated out from under us.
		panic(err)
	}
	return sub.Sequence
}

// Category classifies the variant by ref/alt shape.
func (v Variant) Category() Category {
	ref, alt := v.Ref(), v.Alt
	switch {
	case len(ref) == 1 && len(alt) == 1:
		return SNP
	case len(ref) == len(alt) && len(ref) > 1:
		return MNP
	case len(ref) == 0:
		return Insertion
	case len(alt) == 0:
		return Deletion
	default:
		return Complex
	}
}

// IsPureIndel reports whether exactly one of ref/alt is empty.
func (v Variant) IsPureIndel() bool {
	return (len(v.Ref()) == 0) != (len(v.Alt) == 0)
}

// ZeroIndexedVCFPos is the variant's VCF-style anchor position: start-1
// for pure indels (so the anchor base precedes the event), else start.
func (v Variant) ZeroIndexedVCFPos() int64 {
	if v.IsPureIndel() {
		return v.Region.Interval.Start - 1
	}
	return v.Region.Interval.Start
}

// AddRead records read in the variant's supporting-read list
// unconditionally (support-count gating happens in the container).
func (v *Variant) AddRead(r *readmodel.Read) {
	v.supportingReads = append(v.supportingReads, r)
}

// SupportingReads returns the reads recorded via AddRead.
func (v Variant) SupportingReads() []*readmodel.Read {
	return v.supportingReads
}

// Compare gives the §3 total order: contig, zero-indexed VCF position,
// end, sequence length (of Alt), then Alt lexically.
func (v Variant) Compare(other Variant) int {
	if c := strings.Compare(v.Region.Contig, other.Region.Contig); c != 0 {
		return c
	}
	if a, b := v.ZeroIndexedVCFPos(), other.ZeroIndexedVCFPos(); a != b {
		if a < b {
			return -1
		}
		return 1
	}
	if a, b := v.Region.Interval.End, other.Region.Interval.End; a != b {
		if a < b {
			return -1
		}
		return 1
	}
	if a, b := len(v.Alt), len(other.Alt); a != b {
		if a < b {
			return -1
		}
		return 1
	}
	return strings.Compare(v.Alt, other.Alt)
}
