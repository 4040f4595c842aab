// Package readmodel implements the immutable-after-construction read
// record: flags, CIGAR-driven variant/breakpoint emission, trimming, and
// the read<->reference coordinate inversion used by the candidate-variant
// generator.
package readmodel

import (
	"github.com/grailbio/hts/sam"

	"github.com/wecall-go/variantcore/cigar"
	"github.com/wecall-go/variantcore/reference"
	"github.com/wecall-go/variantcore/region"
	"github.com/wecall-go/variantcore/werrors"
)

// MinAllowedQualityScore is the floor quality score used by trimming and
// recalibration throughout the pipeline.
const MinAllowedQualityScore = 2

// Flags mirrors the BAM alignment flag bitset this package cares about.
type Flags struct {
	Paired        bool
	ProperPair    bool
	Unmapped      bool
	MateUnmapped  bool
	Reverse       bool
	MateReverse   bool
	Read1         bool
	Read2         bool
	Secondary     bool
	Duplicate     bool
	Supplementary bool
}

func flagsFromSAM(f sam.Flags) Flags {
	return Flags{
		Paired:        f&sam.Paired != 0,
		ProperPair:    f&sam.ProperPair != 0,
		Unmapped:      f&sam.Unmapped != 0,
		MateUnmapped:  f&sam.MateUnmapped != 0,
		Reverse:       f&sam.Reverse != 0,
		MateReverse:   f&sam.MateReverse != 0,
		Read1:         f&sam.Read1 != 0,
		Read2:         f&sam.Read2 != 0,
		Secondary:     f&sam.Secondary != 0,
		Duplicate:     f&sam.Duplicate != 0,
		Supplementary: f&sam.Supplementary != 0,
	}
}

// Read is an immutable-after-construction alignment record. Qualities are
// the one mutable field, adjusted by trimming (this package) and
// recalibration (package corrector).
type Read struct {
	Contig        string
	StartPos      int64 // 0-based ref position of the first aligned base
	AlignedEndPos int64 // StartPos + cigar.LengthInRef()
	Sequence      string
	Qualities     []byte
	Cigar         cigar.Cigar
	Flags         Flags
	MappingQual   byte
	InsertSize    int64
	MateContig    string
	MateStartPos  int64
	MateContigID  int
	ContigID      int
	SampleID      string
	Name          string

	window     reference.Window
	isRefBased bool
}

// NewRead decodes an aligned record into a Read. refWindow must cover
// [startPos, startPos+cigar.LengthInRef()). sampleID is the read-group's
// mapped sample name (see intake's header parsing).
func NewRead(contig string, contigID int, startPos int64, seq string, quals []byte, c cigar.Cigar,
	flags Flags, mapQual byte, insertSize int64, mateContig string, mateContigID int, mateStart int64,
	sampleID, name string, refWindow reference.Window) (*Read, error) {

	if len(seq) != len(quals) {
		return nil, werrors.Errorf(werrors.Invariant, "read %s: sequence length %d != qualities length %d", name, len(seq), len(quals))
	}
	if int64(len(seq)) != c.LengthInSeq() {
		return nil, werrors.Errorf(werrors.Invariant, "read %s: sequence length %d != cigar.LengthInSeq() %d", name, len(seq), c.LengthInSeq())
	}

	alignedEnd := startPos + c.LengthInRef()
	r := &Read{
		Contig:        contig,
		ContigID:      contigID,
		StartPos:      startPos,
		AlignedEndPos: alignedEnd,
		Sequence:      seq,
		Qualities:     append([]byte(nil), quals...),
		Cigar:         c,
		Flags:         flags,
		MappingQual:   mapQual,
		InsertSize:    insertSize,
		MateContig:    mateContig,
		MateContigID:  mateContigID,
		MateStartPos:  mateStart,
		SampleID:      sampleID,
		Name:          name,
		window:        refWindow,
	}

	sub, err := refWindow.Subseq(region.Region{Contig: contig, Interval: region.Interval{Start: startPos, End: alignedEnd}})
	if err == nil && sub.Sequence == stripClips(seq, c) {
		r.isRefBased = true
	}
	return r, nil
}

func stripClips(seq string, c cigar.Cigar) string {
	stripped, front, back := c.StripSoftClipping()
	_ = stripped
	return seq[front : int64(len(seq))-back]
}

// IsReference reports whether the read's sequence matches the reference
// window exactly (ignoring soft clips), letting the sequence be recovered
// lazily from the window rather than stored redundantly.
func (r *Read) IsReference() bool { return r.isRefBased }

// GetRegion returns the read's aligned reference region.
func (r *Read) GetRegion() region.Region {
	return region.Region{Contig: r.Contig, Interval: region.Interval{Start: r.StartPos, End: r.AlignedEndPos}}
}

// GetLength is the read's full sequence length.
func (r *Read) GetLength() int64 { return int64(len(r.Sequence)) }

// GetAlignedLength is the reference span covered by the alignment.
func (r *Read) GetAlignedLength() int64 { return r.AlignedEndPos - r.StartPos }

// GetLengthBeforeAlignedStartPos is the CIGAR's leading clip/insertion length.
func (r *Read) GetLengthBeforeAlignedStartPos() int64 { return r.Cigar.LengthBeforeRefStartPos() }

// GetLengthAfterAlignedEndPos is the CIGAR's trailing clip/insertion length.
func (r *Read) GetLengthAfterAlignedEndPos() int64 { return r.Cigar.LengthAfterRefEndPos() }

// IsMateOnSameContig reports whether the mate aligns to this read's contig.
func (r *Read) IsMateOnSameContig() bool {
	return r.Flags.Paired && !r.Flags.MateUnmapped && r.MateContigID == r.ContigID
}

// GetMateIntervalInRef returns the mate's region, valid only when
// IsMateOnSameContig is true — the mate's end isn't known from this
// record alone, so the interval is a single point at its start.
func (r *Read) GetMateIntervalInRef() region.Region {
	return region.Region{Contig: r.MateContig, Interval: region.Interval{Start: r.MateStartPos, End: r.MateStartPos}}
}

// GetMaximalReadInterval returns the read's reference span extended by any
// leading/trailing clip or insertion length, i.e. the full footprint the
// read would occupy if its clipped ends were actually aligned.
func (r *Read) GetMaximalReadInterval() region.Region {
	start := r.StartPos - r.GetLengthBeforeAlignedStartPos()
	end := r.AlignedEndPos + r.GetLengthAfterAlignedEndPos()
	return region.Region{Contig: r.Contig, Interval: region.Interval{Start: start, End: end}}
}

// GetIntervalInRead maps a reference interval into this read's own
// coordinates, clamping it to the aligned span before inverting.
func (r *Read) GetIntervalInRead(refInterval region.Interval) region.Interval {
	clamped := clampInterval(refInterval, region.Interval{Start: 0, End: r.GetAlignedLength()}, r.StartPos)
	return r.Cigar.GetInverseInterval(r.StartPos, clamped)
}

func clampInterval(refInterval region.Interval, alignedSpan region.Interval, startPos int64) region.Interval {
	relStart := refInterval.Start - startPos
	relEnd := refInterval.End - startPos
	if relStart < alignedSpan.Start {
		relStart = alignedSpan.Start
	}
	if relEnd > alignedSpan.End {
		relEnd = alignedSpan.End
	}
	if relEnd < relStart {
		relEnd = relStart
	}
	return region.Interval{Start: relStart + startPos, End: relEnd + startPos}
}
