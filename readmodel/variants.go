package readmodel

import (
	"github.com/wecall-go/variantcore/cigar"
)

// GetVariants walks the CIGAR driving per-operation candidate-variant
// emission (cigar.EmitVariants). Reference-matching reads contribute
// nothing — there is nothing to call.
func (r *Read) GetVariants() ([]cigar.Candidate, error) {
	if r.IsReference() {
		return nil, nil
	}
	sub, err := r.window.Subseq(r.GetRegion())
	if err != nil {
		return nil, err
	}
	return r.Cigar.EmitVariants(r.Contig, r.StartPos, sub.Sequence, r.Sequence), nil
}

// GetBreakpoints emits at most two locus records, one per soft/hard-clip
// terminal op; a CIGAR with fewer than two ops yields none (there's no
// "aligned interior" for a clip to be relative to).
func (r *Read) GetBreakpoints() []Breakpoint {
	if len(r.Cigar) < 2 {
		return nil
	}
	var out []Breakpoint
	first, last := r.Cigar[0], r.Cigar[len(r.Cigar)-1]

	if bp, ok := clipBreakpoint(r, first, true); ok {
		out = append(out, bp)
	}
	if bp, ok := clipBreakpoint(r, last, false); ok {
		out = append(out, bp)
	}

	if len(out) > 0 && r.IsMateOnSameContig() {
		mateRegion := r.GetMateIntervalInRef()
		for i := range out {
			out[i].MateRegion = &mateRegion
		}
	}
	return out
}

func clipBreakpoint(r *Read, op cigar.Op, isStart bool) (Breakpoint, bool) {
	var pos int64
	if isStart {
		pos = r.StartPos
	} else {
		pos = r.AlignedEndPos
	}
	switch op.Type {
	case cigar.SoftClip:
		var clip string
		if isStart {
			clip = r.Sequence[:op.Length]
		} else {
			clip = r.Sequence[int64(len(r.Sequence))-op.Length:]
		}
		return Breakpoint{Contig: r.Contig, Position: pos, IsStart: isStart, ClipSequence: clip}, true
	case cigar.HardClip:
		return Breakpoint{Contig: r.Contig, Position: pos, IsStart: isStart}, true
	default:
		return Breakpoint{}, false
	}
}
