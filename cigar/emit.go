package cigar

import "github.com/wecall-go/variantcore/region"

// Offsets tracks the cumulative (read, ref) position reached while walking
// a CIGAR, relative to the read's own start.
type Offsets struct {
	Read, Ref int64
}

// Candidate is a raw variant candidate emitted by a single CIGAR op: a
// region on the reference plus its alternate sequence. The reference
// allele is implicit — it's whatever the owning reference window holds
// over Region. Pure insertions have a zero-width Region; pure deletions
// have an empty Alt.
type Candidate struct {
	Region region.Region
	Alt    string
}

// EmitVariants walks the CIGAR driving per-operation variant emission, as
// summarised in §4.C: MATCH-family ops emit one SNP per ref/read mismatch;
// INS emits a single insertion candidate unless it starts at the very
// front of the read or runs off its end; DEL emits a single deletion
// candidate unless it starts at or before the read's front or at/after its
// end. Other ops emit nothing.
//
// refSeq must be exactly the reference subsequence covering
// [startPos, startPos+c.LengthInRef()) — i.e. refSeq[i] corresponds to
// reference position startPos+i. readSeq is the read's full sequence.
func (c Cigar) EmitVariants(contig string, startPos int64, refSeq, readSeq string) []Candidate {
	var out []Candidate
	var off Offsets
	for _, op := range c {
		switch {
		case op.Type.balanced():
			out = append(out, emitMatchSNPs(contig, startPos, refSeq, readSeq, off, op.Length)...)
		case op.Type == Insertion:
			if cand, ok := emitInsertion(contig, startPos, readSeq, off, op.Length); ok {
				out = append(out, cand)
			}
		case op.Type == Deletion:
			if cand, ok := emitDeletion(contig, startPos, readSeq, off, op.Length); ok {
				out = append(out, cand)
			}
		}
		off.Read += op.LengthInSeq()
		off.Ref += op.LengthInRef()
	}
	return out
}

func emitMatchSNPs(contig string, startPos int64, refSeq, readSeq string, off Offsets, length int64) []Candidate {
	var out []Candidate
	for i := int64(0); i < length; i++ {
		refIdx := off.Ref + i
		readIdx := off.Read + i
		if refIdx >= int64(len(refSeq)) || readIdx >= int64(len(readSeq)) {
			break
		}
		refBase := refSeq[refIdx]
		readBase := readSeq[readIdx]
		if refBase == readBase {
			continue
		}
		pos := startPos + refIdx
		out = append(out, Candidate{
			Region: region.Region{Contig: contig, Interval: region.Interval{Start: pos, End: pos + 1}},
			Alt:    string(readBase),
		})
	}
	return out
}

func emitInsertion(contig string, startPos int64, readSeq string, off Offsets, length int64) (Candidate, bool) {
	if length == 0 || off.Read <= 0 || off.Read+length >= int64(len(readSeq)) {
		return Candidate{}, false
	}
	pos := startPos + off.Ref
	return Candidate{
		Region: region.Region{Contig: contig, Interval: region.Interval{Start: pos, End: pos}},
		Alt:    readSeq[off.Read : off.Read+length],
	}, true
}

func emitDeletion(contig string, startPos int64, readSeq string, off Offsets, length int64) (Candidate, bool) {
	// Matches the original's asymmetric guard: deletions are rejected when
	// they start at or before the very front of the read, or at/after its
	// end — see DESIGN.md's Open Question decision #1.
	if off.Read <= 0 || off.Read >= int64(len(readSeq)) {
		return Candidate{}, false
	}
	pos := startPos + off.Ref
	return Candidate{
		Region: region.Region{Contig: contig, Interval: region.Interval{Start: pos, End: pos + length}},
	}, true
}
