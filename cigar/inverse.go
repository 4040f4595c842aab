package cigar

import "github.com/wecall-go/variantcore/region"

// GetInverseInterval maps a reference-coordinate interval back into read
// (query) coordinates for a read whose alignment begins at startPos. It is
// the sole routine in this package that inverts the ref-to-read mapping,
// and honours three properties: (i) an empty, balanced-op-covered interval
// maps to an empty read interval; (ii) an interval containing the whole
// aligned span maps to the whole read span; (iii) intervals left or right
// of the aligned region saturate to the read's start or end.
func (c Cigar) GetInverseInterval(startPos int64, refInterval region.Interval) region.Interval {
	refLen := c.LengthInRef()
	relStart := refInterval.Start - startPos
	relEnd := refInterval.End - startPos

	if relStart < 0 {
		relStart = 0
	}
	if relEnd > refLen {
		relEnd = refLen
	}
	if relEnd < relStart {
		relEnd = relStart
	}

	readStart := c.inverseOffset(relStart, false)
	readEnd := c.inverseOffset(relEnd, true)
	if readEnd < readStart {
		readEnd = readStart
	}
	return region.Interval{Start: readStart, End: readEnd}
}

// inverseOffset maps a single ref-relative offset to a read offset. When
// isEnd is true, an op with zero ref length sitting exactly at relPos (an
// insertion or soft clip abutting the boundary) is folded into the result
// so the output interval fully encloses it; when isEnd is false such an op
// is excluded, keeping the start boundary tight. DEL/SKIP ops collapse
// their interior ref positions onto the read offset at the op's start,
// since they consume no read bases.
func (c Cigar) inverseOffset(relPos int64, isEnd bool) int64 {
	readOff, refOff := int64(0), int64(0)
	for _, op := range c {
		opRefLen := op.LengthInRef()
		opSeqLen := op.LengthInSeq()
		if opRefLen > 0 {
			if relPos <= refOff {
				return readOff
			}
			if relPos < refOff+opRefLen {
				if op.Type.balanced() {
					return readOff + (relPos - refOff)
				}
				// Unbalanced ref-consuming op (DEL/SKIP): any interior
				// point collapses to the op's read-space start.
				return readOff
			}
			refOff += opRefLen
			readOff += opSeqLen
			continue
		}
		// Zero ref-length op: INS/SOFT_CLIP consume read bases, HARD_CLIP/
		// PAD consume nothing.
		if relPos == refOff && opSeqLen > 0 {
			if isEnd {
				readOff += opSeqLen
				continue
			}
			return readOff
		}
		readOff += opSeqLen
	}
	return readOff
}
