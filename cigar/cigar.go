package cigar

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wecall-go/variantcore/werrors"
)

// EmptyPos is the sentinel reference position used by GetRefPositions for
// read offsets that don't correspond to any reference coordinate (bases
// inside an insertion or a soft clip).
const EmptyPos int64 = -1

// Cigar is an ordered sequence of operations.
type Cigar []Op

var opTokenRE = regexp.MustCompile(`(\d+)([MIDNSHP=X])`)

// Parse decodes a CIGAR string over the token regex \d+[MIDNSHP=X]. Fails
// with InvalidFormat on any unmatched character or unknown op letter.
func Parse(text string) (Cigar, error) {
	if text == "" || text == "*" {
		return nil, nil
	}
	matches := opTokenRE.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return nil, werrors.Errorf(werrors.InvalidFormat, "malformed CIGAR string %q", text)
	}
	var c Cigar
	consumed := 0
	for _, m := range matches {
		if m[0] != consumed {
			return nil, werrors.Errorf(werrors.InvalidFormat, "malformed CIGAR string %q", text)
		}
		lengthStr := text[m[2]:m[3]]
		opByte := text[m[4]:m[5]][0]
		length, err := strconv.ParseInt(lengthStr, 10, 64)
		if err != nil {
			return nil, werrors.Wrap(err, werrors.InvalidFormat, "malformed CIGAR length in "+text)
		}
		opType, ok := opTypeFromByte(opByte)
		if !ok {
			return nil, werrors.Errorf(werrors.InvalidFormat, "unknown CIGAR op %q in %q", string(opByte), text)
		}
		op, err := newOp(opType, length)
		if err != nil {
			return nil, err
		}
		c = append(c, op)
		consumed = m[1]
	}
	if consumed != len(text) {
		return nil, werrors.Errorf(werrors.InvalidFormat, "malformed CIGAR string %q", text)
	}
	return c, nil
}

// String renders the CIGAR back to its textual form.
func (c Cigar) String() string {
	var b strings.Builder
	for _, op := range c {
		b.WriteString(strconv.FormatInt(op.Length, 10))
		b.WriteString(op.Type.String())
	}
	return b.String()
}

// Length is the sum of all operation lengths.
func (c Cigar) Length() int64 {
	var total int64
	for _, op := range c {
		total += op.Length
	}
	return total
}

// LengthInRef is the total number of reference bases spanned.
func (c Cigar) LengthInRef() int64 {
	var total int64
	for _, op := range c {
		total += op.LengthInRef()
	}
	return total
}

// LengthInSeq is the total number of read bases spanned.
func (c Cigar) LengthInSeq() int64 {
	var total int64
	for _, op := range c {
		total += op.LengthInSeq()
	}
	return total
}

// LengthInSeqWithoutSoftClip is LengthInSeq minus any soft-clipped bases.
func (c Cigar) LengthInSeqWithoutSoftClip() int64 {
	var total int64
	for _, op := range c {
		if op.Type == SoftClip {
			continue
		}
		total += op.LengthInSeq()
	}
	return total
}

// LengthBeforeRefStartPos sums the lengths of leading ops that precede the
// first op with positive ref length (i.e. leading soft/hard clips and
// insertions before the alignment actually starts consuming reference).
func (c Cigar) LengthBeforeRefStartPos() int64 {
	var total int64
	for _, op := range c {
		if op.LengthInRef() > 0 {
			break
		}
		total += op.Length
	}
	return total
}

// LengthAfterRefEndPos is the symmetric trailing counterpart of
// LengthBeforeRefStartPos.
func (c Cigar) LengthAfterRefEndPos() int64 {
	var total int64
	for i := len(c) - 1; i >= 0; i-- {
		if c[i].LengthInRef() > 0 {
			break
		}
		total += c[i].Length
	}
	return total
}

// Equal reports op-stream equality.
func (c Cigar) Equal(other Cigar) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// GetRefPositions returns, for each read (query) position in turn, the
// reference position it maps to, or EmptyPos when the read base falls
// inside an insertion or soft clip. Ops with zero LengthInSeq (deletions,
// skips, hard clips, padding) contribute no entries, since they occupy no
// read position.
func (c Cigar) GetRefPositions(startPos int64) []int64 {
	var out []int64
	refPos := startPos
	for _, op := range c {
		switch {
		case op.Type.balanced():
			for i := int64(0); i < op.Length; i++ {
				out = append(out, refPos)
				refPos++
			}
		case op.Type == Insertion || op.Type == SoftClip:
			for i := int64(0); i < op.Length; i++ {
				out = append(out, EmptyPos)
			}
		case op.Type.consumesRef():
			refPos += op.Length
		}
	}
	return out
}

// StripSoftClipping drops a leading and/or trailing SoftClip op (only the
// first and last ops are considered) and returns the stripped CIGAR along
// with the front and back clipped sequence lengths.
func (c Cigar) StripSoftClipping() (stripped Cigar, frontClipLen, backClipLen int64) {
	stripped = c
	if len(stripped) > 0 && stripped[0].Type == SoftClip {
		frontClipLen = stripped[0].Length
		stripped = stripped[1:]
	}
	if len(stripped) > 0 && stripped[len(stripped)-1].Type == SoftClip {
		backClipLen = stripped[len(stripped)-1].Length
		stripped = stripped[:len(stripped)-1]
	}
	return stripped, frontClipLen, backClipLen
}
