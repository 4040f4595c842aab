// Package cigar implements the alignment CIGAR engine: operation decoding,
// (read, ref) coordinate walks, per-operation variant emission, and the
// getInverseInterval coordinate-inversion routine.
package cigar

import "github.com/wecall-go/variantcore/werrors"

// OpType tags a single CIGAR operation. Values follow the same ordering as
// the SAM spec's CIGAR alphabet (M I D N S H P = X).
type OpType int

const (
	Match OpType = iota
	Insertion
	Deletion
	Skip
	SoftClip
	HardClip
	Pad
	SeqMatch
	SeqMismatch
)

func (t OpType) String() string {
	switch t {
	case Match:
		return "M"
	case Insertion:
		return "I"
	case Deletion:
		return "D"
	case Skip:
		return "N"
	case SoftClip:
		return "S"
	case HardClip:
		return "H"
	case Pad:
		return "P"
	case SeqMatch:
		return "="
	case SeqMismatch:
		return "X"
	default:
		return "?"
	}
}

func opTypeFromByte(b byte) (OpType, bool) {
	switch b {
	case 'M':
		return Match, true
	case 'I':
		return Insertion, true
	case 'D':
		return Deletion, true
	case 'N':
		return Skip, true
	case 'S':
		return SoftClip, true
	case 'H':
		return HardClip, true
	case 'P':
		return Pad, true
	case '=':
		return SeqMatch, true
	case 'X':
		return SeqMismatch, true
	default:
		return 0, false
	}
}

// consumesRef reports whether one unit of this op type advances the
// reference coordinate.
func (t OpType) consumesRef() bool {
	switch t {
	case Match, Deletion, Skip, SeqMatch, SeqMismatch:
		return true
	default:
		return false
	}
}

// consumesSeq reports whether one unit of this op type advances the read
// (query) coordinate.
func (t OpType) consumesSeq() bool {
	switch t {
	case Match, Insertion, SoftClip, SeqMatch, SeqMismatch:
		return true
	default:
		return false
	}
}

// balanced reports whether the op advances ref and read coordinates in
// lockstep (one base of each per unit length): MATCH, SEQ_MATCH, SEQ_MISMATCH.
func (t OpType) balanced() bool {
	switch t {
	case Match, SeqMatch, SeqMismatch:
		return true
	default:
		return false
	}
}

// Op is a single (type, length) CIGAR operation.
type Op struct {
	Type   OpType
	Length int64
}

// LengthInRef is the number of reference bases this op spans.
func (o Op) LengthInRef() int64 {
	if o.Type.consumesRef() {
		return o.Length
	}
	return 0
}

// LengthInSeq is the number of read bases this op spans.
func (o Op) LengthInSeq() int64 {
	if o.Type.consumesSeq() {
		return o.Length
	}
	return 0
}

func newOp(t OpType, length int64) (Op, error) {
	if length < 0 {
		return Op{}, werrors.Errorf(werrors.InvalidFormat, "negative CIGAR op length %d", length)
	}
	return Op{Type: t, Length: length}, nil
}
