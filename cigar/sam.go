package cigar

import (
	"github.com/grailbio/hts/sam"

	"github.com/wecall-go/variantcore/werrors"
)

// FromSAM converts a decoded sam.Cigar (as produced by bamprovider's
// record reader) into this package's Cigar representation. The two op
// orderings are identical (M I D N S H P = X); sam.CigarBack has no
// analogue here and is rejected.
func FromSAM(c sam.Cigar) (Cigar, error) {
	out := make(Cigar, 0, len(c))
	for _, op := range c {
		t, err := opTypeFromSAM(op.Type())
		if err != nil {
			return nil, err
		}
		out = append(out, Op{Type: t, Length: int64(op.Len())})
	}
	return out, nil
}

func opTypeFromSAM(t sam.CigarOpType) (OpType, error) {
	switch t {
	case sam.CigarMatch:
		return Match, nil
	case sam.CigarInsertion:
		return Insertion, nil
	case sam.CigarDeletion:
		return Deletion, nil
	case sam.CigarSkipped:
		return Skip, nil
	case sam.CigarSoftClipped:
		return SoftClip, nil
	case sam.CigarHardClipped:
		return HardClip, nil
	case sam.CigarPadded:
		return Pad, nil
	case sam.CigarEqual:
		return SeqMatch, nil
	case sam.CigarMismatch:
		return SeqMismatch, nil
	default:
		return 0, werrors.Errorf(werrors.InvalidFormat, "unsupported SAM CIGAR op type %v", t)
	}
}
