package readmodel

import (
	"github.com/grailbio/hts/sam"

	"github.com/wecall-go/variantcore/cigar"
	"github.com/wecall-go/variantcore/reference"
	"github.com/wecall-go/variantcore/werrors"
)

// FromSAMRecord builds a Read from a decoded sam.Record, the shape
// bamprovider.Provider hands back per alignment. sampleID is the mapped
// sample name for the record's read group (see intake's header parsing);
// refWindow must cover the record's aligned span.
func FromSAMRecord(rec *sam.Record, sampleID string, refWindow reference.Window) (*Read, error) {
	c, err := cigar.FromSAM(rec.Cigar)
	if err != nil {
		return nil, err
	}

	var mateContig string
	mateContigID := -1
	var mateStart int64
	if rec.MateRef != nil {
		mateContig = rec.MateRef.Name()
		mateContigID = rec.MateRef.ID()
		mateStart = int64(rec.MatePos)
	}

	contig := ""
	contigID := -1
	if rec.Ref != nil {
		contig = rec.Ref.Name()
		contigID = rec.Ref.ID()
	}
	if contig == "" {
		return nil, werrors.New(werrors.Invariant, "read has no reference assigned")
	}

	return NewRead(
		contig, contigID, int64(rec.Pos),
		string(rec.Seq.Expand()), append([]byte(nil), rec.Qual...), c,
		flagsFromSAM(rec.Flags), rec.MapQ, int64(rec.TempLen),
		mateContig, mateContigID, mateStart,
		sampleID, rec.Name, refWindow,
	)
}
