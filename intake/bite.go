package intake

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/hts/sam"

	"github.com/wecall-go/variantcore/cigar"
	"github.com/wecall-go/variantcore/readmodel"
	"github.com/wecall-go/variantcore/reference"
	"github.com/wecall-go/variantcore/region"
	"github.com/wecall-go/variantcore/werrors"
)

// RecordIterator yields sam.Records in position order, the shape
// bamprovider.Provider's positional iterator hands back.
type RecordIterator interface {
	Next() bool
	Record() *sam.Record
	Close() error
}

// Provider opens a positional iterator over r, the "byte-range iterator"
// §6 assumes exists — bamprovider.Provider satisfies this directly.
type Provider interface {
	NewIterator(r region.Region) (RecordIterator, error)
}

// bytesPerReadOverhead is the fixed per-record overhead added to
// 2*readLen when approximating a read's resident memory cost for the
// per-block ceiling check.
const bytesPerReadOverhead = 128

// Bite is one streamed slice of a block no wider than BiteSize, with
// survivors of the read filter grouped by sample.
type Bite struct {
	Region         region.Region
	ReadsPerSample map[string][]*readmodel.Read
}

// BlockIterator streams bite-sized slices of a region across one or more
// backing providers, applying per-sample grouping, the read filter/
// trimmer, and a per-block memory ceiling (§4.E).
type BlockIterator struct {
	Providers       []Provider
	RefStore        *reference.Store
	RGToSample      map[string]string
	FilterOpts      FilterOpts
	BiteSize        int64
	MemCeilingBytes int64
}

// NextBite streams reads from cursor up to cursor.End (or BiteSize bases,
// whichever is smaller), returning the bite and the cursor for the next
// call. If the memory ceiling is hit before any read is accepted, the
// cursor is advanced by BiteSize and a warning logged, per §4.E's "no
// bite completes" fallback.
func (b *BlockIterator) NextBite(cursor region.Region) (*Bite, region.Region, error) {
	if cursor.Interval.Size() == 0 {
		return nil, cursor, nil
	}
	biteEnd := cursor.Interval.Start + b.BiteSize
	if biteEnd > cursor.Interval.End {
		biteEnd = cursor.Interval.End
	}
	biteRegion := region.Region{Contig: cursor.Contig, Interval: region.Interval{Start: cursor.Interval.Start, End: biteEnd}}

	bite := &Bite{Region: biteRegion, ReadsPerSample: make(map[string][]*readmodel.Read)}
	var approxBytes int64
	accepted := 0

	for _, p := range b.Providers {
		it, err := p.NewIterator(biteRegion)
		if err != nil {
			return nil, cursor, werrors.Wrap(err, werrors.IoError, "opening iterator for "+biteRegion.String())
		}
		for it.Next() {
			rec := it.Record()
			if int64(rec.Pos) > biteEnd {
				break
			}
			approxBytes += int64(2*len(rec.Seq.Expand())) + bytesPerReadOverhead
			if approxBytes > b.MemCeilingBytes {
				it.Close()
				if accepted == 0 {
					log.Error.Printf("intake: memory ceiling reached with no reads accepted in %s, skipping bite", biteRegion)
					next := region.Region{Contig: cursor.Contig, Interval: region.Interval{Start: cursor.Interval.Start + b.BiteSize, End: cursor.Interval.End}}
					return nil, next, nil
				}
				return bite, region.Region{Contig: cursor.Contig, Interval: region.Interval{Start: biteEnd, End: cursor.Interval.End}}, nil
			}

			sample := SampleForRecord(rec, b.RGToSample)
			refWindow, err := b.RefStore.GetSequence(region.Region{Contig: biteRegion.Contig, Interval: region.Interval{Start: int64(rec.Pos), End: int64(rec.Pos) + cigarRefLen(rec)}})
			if err != nil {
				log.Error.Printf("intake: skipping read %s: %v", rec.Name, err)
				continue
			}
			read, err := readmodel.FromSAMRecord(rec, sample, refWindow)
			if err != nil {
				log.Error.Printf("intake: skipping malformed read %s: %v", rec.Name, err)
				continue
			}
			if !TrimAndFilter(read, b.FilterOpts) {
				continue
			}
			bite.ReadsPerSample[sample] = append(bite.ReadsPerSample[sample], read)
			accepted++
		}
		it.Close()
	}

	next := region.Region{Contig: cursor.Contig, Interval: region.Interval{Start: biteEnd, End: cursor.Interval.End}}
	return bite, next, nil
}

func cigarRefLen(rec *sam.Record) int64 {
	c, err := cigar.FromSAM(rec.Cigar)
	if err != nil {
		return 0
	}
	return c.LengthInRef()
}
