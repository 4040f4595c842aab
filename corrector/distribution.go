package corrector

import (
	"github.com/wecall-go/variantcore/cigar"
	"github.com/wecall-go/variantcore/readmodel"
	"github.com/wecall-go/variantcore/reference"
	"github.com/wecall-go/variantcore/region"
)

// KmerDistribution holds one [readsStart, readsEnd) sample read-range's
// per-position SiteKmerDistribution table (§4.I steps 1-2).
type KmerDistribution struct {
	ReadsStart, ReadsEnd int64
	sites                []*SiteKmerDistribution
	params               Params
}

// NewKmerDistribution builds the per-site table over [readsStart,
// readsEnd), seeding each site's padded reference kmer from refWindow.
func NewKmerDistribution(contig string, refWindow reference.Window, readsStart, readsEnd int64, params Params) (*KmerDistribution, error) {
	kd := &KmerDistribution{ReadsStart: readsStart, ReadsEnd: readsEnd, params: params}
	kd.sites = make([]*SiteKmerDistribution, readsEnd-readsStart)
	for pos := readsStart; pos < readsEnd; pos++ {
		padded, err := refWindow.GetPadded(region.Region{
			Contig:   contig,
			Interval: region.Interval{Start: pos - int64(params.Pad), End: pos + int64(params.K) + int64(params.Pad)},
		})
		if err != nil {
			return nil, err
		}
		kd.sites[pos-readsStart] = newSite(padded, params.Pad)
	}
	return kd, nil
}

func (kd *KmerDistribution) posToIndex(pos int64) int { return int(pos - kd.ReadsStart) }

// Site returns the site at reference position pos.
func (kd *KmerDistribution) Site(pos int64) *SiteKmerDistribution {
	idx := kd.posToIndex(pos)
	if idx < 0 || idx >= len(kd.sites) {
		return nil
	}
	return kd.sites[idx]
}

// UpdateKmerHistogram increments every site's histogram with read's
// K-bp subsequences anchored at each non-empty ref position it covers
// (§4.I step 3).
func (kd *KmerDistribution) UpdateKmerHistogram(r *readmodel.Read) {
	refPositions := r.Cigar.GetRefPositions(r.StartPos)
	seq := r.Sequence
	for i, pos := range refPositions {
		if pos == cigar.EmptyPos {
			continue
		}
		if i+kd.params.K > len(seq) {
			continue
		}
		site := kd.Site(pos)
		if site == nil {
			continue
		}
		site.AddKmer(seq[i : i+kd.params.K])
	}
}

// FinaliseAll runs SiteKmerDistribution.Finalise over every site.
func (kd *KmerDistribution) FinaliseAll() {
	for _, s := range kd.sites {
		s.Finalise(kd.params.PRefPrior, kd.params.MinKmerPrior)
	}
}

// ResetErrorCountData seeds error pseudocounts on every site.
func (kd *KmerDistribution) ResetErrorCountData() {
	for _, s := range kd.sites {
		s.ResetErrorCountData(kd.params.PErrPrior)
	}
}

// UpdateErrorPosteriors refreshes every site's pError from its
// pseudocounts accumulated so far via AccumulateErrorProbability. Called
// once between a pass's reads finishing and the next pass starting, so
// pError is fixed for the full duration of any one pass (§4.I step 9).
func (kd *KmerDistribution) UpdateErrorPosteriors() {
	for _, s := range kd.sites {
		s.updatePError()
	}
}
