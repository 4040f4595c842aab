package corrector

import (
	"github.com/wecall-go/variantcore/cigar"
	"github.com/wecall-go/variantcore/readmodel"
)

// siteReadData is the per-read, per-site anchor used by the HMM
// (§4.I step 6): readKmer/qualityKmer are the read's K bases and
// qualities starting at indexIntoRead; refPos is the reference position
// that anchor maps to.
type siteReadData struct {
	readKmer      string
	qualityKmer   []byte
	indexIntoRead int
	refPos        int64
}

// buildSiteReadData returns every valid K-bp anchor into r, in read
// (left-to-right) order.
func buildSiteReadData(r *readmodel.Read, params Params) []siteReadData {
	refPositions := r.Cigar.GetRefPositions(r.StartPos)
	seq, quals := r.Sequence, r.Qualities
	var out []siteReadData
	for i, pos := range refPositions {
		if pos == cigar.EmptyPos {
			continue
		}
		if i+params.K > len(seq) {
			continue
		}
		out = append(out, siteReadData{
			readKmer:      seq[i : i+params.K],
			qualityKmer:   quals[i : i+params.K],
			indexIntoRead: i,
			refPos:        pos,
		})
	}
	return out
}

// walkOrder returns data reordered for HMM processing: read orientation
// left-to-right for forward reads, right-to-left for reverse reads.
func walkOrder(data []siteReadData, reverse bool) []siteReadData {
	if !reverse {
		return data
	}
	out := make([]siteReadData, len(data))
	for i, d := range data {
		out[len(data)-1-i] = d
	}
	return out
}

// hmmResult holds, per walk-ordered site, the error-state posterior and
// the emission probabilities used to compute it.
type hmmResult struct {
	posterior  []float64
	probTrue   []float64
	probError  []float64
}

// runForwardBackward runs the two-state (True/Error) forward-backward
// pass over data (already in walk order) against kd, returning per-site
// error posteriors (§4.I step 8).
func runForwardBackward(kd *KmerDistribution, data []siteReadData, isForward bool, params Params) hmmResult {
	n := len(data)
	res := hmmResult{posterior: make([]float64, n), probTrue: make([]float64, n), probError: make([]float64, n)}
	if n == 0 {
		return res
	}

	pError := make([]float64, n)
	for i, d := range data {
		site := kd.Site(d.refPos)
		if site == nil {
			res.probTrue[i], res.probError[i] = 1, 0
			continue
		}
		res.probTrue[i], res.probError[i] = emissionProbabilities(site, d.readKmer, d.qualityKmer, params)
		pError[i] = site.PError(isForward)
	}

	alphaTrue := make([]float64, n)
	alphaError := make([]float64, n)
	alphaTrue[0] = res.probTrue[0]
	alphaError[0] = 0
	for i := 1; i < n; i++ {
		alphaTrue[i] = alphaTrue[i-1] * (1 - pError[i-1]) * res.probTrue[i]
		alphaError[i] = (alphaTrue[i-1]*pError[i-1] + alphaError[i-1]) * res.probError[i]
	}

	betaTrue := make([]float64, n)
	betaError := make([]float64, n)
	betaTrue[n-1] = 1
	betaError[n-1] = 1
	for i := n - 2; i >= 0; i-- {
		betaTrue[i] = (1-pError[i+1])*res.probTrue[i+1]*betaTrue[i+1] + pError[i+1]*res.probError[i+1]*betaError[i+1]
		betaError[i] = res.probError[i+1] * betaError[i+1]
	}

	for i := 0; i < n; i++ {
		pTrue := alphaTrue[i] * betaTrue[i]
		pErr := alphaError[i] * betaError[i]
		if total := pTrue + pErr; total > 0 {
			res.posterior[i] = pErr / total
		}
	}
	return res
}

// accumulateTransitions computes posterior(i) - posterior(i-1) in
// walk order, clamped to [0,1], and folds each into its site's
// pseudocounts (§4.I step 8 final sentence).
func accumulateTransitions(kd *KmerDistribution, data []siteReadData, posterior []float64, isForward bool) {
	for i, d := range data {
		prev := 0.0
		if i > 0 {
			prev = posterior[i-1]
		}
		p := posterior[i] - prev
		if p < 0 {
			p = 0
		}
		if p > 1 {
			p = 1
		}
		if site := kd.Site(d.refPos); site != nil {
			site.AccumulateErrorProbability(p, isForward)
		}
	}
}
