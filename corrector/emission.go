package corrector

import "math"

// phredToP converts a phred quality score to an error probability.
func phredToP(q byte) float64 {
	return math.Pow(10, -float64(q)/10)
}

// emissionProbabilities computes (probTrue, probError)^(1/K) for one read
// site against site's finalised kmer priors (§4.I step 7).
func emissionProbabilities(site *SiteKmerDistribution, readKmer string, qualityKmer []byte, params Params) (float64, float64) {
	var probTrue, probError float64
	for _, kp := range site.Priors() {
		pMismatchTrue := probMismatchTrue(kp.Kmer, readKmer, qualityKmer)
		pMismatchError := probMismatchError(kp.Kmer, readKmer, site.PaddedRefKmer, params)
		probTrue += kp.Prior * pMismatchTrue
		probError += kp.Prior * (params.PTrue*pMismatchTrue + (1-params.PTrue)*pMismatchError)
	}
	k := float64(params.K)
	return math.Pow(probTrue, 1/k), math.Pow(probError, 1/k)
}

func probMismatchTrue(kmer, readKmer string, qualityKmer []byte) float64 {
	p := 1.0
	for i := 0; i < len(kmer) && i < len(readKmer); i++ {
		q := phredToP(qualityKmer[i])
		if q > 0.75 {
			q = 0.75
		}
		if kmer[i] == readKmer[i] {
			p *= 1 - q
		} else {
			p *= q / 3
		}
	}
	return p
}

func probMismatchError(kmer, readKmer, paddedRefKmer string, params Params) float64 {
	extTrueKmer := paddedRefKmer[:params.Pad] + kmer + paddedRefKmer[params.Pad+len(kmer):]
	p := 1.0
	for i := 0; i < len(kmer) && i < len(readKmer); i++ {
		readBase := readKmer[i]
		if kmer[i] == readBase {
			p *= params.PMatch
			continue
		}
		probDiff := 0.0
		for d, weight := range params.SlippageDistances {
			idx := i + params.Pad + d
			if idx >= 0 && idx < len(extTrueKmer) && readBase == extTrueKmer[idx] {
				probDiff += (1 - params.PMatch) * params.PSlippage * weight
			}
		}
		probDiff += (1 - params.PMatch) * (1 - params.PSlippage) / 3
		p *= probDiff
	}
	return p
}
