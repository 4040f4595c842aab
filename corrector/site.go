package corrector

import "gonum.org/v1/gonum/floats"

// kmerPrior pairs a kmer with its finalised prior probability.
type kmerPrior struct {
	Kmer  string
	Prior float64
}

// errorCountData is a site's error-transition pseudocount pair.
type errorCountData struct {
	Opportunity float64
	Count       float64
}

// SiteKmerDistribution holds one reference position's kmer histogram,
// finalised priors and error-transition probabilities (§4.I).
type SiteKmerDistribution struct {
	PaddedRefKmer string
	RefKmer       string

	counts map[string]int
	priors []kmerPrior

	pErrorForward  float64
	pErrorBackward float64
	errCountFwd    errorCountData
	errCountBack   errorCountData
}

func newSite(paddedRefKmer string, pad int) *SiteKmerDistribution {
	k := len(paddedRefKmer) - 2*pad
	return &SiteKmerDistribution{
		PaddedRefKmer: paddedRefKmer,
		RefKmer:       paddedRefKmer[pad : pad+k],
		counts:        make(map[string]int),
	}
}

// AddKmer increments this site's histogram entry for kmer.
func (s *SiteKmerDistribution) AddKmer(kmer string) {
	s.counts[kmer]++
}

// Priors returns the finalised kmer/prior pairs kept after pruning.
func (s *SiteKmerDistribution) Priors() []kmerPrior { return s.priors }

// PError returns the site's current error-transition probability for the
// given read direction.
func (s *SiteKmerDistribution) PError(isForward bool) float64 {
	if isForward {
		return s.pErrorForward
	}
	return s.pErrorBackward
}

// mismatchCount counts positions where kmer differs from the reference kmer.
func mismatchCount(kmer, ref string) int {
	n := 0
	for i := 0; i < len(kmer) && i < len(ref); i++ {
		if kmer[i] != ref[i] {
			n++
		}
	}
	return n
}

// Finalise computes w(k) = max(0, count(k)+priorCount(k))*count(k), adds a
// pref-weighted extra reference mass, normalises, then prunes entries at
// or below minPrior (§4.I step 4).
func (s *SiteKmerDistribution) Finalise(pref, minPrior float64) {
	type weighted struct {
		kmer   string
		weight float64
	}
	var weightedKmers []weighted
	var weights []float64
	for kmer, count := range s.counts {
		var priorCount float64
		if kmer == s.RefKmer {
			priorCount = 1
		} else {
			priorCount = -float64(mismatchCount(kmer, s.RefKmer))
			if priorCount < -2 {
				priorCount = -2
			}
		}
		w := float64(count) + priorCount
		if w < 0 {
			w = 0
		}
		w *= float64(count)
		weightedKmers = append(weightedKmers, weighted{kmer, w})
		weights = append(weights, w)
	}
	total := floats.Sum(weights)

	s.priors = nil
	if total == 0 {
		refPrior := 1.0
		s.priors = append(s.priors, kmerPrior{s.RefKmer, refPrior})
		return
	}

	refMass := total / (1 - pref)
	grandTotal := total + refMass
	for _, wk := range weightedKmers {
		prior := wk.weight / grandTotal
		if wk.kmer == s.RefKmer {
			prior += refMass / grandTotal
		}
		if prior > minPrior {
			s.priors = append(s.priors, kmerPrior{wk.kmer, prior})
		}
	}
	if len(s.priors) == 0 {
		s.priors = append(s.priors, kmerPrior{s.RefKmer, 1})
	}
}

// ResetErrorCountData seeds the forward/backward pseudocounts to
// {opportunity: 1, count: perr} (§4.I step 5). pError itself is left
// alone — it only moves on an explicit updatePError call, so resetting
// pseudocounts for a new pass never undoes the pError learned by the
// pass before it.
func (s *SiteKmerDistribution) ResetErrorCountData(perr float64) {
	s.errCountFwd = errorCountData{Opportunity: 1, Count: perr}
	s.errCountBack = errorCountData{Opportunity: 1, Count: perr}
}

// AccumulateErrorProbability folds a read's site error-transition
// probability into the running pseudocounts for its direction. pError
// is left untouched here — it only moves when updatePError runs, once
// per completed pass, so every read within a pass sees the same pError.
func (s *SiteKmerDistribution) AccumulateErrorProbability(p float64, isForward bool) {
	if isForward {
		s.errCountFwd.Opportunity++
		s.errCountFwd.Count += p
	} else {
		s.errCountBack.Opportunity++
		s.errCountBack.Count += p
	}
}

func (s *SiteKmerDistribution) updatePError() {
	s.pErrorForward = s.errCountFwd.Count / s.errCountFwd.Opportunity
	s.pErrorBackward = s.errCountBack.Count / s.errCountBack.Opportunity
}
