// Package corrector implements the kmer-based per-base error recalibration
// HMM: per-site kmer histograms and priors, a two-state (True/Error)
// forward-backward pass over each read, and a final quality floor sweep.
package corrector

// Params collects the recalibration model's tunable constants (§4.I).
// The defaults reproduce the contract values exactly.
type Params struct {
	K                  int
	Pad                int
	PMatch             float64
	PSlippage          float64
	PTrue              float64
	PErrPrior          float64
	PRefPrior          float64
	SlippageDistances  map[int]float64
	QualityFloor       byte
	FloorTo            byte
	MinKmerPrior       float64
	MinReadsToSupport  int
}

// DefaultParams returns the contract defaults from §4.I's table.
func DefaultParams(floorTo byte) Params {
	return Params{
		K:                 7,
		Pad:               1,
		PMatch:            0.8,
		PSlippage:         0.8,
		PTrue:             0.5,
		PErrPrior:         0.0005,
		PRefPrior:         0.95,
		SlippageDistances: map[int]float64{-1: 0.5, 1: 0.5},
		QualityFloor:      5,
		FloorTo:           floorTo,
		MinKmerPrior:      2e-3,
	}
}

// PaddedKmerLength is the length of a site's padded reference kmer.
func (p Params) PaddedKmerLength() int { return p.K + 2*p.Pad }
