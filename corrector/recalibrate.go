package corrector

import (
	"github.com/grailbio/base/log"

	"github.com/wecall-go/variantcore/readmodel"
	"github.com/wecall-go/variantcore/reference"
)

// RecalibrateSample runs the full two-pass HMM recalibration over one
// sample's reads in a block (§4.I). refWindow must cover every read's
// aligned span; reads is mutated in place (qualities only).
func RecalibrateSample(contig string, refWindow reference.Window, reads []*readmodel.Read, params Params) error {
	if len(reads) == 0 {
		return nil
	}
	readsStart, readsEnd := readRange(reads)

	kd, err := NewKmerDistribution(contig, refWindow, readsStart, readsEnd, params)
	if err != nil {
		return err
	}
	for _, r := range reads {
		kd.UpdateKmerHistogram(r)
	}
	kd.FinaliseAll()

	perRead := make([][]siteReadData, len(reads))
	for i, r := range reads {
		perRead[i] = walkOrder(buildSiteReadData(r, params), r.Flags.Reverse)
	}

	// Two full passes over every read, with pError held fixed for the
	// duration of each pass and only refreshed in the gap between them
	// (§4.I steps 5/8/9): reset -> update -> pass 1 -> update -> reset ->
	// pass 2.
	kd.ResetErrorCountData()
	kd.UpdateErrorPosteriors()
	runPass(kd, reads, perRead, params)
	kd.UpdateErrorPosteriors()
	kd.ResetErrorCountData()
	runPass(kd, reads, perRead, params)

	for i, r := range reads {
		data := perRead[i]
		if len(data) == 0 {
			continue
		}
		res := runForwardBackward(kd, data, !r.Flags.Reverse, params)
		recalibrateRead(r, data, res.posterior)
	}

	floorLowQualityScores(reads, params.QualityFloor, params.FloorTo)
	log.Debug.Printf("corrector: recalibrated %d reads over %s:%d-%d", len(reads), contig, readsStart, readsEnd)
	return nil
}

func readRange(reads []*readmodel.Read) (int64, int64) {
	start, end := reads[0].StartPos, reads[0].AlignedEndPos
	for _, r := range reads[1:] {
		if r.StartPos < start {
			start = r.StartPos
		}
		if r.AlignedEndPos > end {
			end = r.AlignedEndPos
		}
	}
	return start, end
}

// runPass runs the HMM over every read against kd's current pError and
// accumulates transition probabilities back into kd (§4.I step 8: called
// twice, once per refinement iteration, with the caller responsible for
// resetting pseudocounts and refreshing pError between calls).
func runPass(kd *KmerDistribution, reads []*readmodel.Read, perRead [][]siteReadData, params Params) {
	for i, r := range reads {
		data := perRead[i]
		if len(data) == 0 {
			continue
		}
		isForward := !r.Flags.Reverse
		res := runForwardBackward(kd, data, isForward, params)
		accumulateTransitions(kd, data, res.posterior, isForward)
	}
}

// recalibrateRead finds the first walk-ordered site whose error
// posterior exceeds 0.5 and floors qualities from its anchor to the read
// end in walk direction (§4.I step 10).
func recalibrateRead(r *readmodel.Read, data []siteReadData, posterior []float64) {
	idx := -1
	for i, p := range posterior {
		if p > 0.5 {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	anchor := data[idx]
	if r.Flags.Reverse {
		start := anchor.indexIntoRead + len(anchor.readKmer) - 1
		for i := start; i >= 0; i-- {
			r.Qualities[i] = readmodel.MinAllowedQualityScore
		}
	} else {
		for i := anchor.indexIntoRead; i < len(r.Qualities); i++ {
			r.Qualities[i] = readmodel.MinAllowedQualityScore
		}
	}
}

// floorLowQualityScores sweeps every read's qualities, setting any value
// at or below floor to floorTo (§4.I step 11).
func floorLowQualityScores(reads []*readmodel.Read, floor, floorTo byte) {
	for _, r := range reads {
		for i, q := range r.Qualities {
			if q <= floor {
				r.Qualities[i] = floorTo
			}
		}
	}
}
