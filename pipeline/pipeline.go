// Package pipeline wires the per-block control flow of §2's component
// table: intake streams and filters reads (E/F), the kmer recalibrator
// floors likely-dephased qualities (I), the candidate-variant generator
// then normalises the recalibrated reads into a container in a single
// pass (G/H), and clustering groups the final variant set into combinations (J) before
// handing filtered calls to an out-of-scope output adapter (L's
// contract: a channel of structured calls).
package pipeline

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"

	"github.com/wecall-go/variantcore/cluster"
	"github.com/wecall-go/variantcore/corrector"
	"github.com/wecall-go/variantcore/intake"
	"github.com/wecall-go/variantcore/readmodel"
	"github.com/wecall-go/variantcore/reference"
	"github.com/wecall-go/variantcore/region"
	"github.com/wecall-go/variantcore/variant"
)

// ClusterParams collects the §4.J thresholds governing cluster
// generation, pairwise state, combination enumeration, and merging.
type ClusterParams struct {
	MinClusterDistance     int64
	MaxClusterDistance     int64
	MinReadsToSupportClaim int
	MaxCombinations        int
	MaxVariantCombinations int
	MaxClusterSize         int64
	MergeDistanceSteps     []int64
}

// Call is the structured record handed to the output adapter (component
// L) for one surviving variant within its cluster's combination set.
type Call struct {
	Variant variant.Variant
	Cluster *cluster.Cluster
}

// Options bundles everything ProcessBlock needs beyond the block region
// itself.
type Options struct {
	Providers       []intake.Provider
	RefStore        *reference.Store
	RGToSample      map[string]string
	FilterOpts      intake.FilterOpts
	BiteSize        int64
	MemCeilingBytes int64
	CorrectorParams corrector.Params
	VariantFilter   variant.Filter
	MinBaseQual     int
	MinMappingQual  byte
	Cluster         ClusterParams
}

// ProcessBlock runs the full per-block pipeline over block and emits one
// Call per surviving variant to out.
func ProcessBlock(block region.Region, opts Options, out chan<- Call) error {
	readsPerSample, err := collectBlockReads(block, opts)
	if err != nil {
		return err
	}
	if len(readsPerSample) == 0 {
		return nil
	}

	samples := make([]string, 0, len(readsPerSample))
	for s := range readsPerSample {
		samples = append(samples, s)
	}

	refWindow, err := blockRefWindow(block, opts.RefStore)
	if err != nil {
		return err
	}

	if err := recalibrateSamples(block.Contig, refWindow, readsPerSample, samples, opts.CorrectorParams); err != nil {
		return err
	}

	container := variant.NewContainer(opts.MinBaseQual, opts.MinMappingQual)
	var allReads []*readmodel.Read
	for _, sample := range samples {
		for _, r := range readsPerSample[sample] {
			allReads = append(allReads, r)
			if err := generateAndRecordVariants(r, sample, refWindow, container); err != nil {
				log.Error.Printf("pipeline: skipping read %s in candidate generation: %v", r.Name, err)
			}
		}
	}
	container.ComputeCoverage(allReads)

	var passing []variant.Variant
	for _, v := range container.Variants() {
		if opts.VariantFilter.Passes(v, container) {
			passing = append(passing, v)
		}
	}

	clusters := cluster.BuildClusters(passing, opts.Cluster.MinClusterDistance, block)
	for _, c := range clusters {
		cluster.EnumerateCombinations(c, opts.Cluster.MaxClusterDistance, opts.Cluster.MinReadsToSupportClaim, opts.Cluster.MaxCombinations)
	}
	clusters = cluster.MergeClusters(clusters, opts.Cluster.MergeDistanceSteps, opts.Cluster.MaxVariantCombinations,
		opts.Cluster.MaxClusterSize, opts.Cluster.MaxClusterDistance, opts.Cluster.MinReadsToSupportClaim, opts.Cluster.MaxCombinations)

	for _, c := range clusters {
		for _, v := range c.Variants {
			out <- Call{Variant: v, Cluster: c}
		}
	}
	return nil
}

// collectBlockReads drains the bite iterator over the whole block,
// merging every bite's per-sample reads (§4.E).
func collectBlockReads(block region.Region, opts Options) (map[string][]*readmodel.Read, error) {
	it := &intake.BlockIterator{
		Providers:       opts.Providers,
		RefStore:        opts.RefStore,
		RGToSample:      opts.RGToSample,
		FilterOpts:      opts.FilterOpts,
		BiteSize:        opts.BiteSize,
		MemCeilingBytes: opts.MemCeilingBytes,
	}
	out := make(map[string][]*readmodel.Read)
	cursor := block
	for cursor.Interval.Size() > 0 {
		bite, next, err := it.NextBite(cursor)
		if err != nil {
			return nil, err
		}
		if bite != nil {
			for sample, reads := range bite.ReadsPerSample {
				out[sample] = append(out[sample], reads...)
			}
		}
		cursor = next
	}
	return out, nil
}

func blockRefWindow(block region.Region, store *reference.Store) (reference.Window, error) {
	return store.GetSequence(block)
}

// recalibrateSamples runs corrector.RecalibrateSample once per sample in
// parallel, matching pileup.go's traverse.Each fan-out idiom; each
// sample's recalibration stays single-threaded internally (§4.I).
func recalibrateSamples(contig string, refWindow reference.Window, readsPerSample map[string][]*readmodel.Read, samples []string, params corrector.Params) error {
	return traverse.Each(len(samples), func(i int) error {
		sample := samples[i]
		return corrector.RecalibrateSample(contig, refWindow, readsPerSample[sample], params)
	})
}

// generateAndRecordVariants runs candidate-variant generation and
// normalisation for one read (§4.G) and records the results into
// container (§4.H).
func generateAndRecordVariants(r *readmodel.Read, sample string, refWindow reference.Window, container *variant.Container) error {
	candidates, err := r.GetVariants()
	if err != nil {
		return err
	}
	breakpoints := r.GetBreakpoints()

	variants := make([]variant.Variant, 0, len(candidates))
	for _, cand := range candidates {
		v, err := variant.New(refWindow, cand.Region, cand.Alt)
		if err != nil {
			return err
		}
		variants = append(variants, v)
	}

	normalised, err := variant.Normalise(variants, refWindow)
	if err != nil {
		return err
	}
	container.AddVariantsFromRead(r, normalised, breakpoints, sample)
	return nil
}
