package cluster

import (
	"github.com/wecall-go/variantcore/region"
	"github.com/wecall-go/variantcore/variant"
)

// MergeClusters repeatedly merges pairwise-adjacent clusters at
// increasing distance thresholds, subject to a combination-count budget
// and maximum merged span, recomputing combinations on each merge
// (§4.J). distanceSteps are tried in order, smallest first.
func MergeClusters(clusters []*Cluster, distanceSteps []int64, maxVariantCombinations int, maxClusterSize int64,
	maxClusterDistance int64, minReadsToSupportClaim, maxCombinations int) []*Cluster {

	for _, maxDist := range distanceSteps {
		clusters = mergeAtDistance(clusters, maxDist, maxVariantCombinations, maxClusterSize, maxClusterDistance, minReadsToSupportClaim, maxCombinations)
	}
	return clusters
}

func mergeAtDistance(clusters []*Cluster, maxDistBetweenClusters int64, maxVariantCombinations int, maxClusterSize int64,
	maxClusterDistance int64, minReadsToSupportClaim, maxCombinations int) []*Cluster {

	var out []*Cluster
	i := 0
	for i < len(clusters) {
		if i+1 >= len(clusters) {
			out = append(out, clusters[i])
			i++
			continue
		}
		a, b := clusters[i], clusters[i+1]
		if canMerge(a, b, maxDistBetweenClusters, maxVariantCombinations, maxClusterSize) {
			merged := mergeTwo(a, b)
			EnumerateCombinations(merged, maxClusterDistance, minReadsToSupportClaim, maxCombinations)
			out = append(out, merged)
			i += 2
			continue
		}
		out = append(out, a)
		i++
	}
	return out
}

func canMerge(a, b *Cluster, maxDistBetweenClusters int64, maxVariantCombinations int, maxClusterSize int64) bool {
	if !a.AllCombinationsComputed || !b.AllCombinationsComputed {
		return false
	}
	spanA, errA := a.VariantRegions.GetSpan()
	spanB, errB := b.VariantRegions.GetSpan()
	if errA != nil || errB != nil || spanA.Contig != spanB.Contig {
		return false
	}
	gap := spanB.Interval.Start - spanA.Interval.End
	if gap > maxDistBetweenClusters {
		return false
	}
	total := spanB.Interval.End - spanA.Interval.Start
	if total > maxClusterSize {
		return false
	}
	return len(a.Combinations)*len(b.Combinations) <= maxVariantCombinations
}

func mergeTwo(a, b *Cluster) *Cluster {
	merged := &Cluster{
		Variants:            append(append([]variant.Variant(nil), a.Variants...), b.Variants...),
		VariantRegions:      region.NewSetRegions(),
		ZeroIndexedVCFStart: a.ZeroIndexedVCFStart,
	}
	for _, r := range a.VariantRegions.Regions() {
		merged.VariantRegions.Insert(r)
	}
	for _, r := range b.VariantRegions.Regions() {
		merged.VariantRegions.Insert(r)
	}
	padded, err := a.PaddedRegion.Combine(b.PaddedRegion)
	if err == nil {
		merged.PaddedRegion = padded
	} else {
		merged.PaddedRegion = a.PaddedRegion
	}
	return merged
}
