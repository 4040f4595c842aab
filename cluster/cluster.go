// Package cluster groups nearby variants into haplotype neighborhoods,
// infers pairwise co-occurrence from their supporting reads, and
// enumerates bounded sets of compatible variant combinations.
package cluster

import (
	"github.com/wecall-go/variantcore/region"
	"github.com/wecall-go/variantcore/variant"
)

// Cluster is a neighborhood of nearby variants sharing a padded region,
// plus the combinations computed for it by EnumerateCombinations.
type Cluster struct {
	Variants                []variant.Variant
	VariantRegions          *region.SetRegions
	PaddedRegion            region.Region
	ZeroIndexedVCFStart     int64
	Combinations            [][]variant.Variant
	AllCombinationsComputed bool
}

func newCluster(v variant.Variant) *Cluster {
	regions := region.NewSetRegions()
	regions.Insert(v.Region)
	return &Cluster{
		Variants:            []variant.Variant{v},
		VariantRegions:      regions,
		ZeroIndexedVCFStart: v.ZeroIndexedVCFPos(),
	}
}

func (c *Cluster) extend(v variant.Variant) {
	c.Variants = append(c.Variants, v)
	c.VariantRegions.Insert(v.Region)
}

// end returns the rightmost extent of the cluster's member regions so far.
func (c *Cluster) end() int64 {
	span, err := c.VariantRegions.GetSpan()
	if err != nil {
		return c.ZeroIndexedVCFStart
	}
	return span.Interval.End
}

// BuildClusters scans a sorted, same-contig variant set and groups
// variants into clusters: a variant extends the current cluster when its
// start lies within minClusterDistance of the cluster's current end,
// otherwise it starts a new cluster. Padded regions are bounded by
// neighbouring clusters and by blockRegion at the ends (§4.J).
func BuildClusters(variants []variant.Variant, minClusterDistance int64, blockRegion region.Region) []*Cluster {
	var clusters []*Cluster
	for _, v := range variants {
		if len(clusters) == 0 {
			clusters = append(clusters, newCluster(v))
			continue
		}
		cur := clusters[len(clusters)-1]
		if v.Region.Interval.Start-cur.end() <= minClusterDistance {
			cur.extend(v)
		} else {
			clusters = append(clusters, newCluster(v))
		}
	}
	padClusters(clusters, blockRegion)
	return clusters
}

// padClusters sets each cluster's PaddedRegion to the midpoint gap
// between it and its neighbours, falling back to blockRegion's edges at
// either end.
func padClusters(clusters []*Cluster, blockRegion region.Region) {
	for i, c := range clusters {
		span, err := c.VariantRegions.GetSpan()
		if err != nil {
			continue
		}
		start := blockRegion.Interval.Start
		if i > 0 {
			if prevSpan, err := clusters[i-1].VariantRegions.GetSpan(); err == nil {
				start = midpoint(prevSpan.Interval.End, span.Interval.Start)
			}
		}
		end := blockRegion.Interval.End
		if i+1 < len(clusters) {
			if nextSpan, err := clusters[i+1].VariantRegions.GetSpan(); err == nil {
				end = midpoint(span.Interval.End, nextSpan.Interval.Start)
			}
		}
		c.PaddedRegion = region.Region{Contig: span.Contig, Interval: region.Interval{Start: start, End: end}}
	}
}

func midpoint(a, b int64) int64 {
	if b <= a {
		return a
	}
	return a + (b-a)/2
}
