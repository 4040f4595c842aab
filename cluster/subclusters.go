package cluster

import (
	"github.com/wecall-go/variantcore/region"
	"github.com/wecall-go/variantcore/variant"
)

// isLarge reports whether v's reference span is at least 2*clusterDistance —
// the §4.J threshold for a "large" variant that gets its own main cluster.
func isLarge(v variant.Variant, clusterDistance int64) bool {
	return v.Region.Interval.Size() >= 2*clusterDistance
}

// BuildSubClusters partitions c into a "main" cluster of large variants
// plus small variants touching them, and separate small-variant
// sub-clusters that touch no large variant. Touching is overlap with the
// main cluster's read-regions padded by clusterDistance+1.
func BuildSubClusters(c *Cluster, clusterDistance int64) []*Cluster {
	var large, small []variant.Variant
	for _, v := range c.Variants {
		if isLarge(v, clusterDistance) {
			large = append(large, v)
		} else {
			small = append(small, v)
		}
	}
	if len(large) == 0 {
		return []*Cluster{c}
	}

	mainRegions := region.NewSetRegions()
	for _, v := range large {
		mainRegions.Insert(v.Region)
	}
	paddedMain := make([]region.Region, 0, mainRegions.Len())
	for _, r := range mainRegions.Regions() {
		padded, err := r.Pad(clusterDistance + 1)
		if err != nil {
			padded = r
		}
		paddedMain = append(paddedMain, padded)
	}

	main := &Cluster{VariantRegions: region.NewSetRegions(), PaddedRegion: c.PaddedRegion}
	var rest []variant.Variant
	for _, v := range small {
		if touchesAny(v, paddedMain) {
			main.Variants = append(main.Variants, v)
			main.VariantRegions.Insert(v.Region)
		} else {
			rest = append(rest, v)
		}
	}
	main.Variants = append(main.Variants, large...)
	for _, v := range large {
		main.VariantRegions.Insert(v.Region)
	}
	if span, err := main.VariantRegions.GetSpan(); err == nil {
		main.ZeroIndexedVCFStart = span.Interval.Start - 1
	}

	out := []*Cluster{main}
	if len(rest) > 0 {
		out = append(out, BuildClusters(rest, clusterDistance, c.PaddedRegion)...)
	}
	return out
}

func touchesAny(v variant.Variant, regions []region.Region) bool {
	for _, r := range regions {
		if v.Region.Overlaps(r) {
			return true
		}
	}
	return false
}
