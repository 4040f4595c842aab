package cluster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wecall-go/variantcore/cluster"
	"github.com/wecall-go/variantcore/reference"
	"github.com/wecall-go/variantcore/region"
	"github.com/wecall-go/variantcore/variant"
)

func mergeVariantAt(t *testing.T, w reference.Window, pos int64, alt string) variant.Variant {
	t.Helper()
	r := region.Region{Contig: w.Region.Contig, Interval: region.Interval{Start: pos, End: pos + 1}}
	v, err := variant.New(w, r, alt)
	require.NoError(t, err)
	return v
}

func blankWindowSeq(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'A'
	}
	return string(b)
}

// Two adjacent single-variant clusters, each already within its
// combination budget, merge into one cluster once their gap falls
// inside the distance step, and the merged cluster's combinations are
// recomputed rather than left stale.
func TestMergeClustersMergesAdjacentClustersWithinBudget(t *testing.T) {
	w := reference.Window{
		Region:   region.Region{Contig: "1", Interval: region.Interval{Start: 0, End: 100}},
		Sequence: blankWindowSeq(100),
	}
	block := w.Region

	v1 := mergeVariantAt(t, w, 10, "T")
	v2 := mergeVariantAt(t, w, 20, "G")

	clusters := cluster.BuildClusters([]variant.Variant{v1, v2}, 1, block)
	require.Len(t, clusters, 2)
	for _, c := range clusters {
		cluster.EnumerateCombinations(c, 100, 1, 64)
		require.True(t, c.AllCombinationsComputed)
	}

	merged := cluster.MergeClusters(clusters, []int64{15}, 64, 1000, 100, 1, 64)
	require.Len(t, merged, 1)
	assert.Len(t, merged[0].Variants, 2)
	assert.True(t, merged[0].AllCombinationsComputed)
	assert.NotEmpty(t, merged[0].Combinations)
}

// When the product of the two clusters' combination counts would exceed
// maxVariantCombinations, the merge step leaves them unmerged rather
// than building an oversized combined cluster.
func TestMergeClustersRespectsCombinationBudget(t *testing.T) {
	w := reference.Window{
		Region:   region.Region{Contig: "1", Interval: region.Interval{Start: 0, End: 100}},
		Sequence: blankWindowSeq(100),
	}
	block := w.Region

	v1 := mergeVariantAt(t, w, 10, "T")
	v2 := mergeVariantAt(t, w, 20, "G")

	clusters := cluster.BuildClusters([]variant.Variant{v1, v2}, 1, block)
	require.Len(t, clusters, 2)
	for _, c := range clusters {
		cluster.EnumerateCombinations(c, 100, 1, 64)
		require.True(t, c.AllCombinationsComputed)
	}

	merged := cluster.MergeClusters(clusters, []int64{15}, 1, 1000, 100, 1, 64)
	require.Len(t, merged, 2)
}

// A gap wider than the distance step being tried is left unmerged at
// that step.
func TestMergeClustersLeavesDistantClustersUnmerged(t *testing.T) {
	w := reference.Window{
		Region:   region.Region{Contig: "1", Interval: region.Interval{Start: 0, End: 100}},
		Sequence: blankWindowSeq(100),
	}
	block := w.Region

	v1 := mergeVariantAt(t, w, 10, "T")
	v2 := mergeVariantAt(t, w, 90, "G")

	clusters := cluster.BuildClusters([]variant.Variant{v1, v2}, 1, block)
	require.Len(t, clusters, 2)
	for _, c := range clusters {
		cluster.EnumerateCombinations(c, 100, 1, 64)
	}

	merged := cluster.MergeClusters(clusters, []int64{5}, 64, 1000, 100, 1, 64)
	require.Len(t, merged, 2)
}
