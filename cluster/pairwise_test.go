package cluster_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wecall-go/variantcore/cigar"
	"github.com/wecall-go/variantcore/cluster"
	"github.com/wecall-go/variantcore/readmodel"
	"github.com/wecall-go/variantcore/reference"
	"github.com/wecall-go/variantcore/region"
	"github.com/wecall-go/variantcore/variant"
)

func pairwiseTestWindow(contig string, start int64, seq string) reference.Window {
	return reference.Window{
		Region:   region.Region{Contig: contig, Interval: region.Interval{Start: start, End: start + int64(len(seq))}},
		Sequence: seq,
	}
}

func pairwiseTestRead(t *testing.T, contig string, start int64, seq string) *readmodel.Read {
	t.Helper()
	c, err := cigar.Parse(fmt.Sprintf("%dM", len(seq)))
	require.NoError(t, err)
	quals := make([]byte, len(seq))
	for i := range quals {
		quals[i] = 40
	}
	w := pairwiseTestWindow(contig, start, seq)
	r, err := readmodel.NewRead(contig, 0, start, seq, quals, c, readmodel.Flags{}, 60, 0, "", 0, 0, "sample1", "read1", w)
	require.NoError(t, err)
	return r
}

func snpAt(t *testing.T, w reference.Window, pos int64, alt string) variant.Variant {
	t.Helper()
	v, err := variant.New(w, region.Region{Contig: w.Region.Contig, Interval: region.Interval{Start: pos, End: pos + 1}}, alt)
	require.NoError(t, err)
	return v
}

// Two SNPs always seen together in every covering read, each with enough
// support, resolve to ALWAYS_TOGETHER once the minimum-support threshold
// is met, and drop to UNCERTAIN otherwise.
func TestPairwiseStateAlwaysTogether(t *testing.T) {
	w := pairwiseTestWindow("1", 0, "AACAA")
	snp1 := snpAt(t, w, 1, "T")
	snp2 := snpAt(t, w, 2, "G")

	for i := 0; i < 3; i++ {
		r := pairwiseTestRead(t, "1", 0, "AACAA")
		snp1.AddRead(r)
		snp2.AddRead(r)
	}

	assert.Equal(t, cluster.AlwaysTogether, cluster.PairwiseState(snp1, snp2, 2, 100))
	assert.Equal(t, cluster.Uncertain, cluster.PairwiseState(snp1, snp2, 10, 100))
}

// Pairs spanning at least maxClusterDistance are always UNCERTAIN,
// regardless of read support.
func TestPairwiseStateUncertainBeyondMaxDistance(t *testing.T) {
	w := pairwiseTestWindow("1", 0, strings.Repeat("A", 201))
	snp1 := snpAt(t, w, 0, "T")
	far, err := variant.New(w, region.Region{Contig: "1", Interval: region.Interval{Start: 200, End: 201}}, "G")
	require.NoError(t, err)

	assert.Equal(t, cluster.Uncertain, cluster.PairwiseState(snp1, far, 1, 50))
}
