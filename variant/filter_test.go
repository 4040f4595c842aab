package variant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wecall-go/variantcore/readmodel"
	"github.com/wecall-go/variantcore/variant"
)

func TestFilterPassesWhenThresholdsMet(t *testing.T) {
	w := containerTestWindow()
	snp := containerTestSNP(t, w)
	c := variant.NewContainer(20, 20)

	r1 := containerTestRead(t, w, "sampleA", []byte{40, 40, 40, 40, 40})
	r2 := containerTestRead(t, w, "sampleA", []byte{40, 40, 40, 40, 40})
	c.AddVariantsFromRead(r1, []variant.Variant{snp}, nil, "sampleA")
	c.AddVariantsFromRead(r2, []variant.Variant{snp}, nil, "sampleA")
	c.ComputeCoverage([]*readmodel.Read{r1, r2})

	f := variant.NewFilter(2, 50)
	assert.True(t, f.Passes(snp, c))
}

func TestFilterRejectsBelowMinReads(t *testing.T) {
	w := containerTestWindow()
	snp := containerTestSNP(t, w)
	c := variant.NewContainer(20, 20)

	r1 := containerTestRead(t, w, "sampleA", []byte{40, 40, 40, 40, 40})
	c.AddVariantsFromRead(r1, []variant.Variant{snp}, nil, "sampleA")
	c.ComputeCoverage([]*readmodel.Read{r1})

	f := variant.NewFilter(2, 50)
	assert.False(t, f.Passes(snp, c))
}

func TestFilterNeverFilterBypassesThresholds(t *testing.T) {
	w := containerTestWindow()
	snp := containerTestSNP(t, w)
	c := variant.NewContainer(20, 20)
	c.AddCandidateVariant(snp, 0.001)

	f := variant.NewFilter(100, 100)
	require.Len(t, c.Variants(), 1)
	assert.True(t, f.Passes(c.Variants()[0], c))
}
