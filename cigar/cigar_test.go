package cigar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wecall-go/variantcore/cigar"
	"github.com/wecall-go/variantcore/region"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []string{"4M", "1M4I1M", "10M2D3M", "5S10M5S"}
	for _, s := range tests {
		c, err := cigar.Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, c.String())
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := cigar.Parse("4Q")
	assert.Error(t, err)
	_, err = cigar.Parse("M4")
	assert.Error(t, err)
}

func TestLengths(t *testing.T) {
	c, err := cigar.Parse("5S10M2D3M5S")
	require.NoError(t, err)
	assert.Equal(t, int64(25), c.Length())
	assert.Equal(t, int64(23), c.LengthInSeq())
	assert.Equal(t, int64(13), c.LengthInSeqWithoutSoftClip())
	assert.Equal(t, int64(15), c.LengthInRef())
	assert.Equal(t, int64(5), c.LengthBeforeRefStartPos())
	assert.Equal(t, int64(5), c.LengthAfterRefEndPos())
}

func TestGetRefPositions(t *testing.T) {
	c, err := cigar.Parse("1M4I1M")
	require.NoError(t, err)
	got := c.GetRefPositions(10)
	want := []int64{10, cigar.EmptyPos, cigar.EmptyPos, cigar.EmptyPos, cigar.EmptyPos, 11}
	assert.Equal(t, want, got)
}

func TestStripSoftClipping(t *testing.T) {
	c, err := cigar.Parse("5S10M3S")
	require.NoError(t, err)
	stripped, front, back := c.StripSoftClipping()
	assert.Equal(t, int64(5), front)
	assert.Equal(t, int64(3), back)
	assert.Equal(t, "10M", stripped.String())
}

func TestGetInverseIntervalMatch(t *testing.T) {
	c, err := cigar.Parse("10M")
	require.NoError(t, err)
	// Fully matching op: interval shifts exactly.
	got := c.GetInverseInterval(100, region.Interval{Start: 102, End: 105})
	assert.Equal(t, region.Interval{Start: 2, End: 5}, got)
}

func TestGetInverseIntervalFullSpan(t *testing.T) {
	c, err := cigar.Parse("4M4I4M")
	require.NoError(t, err)
	got := c.GetInverseInterval(0, region.Interval{Start: 0, End: 8})
	assert.Equal(t, region.Interval{Start: 0, End: 12}, got)
}

func TestGetInverseIntervalSaturates(t *testing.T) {
	c, err := cigar.Parse("10M")
	require.NoError(t, err)
	got := c.GetInverseInterval(100, region.Interval{Start: -50, End: -10})
	assert.Equal(t, region.Interval{Start: 0, End: 0}, got)

	got = c.GetInverseInterval(100, region.Interval{Start: 500, End: 600})
	assert.Equal(t, region.Interval{Start: 10, End: 10}, got)
}

func TestEmitVariantsSNP(t *testing.T) {
	c, err := cigar.Parse("4M")
	require.NoError(t, err)
	cands := c.EmitVariants("1", 1, "AAAA", "TACG")
	require.Len(t, cands, 3)
	assert.Equal(t, int64(1), cands[0].Region.Interval.Start)
	assert.Equal(t, "T", cands[0].Alt)
	assert.Equal(t, int64(3), cands[1].Region.Interval.Start)
	assert.Equal(t, "C", cands[1].Alt)
	assert.Equal(t, int64(4), cands[2].Region.Interval.Start)
	assert.Equal(t, "G", cands[2].Alt)
}

func TestEmitVariantsInsertionMidRead(t *testing.T) {
	c, err := cigar.Parse("1M4I1M")
	require.NoError(t, err)
	cands := c.EmitVariants("1", 1, "AA", "AAAAAA")
	require.Len(t, cands, 1)
	assert.Equal(t, int64(2), cands[0].Region.Interval.Start)
	assert.Equal(t, int64(2), cands[0].Region.Interval.End)
	assert.Equal(t, "AAAA", cands[0].Alt)
}

func TestEmitVariantsInsertionAtReadStartSuppressed(t *testing.T) {
	c, err := cigar.Parse("4I2M")
	require.NoError(t, err)
	cands := c.EmitVariants("1", 1, "AA", "AAAAAA")
	assert.Empty(t, cands)
}
