package readmodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wecall-go/variantcore/cigar"
	"github.com/wecall-go/variantcore/readmodel"
	"github.com/wecall-go/variantcore/reference"
	"github.com/wecall-go/variantcore/region"
)

func newTestRead(t *testing.T, contig string, start int64, seq, quals string, cigarStr string, flags readmodel.Flags, insertSize int64, windowSeq string, windowStart int64) *readmodel.Read {
	t.Helper()
	c, err := cigar.Parse(cigarStr)
	require.NoError(t, err)
	window := reference.Window{
		Region:   region.Region{Contig: contig, Interval: region.Interval{Start: windowStart, End: windowStart + int64(len(windowSeq))}},
		Sequence: windowSeq,
	}
	r, err := readmodel.NewRead(contig, 0, start, seq, []byte(quals), c, flags, 60, insertSize, "", 0, 0, "sample1", "read1", window)
	require.NoError(t, err)
	return r
}

func TestGetVariantsSNPExtraction(t *testing.T) {
	r := newTestRead(t, "1", 1, "TACG", "QQQQ", "4M", readmodel.Flags{}, 0, "AAAAA", 0)
	cands, err := r.GetVariants()
	require.NoError(t, err)
	require.Len(t, cands, 3)
	assert.Equal(t, int64(1), cands[0].Region.Interval.Start)
	assert.Equal(t, "T", cands[0].Alt)
	assert.Equal(t, int64(3), cands[1].Region.Interval.Start)
	assert.Equal(t, "C", cands[1].Alt)
	assert.Equal(t, int64(4), cands[2].Region.Interval.Start)
	assert.Equal(t, "G", cands[2].Alt)
}

func TestGetVariantsInsertionMidRead(t *testing.T) {
	r := newTestRead(t, "1", 1, "AAAAAA", "QQQQQQ", "1M4I1M", readmodel.Flags{}, 0, "AAAAAAAAAA", 0)
	cands, err := r.GetVariants()
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, int64(2), cands[0].Region.Interval.Start)
	assert.Equal(t, int64(2), cands[0].Region.Interval.End)
	assert.Equal(t, "AAAA", cands[0].Alt)
}

func TestGetBreakpointsSoftClip(t *testing.T) {
	r := newTestRead(t, "1", 5, "AAACCC", "QQQQQQ", "3S3M", readmodel.Flags{}, 0, "AAAAAA", 0)
	bps := r.GetBreakpoints()
	require.Len(t, bps, 1)
	assert.True(t, bps[0].IsStart)
	assert.Equal(t, int64(5), bps[0].Position)
	assert.Equal(t, "AAA", bps[0].ClipSequence)
}

func TestGetBreakpointsRequiresTwoOps(t *testing.T) {
	r := newTestRead(t, "1", 5, "AAA", "QQQ", "3M", readmodel.Flags{}, 0, "AAAAAA", 0)
	assert.Empty(t, r.GetBreakpoints())
}

func TestTrimOverlap(t *testing.T) {
	flags := readmodel.Flags{Paired: true, ProperPair: true, Read2: true}
	r := newTestRead(t, "1", 0, "AAAAAA", "QQQQQQ", "6M", flags, 8, "AAAAAA", 0)
	r.TrimOverlap()
	for _, q := range r.Qualities[len(r.Qualities)-4:] {
		assert.Equal(t, byte(readmodel.MinAllowedQualityScore), q)
	}
}
