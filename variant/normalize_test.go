package variant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wecall-go/variantcore/reference"
	"github.com/wecall-go/variantcore/region"
	"github.com/wecall-go/variantcore/variant"
)

func mustWindow(t *testing.T, contig string, start int64, seq string) reference.Window {
	t.Helper()
	return reference.Window{
		Region:   region.Region{Contig: contig, Interval: region.Interval{Start: start, End: start + int64(len(seq))}},
		Sequence: seq,
	}
}

func mustVariant(t *testing.T, w reference.Window, start, end int64, alt string) variant.Variant {
	t.Helper()
	r := region.Region{Contig: w.Region.Contig, Interval: region.Interval{Start: start, End: end}}
	v, err := variant.New(w, r, alt)
	require.NoError(t, err)
	return v
}

// Two adjacent indels that are joinable collapse into a single variant
// spanning both, then re-split back out if the joined form isn't simpler
// — here a 1bp insertion immediately followed by a 1bp deletion at the
// same locus join into a pure substitution.
func TestNormaliseJoinsAdjacentIndels(t *testing.T) {
	w := mustWindow(t, "1", 0, "AAACCCAAA")
	ins := mustVariant(t, w, 3, 3, "G") // insertion of G before pos 3
	del := mustVariant(t, w, 3, 4, "")  // deletion of the C at pos 3

	out, err := variant.Normalise([]variant.Variant{ins, del}, w)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "G", out[0].Alt)
	assert.Equal(t, int64(3), out[0].Region.Interval.Start)
	assert.Equal(t, int64(4), out[0].Region.Interval.End)
}

func TestNormalisePassesThroughSNPsUnchanged(t *testing.T) {
	w := mustWindow(t, "1", 0, "AAACCCAAA")
	snp1 := mustVariant(t, w, 1, 2, "T")
	snp2 := mustVariant(t, w, 5, 6, "G")

	out, err := variant.Normalise([]variant.Variant{snp1, snp2}, w)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "T", out[0].Alt)
	assert.Equal(t, "G", out[1].Alt)
}

// A deletion of a repeated base left-aligns down to the window's start but
// no further, stopping exactly at the lower bound rather than erroring.
func TestNormaliseLeftAlignStopsAtWindowStart(t *testing.T) {
	w := mustWindow(t, "1", 0, "AAAACCC")
	del := mustVariant(t, w, 3, 4, "") // deletes the fourth A

	out, err := variant.Normalise([]variant.Variant{del}, w)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(0), out[0].Region.Interval.Start)
	assert.Equal(t, int64(1), out[0].Region.Interval.End)
}
