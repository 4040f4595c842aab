package reference_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wecall-go/variantcore/reference"
	"github.com/wecall-go/variantcore/region"
)

func TestStoreGetSequencePadsOutsideContig(t *testing.T) {
	fa := ">chr1\nAAAAA\n"
	idx := []reference.ContigEntry{{Name: "chr1", Length: 5}}
	store, err := reference.NewStore(strings.NewReader(fa), idx)
	require.NoError(t, err)

	r, err := region.NewRegion("chr1", -2, 7)
	require.NoError(t, err)
	w, err := store.GetSequence(r)
	require.NoError(t, err)
	assert.Equal(t, "NNAAAAANN", w.Sequence)
}

func TestStoreSubseqInvariant(t *testing.T) {
	fa := ">chr1\nACGTACGT\n"
	idx := []reference.ContigEntry{{Name: "chr1", Length: 8}}
	store, err := reference.NewStore(strings.NewReader(fa), idx)
	require.NoError(t, err)

	full, err := region.NewRegion("chr1", 0, 8)
	require.NoError(t, err)
	w, err := store.GetSequence(full)
	require.NoError(t, err)

	sub, err := region.NewRegion("chr1", 2, 5)
	require.NoError(t, err)
	subW, err := store.GetSequence(sub)
	require.NoError(t, err)

	wSub, err := w.Subseq(sub)
	require.NoError(t, err)
	assert.Equal(t, subW.Sequence, wSub.Sequence)
}

func TestStoreCacheSequence(t *testing.T) {
	fa := ">chr1\nACGTACGT\n"
	idx := []reference.ContigEntry{{Name: "chr1", Length: 8}}
	store, err := reference.NewStore(strings.NewReader(fa), idx)
	require.NoError(t, err)

	whole, err := region.NewRegion("chr1", 0, 8)
	require.NoError(t, err)
	require.NoError(t, store.CacheSequence(whole))

	sub, err := region.NewRegion("chr1", 1, 4)
	require.NoError(t, err)
	w, err := store.GetSequence(sub)
	require.NoError(t, err)
	assert.Equal(t, "CGT", w.Sequence)
}
