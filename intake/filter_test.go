package intake_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wecall-go/variantcore/cigar"
	"github.com/wecall-go/variantcore/intake"
	"github.com/wecall-go/variantcore/readmodel"
	"github.com/wecall-go/variantcore/reference"
	"github.com/wecall-go/variantcore/region"
)

func filterTestRead(t *testing.T, flags readmodel.Flags, mapQual byte, insertSize int64) *readmodel.Read {
	t.Helper()
	c, err := cigar.Parse("4M")
	require.NoError(t, err)
	w := reference.Window{
		Region:   region.Region{Contig: "1", Interval: region.Interval{Start: 0, End: 4}},
		Sequence: "AAAA",
	}
	r, err := readmodel.NewRead("1", 0, 0, "AAAA", []byte{40, 40, 40, 40}, c, flags, mapQual, insertSize, "", 0, 0, "sample1", "read1", w)
	require.NoError(t, err)
	return r
}

func TestFilterOptsRejectsLowMappingQuality(t *testing.T) {
	opts := intake.DefaultFilterOpts()
	r := filterTestRead(t, readmodel.Flags{}, 10, 0)
	assert.False(t, opts.Passes(r))
}

func TestFilterOptsRejectsUnmappedAndDuplicate(t *testing.T) {
	opts := intake.DefaultFilterOpts()
	assert.False(t, opts.Passes(filterTestRead(t, readmodel.Flags{Unmapped: true}, 60, 0)))
	assert.False(t, opts.Passes(filterTestRead(t, readmodel.Flags{Duplicate: true}, 60, 0)))
}

func TestFilterOptsAcceptsPlainMappedRead(t *testing.T) {
	opts := intake.DefaultFilterOpts()
	r := filterTestRead(t, readmodel.Flags{}, 60, 0)
	assert.True(t, opts.Passes(r))
}

func TestShortFragmentFilterRejectsFragmentNoLongerThanRead(t *testing.T) {
	opts := intake.FilterOpts{MinMappingQuality: 20, ShortFragmentMode: intake.ShortFragmentFilter}
	r := filterTestRead(t, readmodel.Flags{Paired: true, ProperPair: true}, 60, 4)
	assert.False(t, opts.Passes(r))
}

func TestFilterSimilarToKeptDetectsExactDuplicateStart(t *testing.T) {
	kept := filterTestRead(t, readmodel.Flags{}, 60, 0)
	other := filterTestRead(t, readmodel.Flags{}, 60, 0)
	assert.True(t, intake.FilterSimilarToKept(other, []*readmodel.Read{kept}))
}
