package corrector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wecall-go/variantcore/cigar"
	"github.com/wecall-go/variantcore/corrector"
	"github.com/wecall-go/variantcore/readmodel"
	"github.com/wecall-go/variantcore/reference"
	"github.com/wecall-go/variantcore/region"
)

func distributionTestWindow() reference.Window {
	seq := ""
	for i := 0; i < 40; i++ {
		seq += "A"
	}
	return reference.Window{
		Region:   region.Region{Contig: "1", Interval: region.Interval{Start: 0, End: 40}},
		Sequence: seq,
	}
}

// NewKmerDistribution builds one site per reference position in range,
// each seeded from the reference window, and UpdateKmerHistogram records
// a read's overlapping kmers into those sites.
func TestKmerDistributionBuildsAndUpdatesSites(t *testing.T) {
	w := distributionTestWindow()
	params := corrector.DefaultParams(readmodel.MinAllowedQualityScore)

	kd, err := corrector.NewKmerDistribution("1", w, 10, 20, params)
	require.NoError(t, err)

	c, err := cigar.Parse("10M")
	require.NoError(t, err)
	quals := make([]byte, 10)
	for i := range quals {
		quals[i] = 30
	}
	r, err := readmodel.NewRead("1", 0, 10, "AAAAAAAAAA", quals, c, readmodel.Flags{}, 60, 0, "", 0, 0, "sample1", "read1", w)
	require.NoError(t, err)

	kd.UpdateKmerHistogram(r)
	kd.FinaliseAll()

	site := kd.Site(10)
	require.NotNil(t, site)
	assert.NotEmpty(t, site.Priors())

	// A position outside [readsStart, readsEnd) has no site.
	assert.Nil(t, kd.Site(100))
}

// ResetErrorCountData reseeds every site's error pseudocounts to the
// configured prior, independent of any histogram state; PError only
// reflects that prior once UpdateErrorPosteriors has run.
func TestKmerDistributionResetErrorCountData(t *testing.T) {
	w := distributionTestWindow()
	params := corrector.DefaultParams(readmodel.MinAllowedQualityScore)

	kd, err := corrector.NewKmerDistribution("1", w, 10, 15, params)
	require.NoError(t, err)
	kd.FinaliseAll()
	kd.ResetErrorCountData()

	site := kd.Site(12)
	require.NotNil(t, site)
	assert.Equal(t, 0.0, site.PError(true))

	kd.UpdateErrorPosteriors()
	assert.InDelta(t, params.PErrPrior, site.PError(true), 1e-9)
}
